package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danakita/danakita/internal/pkg/models"
)

// scriptedQuerier returns states in order, repeating the last one once the
// script is exhausted
type scriptedQuerier struct {
	mu     sync.Mutex
	script []queryResult
	calls  int
}

type queryResult struct {
	state models.TransactionState
	err   error
}

func (q *scriptedQuerier) QueryStatus(ctx context.Context, id string) (models.TransactionState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := q.calls
	if idx >= len(q.script) {
		idx = len(q.script) - 1
	}
	q.calls++

	result := q.script[idx]
	return result.state, result.err
}

func (q *scriptedQuerier) callCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.calls
}

func collect(t *testing.T, ch <-chan StatusSnapshot, within time.Duration) []StatusSnapshot {
	t.Helper()

	var snapshots []StatusSnapshot
	timeout := time.After(within)
	for {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return snapshots
			}
			snapshots = append(snapshots, snapshot)
		case <-timeout:
			t.Fatalf("poll loop did not close within %s, got %d snapshots", within, len(snapshots))
		}
	}
}

func states(snapshots []StatusSnapshot) []models.TransactionState {
	out := make([]models.TransactionState, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, s.State)
	}
	return out
}

func TestPoll_ImmediateTerminalEmitsOnceAndStops(t *testing.T) {
	querier := &scriptedQuerier{script: []queryResult{
		{state: models.StateCompleted},
	}}
	p := New(querier)

	ch := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, time.Second)
	snapshots := collect(t, ch, time.Second)

	require.Len(t, snapshots, 1)
	assert.Equal(t, models.StateCompleted, snapshots[0].State)
	assert.True(t, snapshots[0].Terminal())
	assert.Equal(t, "txn-1", snapshots[0].TransactionID)
}

func TestPoll_SuppressesConsecutiveDuplicates(t *testing.T) {
	querier := &scriptedQuerier{script: []queryResult{
		{state: models.StatePending},
		{state: models.StatePending},
		{state: models.StatePending},
		{state: models.StateProcessing},
		{state: models.StateCompleted},
	}}
	p := New(querier)

	ch := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, time.Second)
	snapshots := collect(t, ch, time.Second)

	assert.Equal(t, []models.TransactionState{
		models.StatePending,
		models.StateProcessing,
		models.StateCompleted,
	}, states(snapshots))
}

func TestPoll_TransientErrorsAreEmittedAndSurvived(t *testing.T) {
	queryErr := errors.New("connection refused")
	querier := &scriptedQuerier{script: []queryResult{
		{err: queryErr},
		{state: models.StatePending},
		{state: models.StateCompleted},
	}}
	p := New(querier)

	ch := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, time.Second)
	snapshots := collect(t, ch, time.Second)

	require.Len(t, snapshots, 3)
	assert.ErrorIs(t, snapshots[0].Err, queryErr)
	assert.False(t, snapshots[0].Terminal())
	assert.Equal(t, models.StatePending, snapshots[1].State)
	assert.Equal(t, models.StateCompleted, snapshots[2].State)
}

func TestPoll_StopsAtMaxDurationWithoutTerminal(t *testing.T) {
	querier := &scriptedQuerier{script: []queryResult{
		{state: models.StatePending},
	}}
	p := New(querier)

	start := time.Now()
	ch := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, 80*time.Millisecond)
	snapshots := collect(t, ch, time.Second)
	elapsed := time.Since(start)

	// The unchanged pending state is emitted once, then the budget runs out
	assert.Equal(t, []models.TransactionState{models.StatePending}, states(snapshots))
	assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
	assert.Greater(t, querier.callCount(), 1)
}

func TestPoll_ContextCancellationClosesChannel(t *testing.T) {
	querier := &scriptedQuerier{script: []queryResult{
		{state: models.StatePending},
	}}
	p := New(querier)

	ctx, cancel := context.WithCancel(context.Background())
	ch := p.Poll(ctx, "txn-1", 10*time.Millisecond, time.Minute)

	// Let at least the first snapshot through, then cancel
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no snapshot before cancellation")
	}
	cancel()

	snapshots := collect(t, ch, time.Second)
	for _, s := range snapshots {
		assert.False(t, s.Terminal())
	}
}

func TestPoll_CancelByID(t *testing.T) {
	querier := &scriptedQuerier{script: []queryResult{
		{state: models.StatePending},
	}}
	p := New(querier)

	ch := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, time.Minute)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no snapshot before cancel")
	}
	p.Cancel("txn-1")

	collect(t, ch, time.Second)
}

func TestPoll_RestartSupersedesPreviousLoop(t *testing.T) {
	querier := &scriptedQuerier{script: []queryResult{
		{state: models.StatePending},
	}}
	p := New(querier)

	first := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, time.Minute)

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("no snapshot from first loop")
	}

	second := p.Poll(context.Background(), "txn-1", 10*time.Millisecond, 60*time.Millisecond)

	// The first loop is cancelled by the restart and closes
	collect(t, first, time.Second)

	snapshots := collect(t, second, time.Second)
	assert.NotEmpty(t, snapshots)

	p.Cancel("txn-1")
}

func TestDefaultInterval(t *testing.T) {
	assert.Equal(t, 3*time.Second, DefaultInterval(models.MethodWalletPush))
	assert.Equal(t, 10*time.Second, DefaultInterval(models.MethodBankReference))
	assert.Equal(t, 5*time.Second, DefaultInterval(models.MethodQRInstant))
}

func TestDefaultMaxDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, DefaultMaxDuration(models.MethodWalletPush))
	assert.Equal(t, 30*time.Minute, DefaultMaxDuration(models.MethodBankReference))
	assert.Equal(t, 24*time.Hour, DefaultMaxDuration(models.MethodQRInstant))
}

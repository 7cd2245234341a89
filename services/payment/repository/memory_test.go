package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/models"
)

// fakeClock is a settable clock for deterministic TTL and eviction tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTxn(method models.PaymentMethod) *models.Transaction {
	return &models.Transaction{
		ID:       uuid.New().String(),
		Amount:   50.00,
		Currency: "IDR",
		Method:   method,
	}
}

func TestMemoryRepo_CreateSetsPendingAndTTL(t *testing.T) {
	// Arrange
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := newFakeClock(now)
	repo := NewMemoryTransactionRepo(clock, 5*time.Minute)

	txn := newTestTxn(models.MethodWalletPush)

	// Act
	err := repo.Create(context.Background(), txn)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, txn.State)
	assert.Equal(t, now, txn.CreatedAt)
	assert.Equal(t, now, txn.LastUpdatedAt)
	assert.Equal(t, now.Add(5*time.Minute), txn.ExpiresAt)
}

func TestMemoryRepo_CreateCardHasNoExpiry(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := NewMemoryTransactionRepo(clock, 5*time.Minute)

	txn := newTestTxn(models.MethodCard)

	err := repo.Create(context.Background(), txn)

	require.NoError(t, err)
	assert.True(t, txn.ExpiresAt.IsZero())
}

func TestMemoryRepo_CreateValidation(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		txn  *models.Transaction
	}{
		{"missing id", &models.Transaction{Amount: 10, Currency: "IDR", Method: models.MethodCard}},
		{"zero amount", &models.Transaction{ID: "t1", Amount: 0, Currency: "IDR", Method: models.MethodCard}},
		{"negative amount", &models.Transaction{ID: "t1", Amount: -5, Currency: "IDR", Method: models.MethodCard}},
		{"missing currency", &models.Transaction{ID: "t1", Amount: 10, Method: models.MethodCard}},
		{"bad method", &models.Transaction{ID: "t1", Amount: 10, Currency: "IDR", Method: "crypto"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.txn)

			assert.True(t, pkgerrors.IsValidation(err))
		})
	}

	assert.Equal(t, 0, repo.Len())
}

func TestMemoryRepo_CreateDuplicateID(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)
	ctx := context.Background()

	txn := newTestTxn(models.MethodBankReference)
	require.NoError(t, repo.Create(ctx, txn))

	dup := newTestTxn(models.MethodBankReference)
	dup.ID = txn.ID
	err := repo.Create(ctx, dup)

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestMemoryRepo_GetReturnsSnapshot(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)
	ctx := context.Background()

	txn := newTestTxn(models.MethodQRInstant)
	require.NoError(t, repo.Create(ctx, txn))

	got, err := repo.Get(ctx, txn.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store
	got.State = models.StateCompleted

	again, err := repo.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, again.State)
}

func TestMemoryRepo_GetNotFound(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestMemoryRepo_TransitionAppliesAndBumpsTimestamp(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := NewMemoryTransactionRepo(clock, 0)
	ctx := context.Background()

	txn := newTestTxn(models.MethodWalletPush)
	require.NoError(t, repo.Create(ctx, txn))

	clock.Advance(30 * time.Second)

	applied, got, err := repo.Transition(ctx, txn.ID, models.StateProcessing)

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.StateProcessing, got.State)
	assert.Equal(t, clock.Now(), got.LastUpdatedAt)
	assert.True(t, got.LastUpdatedAt.After(got.CreatedAt))
}

func TestMemoryRepo_TransitionOutOfTerminalIsNoOp(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := NewMemoryTransactionRepo(clock, 0)
	ctx := context.Background()

	txn := newTestTxn(models.MethodWalletPush)
	require.NoError(t, repo.Create(ctx, txn))

	applied, _, err := repo.Transition(ctx, txn.ID, models.StateCompleted)
	require.NoError(t, err)
	require.True(t, applied)

	completedAt := clock.Now()
	clock.Advance(time.Minute)

	// A late expiry or duplicate webhook must not disturb the settled state
	applied, got, err := repo.Transition(ctx, txn.ID, models.StateExpired)

	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.StateCompleted, got.State)
	assert.Equal(t, completedAt, got.LastUpdatedAt)
}

func TestMemoryRepo_TransitionDisallowedEdge(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)
	ctx := context.Background()

	txn := newTestTxn(models.MethodBankReference)
	require.NoError(t, repo.Create(ctx, txn))

	applied, _, err := repo.Transition(ctx, txn.ID, models.StateProcessing)
	require.NoError(t, err)
	require.True(t, applied)

	// processing -> cancelled is not a permitted edge
	applied, got, err := repo.Transition(ctx, txn.ID, models.StateCancelled)

	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.StateProcessing, got.State)
}

func TestMemoryRepo_TransitionNotFound(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)

	_, _, err := repo.Transition(context.Background(), "missing", models.StateCompleted)

	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestMemoryRepo_ConcurrentTransitionsSingleWinner(t *testing.T) {
	repo := NewMemoryTransactionRepo(nil, 0)
	ctx := context.Background()

	txn := newTestTxn(models.MethodWalletPush)
	require.NoError(t, repo.Create(ctx, txn))

	targets := []models.TransactionState{
		models.StateCompleted,
		models.StateExpired,
		models.StateFailed,
		models.StateCancelled,
	}

	var wg sync.WaitGroup
	results := make(chan bool, len(targets))
	for _, target := range targets {
		wg.Add(1)
		go func(target models.TransactionState) {
			defer wg.Done()
			applied, _, err := repo.Transition(ctx, txn.ID, target)
			assert.NoError(t, err)
			results <- applied
		}(target)
	}
	wg.Wait()
	close(results)

	wins := 0
	for applied := range results {
		if applied {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	got, err := repo.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, got.State.IsTerminal())
}

func TestMemoryRepo_SweepEvictsReadTerminals(t *testing.T) {
	// Arrange
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	retention := 5 * time.Minute
	repo := NewMemoryTransactionRepo(clock, retention)
	ctx := context.Background()

	read := newTestTxn(models.MethodWalletPush)
	unread := newTestTxn(models.MethodWalletPush)
	pending := newTestTxn(models.MethodWalletPush)
	for _, txn := range []*models.Transaction{read, unread, pending} {
		require.NoError(t, repo.Create(ctx, txn))
	}

	for _, id := range []string{read.ID, unread.ID} {
		applied, _, err := repo.Transition(ctx, id, models.StateCompleted)
		require.NoError(t, err)
		require.True(t, applied)
	}

	// Only the read transaction starts its retention grace
	_, err := repo.Get(ctx, read.ID)
	require.NoError(t, err)

	// Act
	clock.Advance(retention + time.Second)
	evicted := repo.sweep()

	// Assert
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 2, repo.Len())

	_, err = repo.Get(ctx, read.ID)
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)

	_, err = repo.Get(ctx, unread.ID)
	assert.NoError(t, err)
	_, err = repo.Get(ctx, pending.ID)
	assert.NoError(t, err)
}

func TestMemoryRepo_SweepHonorsRetentionGrace(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	retention := 5 * time.Minute
	repo := NewMemoryTransactionRepo(clock, retention)
	ctx := context.Background()

	txn := newTestTxn(models.MethodCard)
	require.NoError(t, repo.Create(ctx, txn))

	applied, _, err := repo.Transition(ctx, txn.ID, models.StateCompleted)
	require.NoError(t, err)
	require.True(t, applied)

	_, err = repo.Get(ctx, txn.ID)
	require.NoError(t, err)

	clock.Advance(retention - time.Second)

	assert.Equal(t, 0, repo.sweep())

	// Repeat reads inside the grace window still succeed
	got, err := repo.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, got.State)
}

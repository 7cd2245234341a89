// Package poller implements the client-side reconciliation loop: a bounded,
// cancellable poll of the transaction status query until a terminal state is
// observed or the loop's time budget runs out.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/danakita/danakita/internal/pkg/models"
)

// StatusQuerier answers the status query the loop repeats. Both the
// in-process store and the HTTP status endpoint satisfy it.
type StatusQuerier interface {
	QueryStatus(ctx context.Context, id string) (models.TransactionState, error)
}

// StatusSnapshot is one observation emitted by a poll loop. Err is set for
// transient query failures; the loop keeps running after emitting one.
type StatusSnapshot struct {
	TransactionID string
	State         models.TransactionState
	Err           error
	ObservedAt    time.Time
}

// Terminal reports whether the snapshot carries a terminal state
func (s StatusSnapshot) Terminal() bool {
	return s.Err == nil && s.State.IsTerminal()
}

// DefaultInterval returns the per-method poll interval
func DefaultInterval(method models.PaymentMethod) time.Duration {
	switch method {
	case models.MethodWalletPush:
		return 3 * time.Second
	case models.MethodBankReference:
		return 10 * time.Second
	case models.MethodQRInstant:
		return 5 * time.Second
	}
	return 5 * time.Second
}

// DefaultMaxDuration returns the per-method poll budget, mirroring the
// method TTL plus slack for webhook propagation
func DefaultMaxDuration(method models.PaymentMethod) time.Duration {
	switch method {
	case models.MethodWalletPush:
		return 5 * time.Minute
	case models.MethodBankReference:
		return 30 * time.Minute
	case models.MethodQRInstant:
		return 24 * time.Hour
	}
	return 30 * time.Minute
}

// Long-form (invoice-style) bank references settle in days, not minutes
const (
	LongFormInterval    = 30 * time.Second
	LongFormMaxDuration = 72 * time.Hour
)

// Poller runs reconciliation loops. At most one loop is active per
// transaction id; starting a new one cancels its predecessor.
type Poller struct {
	querier StatusQuerier

	mu    sync.Mutex
	loops map[string]*loopHandle
}

// loopHandle identifies one running loop, so a finished loop only removes its
// own registration and never a successor's.
type loopHandle struct {
	cancel context.CancelFunc
}

// New creates a poller over the given querier
func New(querier StatusQuerier) *Poller {
	return &Poller{
		querier: querier,
		loops:   make(map[string]*loopHandle),
	}
}

// Poll starts a reconciliation loop for the transaction and returns the
// channel of snapshots. The loop:
//   - emits immediately on start, then once per interval tick
//   - suppresses consecutive duplicate states
//   - emits the terminal snapshot and then stops (the stop check runs after
//     inclusion, not before)
//   - stops without further emissions once maxDuration has elapsed
//   - keeps at most one status query in flight; a query still running at the
//     next tick is cancelled and superseded, never queued behind
//   - surfaces transient query errors as snapshots and keeps polling
//
// The channel is closed when the loop stops for any reason, including
// cancellation of ctx.
func (p *Poller) Poll(ctx context.Context, id string, interval, maxDuration time.Duration) <-chan StatusSnapshot {
	loopCtx, cancel := context.WithCancel(ctx)
	handle := &loopHandle{cancel: cancel}

	p.mu.Lock()
	if prev, ok := p.loops[id]; ok {
		prev.cancel()
	}
	p.loops[id] = handle
	p.mu.Unlock()

	out := make(chan StatusSnapshot, 1)

	go p.run(loopCtx, handle, id, interval, maxDuration, out)

	return out
}

// Cancel stops the active loop for the transaction, if any
func (p *Poller) Cancel(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if handle, ok := p.loops[id]; ok {
		handle.cancel()
		delete(p.loops, id)
	}
}

func (p *Poller) run(ctx context.Context, handle *loopHandle, id string, interval, maxDuration time.Duration, out chan<- StatusSnapshot) {
	defer close(out)
	defer handle.cancel()
	defer func() {
		p.mu.Lock()
		// Only forget the loop if it is still ours; a restart may have
		// replaced the entry already.
		if p.loops[id] == handle {
			delete(p.loops, id)
		}
		p.mu.Unlock()
	}()

	deadline := time.NewTimer(maxDuration)
	defer deadline.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		emitted   bool
		lastState models.TransactionState
	)

	// Immediate first observation, then one per tick.
	for {
		snapshot := p.query(ctx, id, interval)

		if snapshot.Err != nil {
			if ctx.Err() != nil {
				return
			}
			if !emit(ctx, out, snapshot) {
				return
			}
		} else if !emitted || snapshot.State != lastState {
			if !emit(ctx, out, snapshot) {
				return
			}
			emitted = true
			lastState = snapshot.State

			// Inclusive stop: the terminal value was just delivered.
			if snapshot.State.IsTerminal() {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			return
		case <-ticker.C:
		}
	}
}

// query runs a single status query bounded by the tick interval, so a slow
// query is cancelled at the next tick boundary instead of piling up.
func (p *Poller) query(ctx context.Context, id string, interval time.Duration) StatusSnapshot {
	queryCtx, cancel := context.WithTimeout(ctx, interval)
	defer cancel()

	state, err := p.querier.QueryStatus(queryCtx, id)
	return StatusSnapshot{
		TransactionID: id,
		State:         state,
		Err:           err,
		ObservedAt:    time.Now().UTC(),
	}
}

func emit(ctx context.Context, out chan<- StatusSnapshot, snapshot StatusSnapshot) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- snapshot:
		return true
	}
}

package repository

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/internal/pkg/scheduler"
	"github.com/danakita/danakita/services/payment"
)

// entry wraps a transaction with its own lock so transitions on different
// transactions never contend with each other.
type entry struct {
	mu             sync.Mutex
	txn            models.Transaction
	terminalRead   bool
	terminalReadAt time.Time
}

// MemoryTransactionRepo is the in-process transaction store. Terminal
// transactions that have been read at least once are evicted by the janitor
// after a retention grace, so the map does not grow unbounded.
type MemoryTransactionRepo struct {
	clock     scheduler.Clock
	retention time.Duration

	mu      sync.RWMutex
	entries map[string]*entry

	janitorStop chan struct{}
	janitorOnce sync.Once
}

// NewMemoryTransactionRepo creates a new in-memory transaction store
func NewMemoryTransactionRepo(clock scheduler.Clock, retention time.Duration) *MemoryTransactionRepo {
	if clock == nil {
		clock = scheduler.RealClock{}
	}
	if retention <= 0 {
		retention = 5 * time.Minute
	}
	return &MemoryTransactionRepo{
		clock:       clock,
		retention:   retention,
		entries:     make(map[string]*entry),
		janitorStop: make(chan struct{}),
	}
}

// Create validates and stores a new pending transaction
func (r *MemoryTransactionRepo) Create(ctx context.Context, txn *models.Transaction) error {
	if err := validateNewTransaction(txn); err != nil {
		return err
	}

	now := r.clock.Now()
	txn.State = models.StatePending
	txn.CreatedAt = now
	txn.LastUpdatedAt = now
	if ttl := models.MethodTTL(txn.Method); ttl > 0 {
		txn.ExpiresAt = now.Add(ttl)
	} else {
		txn.ExpiresAt = time.Time{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[txn.ID]; exists {
		return pkgerrors.NewValidationError("id", "transaction already exists")
	}
	r.entries[txn.ID] = &entry{txn: *txn}

	return nil
}

// Get returns a snapshot of the transaction, marking terminal ones as read
// for the janitor. The snapshot never aliases store memory.
func (r *MemoryTransactionRepo) Get(ctx context.Context, id string) (*models.Transaction, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.txn.State.IsTerminal() && !e.terminalRead {
		e.terminalRead = true
		e.terminalReadAt = r.clock.Now()
	}

	snapshot := e.txn
	return &snapshot, nil
}

// Transition applies a guarded state transition. Whichever caller reaches the
// entry lock first wins; the loser observes applied=false and must do nothing
// further. LastUpdatedAt is only bumped when the transition is applied.
func (r *MemoryTransactionRepo) Transition(ctx context.Context, id string, target models.TransactionState) (bool, *models.Transaction, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return false, nil, pkgerrors.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.txn.State.IsTerminal() || !models.CanTransition(e.txn.State, target) {
		snapshot := e.txn
		return false, &snapshot, nil
	}

	e.txn.State = target
	e.txn.LastUpdatedAt = r.clock.Now()

	snapshot := e.txn
	return true, &snapshot, nil
}

// StartJanitor launches the background sweep that evicts terminal
// transactions after they have been read and the retention grace elapsed.
func (r *MemoryTransactionRepo) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-r.janitorStop:
				return
			case <-ticker.C:
				evicted := r.sweep()
				if evicted > 0 {
					logger.Debug("Evicted terminal transactions",
						logger.Int("count", evicted))
				}
			}
		}
	}()
}

// StopJanitor stops the background sweep
func (r *MemoryTransactionRepo) StopJanitor() {
	r.janitorOnce.Do(func() {
		close(r.janitorStop)
	})
}

func (r *MemoryTransactionRepo) sweep() int {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.entries {
		e.mu.Lock()
		expired := e.terminalRead && now.Sub(e.terminalReadAt) >= r.retention
		e.mu.Unlock()

		if expired {
			delete(r.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored transactions
func (r *MemoryTransactionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func validateNewTransaction(txn *models.Transaction) error {
	if txn.ID == "" {
		return pkgerrors.NewValidationError("id", "is required")
	}
	if txn.Amount <= 0 {
		return pkgerrors.NewValidationError("amount", "must be positive")
	}
	if txn.Currency == "" {
		return pkgerrors.NewValidationError("currency", "is required")
	}
	if !txn.Method.IsValid() {
		return pkgerrors.NewValidationError("method", "is not a supported payment method")
	}
	return nil
}

var _ payment.TransactionRepo = (*MemoryTransactionRepo)(nil)

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/danakita/danakita/internal/pkg/constants"
	"github.com/danakita/danakita/internal/pkg/database"
	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/internal/pkg/scheduler"
	"github.com/danakita/danakita/services/payment"
)

// cardKeyTTL bounds card transactions, which carry no local expiry,
// so abandoned gateway sessions cannot pin keys forever.
const cardKeyTTL = 48 * time.Hour

// RedisTransactionRepo is the durable transaction store. Keys carry a TTL of
// the method deadline plus the retention grace, so even after a process
// restart loses the in-memory timers an unresolved transaction cannot outlive
// its deadline by more than the grace.
type RedisTransactionRepo struct {
	client    *database.RedisClient
	clock     scheduler.Clock
	retention time.Duration
}

// NewRedisTransactionRepo creates a new redis-backed transaction store
func NewRedisTransactionRepo(client *database.RedisClient, clock scheduler.Clock, retention time.Duration) *RedisTransactionRepo {
	if clock == nil {
		clock = scheduler.RealClock{}
	}
	if retention <= 0 {
		retention = 5 * time.Minute
	}
	return &RedisTransactionRepo{
		client:    client,
		clock:     clock,
		retention: retention,
	}
}

func transactionKey(id string) string {
	return fmt.Sprintf(constants.KeyTransaction, id)
}

// Create validates and stores a new pending transaction
func (r *RedisTransactionRepo) Create(ctx context.Context, txn *models.Transaction) error {
	if err := validateNewTransaction(txn); err != nil {
		return err
	}

	now := r.clock.Now()
	txn.State = models.StatePending
	txn.CreatedAt = now
	txn.LastUpdatedAt = now

	keyTTL := cardKeyTTL
	if ttl := models.MethodTTL(txn.Method); ttl > 0 {
		txn.ExpiresAt = now.Add(ttl)
		keyTTL = ttl + r.retention
	} else {
		txn.ExpiresAt = time.Time{}
	}

	data, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	key := transactionKey(txn.ID)
	ok, err := r.client.GetClient().SetNX(ctx, key, data, keyTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to store transaction: %w", err)
	}
	if !ok {
		return pkgerrors.NewValidationError("id", "transaction already exists")
	}

	return nil
}

// Get returns a snapshot of the transaction. Terminal transactions have their
// key TTL tightened to the retention grace on first read, the redis analogue
// of janitor eviction.
func (r *RedisTransactionRepo) Get(ctx context.Context, id string) (*models.Transaction, error) {
	key := transactionKey(id)

	data, err := r.client.Get(ctx, key)
	if err == redis.Nil {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	var txn models.Transaction
	if err := json.Unmarshal([]byte(data), &txn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	if txn.State.IsTerminal() {
		ttl, err := r.client.GetClient().TTL(ctx, key).Result()
		if err == nil && (ttl < 0 || ttl > r.retention) {
			_ = r.client.GetClient().Expire(ctx, key, r.retention).Err()
		}
	}

	return &txn, nil
}

// Transition applies a guarded state transition using an optimistic WATCH
// loop so concurrent writers (webhook vs expiry) serialize per key.
func (r *RedisTransactionRepo) Transition(ctx context.Context, id string, target models.TransactionState) (bool, *models.Transaction, error) {
	key := transactionKey(id)

	var (
		applied bool
		result  models.Transaction
	)

	txnFunc := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return pkgerrors.ErrNotFound
		}
		if err != nil {
			return err
		}

		var txn models.Transaction
		if err := json.Unmarshal([]byte(data), &txn); err != nil {
			return fmt.Errorf("failed to unmarshal transaction: %w", err)
		}

		if txn.State.IsTerminal() || !models.CanTransition(txn.State, target) {
			applied = false
			result = txn
			return nil
		}

		txn.State = target
		txn.LastUpdatedAt = r.clock.Now()

		updated, err := json.Marshal(&txn)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		if err != nil {
			return err
		}

		applied = true
		result = txn
		return nil
	}

	// Retry a few times on WATCH conflicts; a conflict means another writer
	// just transitioned this transaction.
	for attempt := 0; attempt < 3; attempt++ {
		err := r.client.GetClient().Watch(ctx, txnFunc, key)
		if err == redis.TxFailedErr {
			applied = false
			continue
		}
		if err != nil {
			return false, nil, err
		}
		return applied, &result, nil
	}

	// All attempts conflicted; report the state another writer left behind.
	txn, err := r.Get(ctx, id)
	if err != nil {
		return false, nil, err
	}
	return false, txn, nil
}

var _ payment.TransactionRepo = (*RedisTransactionRepo)(nil)

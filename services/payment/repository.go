package payment

import (
	"context"

	"github.com/danakita/danakita/internal/pkg/models"
)

// TransactionRepo is the authoritative store for transaction state. Every
// mutation after creation goes through Transition, whose guarded check-then-set
// is the concurrency contract the expiry scheduler and webhook ingest rely on.
type TransactionRepo interface {
	// Create validates and stores a new transaction. The caller supplies ID,
	// Amount, Currency, Method and GatewayReference; the store assigns State,
	// CreatedAt, ExpiresAt and LastUpdatedAt.
	Create(ctx context.Context, txn *models.Transaction) error

	// Get returns a snapshot of the transaction. Terminal transactions are
	// marked as read so retention eviction can reclaim them later.
	Get(ctx context.Context, id string) (*models.Transaction, error)

	// Transition attempts a guarded state transition. It returns applied=false
	// with no mutation when the current state is terminal or the edge is not
	// permitted; both are silent no-ops, never errors.
	Transition(ctx context.Context, id string, target models.TransactionState) (bool, *models.Transaction, error)
}

// ArchiveRepo receives terminal transactions for durable archival. It is the
// intake of the external persistence collaborator.
type ArchiveRepo interface {
	ArchiveTransaction(ctx context.Context, txn *models.Transaction) error
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/services/payment"
)

// PostgresArchiveRepo persists terminal transactions for the external
// persistence collaborator. The write is idempotent: a duplicate archive of
// the same transaction id is a no-op, matching webhook double delivery.
type PostgresArchiveRepo struct {
	db *sqlx.DB
}

// NewPostgresArchiveRepo creates a new archive repository
func NewPostgresArchiveRepo(db *sqlx.DB) payment.ArchiveRepo {
	return &PostgresArchiveRepo{db: db}
}

// ArchiveTransaction inserts a terminal transaction row
func (r *PostgresArchiveRepo) ArchiveTransaction(ctx context.Context, txn *models.Transaction) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO payment_transactions (
			id, amount, currency, method, state,
			gateway_reference, created_at, expires_at, last_updated_at
		) VALUES (
			:id, :amount, :currency, :method, :state,
			:gateway_reference, :created_at, :expires_at, :last_updated_at
		)
		ON CONFLICT (id) DO NOTHING
	`, txn)

	if err != nil {
		return fmt.Errorf("failed to archive transaction: %w", err)
	}

	return nil
}

package usecase

import (
	"context"
	"time"

	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
)

// archiveTimeout bounds the background archive+publish work kicked off after
// a terminal transition; it is detached from the request context on purpose
// so a closed webhook connection cannot cancel it.
const archiveTimeout = 30 * time.Second

// GetStatus returns the current state of a transaction. The query itself is
// read-only: it never changes state or LastUpdatedAt.
func (uc *PaymentUC) GetStatus(ctx context.Context, id string) (*models.StatusResponse, error) {
	txn, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.StatusResponse{
		TransactionID: txn.ID,
		State:         txn.State,
	}, nil
}

// expire is the scheduler callback. It races webhook ingest by design: the
// store's guarded transition decides the winner and the loser is a no-op.
func (uc *PaymentUC) expire(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	applied, txn, err := uc.repo.Transition(ctx, id, models.StateExpired)
	if err != nil {
		logger.Warn("Expiry transition failed",
			logger.String("transaction_id", id),
			logger.Err(err))
		return
	}

	if !applied {
		logger.Debug("Expiry fired on settled transaction",
			logger.String("transaction_id", id),
			logger.String("state", string(txn.State)))
		return
	}

	logger.Info("Transaction expired",
		logger.String("transaction_id", id),
		logger.String("method", string(txn.Method)))

	uc.afterTransition(ctx, txn, "expiry")
}

// afterTransition runs the side effects of an applied transition: the armed
// deadline is released, the status event published and, for terminal states,
// the transaction archived. All of it is best-effort; the state change itself
// has already committed.
func (uc *PaymentUC) afterTransition(ctx context.Context, txn *models.Transaction, source string) {
	if txn.State.IsTerminal() {
		uc.sched.Cancel(txn.ID)
	}

	event := &models.PaymentStatusEvent{
		TransactionID:    txn.ID,
		State:            txn.State,
		Method:           txn.Method,
		Amount:           txn.Amount,
		Currency:         txn.Currency,
		GatewayReference: txn.GatewayReference,
		Source:           source,
		Timestamp:        models.Now(),
	}
	if err := uc.gw.PublishPaymentStatus(ctx, event); err != nil {
		logger.Warn("Failed to publish payment status event",
			logger.String("transaction_id", txn.ID),
			logger.String("state", string(txn.State)),
			logger.Err(err))
	}

	if txn.State.IsTerminal() && uc.archive != nil {
		archived := *txn
		err := uc.retrier.Execute(ctx, func(ctx context.Context) error {
			return uc.breaker.Execute(ctx, func(ctx context.Context) error {
				return uc.archive.ArchiveTransaction(ctx, &archived)
			})
		})
		if err != nil {
			logger.Error("Failed to archive terminal transaction",
				logger.String("transaction_id", txn.ID),
				logger.Err(err))
		}
	}
}

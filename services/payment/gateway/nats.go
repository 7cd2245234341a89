package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/danakita/danakita/internal/pkg/constants"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
	natspkg "github.com/danakita/danakita/internal/pkg/nats"
	"github.com/danakita/danakita/services/payment"
)

// PaymentGW publishes payment lifecycle events to NATS
type PaymentGW struct {
	natsClient *natspkg.Client
}

// NewPaymentGW creates a new payment gateway
func NewPaymentGW(natsClient *natspkg.Client) payment.PaymentGW {
	return &PaymentGW{
		natsClient: natsClient,
	}
}

// PublishDonationCreated publishes a donation created event
func (g *PaymentGW) PublishDonationCreated(ctx context.Context, event *models.DonationCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal donation created event: %w", err)
	}

	if err := g.natsClient.Publish(constants.SubjectDonationCreated, data); err != nil {
		return fmt.Errorf("failed to publish donation created event: %w", err)
	}

	logger.Debug("Published donation created event",
		logger.String("transaction_id", event.TransactionID),
		logger.String("method", string(event.Method)))

	return nil
}

// PublishPaymentStatus publishes a payment status event on the subject
// matching the new state
func (g *PaymentGW) PublishPaymentStatus(ctx context.Context, event *models.PaymentStatusEvent) error {
	subject := statusSubject(event.State)
	if subject == "" {
		// Non-terminal states (processing) have no downstream consumers
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal payment status event: %w", err)
	}

	if err := g.natsClient.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish payment status event: %w", err)
	}

	logger.Debug("Published payment status event",
		logger.String("transaction_id", event.TransactionID),
		logger.String("state", string(event.State)),
		logger.String("source", event.Source))

	return nil
}

func statusSubject(state models.TransactionState) string {
	switch state {
	case models.StateCompleted:
		return constants.SubjectPaymentCompleted
	case models.StateFailed:
		return constants.SubjectPaymentFailed
	case models.StateExpired:
		return constants.SubjectPaymentExpired
	case models.StateCancelled:
		return constants.SubjectPaymentCancelled
	}
	return ""
}

package payment

import (
	"context"

	"github.com/danakita/danakita/internal/pkg/models"
)

// PaymentGW publishes payment lifecycle events for downstream consumers
// (notification, reporting). Publishing is best-effort from the caller's
// point of view; it never gates the payment flow.
type PaymentGW interface {
	PublishDonationCreated(ctx context.Context, event *models.DonationCreatedEvent) error
	PublishPaymentStatus(ctx context.Context, event *models.PaymentStatusEvent) error
}

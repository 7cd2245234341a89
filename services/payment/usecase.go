package payment

import (
	"context"

	"github.com/danakita/danakita/internal/pkg/models"
)

// PaymentUC defines the payment lifecycle operations exposed to handlers
type PaymentUC interface {
	// CreateDonation validates donor input, builds method-specific payment
	// instructions, stores the pending transaction and arms its expiry.
	CreateDonation(ctx context.Context, req *models.DonationRequest) (*models.DonationResponse, error)

	// GetStatus returns the current state of a transaction
	GetStatus(ctx context.Context, id string) (*models.StatusResponse, error)

	// IngestWebhook verifies, parses and applies a gateway callback.
	// Duplicate and stale deliveries are acknowledged without mutation.
	IngestWebhook(ctx context.Context, gateway string, payload []byte, signature string) (*models.AckResult, error)
}

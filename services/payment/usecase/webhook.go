package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
)

// gatewayAdapter normalizes one gateway's callbacks: it knows the signature
// scheme, the native payload shape and the status vocabulary.
type gatewayAdapter interface {
	Name() string
	Verify(payload []byte, signature string) error
	Parse(payload []byte) (*models.WebhookEvent, error)
}

func buildGatewayAdapters(cfg *models.GatewaysConfig) map[string]gatewayAdapter {
	adapters := map[string]gatewayAdapter{}
	for _, a := range []gatewayAdapter{
		&midtransAdapter{serverKey: cfg.MidtransServerKey},
		&xenditAdapter{callbackToken: cfg.XenditCallbackToken},
		&dokuAdapter{secretKey: cfg.DokuSecretKey},
	} {
		adapters[a.Name()] = a
	}
	return adapters
}

// IngestWebhook verifies, parses and applies a gateway callback. A transition
// rejected because the transaction is already terminal is still acknowledged
// with success: gateways deliver at-least-once and must not be told to retry.
func (uc *PaymentUC) IngestWebhook(ctx context.Context, gateway string, payload []byte, signature string) (*models.AckResult, error) {
	adapter, ok := uc.adapters[gateway]
	if !ok {
		return nil, pkgerrors.ErrUnknownGateway
	}

	if err := adapter.Verify(payload, signature); err != nil {
		logger.Warn("Webhook signature verification failed",
			logger.String("gateway", gateway),
			logger.Err(err))
		return nil, pkgerrors.ErrSignatureInvalid
	}

	event, err := adapter.Parse(payload)
	if err != nil {
		return nil, pkgerrors.NewValidationError("payload", err.Error())
	}
	if event.TransactionID == "" {
		return nil, pkgerrors.ErrNotFound
	}

	applied, txn, err := uc.repo.Transition(ctx, event.TransactionID, event.MappedState)
	if err != nil {
		return nil, err
	}

	if !applied {
		// Stale or duplicate delivery; logged for observability, never raised.
		logger.Info("Webhook transition ignored",
			logger.String("gateway", gateway),
			logger.String("transaction_id", event.TransactionID),
			logger.String("current_state", string(txn.State)),
			logger.String("requested_state", string(event.MappedState)),
			logger.String("raw_status", event.RawStatus))
		return &models.AckResult{Applied: false, State: txn.State}, nil
	}

	logger.Info("Webhook transition applied",
		logger.String("gateway", gateway),
		logger.String("transaction_id", txn.ID),
		logger.String("state", string(txn.State)),
		logger.String("raw_status", event.RawStatus))

	uc.afterTransition(ctx, txn, "webhook:"+gateway)

	return &models.AckResult{Applied: true, State: txn.State}, nil
}

// midtransAdapter verifies HMAC-SHA512 signatures over the raw body
type midtransAdapter struct {
	serverKey string
}

func (a *midtransAdapter) Name() string { return "midtrans" }

func (a *midtransAdapter) Verify(payload []byte, signature string) error {
	return verifyHMAC(payload, signature, a.serverKey, "sha512")
}

func (a *midtransAdapter) Parse(payload []byte) (*models.WebhookEvent, error) {
	var notification models.MidtransNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return nil, fmt.Errorf("invalid midtrans payload: %w", err)
	}

	var state models.TransactionState
	switch notification.TransactionStatus {
	case "settlement", "capture":
		state = models.StateCompleted
	case "pending":
		state = models.StateProcessing
	case "deny":
		state = models.StateFailed
	case "cancel":
		state = models.StateCancelled
	case "expire":
		state = models.StateExpired
	default:
		return nil, fmt.Errorf("unknown midtrans transaction_status %q", notification.TransactionStatus)
	}

	return &models.WebhookEvent{
		Gateway:       a.Name(),
		TransactionID: notification.OrderID,
		MappedState:   state,
		RawStatus:     notification.TransactionStatus,
	}, nil
}

// xenditAdapter verifies the static callback token header
type xenditAdapter struct {
	callbackToken string
}

func (a *xenditAdapter) Name() string { return "xendit" }

func (a *xenditAdapter) Verify(payload []byte, signature string) error {
	if a.callbackToken == "" {
		return fmt.Errorf("xendit callback token not configured")
	}
	if subtle.ConstantTimeCompare([]byte(signature), []byte(a.callbackToken)) != 1 {
		return fmt.Errorf("callback token mismatch")
	}
	return nil
}

func (a *xenditAdapter) Parse(payload []byte) (*models.WebhookEvent, error) {
	var callback models.XenditCallback
	if err := json.Unmarshal(payload, &callback); err != nil {
		return nil, fmt.Errorf("invalid xendit payload: %w", err)
	}

	var state models.TransactionState
	switch callback.Status {
	case "PAID", "SETTLED":
		state = models.StateCompleted
	case "EXPIRED":
		state = models.StateExpired
	case "FAILED":
		state = models.StateFailed
	case "PENDING":
		state = models.StateProcessing
	default:
		return nil, fmt.Errorf("unknown xendit status %q", callback.Status)
	}

	return &models.WebhookEvent{
		Gateway:       a.Name(),
		TransactionID: callback.ExternalID,
		MappedState:   state,
		RawStatus:     callback.Status,
	}, nil
}

// dokuAdapter verifies HMAC-SHA256 signatures over the raw body
type dokuAdapter struct {
	secretKey string
}

func (a *dokuAdapter) Name() string { return "doku" }

func (a *dokuAdapter) Verify(payload []byte, signature string) error {
	return verifyHMAC(payload, signature, a.secretKey, "sha256")
}

func (a *dokuAdapter) Parse(payload []byte) (*models.WebhookEvent, error) {
	var notification models.DokuNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return nil, fmt.Errorf("invalid doku payload: %w", err)
	}

	var state models.TransactionState
	switch notification.Transaction.Status {
	case "SUCCESS":
		state = models.StateCompleted
	case "FAILED":
		state = models.StateFailed
	case "CANCELED":
		state = models.StateCancelled
	case "EXPIRED":
		state = models.StateExpired
	default:
		return nil, fmt.Errorf("unknown doku transaction status %q", notification.Transaction.Status)
	}

	return &models.WebhookEvent{
		Gateway:       a.Name(),
		TransactionID: notification.Order.InvoiceNumber,
		MappedState:   state,
		RawStatus:     notification.Transaction.Status,
	}, nil
}

func verifyHMAC(payload []byte, signature, secret, algorithm string) error {
	if secret == "" {
		return fmt.Errorf("gateway secret not configured")
	}
	if signature == "" {
		return fmt.Errorf("signature header missing")
	}

	var mac []byte
	switch algorithm {
	case "sha512":
		h := hmac.New(sha512.New, []byte(secret))
		h.Write(payload)
		mac = h.Sum(nil)
	default:
		h := hmac.New(sha256.New, []byte(secret))
		h.Write(payload)
		mac = h.Sum(nil)
	}

	expected := hex.EncodeToString(mac)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

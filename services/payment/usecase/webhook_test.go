package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/services/payment/mocks"
)

func signSHA512(payload []byte, key string) string {
	h := hmac.New(sha512.New, []byte(key))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func signSHA256(payload []byte, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func appliedTxn(id string, state models.TransactionState) *models.Transaction {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Transaction{
		ID:               id,
		Amount:           50.00,
		Currency:         "IDR",
		Method:           models.MethodWalletPush,
		State:            state,
		GatewayReference: "123456789",
		CreatedAt:        now,
		LastUpdatedAt:    now,
	}
}

func TestIngestWebhook_MidtransSettlement(t *testing.T) {
	// Arrange
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"order_id":"txn-1","transaction_status":"settlement","gross_amount":"50.00"}`)
	signature := signSHA512(payload, "midtrans-server-key")

	f.repo.EXPECT().
		Transition(gomock.Any(), "txn-1", models.StateCompleted).
		Return(true, appliedTxn("txn-1", models.StateCompleted), nil)
	f.gw.EXPECT().
		PublishPaymentStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *models.PaymentStatusEvent) error {
			assert.Equal(t, "txn-1", event.TransactionID)
			assert.Equal(t, models.StateCompleted, event.State)
			assert.Equal(t, "webhook:midtrans", event.Source)
			return nil
		})

	// Act
	ack, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.Applied)
	assert.Equal(t, models.StateCompleted, ack.State)
	assert.Contains(t, f.sched.cancelled, "txn-1")
}

func TestIngestWebhook_MidtransStatusMapping(t *testing.T) {
	tests := []struct {
		rawStatus string
		expected  models.TransactionState
	}{
		{"settlement", models.StateCompleted},
		{"capture", models.StateCompleted},
		{"pending", models.StateProcessing},
		{"deny", models.StateFailed},
		{"cancel", models.StateCancelled},
		{"expire", models.StateExpired},
	}

	for _, tt := range tests {
		t.Run(tt.rawStatus, func(t *testing.T) {
			f := newUCFixture(t, testConfig())

			payload := []byte(fmt.Sprintf(`{"order_id":"txn-1","transaction_status":%q}`, tt.rawStatus))
			signature := signSHA512(payload, "midtrans-server-key")

			f.repo.EXPECT().
				Transition(gomock.Any(), "txn-1", tt.expected).
				Return(true, appliedTxn("txn-1", tt.expected), nil)
			f.gw.EXPECT().PublishPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)

			ack, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ack.State)
		})
	}
}

func TestIngestWebhook_MidtransInvalidSignature(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"order_id":"txn-1","transaction_status":"settlement"}`)

	_, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signSHA512(payload, "wrong-key"))
	assert.ErrorIs(t, err, pkgerrors.ErrSignatureInvalid)

	_, err = f.uc.IngestWebhook(context.Background(), "midtrans", payload, "")
	assert.ErrorIs(t, err, pkgerrors.ErrSignatureInvalid)
}

func TestIngestWebhook_XenditPaid(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"external_id":"txn-2","status":"PAID","amount":50}`)

	f.repo.EXPECT().
		Transition(gomock.Any(), "txn-2", models.StateCompleted).
		Return(true, appliedTxn("txn-2", models.StateCompleted), nil)
	f.gw.EXPECT().PublishPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)

	ack, err := f.uc.IngestWebhook(context.Background(), "xendit", payload, "xendit-callback-token")

	require.NoError(t, err)
	assert.True(t, ack.Applied)
}

func TestIngestWebhook_XenditTokenMismatch(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"external_id":"txn-2","status":"PAID"}`)

	_, err := f.uc.IngestWebhook(context.Background(), "xendit", payload, "forged-token")

	assert.ErrorIs(t, err, pkgerrors.ErrSignatureInvalid)
}

func TestIngestWebhook_DokuSuccess(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"order":{"invoice_number":"txn-3"},"transaction":{"status":"SUCCESS"}}`)
	signature := signSHA256(payload, "doku-secret-key")

	f.repo.EXPECT().
		Transition(gomock.Any(), "txn-3", models.StateCompleted).
		Return(true, appliedTxn("txn-3", models.StateCompleted), nil)
	f.gw.EXPECT().PublishPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)

	ack, err := f.uc.IngestWebhook(context.Background(), "doku", payload, signature)

	require.NoError(t, err)
	assert.True(t, ack.Applied)
	assert.Equal(t, models.StateCompleted, ack.State)
}

func TestIngestWebhook_UnknownGateway(t *testing.T) {
	f := newUCFixture(t, testConfig())

	_, err := f.uc.IngestWebhook(context.Background(), "stripe", []byte(`{}`), "sig")

	assert.ErrorIs(t, err, pkgerrors.ErrUnknownGateway)
}

func TestIngestWebhook_UnknownStatusVocabulary(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"order_id":"txn-1","transaction_status":"refund"}`)
	signature := signSHA512(payload, "midtrans-server-key")

	_, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestIngestWebhook_MalformedPayload(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`not-json`)
	signature := signSHA512(payload, "midtrans-server-key")

	_, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestIngestWebhook_MissingTransactionID(t *testing.T) {
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"transaction_status":"settlement"}`)
	signature := signSHA512(payload, "midtrans-server-key")

	_, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

func TestIngestWebhook_StaleDeliveryAcknowledged(t *testing.T) {
	// A webhook arriving after expiry won fails the transition but is still
	// acknowledged, so the gateway stops retrying.
	f := newUCFixture(t, testConfig())

	payload := []byte(`{"order_id":"txn-1","transaction_status":"settlement"}`)
	signature := signSHA512(payload, "midtrans-server-key")

	f.repo.EXPECT().
		Transition(gomock.Any(), "txn-1", models.StateCompleted).
		Return(false, appliedTxn("txn-1", models.StateExpired), nil)

	ack, err := f.uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	require.NoError(t, err)
	assert.False(t, ack.Applied)
	assert.Equal(t, models.StateExpired, ack.State)
	assert.Empty(t, f.sched.cancelled)
}

func TestIngestWebhook_TerminalTransitionArchives(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTransactionRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)
	archive := mocks.NewMockArchiveRepo(ctrl)
	sched := newStubScheduler()

	uc := NewPaymentUC(testConfig(), repo, archive, gw, sched, logger.NewNopLogger())

	payload := []byte(`{"order_id":"txn-1","transaction_status":"settlement"}`)
	signature := signSHA512(payload, "midtrans-server-key")

	repo.EXPECT().
		Transition(gomock.Any(), "txn-1", models.StateCompleted).
		Return(true, appliedTxn("txn-1", models.StateCompleted), nil)
	gw.EXPECT().PublishPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)
	archive.EXPECT().
		ArchiveTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txn *models.Transaction) error {
			assert.Equal(t, "txn-1", txn.ID)
			assert.Equal(t, models.StateCompleted, txn.State)
			return nil
		})

	// Act
	ack, err := uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	// Assert
	require.NoError(t, err)
	assert.True(t, ack.Applied)
}

func TestIngestWebhook_ProcessingTransitionSkipsArchive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockTransactionRepo(ctrl)
	gw := mocks.NewMockPaymentGW(ctrl)
	archive := mocks.NewMockArchiveRepo(ctrl)
	sched := newStubScheduler()

	uc := NewPaymentUC(testConfig(), repo, archive, gw, sched, logger.NewNopLogger())

	payload := []byte(`{"order_id":"txn-1","transaction_status":"pending"}`)
	signature := signSHA512(payload, "midtrans-server-key")

	// No ArchiveTransaction expectation: processing is not terminal
	repo.EXPECT().
		Transition(gomock.Any(), "txn-1", models.StateProcessing).
		Return(true, appliedTxn("txn-1", models.StateProcessing), nil)
	gw.EXPECT().PublishPaymentStatus(gomock.Any(), gomock.Any()).Return(nil)

	ack, err := uc.IngestWebhook(context.Background(), "midtrans", payload, signature)

	require.NoError(t, err)
	assert.True(t, ack.Applied)
	assert.Empty(t, sched.cancelled)
}

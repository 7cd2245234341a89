package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	pkgerrors "github.com/danakita/danakita/internal/pkg/errors"
	"github.com/danakita/danakita/internal/pkg/logger"
	"github.com/danakita/danakita/internal/pkg/models"
	"github.com/danakita/danakita/internal/utils"
)

const (
	walletReferenceLength = 9
	qrImageSize           = 256

	minBankReferenceLength = 9
	maxBankReferenceLength = 16
)

// CreateDonation validates donor input, builds method-specific payment
// instructions, stores the pending transaction and arms its expiry deadline.
// All validation and gateway artifacts are produced before the transaction is
// created, so invalid input never leaves an orphaned transaction behind.
func (uc *PaymentUC) CreateDonation(ctx context.Context, req *models.DonationRequest) (*models.DonationResponse, error) {
	if req.Amount <= 0 {
		return nil, pkgerrors.NewValidationError("amount", "must be positive")
	}
	if !req.Method.IsValid() {
		return nil, pkgerrors.NewValidationError("method", fmt.Sprintf("unsupported payment method %q", req.Method))
	}
	currency := req.Currency
	if currency == "" {
		currency = uc.cfg.Payment.Currency
	}

	transactionID := uuid.New().String()

	instructions, gatewayRef, err := uc.buildInstructions(transactionID, req, currency)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:               transactionID,
		Amount:           req.Amount,
		Currency:         currency,
		Method:           req.Method,
		GatewayReference: gatewayRef,
	}
	if err := uc.repo.Create(ctx, txn); err != nil {
		return nil, err
	}

	if !txn.ExpiresAt.IsZero() {
		expiresAt := txn.ExpiresAt
		instructions.ExpiresAt = &expiresAt
		uc.sched.Arm(txn.ID, expiresAt, func() {
			uc.expire(txn.ID)
		})
	}

	event := &models.DonationCreatedEvent{
		TransactionID: txn.ID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Method:        txn.Method,
		ExpiresAt:     instructions.ExpiresAt,
		Timestamp:     models.Now(),
	}
	if err := uc.gw.PublishDonationCreated(ctx, event); err != nil {
		// Event consumers are downstream conveniences; the donation itself
		// succeeded.
		logger.Warn("Failed to publish donation created event",
			logger.String("transaction_id", txn.ID),
			logger.Err(err))
	}

	logger.Info("Donation transaction created",
		logger.String("transaction_id", txn.ID),
		logger.String("method", string(txn.Method)),
		logger.Float64("amount", txn.Amount),
		logger.String("currency", txn.Currency))

	return &models.DonationResponse{
		TransactionID: txn.ID,
		State:         models.StatePending,
		Instructions:  instructions,
	}, nil
}

// buildInstructions dispatches to the method-specific builder. The switch is
// exhaustive over the closed method set; IsValid ran before it.
func (uc *PaymentUC) buildInstructions(transactionID string, req *models.DonationRequest, currency string) (*models.PaymentInstructions, string, error) {
	switch req.Method {
	case models.MethodWalletPush:
		return uc.buildWalletPushInstructions(transactionID, req, currency)
	case models.MethodBankReference:
		return uc.buildBankReferenceInstructions()
	case models.MethodQRInstant:
		return uc.buildQRInstantInstructions(transactionID, req, currency)
	case models.MethodCard:
		return uc.buildCardInstructions()
	}
	return nil, "", pkgerrors.NewValidationError("method", fmt.Sprintf("unsupported payment method %q", req.Method))
}

// walletQRPayload is the QR-encodable payload a wallet app scans to initiate
// the push payment
type walletQRPayload struct {
	MerchantID    string  `json:"merchant_id"`
	Reference     string  `json:"reference"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	PhoneNumber   string  `json:"phone_number"`
	Description   string  `json:"description,omitempty"`
	TransactionID string  `json:"transaction_id"`
}

func (uc *PaymentUC) buildWalletPushInstructions(transactionID string, req *models.DonationRequest, currency string) (*models.PaymentInstructions, string, error) {
	if req.PhoneNumber == "" {
		return nil, "", pkgerrors.NewValidationError("phone_number", "is required for wallet_push")
	}
	valid, msisdn, err := utils.ValidateMSISDN(req.PhoneNumber)
	if !valid || err != nil {
		return nil, "", pkgerrors.NewValidationError("phone_number", "is not a valid wallet phone number")
	}

	reference, err := utils.GenerateNumericReference(walletReferenceLength)
	if err != nil {
		return nil, "", pkgerrors.NewGatewayError("wallet", err)
	}

	payload := walletQRPayload{
		MerchantID:    uc.cfg.Payment.MerchantID,
		Reference:     reference,
		Amount:        req.Amount,
		Currency:      currency,
		PhoneNumber:   msisdn,
		Description:   req.Description,
		TransactionID: transactionID,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, "", pkgerrors.NewGatewayError("wallet", err)
	}

	qrImage, err := encodeQRImage(string(payloadJSON))
	if err != nil {
		return nil, "", pkgerrors.NewGatewayError("wallet", err)
	}

	return &models.PaymentInstructions{
		Method:           models.MethodWalletPush,
		PhoneNumber:      msisdn,
		NumericReference: reference,
		QRPayload:        string(payloadJSON),
		QRImage:          qrImage,
	}, reference, nil
}

func (uc *PaymentUC) buildBankReferenceInstructions() (*models.PaymentInstructions, string, error) {
	length := uc.cfg.Payment.ReferenceLength
	if length < minBankReferenceLength {
		length = minBankReferenceLength
	} else if length > maxBankReferenceLength {
		length = maxBankReferenceLength
	}

	reference, err := utils.GenerateNumericReference(length)
	if err != nil {
		return nil, "", pkgerrors.NewGatewayError("bank", err)
	}

	return &models.PaymentInstructions{
		Method:          models.MethodBankReference,
		EntityCode:      uc.cfg.Payment.EntityCode,
		ReferenceNumber: reference,
	}, reference, nil
}

func (uc *PaymentUC) buildQRInstantInstructions(transactionID string, req *models.DonationRequest, currency string) (*models.PaymentInstructions, string, error) {
	payeeKey := uc.cfg.Payment.QRISPayeeKey
	if payeeKey == "" {
		return nil, "", pkgerrors.NewValidationError("payee_key", "no QRIS payee key configured on the receiving account")
	}

	reference, err := utils.GenerateNumericReference(12)
	if err != nil {
		return nil, "", pkgerrors.NewGatewayError("qris", err)
	}

	payload := buildQRISPayload(qrisParams{
		PayeeKey:     payeeKey,
		MerchantID:   uc.cfg.Payment.MerchantID,
		MerchantName: uc.cfg.Payment.MerchantName,
		Amount:       req.Amount,
		Currency:     currency,
		Reference:    reference,
	})

	qrImage, err := encodeQRImage(payload)
	if err != nil {
		return nil, "", pkgerrors.NewGatewayError("qris", err)
	}

	return &models.PaymentInstructions{
		Method:    models.MethodQRInstant,
		PayeeKey:  payeeKey,
		QRPayload: payload,
		QRImage:   qrImage,
	}, reference, nil
}

func (uc *PaymentUC) buildCardInstructions() (*models.PaymentInstructions, string, error) {
	// The card gateway owns the payment session; we only hand the client an
	// opaque token to continue there. No local TTL is enforced.
	token := uuid.New().String()

	return &models.PaymentInstructions{
		Method:       models.MethodCard,
		HandoffToken: token,
	}, token, nil
}

func encodeQRImage(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

type qrisParams struct {
	PayeeKey     string
	MerchantID   string
	MerchantName string
	Amount       float64
	Currency     string
	Reference    string
}

// buildQRISPayload assembles an EMVCo-style TLV payload for an instant QR
// payment. Numeric currency defaults to IDR (360).
func buildQRISPayload(p qrisParams) string {
	currencyCode := "360"
	if p.Currency == "EUR" {
		currencyCode = "978"
	} else if p.Currency == "USD" {
		currencyCode = "840"
	}

	merchantInfo := emvField("00", "ID.CO.QRIS.WWW") +
		emvField("01", p.PayeeKey) +
		emvField("02", p.MerchantID)

	payload := emvField("00", "01") + // payload format indicator
		emvField("01", "12") + // dynamic QR
		emvField("26", merchantInfo) +
		emvField("52", "0000") +
		emvField("53", currencyCode) +
		emvField("54", strconv.FormatFloat(p.Amount, 'f', 2, 64)) +
		emvField("58", "ID") +
		emvField("59", p.MerchantName) +
		emvField("62", emvField("01", p.Reference))

	payload += "6304"
	payload += fmt.Sprintf("%04X", crc16CCITT([]byte(payload)))
	return payload
}

func emvField(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// crc16CCITT computes CRC-16/CCITT-FALSE, the checksum EMV QR payloads carry
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

package models

import (
	"time"
)

// DonationRequest represents a request to create a donation payment
type DonationRequest struct {
	Amount      float64       `json:"amount"`
	Currency    string        `json:"currency"`
	Method      PaymentMethod `json:"method"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	Description string        `json:"description,omitempty"`
}

// DonationResponse is returned to the donor's client after creation
type DonationResponse struct {
	TransactionID string               `json:"transaction_id"`
	State         TransactionState     `json:"state"`
	Instructions  *PaymentInstructions `json:"instructions"`
}

// PaymentInstructions carries the method-specific artifacts a donor needs to
// complete the payment. Only the fields relevant to the chosen method are set.
type PaymentInstructions struct {
	Method PaymentMethod `json:"method"`

	// wallet_push
	PhoneNumber      string `json:"phone_number,omitempty"`
	NumericReference string `json:"numeric_reference,omitempty"`

	// bank_reference
	EntityCode      string `json:"entity_code,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`

	// qr_instant
	PayeeKey string `json:"payee_key,omitempty"`

	// wallet_push and qr_instant
	QRPayload string `json:"qr_payload,omitempty"`
	QRImage   string `json:"qr_image,omitempty"` // base64-encoded PNG

	// card
	HandoffToken string `json:"handoff_token,omitempty"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// StatusResponse is the payload of the status query endpoint
type StatusResponse struct {
	TransactionID string           `json:"transaction_id"`
	State         TransactionState `json:"state"`
}

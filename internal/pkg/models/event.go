package models

import (
	"time"
)

// DonationCreatedEvent is published when a transaction is created and
// instructions have been issued to the donor
type DonationCreatedEvent struct {
	TransactionID string        `json:"transaction_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"method"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// PaymentStatusEvent is published when a transaction reaches a new state
// through webhook ingest or expiry
type PaymentStatusEvent struct {
	TransactionID    string           `json:"transaction_id"`
	State            TransactionState `json:"state"`
	Method           PaymentMethod    `json:"method"`
	Amount           float64          `json:"amount"`
	Currency         string           `json:"currency"`
	GatewayReference string           `json:"gateway_reference"`
	Source           string           `json:"source"` // "webhook:<gateway>" or "expiry"
	Timestamp        time.Time        `json:"timestamp"`
}

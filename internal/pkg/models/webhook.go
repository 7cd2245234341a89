package models

// WebhookEvent is a gateway callback normalized into the internal vocabulary.
// Adapters produce one of these from the gateway's native payload shape;
// everything downstream of parsing is gateway-agnostic.
type WebhookEvent struct {
	Gateway       string           `json:"gateway"`
	TransactionID string           `json:"transaction_id"`
	MappedState   TransactionState `json:"mapped_state"`
	RawStatus     string           `json:"raw_status"`
}

// AckResult reports the outcome of ingesting a webhook. Applied is false for
// duplicate or stale deliveries; the gateway is still acknowledged with
// success so it does not retry.
type AckResult struct {
	Applied bool             `json:"applied"`
	State   TransactionState `json:"state"`
}

// MidtransNotification is the native midtrans callback payload
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
}

// XenditCallback is the native xendit callback payload
type XenditCallback struct {
	ExternalID string  `json:"external_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	PaidAt     string  `json:"paid_at,omitempty"`
}

// DokuNotification is the native doku callback payload
type DokuNotification struct {
	Order struct {
		InvoiceNumber string `json:"invoice_number"`
	} `json:"order"`
	Transaction struct {
		Status string `json:"status"`
		Date   string `json:"date"`
	} `json:"transaction"`
}

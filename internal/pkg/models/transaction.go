package models

import (
	"time"
)

// PaymentMethod identifies the rail a donor pays through
type PaymentMethod string

const (
	MethodWalletPush    PaymentMethod = "wallet_push"
	MethodBankReference PaymentMethod = "bank_reference"
	MethodQRInstant     PaymentMethod = "qr_instant"
	MethodCard          PaymentMethod = "card"
)

// IsValid reports whether the method belongs to the supported set
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodWalletPush, MethodBankReference, MethodQRInstant, MethodCard:
		return true
	}
	return false
}

// TransactionState represents the lifecycle state of a payment transaction
type TransactionState string

const (
	StatePending    TransactionState = "pending"
	StateProcessing TransactionState = "processing"
	StateCompleted  TransactionState = "completed"
	StateFailed     TransactionState = "failed"
	StateExpired    TransactionState = "expired"
	StateCancelled  TransactionState = "cancelled"
)

// IsTerminal reports whether no further transition may leave the state
func (s TransactionState) IsTerminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateExpired, StateCancelled:
		return true
	}
	return false
}

// transitionEdges defines every permitted state transition. Terminal states
// have no outgoing edges; a transition attempt out of one is a guarded no-op,
// never an error, so duplicate gateway signals stay idempotent.
var transitionEdges = map[TransactionState][]TransactionState{
	StatePending:    {StateProcessing, StateCompleted, StateFailed, StateExpired, StateCancelled},
	StateProcessing: {StateCompleted, StateFailed, StateExpired},
}

// CanTransition reports whether the edge from -> to is permitted
func CanTransition(from, to TransactionState) bool {
	for _, next := range transitionEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// MethodTTL returns the method-specific time-to-live for an unresolved
// transaction. Card returns zero: the gateway owns card session expiry and
// no local deadline is armed.
func MethodTTL(method PaymentMethod) time.Duration {
	switch method {
	case MethodWalletPush:
		return 5 * time.Minute
	case MethodBankReference:
		return 30 * time.Minute
	case MethodQRInstant:
		return 24 * time.Hour
	case MethodCard:
		return 0
	}
	return 0
}

// Transaction is the unit of payment work. One transaction exists per
// donation attempt; the donation record itself lives with the external
// persistence collaborator and references the transaction by id.
type Transaction struct {
	ID               string           `json:"id" db:"id"`
	Amount           float64          `json:"amount" db:"amount"`
	Currency         string           `json:"currency" db:"currency"`
	Method           PaymentMethod    `json:"method" db:"method"`
	State            TransactionState `json:"state" db:"state"`
	GatewayReference string           `json:"gateway_reference" db:"gateway_reference"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	ExpiresAt        time.Time        `json:"expires_at" db:"expires_at"`
	LastUpdatedAt    time.Time        `json:"last_updated_at" db:"last_updated_at"`
}

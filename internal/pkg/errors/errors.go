// Package errors defines the domain error taxonomy of the payment core.
// Handlers map these onto HTTP statuses; nothing below the handler layer
// knows about status codes.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an unknown transaction id
	ErrNotFound = errors.New("transaction not found")
	// ErrSignatureInvalid marks a webhook signature verification failure
	ErrSignatureInvalid = errors.New("webhook signature invalid")
	// ErrUnknownGateway marks a webhook for a gateway we have no adapter for
	ErrUnknownGateway = errors.New("unknown payment gateway")
)

// ValidationError marks malformed or missing input at donation creation.
// It always surfaces before any transaction is created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GatewayError marks a failure to obtain method-specific artifacts from a
// gateway-facing step (QR encoding, handoff token). The transaction is not
// created when one of these occurs.
type GatewayError struct {
	Gateway string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Gateway, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError wraps err as a GatewayError
func NewGatewayError(gateway string, err error) error {
	return &GatewayError{Gateway: gateway, Err: err}
}

// IsGateway reports whether err is a GatewayError
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// Is re-exports errors.Is so callers need a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports errors.As
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

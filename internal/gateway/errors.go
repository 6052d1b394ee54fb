package gateway

import "errors"

// Validation and lifecycle errors. Validation errors are caller misuse
// and are never retried.
var (
	ErrNilSession      = errors.New("payment session data is required")
	ErrMissingOrderID  = errors.New("payment session has no order id")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrMissingCurrency = errors.New("currency code is required")
	ErrNoCaptures      = errors.New("no captures available to refund")
	ErrSessionNotFound = errors.New("no processor record for payment session")
)

package httpapi

import (
	"errors"
	"net/http"

	"github.com/commercegate/paypal-gateway/internal/gateway"
	"github.com/commercegate/paypal-gateway/internal/paypal"
	apperrors "github.com/commercegate/paypal-gateway/internal/shared/errors"
)

// statusForError maps gateway and processor errors to HTTP status
// codes. Caller-misuse validation errors are 400s, missing processor
// records are 404s, and any processor-side failure surfaces as 502 so
// the framework can tell our bugs from the processor's.
func statusForError(err error) int {
	switch {
	case errors.Is(err, gateway.ErrNilSession),
		errors.Is(err, gateway.ErrMissingOrderID),
		errors.Is(err, gateway.ErrInvalidAmount),
		errors.Is(err, gateway.ErrMissingCurrency),
		errors.Is(err, gateway.ErrNoCaptures):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrSessionNotFound),
		errors.Is(err, paypal.ErrOrderNotFound):
		return http.StatusNotFound
	}

	var apiErr *paypal.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return apperrors.GetStatusCode(err)
}

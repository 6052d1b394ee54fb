// Package gateway owns the payment-session lifecycle against the
// processor: initiate, authorize/capture reconciliation, cancel, refund,
// status queries and webhook translation. The hosting framework persists
// the session data this package returns and passes it back on the next
// lifecycle step; nothing is stored here.
package gateway

import (
	"time"

	"github.com/commercegate/paypal-gateway/internal/paypal"
)

// Status is a framework-recognized payment session state. The adapter
// never emits a status outside this set.
type Status string

const (
	StatusNotInitiated Status = "not_initiated"
	StatusPending      Status = "pending"
	StatusAuthorized   Status = "authorized"
	StatusCaptured     Status = "captured"
	StatusCanceled     Status = "canceled"
)

// Valid reports whether s is one of the recognized states.
func (s Status) Valid() bool {
	switch s {
	case StatusNotInitiated, StatusPending, StatusAuthorized, StatusCaptured, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether the session can still move forward.
func (s Status) IsTerminal() bool {
	return s == StatusCaptured || s == StatusCanceled
}

// SessionData is the opaque session bag round-tripped by the hosting
// framework. The session id is the processor order id.
type SessionData struct {
	ID            string                `json:"id"`
	Status        Status                `json:"status"`
	Amount        int64                 `json:"amount"`
	CurrencyCode  string                `json:"currency_code"`
	CorrelationID string                `json:"correlation_id,omitempty"`
	PurchaseUnits []paypal.PurchaseUnit `json:"purchaseUnits,omitempty"`
	Error         *Declined             `json:"error,omitempty"`
	CapturedAt    *time.Time            `json:"captured_at,omitempty"`
	CanceledAt    *time.Time            `json:"canceled_at,omitempty"`
}

// applyOrder refreshes the session with the latest order snapshot.
func (d *SessionData) applyOrder(order *paypal.Order) {
	d.ID = order.ID
	d.PurchaseUnits = order.PurchaseUnits
}

// completedCapture returns the session's completed capture, if any.
func (d *SessionData) completedCapture() *paypal.Capture {
	for i := range d.PurchaseUnits {
		payments := d.PurchaseUnits[i].Payments
		if payments == nil {
			continue
		}
		for j := range payments.Captures {
			if payments.Captures[j].Status == paypal.CaptureStatusCompleted {
				return &payments.Captures[j]
			}
		}
	}
	return nil
}

// captureIDs collects every capture id across the purchase units.
func (d *SessionData) captureIDs() []string {
	var ids []string
	for i := range d.PurchaseUnits {
		payments := d.PurchaseUnits[i].Payments
		if payments == nil {
			continue
		}
		for _, c := range payments.Captures {
			if c.ID != "" {
				ids = append(ids, c.ID)
			}
		}
	}
	return ids
}

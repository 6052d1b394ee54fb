package paypal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Order statuses reported by the processor.
const (
	OrderStatusCreated   = "CREATED"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCompleted = "COMPLETED"
)

// Capture statuses reported by the processor.
const (
	CaptureStatusCompleted = "COMPLETED"
	CaptureStatusDeclined  = "DECLINED"
	CaptureStatusPending   = "PENDING"
)

// Order intents.
const (
	IntentCapture   = "CAPTURE"
	IntentAuthorize = "AUTHORIZE"
)

// Amount is a currency amount in the processor's decimal string form.
type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// Name holds a payer or recipient name.
type Name struct {
	FullName string `json:"full_name,omitempty"`
}

// Address is a postal address in the processor's shape.
type Address struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AdminArea1   string `json:"admin_area_1,omitempty"`
	AdminArea2   string `json:"admin_area_2,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Shipping holds shipping details attached to a purchase unit.
type Shipping struct {
	Name    *Name    `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Item is a line item attached to a purchase unit.
type Item struct {
	Name       string  `json:"name"`
	Quantity   string  `json:"quantity"`
	UnitAmount *Amount `json:"unit_amount"`
	SKU        string  `json:"sku,omitempty"`
}

// ProcessorResponse carries card-network decline metadata on a capture.
type ProcessorResponse struct {
	AVSCode      string `json:"avs_code,omitempty"`
	CVVCode      string `json:"cvv_code,omitempty"`
	ResponseCode string `json:"response_code,omitempty"`
}

// Capture is a funds-movement event against a purchase unit.
type Capture struct {
	ID                string             `json:"id"`
	Status            string             `json:"status"`
	Amount            *Amount            `json:"amount,omitempty"`
	InvoiceID         string             `json:"invoice_id,omitempty"`
	ProcessorResponse *ProcessorResponse `json:"processor_response,omitempty"`
	CreateTime        string             `json:"create_time,omitempty"`
	UpdateTime        string             `json:"update_time,omitempty"`
}

// Payments groups the payment activity of a purchase unit.
type Payments struct {
	Captures []Capture `json:"captures,omitempty"`
}

// PurchaseUnit is the processor's per-item payment intent.
type PurchaseUnit struct {
	ReferenceID string    `json:"reference_id,omitempty"`
	CustomID    string    `json:"custom_id,omitempty"`
	Amount      *Amount   `json:"amount,omitempty"`
	Shipping    *Shipping `json:"shipping,omitempty"`
	Items       []Item    `json:"items,omitempty"`
	Payments    *Payments `json:"payments,omitempty"`
}

// Payer holds customer data attached to an order.
type Payer struct {
	EmailAddress string `json:"email_address,omitempty"`
}

// Order is the processor's top-level payment intent object.
type Order struct {
	ID            string         `json:"id"`
	Intent        string         `json:"intent,omitempty"`
	Status        string         `json:"status,omitempty"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`
	Payer         *Payer         `json:"payer,omitempty"`
	CreateTime    string         `json:"create_time,omitempty"`
	UpdateTime    string         `json:"update_time,omitempty"`
}

// CreateOrderRequest is the body for order creation.
type CreateOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	Payer         *Payer         `json:"payer,omitempty"`
}

// RefundRequest is the body for refunding a capture. A nil Amount
// refunds the full captured amount.
type RefundRequest struct {
	Amount      *Amount `json:"amount,omitempty"`
	InvoiceID   string  `json:"invoice_id,omitempty"`
	NoteToPayer string  `json:"note_to_payer,omitempty"`
}

// Refund is the processor's refund object.
type Refund struct {
	ID         string  `json:"id"`
	Status     string  `json:"status,omitempty"`
	Amount     *Amount `json:"amount,omitempty"`
	InvoiceID  string  `json:"invoice_id,omitempty"`
	CreateTime string  `json:"create_time,omitempty"`
}

// WebhookResource is the resource snapshot embedded in a webhook event.
type WebhookResource struct {
	ID       string  `json:"id,omitempty"`
	Status   string  `json:"status,omitempty"`
	CustomID string  `json:"custom_id,omitempty"`
	Amount   *Amount `json:"amount,omitempty"`
}

// WebhookEvent is an inbound processor notification.
type WebhookEvent struct {
	ID        string          `json:"id,omitempty"`
	EventType string          `json:"event_type"`
	Resource  WebhookResource `json:"resource"`
}

// Webhook event types the gateway reacts to.
const (
	EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
)

// Webhook verification statuses.
const (
	VerificationSuccess = "SUCCESS"
	VerificationFailure = "FAILURE"
)

// WebhookVerification is the result of a verify-webhook-signature call.
type WebhookVerification struct {
	VerificationStatus string `json:"verification_status"`
}

// verifyWebhookRequest is the body for verify-webhook-signature.
type verifyWebhookRequest struct {
	AuthAlgo         string          `json:"auth_algo"`
	CertURL          string          `json:"cert_url"`
	TransmissionID   string          `json:"transmission_id"`
	TransmissionSig  string          `json:"transmission_sig"`
	TransmissionTime string          `json:"transmission_time"`
	WebhookID        string          `json:"webhook_id"`
	WebhookEvent     json.RawMessage `json:"webhook_event"`
}

// ErrorDetail is one entry of a processor error payload.
type ErrorDetail struct {
	Field       string `json:"field,omitempty"`
	Issue       string `json:"issue,omitempty"`
	Description string `json:"description,omitempty"`
}

// APIError is a non-2xx response from the processor. Capture failures
// sometimes carry a purchase-unit snapshot with the declined capture's
// processor response attached.
type APIError struct {
	StatusCode    int            `json:"-"`
	Name          string         `json:"name,omitempty"`
	Message       string         `json:"message,omitempty"`
	DebugID       string         `json:"debug_id,omitempty"`
	Details       []ErrorDetail  `json:"details,omitempty"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "paypal: http %d", e.StatusCode)
	if e.Name != "" {
		fmt.Fprintf(&b, " %s", e.Name)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	for _, d := range e.Details {
		if d.Issue != "" {
			fmt.Fprintf(&b, " (%s)", d.Issue)
			break
		}
	}
	return b.String()
}

// DeclineDetail returns the processor response of the first declined
// capture embedded in the error payload, or nil if none is present.
func (e *APIError) DeclineDetail() *ProcessorResponse {
	for _, pu := range e.PurchaseUnits {
		if pu.Payments == nil {
			continue
		}
		for _, c := range pu.Payments.Captures {
			if c.ProcessorResponse != nil {
				return c.ProcessorResponse
			}
		}
	}
	return nil
}

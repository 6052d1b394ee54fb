package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/paypal"
)

// ProcessorClient is the processor capability the adapter depends on.
// Implemented by *paypal.Client.
type ProcessorClient interface {
	CreateOrder(ctx context.Context, req paypal.CreateOrderRequest) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	AuthorizeOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	RefundCapture(ctx context.Context, captureID string, req paypal.RefundRequest) (*paypal.Refund, error)
	VerifyWebhook(ctx context.Context, headers http.Header, body []byte) (*paypal.WebhookVerification, error)
}

// Config holds the adapter's order-shaping switches.
type Config struct {
	// SendShipping forwards shipping and line-item data on outbound orders.
	SendShipping bool
	// SendCustomer forwards the customer email on outbound orders.
	SendCustomer bool
}

// Adapter drives the payment-session lifecycle. It holds no session
// state; every operation is a function of the session data passed in.
// The hosting framework serializes operations per session id.
type Adapter struct {
	client ProcessorClient
	cfg    Config
	logger *zap.Logger
}

// NewAdapter creates a session adapter.
func NewAdapter(client ProcessorClient, cfg Config, logger *zap.Logger) *Adapter {
	return &Adapter{client: client, cfg: cfg, logger: logger}
}

// InitiateInput is the payload for starting a payment session.
type InitiateInput struct {
	Amount        int64
	CurrencyCode  string
	CorrelationID string
	Email         string
	Shipping      *paypal.Shipping
	Items         []paypal.Item
}

func (in InitiateInput) validate() error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if in.CurrencyCode == "" {
		return ErrMissingCurrency
	}
	return nil
}

// Initiate creates a processor order for the session. The caller's
// correlation id travels as the order's custom id so webhook events can
// be mapped back to the session. Processor errors propagate unchanged.
func (a *Adapter) Initiate(ctx context.Context, in InitiateInput) (*SessionData, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order, err := a.createOrder(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	data := &SessionData{
		Status:        StatusPending,
		Amount:        in.Amount,
		CurrencyCode:  in.CurrencyCode,
		CorrelationID: in.CorrelationID,
	}
	data.applyOrder(order)

	a.logger.Info("payment session initiated",
		zap.String("order_id", order.ID),
		zap.String("correlation_id", in.CorrelationID),
	)
	return data, nil
}

// AuthorizeResult is the outcome of an authorization attempt.
type AuthorizeResult struct {
	Status Status       `json:"status"`
	Data   *SessionData `json:"data"`
}

// Authorize reconciles the session's capture state. A completed capture
// short-circuits to authorized without touching the processor. Otherwise
// the order is captured; a decline replaces the order and parks the
// session in pending with the decline attached, so the caller can
// re-present payment details against the new order id.
func (a *Adapter) Authorize(ctx context.Context, data *SessionData) (*AuthorizeResult, error) {
	if err := requireOrderRef(data); err != nil {
		return nil, err
	}

	// An already-completed capture wins over a fresh capture attempt.
	if data.completedCapture() != nil {
		data.Status = StatusAuthorized
		data.Error = nil
		return &AuthorizeResult{Status: StatusAuthorized, Data: data}, nil
	}

	order, err := a.client.CaptureOrder(ctx, data.ID)
	if err != nil {
		var apiErr *paypal.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			// The processor rejected the capture outright, e.g. the
			// order was already consumed or has expired.
			decl := genericDecline()
			if pr := apiErr.DeclineDetail(); pr != nil {
				decl = ClassifyCapture(paypal.CaptureStatusDeclined, pr)
			}
			return a.replaceOrder(ctx, data, decl)
		}
		return nil, fmt.Errorf("capture order: %w", err)
	}

	capture := firstCapture(order)
	var decl *Declined
	if capture == nil {
		decl = ClassifyCapture("", nil)
	} else {
		decl = ClassifyCapture(capture.Status, capture.ProcessorResponse)
	}
	if decl == nil {
		data.applyOrder(order)
		data.Status = StatusAuthorized
		data.Error = nil
		return &AuthorizeResult{Status: StatusAuthorized, Data: data}, nil
	}
	return a.replaceOrder(ctx, data, decl)
}

// Capture settles the payment. Idempotent: a session that already
// reports captured (or holds a completed capture) succeeds without a
// processor call.
func (a *Adapter) Capture(ctx context.Context, data *SessionData) (*SessionData, error) {
	if data == nil {
		return nil, ErrNilSession
	}
	if data.Status == StatusCaptured || data.completedCapture() != nil {
		data.Status = StatusCaptured
		if data.CapturedAt == nil {
			now := time.Now().UTC()
			data.CapturedAt = &now
		}
		return data, nil
	}
	if data.ID == "" {
		return nil, ErrMissingOrderID
	}

	order, err := a.client.CaptureOrder(ctx, data.ID)
	if err != nil {
		return nil, fmt.Errorf("capture order: %w", err)
	}

	data.applyOrder(order)
	data.Status = StatusCaptured
	now := time.Now().UTC()
	data.CapturedAt = &now
	return data, nil
}

// Cancel marks the session canceled. No processor call is made: an
// uncaptured order carries no hold and is left to expire.
func (a *Adapter) Cancel(ctx context.Context, data *SessionData) (*SessionData, error) {
	if data == nil {
		return nil, ErrNilSession
	}
	data.Status = StatusCanceled
	now := time.Now().UTC()
	data.CanceledAt = &now
	return data, nil
}

// Delete tears down the session. Deletion itself is owned by the
// hosting framework; here it is the same transition as Cancel.
func (a *Adapter) Delete(ctx context.Context, data *SessionData) (*SessionData, error) {
	return a.Cancel(ctx, data)
}

// Refund refunds every capture on the session's purchase units, one
// sequential processor call per capture id, then marks the session
// canceled. Fails before any call when no capture ids can be derived.
func (a *Adapter) Refund(ctx context.Context, data *SessionData) (*SessionData, error) {
	if data == nil {
		return nil, ErrNilSession
	}
	ids := data.captureIDs()
	if len(ids) == 0 {
		return nil, ErrNoCaptures
	}

	for _, id := range ids {
		req := paypal.RefundRequest{InvoiceID: uuid.NewString()}
		if _, err := a.client.RefundCapture(ctx, id, req); err != nil {
			return nil, fmt.Errorf("refund capture %s: %w", id, err)
		}
		a.logger.Info("capture refunded",
			zap.String("order_id", data.ID),
			zap.String("capture_id", id),
		)
	}

	data.Status = StatusCanceled
	now := time.Now().UTC()
	data.CanceledAt = &now
	return data, nil
}

// PaymentStatus fetches the live order and maps its status to the
// framework vocabulary. A missing order or status is a not-found
// condition, distinct from transport failure.
func (a *Adapter) PaymentStatus(ctx context.Context, data *SessionData) (Status, error) {
	if data == nil {
		return "", ErrNilSession
	}
	if data.ID == "" {
		return "", ErrMissingOrderID
	}

	order, err := a.client.GetOrder(ctx, data.ID)
	if err != nil {
		if errors.Is(err, paypal.ErrOrderNotFound) {
			return "", fmt.Errorf("%w: %v", ErrSessionNotFound, err)
		}
		return "", fmt.Errorf("retrieve order: %w", err)
	}
	if order == nil || order.Status == "" {
		return "", ErrSessionNotFound
	}

	if order.Status == paypal.OrderStatusCompleted {
		return StatusCaptured, nil
	}
	return StatusAuthorized, nil
}

// replaceOrder creates a fresh order for the same amount, currency and
// correlation id; an order whose capture was declined is single-use.
func (a *Adapter) replaceOrder(ctx context.Context, data *SessionData, decl *Declined) (*AuthorizeResult, error) {
	order, err := a.createOrder(ctx, InitiateInput{
		Amount:        data.Amount,
		CurrencyCode:  data.CurrencyCode,
		CorrelationID: data.CorrelationID,
	})
	if err != nil {
		return nil, fmt.Errorf("recreate order after decline: %w", err)
	}

	a.logger.Info("capture declined, order replaced",
		zap.String("previous_order_id", data.ID),
		zap.String("order_id", order.ID),
		zap.String("decline_code", decl.Code),
		zap.Bool("retryable", decl.Retryable),
	)

	data.applyOrder(order)
	data.Status = StatusPending
	data.Error = decl
	return &AuthorizeResult{Status: StatusPending, Data: data}, nil
}

func (a *Adapter) createOrder(ctx context.Context, in InitiateInput) (*paypal.Order, error) {
	pu := paypal.PurchaseUnit{
		CustomID: in.CorrelationID,
		Amount: &paypal.Amount{
			CurrencyCode: in.CurrencyCode,
			Value:        FormatMinorUnits(in.Amount, in.CurrencyCode),
		},
	}
	if a.cfg.SendShipping {
		pu.Shipping = in.Shipping
		pu.Items = in.Items
	}

	req := paypal.CreateOrderRequest{
		Intent:        paypal.IntentCapture,
		PurchaseUnits: []paypal.PurchaseUnit{pu},
	}
	if a.cfg.SendCustomer && in.Email != "" {
		req.Payer = &paypal.Payer{EmailAddress: in.Email}
	}
	return a.client.CreateOrder(ctx, req)
}

func requireOrderRef(data *SessionData) error {
	switch {
	case data == nil:
		return ErrNilSession
	case data.ID == "":
		return ErrMissingOrderID
	case data.Amount <= 0:
		return ErrInvalidAmount
	case data.CurrencyCode == "":
		return ErrMissingCurrency
	}
	return nil
}

func firstCapture(order *paypal.Order) *paypal.Capture {
	for i := range order.PurchaseUnits {
		payments := order.PurchaseUnits[i].Payments
		if payments == nil {
			continue
		}
		if len(payments.Captures) > 0 {
			return &payments.Captures[0]
		}
	}
	return nil
}

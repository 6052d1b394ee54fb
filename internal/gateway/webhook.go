package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/paypal"
)

// Webhook actions handed to the hosting framework.
const (
	WebhookActionCaptured     = "captured"
	WebhookActionNotSupported = "not_supported"
	WebhookActionFailed       = "failed"
)

// WebhookResult is the framework-facing translation of a processor
// event. SessionID carries the correlation id the session was created
// with; Amount is in minor units.
type WebhookResult struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
}

// WebhookTranslator verifies and translates processor webhook events.
// Translation never fails the caller: any verification or decoding
// problem yields a failed result, so an attacker cannot distinguish a
// bad signature from a malformed body.
type WebhookTranslator struct {
	client ProcessorClient
	logger *zap.Logger
}

// NewWebhookTranslator creates a webhook translator.
func NewWebhookTranslator(client ProcessorClient, logger *zap.Logger) *WebhookTranslator {
	return &WebhookTranslator{client: client, logger: logger}
}

// Translate verifies the event signature with the processor and maps
// the event to a framework action. Only capture-completed events are
// acted on; everything else verified is reported as not supported.
func (t *WebhookTranslator) Translate(ctx context.Context, headers http.Header, body []byte) *WebhookResult {
	var event paypal.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		t.logger.Warn("webhook body is not valid json", zap.Error(err))
		return &WebhookResult{Action: WebhookActionFailed}
	}

	result := &WebhookResult{Action: WebhookActionFailed}
	result.SessionID = event.Resource.CustomID
	if event.Resource.Amount != nil {
		amount, err := ParseMinorUnits(event.Resource.Amount.Value, event.Resource.Amount.CurrencyCode)
		if err == nil {
			result.Amount = amount
		}
	}

	verification, err := t.client.VerifyWebhook(ctx, headers, body)
	if err != nil {
		t.logger.Warn("webhook verification call failed",
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
		return result
	}
	if verification == nil || verification.VerificationStatus != paypal.VerificationSuccess {
		t.logger.Warn("webhook signature rejected",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType),
		)
		return result
	}

	switch event.EventType {
	case paypal.EventCaptureCompleted:
		result.Action = WebhookActionCaptured
		t.logger.Info("webhook capture completed",
			zap.String("event_id", event.ID),
			zap.String("session_id", result.SessionID),
			zap.Int64("amount", result.Amount),
		)
	default:
		result.Action = WebhookActionNotSupported
		t.logger.Debug("webhook event type not handled",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType),
		)
	}
	return result
}

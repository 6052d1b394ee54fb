package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/paypal"
)

func captureCompletedEvent() []byte {
	return []byte(`{
		"id": "WH-1",
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": {
			"id": "CAP-1",
			"status": "COMPLETED",
			"custom_id": "cart-42",
			"amount": {"currency_code": "USD", "value": "50.00"}
		}
	}`)
}

func TestWebhookTranslator_Translate(t *testing.T) {
	verified := &paypal.WebhookVerification{VerificationStatus: paypal.VerificationSuccess}

	t.Run("capture completed", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		client.On("VerifyWebhook", mock.Anything, mock.Anything, mock.Anything).Return(verified, nil)

		result := translator.Translate(context.Background(), http.Header{}, captureCompletedEvent())

		assert.Equal(t, WebhookActionCaptured, result.Action)
		assert.Equal(t, "cart-42", result.SessionID)
		assert.Equal(t, int64(5000), result.Amount)
		client.AssertExpectations(t)
	})

	t.Run("unsupported event type", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		client.On("VerifyWebhook", mock.Anything, mock.Anything, mock.Anything).Return(verified, nil)

		body := []byte(`{"id": "WH-2", "event_type": "PAYMENT.CAPTURE.REFUNDED", "resource": {"custom_id": "cart-42"}}`)
		result := translator.Translate(context.Background(), http.Header{}, body)

		assert.Equal(t, WebhookActionNotSupported, result.Action)
		assert.Equal(t, "cart-42", result.SessionID)
	})

	t.Run("verification failure fails closed", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		client.On("VerifyWebhook", mock.Anything, mock.Anything, mock.Anything).
			Return(&paypal.WebhookVerification{VerificationStatus: paypal.VerificationFailure}, nil)

		result := translator.Translate(context.Background(), http.Header{}, captureCompletedEvent())

		assert.Equal(t, WebhookActionFailed, result.Action)
	})

	t.Run("verification call error fails closed", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		client.On("VerifyWebhook", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("unavailable"))

		result := translator.Translate(context.Background(), http.Header{}, captureCompletedEvent())

		assert.Equal(t, WebhookActionFailed, result.Action)
	})

	t.Run("webhook not configured fails closed", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		client.On("VerifyWebhook", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, paypal.ErrWebhookNotConfigured)

		result := translator.Translate(context.Background(), http.Header{}, captureCompletedEvent())

		assert.Equal(t, WebhookActionFailed, result.Action)
	})

	t.Run("malformed body fails without verification", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		result := translator.Translate(context.Background(), http.Header{}, []byte("{not json"))

		assert.Equal(t, WebhookActionFailed, result.Action)
		client.AssertNotCalled(t, "VerifyWebhook")
	})

	t.Run("bad amount still translates", func(t *testing.T) {
		client := new(MockProcessorClient)
		translator := NewWebhookTranslator(client, zap.NewNop())

		client.On("VerifyWebhook", mock.Anything, mock.Anything, mock.Anything).Return(verified, nil)

		body := []byte(`{
			"id": "WH-3",
			"event_type": "PAYMENT.CAPTURE.COMPLETED",
			"resource": {"custom_id": "cart-42", "amount": {"currency_code": "USD", "value": "fifty"}}
		}`)
		result := translator.Translate(context.Background(), http.Header{}, body)

		assert.Equal(t, WebhookActionCaptured, result.Action)
		assert.Equal(t, int64(0), result.Amount)
	})
}

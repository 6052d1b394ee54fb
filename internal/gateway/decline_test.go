package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/commercegate/paypal-gateway/internal/paypal"
)

func TestClassifyCapture(t *testing.T) {
	t.Run("completed is not a decline", func(t *testing.T) {
		assert.Nil(t, ClassifyCapture(paypal.CaptureStatusCompleted, nil))
		assert.Nil(t, ClassifyCapture(paypal.CaptureStatusCompleted, &paypal.ProcessorResponse{ResponseCode: "0000"}))
	})

	t.Run("known decline codes", func(t *testing.T) {
		tests := []struct {
			code      string
			retryable bool
			contains  string
		}{
			{"0500", true, "refused by the issuing bank"},
			{"9500", false, "suspected fraud"},
			{"5400", true, "expired"},
			{"5120", true, "Insufficient funds"},
			{"00N7", true, "CVV"},
			{"1330", false, "invalid"},
			{"5100", true, "declined"},
		}
		for _, tt := range tests {
			t.Run(tt.code, func(t *testing.T) {
				decl := ClassifyCapture(paypal.CaptureStatusDeclined, &paypal.ProcessorResponse{ResponseCode: tt.code})
				assert.NotNil(t, decl)
				assert.Equal(t, tt.code, decl.Code)
				assert.Equal(t, tt.retryable, decl.Retryable)
				assert.Contains(t, decl.Message, tt.contains)
			})
		}
	})

	t.Run("unknown code is a hard decline", func(t *testing.T) {
		decl := ClassifyCapture(paypal.CaptureStatusDeclined, &paypal.ProcessorResponse{ResponseCode: "7777"})
		assert.NotNil(t, decl)
		assert.False(t, decl.Retryable)
		assert.Contains(t, decl.Message, "7777")
	})

	t.Run("declined without processor response", func(t *testing.T) {
		decl := ClassifyCapture(paypal.CaptureStatusDeclined, nil)
		assert.NotNil(t, decl)
		assert.False(t, decl.Retryable)
	})

	t.Run("unexpected status", func(t *testing.T) {
		decl := ClassifyCapture(paypal.CaptureStatusPending, nil)
		assert.NotNil(t, decl)
		assert.False(t, decl.Retryable)
		assert.Contains(t, decl.Message, "PENDING")
	})

	t.Run("avs and cvv codes carried through", func(t *testing.T) {
		decl := ClassifyCapture(paypal.CaptureStatusDeclined, &paypal.ProcessorResponse{
			ResponseCode: "00N7",
			AVSCode:      "N",
			CVVCode:      "N",
		})
		assert.Equal(t, "N", decl.AVSCode)
		assert.Equal(t, "N", decl.CVVCode)
	})
}

func TestGenericDecline(t *testing.T) {
	decl := genericDecline()
	assert.Equal(t, "PAYMENT_DECLINED", decl.Code)
	assert.True(t, decl.Retryable)
}

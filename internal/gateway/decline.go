package gateway

import (
	"fmt"

	"github.com/commercegate/paypal-gateway/internal/paypal"
)

// Declined describes a processor decline as data. It is attached to a
// pending session so the presentation layer can decide between "try a
// different card" and a hard failure; the Retryable flag is advisory.
type Declined struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	AVSCode   string `json:"avs_code,omitempty"`
	CVVCode   string `json:"cvv_code,omitempty"`
}

// Card-network response codes the processor reports on declined captures.
var declineTable = map[string]Declined{
	"0500": {Message: "The card was refused by the issuing bank. Please try a different payment method.", Retryable: true},
	"9500": {Message: "The card was flagged as suspected fraud and cannot be used.", Retryable: false},
	"5400": {Message: "The card has expired. Please try a different card.", Retryable: true},
	"5120": {Message: "Insufficient funds. Please use a different payment method.", Retryable: true},
	"00N7": {Message: "The CVV check failed. Please re-enter the card details.", Retryable: true},
	"1330": {Message: "The card account is invalid.", Retryable: false},
	"5100": {Message: "The payment was declined. Please try a different payment method.", Retryable: true},
}

// ClassifyCapture maps a capture status plus optional processor response
// metadata to a decline descriptor. A completed capture yields nil.
func ClassifyCapture(status string, pr *paypal.ProcessorResponse) *Declined {
	if status == paypal.CaptureStatusCompleted {
		return nil
	}

	var avs, cvv, code string
	if pr != nil {
		avs, cvv, code = pr.AVSCode, pr.CVVCode, pr.ResponseCode
	}

	if status != paypal.CaptureStatusDeclined {
		return &Declined{
			Code:      status,
			Message:   fmt.Sprintf("Unexpected capture status %q.", status),
			Retryable: false,
			AVSCode:   avs,
			CVVCode:   cvv,
		}
	}

	if entry, ok := declineTable[code]; ok {
		entry.Code = code
		entry.AVSCode = avs
		entry.CVVCode = cvv
		return &entry
	}

	message := "The payment was declined."
	if code != "" {
		message = fmt.Sprintf("The payment was declined (code %s).", code)
	}
	return &Declined{
		Code:      code,
		Message:   message,
		Retryable: false,
		AVSCode:   avs,
		CVVCode:   cvv,
	}
}

// genericDecline is the synthetic descriptor used when the processor
// rejects a capture call without attaching any decline detail.
func genericDecline() *Declined {
	return &Declined{
		Code:      "PAYMENT_DECLINED",
		Message:   "The payment was declined. Please try again or use a different payment method.",
		Retryable: true,
	}
}

// Package httpapi exposes the session lifecycle over HTTP for the
// hosting framework. The framework owns session persistence, so every
// lifecycle route round-trips the session data in the request body and
// receives the updated copy back.
package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/gateway"
	"github.com/commercegate/paypal-gateway/internal/paypal"
	"github.com/commercegate/paypal-gateway/internal/shared/metrics"
	"github.com/commercegate/paypal-gateway/internal/shared/response"
)

// Handler handles HTTP requests for payment sessions.
type Handler struct {
	adapter    *gateway.Adapter
	translator *gateway.WebhookTranslator
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewHandler creates a new session handler.
func NewHandler(adapter *gateway.Adapter, translator *gateway.WebhookTranslator, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{adapter: adapter, translator: translator, metrics: m, logger: logger}
}

// RegisterRoutes registers the session and webhook routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("", h.Initiate)
		sessions.POST("/authorize", h.Authorize)
		sessions.POST("/capture", h.Capture)
		sessions.POST("/cancel", h.Cancel)
		sessions.POST("/refund", h.Refund)
		sessions.POST("/status", h.PaymentStatus)
		sessions.DELETE("", h.Delete)
	}
	r.POST("/webhooks/paypal", h.Webhook)
}

// InitiateRequest is the body for creating a payment session.
type InitiateRequest struct {
	Amount        int64            `json:"amount" binding:"required"`
	CurrencyCode  string           `json:"currency_code" binding:"required"`
	CorrelationID string           `json:"correlation_id"`
	Email         string           `json:"email"`
	Shipping      *paypal.Shipping `json:"shipping"`
	Items         []paypal.Item    `json:"items"`
}

// SessionRequest wraps the persisted session data the framework passes
// back on each lifecycle step.
type SessionRequest struct {
	Data *gateway.SessionData `json:"data" binding:"required"`
}

// Initiate creates a processor order and returns the new session data.
func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	data, err := h.adapter.Initiate(c.Request.Context(), gateway.InitiateInput{
		Amount:        req.Amount,
		CurrencyCode:  req.CurrencyCode,
		CorrelationID: req.CorrelationID,
		Email:         req.Email,
		Shipping:      req.Shipping,
		Items:         req.Items,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// Authorize runs the authorization reconciliation step.
func (h *Handler) Authorize(c *gin.Context) {
	data, ok := h.bindSession(c)
	if !ok {
		return
	}

	result, err := h.adapter.Authorize(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Capture settles the session's payment.
func (h *Handler) Capture(c *gin.Context) {
	data, ok := h.bindSession(c)
	if !ok {
		return
	}

	updated, err := h.adapter.Capture(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Cancel marks the session canceled.
func (h *Handler) Cancel(c *gin.Context) {
	data, ok := h.bindSession(c)
	if !ok {
		return
	}

	updated, err := h.adapter.Cancel(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Delete tears the session down.
func (h *Handler) Delete(c *gin.Context) {
	data, ok := h.bindSession(c)
	if !ok {
		return
	}

	updated, err := h.adapter.Delete(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// Refund refunds every capture on the session.
func (h *Handler) Refund(c *gin.Context) {
	data, ok := h.bindSession(c)
	if !ok {
		return
	}

	updated, err := h.adapter.Refund(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// PaymentStatus reports the live processor-side status of the session.
func (h *Handler) PaymentStatus(c *gin.Context) {
	data, ok := h.bindSession(c)
	if !ok {
		return
	}

	status, err := h.adapter.PaymentStatus(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// Webhook verifies and translates an inbound processor event. The
// response is always 200 with the translated action so the processor
// does not retry events we have deliberately rejected.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", zap.Error(err))
		response.BadRequest(c, "failed to read body")
		return
	}

	result := h.translator.Translate(c.Request.Context(), c.Request.Header, payload)
	h.metrics.RecordWebhookEvent(result.Action)

	c.JSON(http.StatusOK, result)
}

func (h *Handler) bindSession(c *gin.Context) (*gateway.SessionData, bool) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	return req.Data, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("session operation failed", zap.Error(err))
	} else {
		h.logger.Warn("session operation rejected", zap.Error(err))
	}
	response.Error(c, status, err.Error())
}

// Package paypal is a thin client for the processor's Orders v2 and
// Payments v2 REST APIs. It handles authentication, idempotency headers
// and error decoding; business logic lives in the gateway package.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	apperrors "github.com/commercegate/paypal-gateway/internal/shared/errors"
	"github.com/commercegate/paypal-gateway/internal/shared/metrics"
)

// Client errors.
var (
	ErrOrderNotFound        = errors.New("paypal: order not found")
	ErrWebhookNotConfigured = errors.New("paypal: webhook id not configured")
)

// Environment selects the processor endpoint.
type Environment string

const (
	EnvironmentSandbox Environment = "sandbox"
	EnvironmentLive    Environment = "live"
)

// BaseURL returns the API base URL for the environment.
func (e Environment) BaseURL() string {
	if e == EnvironmentLive {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}

// Config holds client credentials and connection settings.
type Config struct {
	ClientID     string
	ClientSecret string
	Environment  Environment
	WebhookID    string
	Timeout      time.Duration
}

// Client issues authenticated calls against the processor API.
type Client struct {
	httpClient *http.Client
	creds      *clientcredentials.Config
	baseURL    string
	webhookID  string
	breaker    *gobreaker.CircuitBreaker[httpResult]
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

type httpResult struct {
	status int
	body   []byte
}

// NewClient creates a processor client. Access tokens are fetched and
// refreshed through the client-credentials grant; callers never handle
// tokens directly.
func NewClient(cfg Config, m *metrics.Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("paypal: client id and secret are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	base := cfg.Environment.BaseURL()
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     base + "/v1/oauth2/token",
	}

	httpClient := creds.Client(context.Background())
	httpClient.Timeout = cfg.Timeout

	settings := gobreaker.Settings{
		Name:        "paypal",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		httpClient: httpClient,
		creds:      creds,
		baseURL:    base,
		webhookID:  cfg.WebhookID,
		breaker:    gobreaker.NewCircuitBreaker[httpResult](settings),
		metrics:    m,
		logger:     logger,
	}, nil
}

// AccessToken fetches a bearer token from the processor. Fails when the
// credentials are rejected.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	tok, err := c.creds.TokenSource(ctx).Token()
	if err != nil {
		return "", fmt.Errorf("get access token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("paypal: empty access token in credential response")
	}
	return tok.AccessToken, nil
}

// CreateOrder creates an order. The correlation id travels in the
// purchase unit's custom_id.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if req.Intent == "" {
		req.Intent = IntentCapture
	}
	var order Order
	if err := c.do(ctx, "create_order", http.MethodPost, "/v2/checkout/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CaptureOrder captures the payment for an approved order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	if err := c.do(ctx, "capture_order", http.MethodPost, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AuthorizeOrder places an authorization hold on an approved order.
func (c *Client) AuthorizeOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/v2/checkout/orders/%s/authorize", orderID)
	if err := c.do(ctx, "authorize_order", http.MethodPost, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder retrieves the live order. Returns ErrOrderNotFound when the
// processor has no record of it.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/v2/checkout/orders/%s", orderID)
	if err := c.do(ctx, "get_order", http.MethodGet, path, nil, &order); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

// RefundCapture refunds a capture. A zero-value request refunds the
// full captured amount.
func (c *Client) RefundCapture(ctx context.Context, captureID string, req RefundRequest) (*Refund, error) {
	var refund Refund
	path := fmt.Sprintf("/v2/payments/captures/%s/refund", captureID)
	if err := c.do(ctx, "refund_capture", http.MethodPost, path, req, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// VerifyWebhook checks an inbound event's signature against the
// configured webhook id. Fails when no webhook id is configured.
func (c *Client) VerifyWebhook(ctx context.Context, headers http.Header, body []byte) (*WebhookVerification, error) {
	if c.webhookID == "" {
		return nil, ErrWebhookNotConfigured
	}

	req := verifyWebhookRequest{
		AuthAlgo:         headers.Get("Paypal-Auth-Algo"),
		CertURL:          headers.Get("Paypal-Cert-Url"),
		TransmissionID:   headers.Get("Paypal-Transmission-Id"),
		TransmissionSig:  headers.Get("Paypal-Transmission-Sig"),
		TransmissionTime: headers.Get("Paypal-Transmission-Time"),
		WebhookID:        c.webhookID,
		WebhookEvent:     json.RawMessage(body),
	}

	var verification WebhookVerification
	if err := c.do(ctx, "verify_webhook", http.MethodPost, "/v1/notifications/verify-webhook-signature", req, &verification); err != nil {
		return nil, err
	}
	return &verification, nil
}

// do issues one API call through the circuit breaker. Transport errors
// and 5xx responses count against the breaker and surface as upstream
// errors; 4xx responses are decoded into *APIError and pass through.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	start := time.Now()
	err := c.doRequest(ctx, method, path, body, out)

	var apiErr *APIError
	isAPIError := errors.As(err, &apiErr)

	if c.metrics != nil {
		outcome := "ok"
		switch {
		case err == nil:
		case isAPIError:
			outcome = "api_error"
		default:
			outcome = "transport_error"
		}
		c.metrics.RecordProcessorCall(operation, outcome, time.Since(start))
	}
	if err != nil && c.logger != nil {
		c.logger.Warn("processor call failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
	if err != nil && !isAPIError {
		return apperrors.Upstream(fmt.Sprintf("processor %s failed", operation), err)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reqBody []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = b
	}

	res, err := c.breaker.Execute(func() (httpResult, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(reqBody))
		if err != nil {
			return httpResult{}, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if method != http.MethodGet {
			req.Header.Set("PayPal-Request-Id", uuid.NewString())
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return httpResult{}, fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return httpResult{}, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return httpResult{}, decodeAPIError(resp.StatusCode, respBody)
		}
		return httpResult{status: resp.StatusCode, body: respBody}, nil
	})
	if err != nil {
		return err
	}

	if res.status >= http.StatusBadRequest {
		return decodeAPIError(res.status, res.body)
	}
	if out != nil && len(res.body) > 0 {
		if err := json.Unmarshal(res.body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError parses an error payload into *APIError, keeping any
// purchase-unit snapshot the processor attached.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if len(body) > 0 {
		// Best effort: a malformed error body still yields the status.
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}

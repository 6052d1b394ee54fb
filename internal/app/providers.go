package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/gateway"
	"github.com/commercegate/paypal-gateway/internal/gateway/httpapi"
	"github.com/commercegate/paypal-gateway/internal/paypal"
	"github.com/commercegate/paypal-gateway/internal/shared/config"
	"github.com/commercegate/paypal-gateway/internal/shared/logger"
	"github.com/commercegate/paypal-gateway/internal/shared/metrics"
)

// AppSet provides the full application graph.
var AppSet = wire.NewSet(
	ProvideZapLogger,
	ProvideMetrics,
	ProvidePayPalClient,
	ProvideProcessorClient,
	ProvideAdapterConfig,
	gateway.NewAdapter,
	gateway.NewWebhookTranslator,
	httpapi.NewHandler,
)

// ProvideZapLogger creates a zap logger instance.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideMetrics creates a metrics instance.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New("paypal_gateway")
}

// ProvidePayPalClient creates the processor client.
func ProvidePayPalClient(cfg *config.Config, m *metrics.Metrics, log *zap.Logger) (*paypal.Client, error) {
	return paypal.NewClient(paypal.Config{
		ClientID:     cfg.PayPal.ClientID,
		ClientSecret: cfg.PayPal.ClientSecret,
		Environment:  paypal.Environment(cfg.PayPal.Environment),
		WebhookID:    cfg.PayPal.WebhookID,
		Timeout:      cfg.PayPal.Timeout,
	}, m, log)
}

// ProvideProcessorClient exposes the concrete client behind the
// gateway's port.
func ProvideProcessorClient(c *paypal.Client) gateway.ProcessorClient {
	return c
}

// ProvideAdapterConfig maps the application config onto the adapter's
// order-shaping switches.
func ProvideAdapterConfig(cfg *config.Config) gateway.Config {
	return gateway.Config{
		SendShipping: cfg.PayPal.SendShipping,
		SendCustomer: cfg.PayPal.SendCustomer,
	}
}

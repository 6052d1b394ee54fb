//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/gateway"
	"github.com/commercegate/paypal-gateway/internal/gateway/httpapi"
	"github.com/commercegate/paypal-gateway/internal/paypal"
	"github.com/commercegate/paypal-gateway/internal/shared/config"
	"github.com/commercegate/paypal-gateway/internal/shared/metrics"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	Client     *paypal.Client
	Adapter    *gateway.Adapter
	Translator *gateway.WebhookTranslator
	Handler    *httpapi.Handler
}

// InitializeDependencies creates all dependencies using Wire.
func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	wire.Build(
		AppSet,
		wire.Struct(new(Dependencies), "*"),
	)
	return nil, nil
}

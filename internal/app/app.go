// Package app assembles the gateway: configuration, logging, metrics,
// the processor client and the HTTP surface.
package app

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/commercegate/paypal-gateway/internal/shared/config"
	"github.com/commercegate/paypal-gateway/internal/shared/middleware"
)

// App represents the running application.
type App struct {
	config *config.Config
	deps   *Dependencies
	router *gin.Engine
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	deps, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		deps:   deps,
	}
	app.router = app.setupRouter()
	return app, nil
}

// Router returns the configured HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.Logger
}

// Stop flushes buffered log entries.
func (a *App) Stop() {
	_ = a.deps.Logger.Sync()
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.Metrics(a.deps.Metrics))
	if len(a.config.CORS.AllowOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = a.config.CORS.AllowOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(a.deps.Metrics.Handler()))

	v1 := r.Group("/v1")
	a.deps.Handler.RegisterRoutes(v1)

	return r
}

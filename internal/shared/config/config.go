package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	PayPal PayPalConfig `mapstructure:"paypal"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// PayPalConfig holds processor credentials and order-shaping switches.
type PayPalConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Environment  string        `mapstructure:"environment"` // sandbox or live
	WebhookID    string        `mapstructure:"webhook_id"`
	SendShipping bool          `mapstructure:"send_shipping"`
	SendCustomer bool          `mapstructure:"send_customer"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CORSConfig holds CORS configuration for the checkout frontend.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/paypal-gateway")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults and env
	}

	// Read from environment variables
	v.SetEnvPrefix("PPGW")
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Override with environment variables for sensitive values
	if id := os.Getenv("PPGW_PAYPAL_CLIENT_ID"); id != "" {
		cfg.PayPal.ClientID = id
	}
	if secret := os.Getenv("PPGW_PAYPAL_CLIENT_SECRET"); secret != "" {
		cfg.PayPal.ClientSecret = secret
	}
	if id := os.Getenv("PPGW_PAYPAL_WEBHOOK_ID"); id != "" {
		cfg.PayPal.WebhookID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.PayPal.ClientID == "" {
		return fmt.Errorf("paypal.client_id is required")
	}
	if c.PayPal.ClientSecret == "" {
		return fmt.Errorf("paypal.client_secret is required")
	}
	switch c.PayPal.Environment {
	case "sandbox", "live":
	default:
		return fmt.Errorf("paypal.environment must be sandbox or live, got %q", c.PayPal.Environment)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)

	// PayPal defaults
	v.SetDefault("paypal.environment", "sandbox")
	v.SetDefault("paypal.send_shipping", false)
	v.SetDefault("paypal.send_customer", false)
	v.SetDefault("paypal.timeout", 30*time.Second)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

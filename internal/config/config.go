package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	Database Database `envPrefix:"DATABASE_"`
	Auth     Auth     `envPrefix:"AUTH_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`

	Stripe    Stripe    `envPrefix:"STRIPE_"`
	Paypal    Paypal    `envPrefix:"PAYPAL_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host           string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port           string        `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15s"`
	AllowOrigins   []string      `env:"HTTP_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
	RateLimitRPS   float64       `env:"HTTP_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int           `env:"HTTP_RATE_LIMIT_BURST" envDefault:"40"`
}

type Database struct {
	Driver       string        `env:"DRIVER" envDefault:"sqlite"`
	URL          string        `env:"URL" envDefault:"paint-it-black.db"`
	MaxIdleConns int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns int           `env:"MAX_OPEN_CONNS" envDefault:"50"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

type Auth struct {
	JWTSecret   string        `env:"JWT_SECRET"`
	Issuer      string        `env:"ISSUER" envDefault:"paint-it-black-manufacturer"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AdminEmails []string      `env:"ADMIN_EMAILS" envSeparator:","`

	// Upstream identity provider whose signed ID tokens are exchanged for session tokens.
	ProviderSecret string `env:"PROVIDER_SECRET"`
	ProviderIssuer string `env:"PROVIDER_ISSUER" envDefault:"identity-provider"`
}

type Payment struct {
	Provider string        `env:"PROVIDER" envDefault:"stripe"`
	Currency string        `env:"CURRENCY" envDefault:"usd"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Stripe struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey  string `env:"SECRET_KEY"`
}

type Paypal struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	ProviderStripe    = "stripe"
	ProviderPaypal    = "paypal"
	ProviderBraintree = "braintree"
)

// Load parses the process environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	switch c.Payment.Provider {
	case ProviderStripe, ProviderPaypal, ProviderBraintree:
	default:
		return fmt.Errorf("config: unsupported payment provider %q", c.Payment.Provider)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: AUTH_JWT_SECRET is required")
	}
	if c.Auth.ProviderSecret == "" {
		return errors.New("config: AUTH_PROVIDER_SECRET is required")
	}
	if c.Auth.ProviderSecret == c.Auth.JWTSecret {
		return errors.New("config: AUTH_PROVIDER_SECRET must differ from AUTH_JWT_SECRET")
	}
	if c.Database.Timeout <= 0 || c.Payment.Timeout <= 0 || c.Auth.TokenTTL <= 0 {
		return errors.New("config: timeouts and token ttl must be positive")
	}
	return nil
}

func (c *Config) Address() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

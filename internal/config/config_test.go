package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_PROVIDER_SECRET", "upstream")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment.Name)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, ProviderStripe, cfg.Payment.Provider)
	assert.Equal(t, "usd", cfg.Payment.Currency)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowOrigins)
	assert.Equal(t, "identity-provider", cfg.Auth.ProviderIssuer)
}

func TestLoad_PrefixedSections(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_PROVIDER_SECRET", "upstream")
	t.Setenv("AUTH_ADMIN_EMAILS", "boss@example.com,ops@example.com")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "user:pw@tcp(localhost:3306)/shop")
	t.Setenv("PAYMENT_PROVIDER", "paypal")
	t.Setenv("PAYPAL_CLIENT_ID", "client")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"boss@example.com", "ops@example.com"}, cfg.Auth.AdminEmails)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "user:pw@tcp(localhost:3306)/shop", cfg.Database.URL)
	assert.Equal(t, ProviderPaypal, cfg.Payment.Provider)
	assert.Equal(t, "client", cfg.Paypal.ClientID)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"missing provider secret", func(c *Config) { c.Auth.ProviderSecret = "" }},
		{"provider secret reuses session secret", func(c *Config) { c.Auth.ProviderSecret = c.Auth.JWTSecret }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }},
		{"unknown provider", func(c *Config) { c.Payment.Provider = "adyen" }},
		{"zero timeout", func(c *Config) { c.Payment.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func validConfig() *Config {
	return &Config{
		Database: Database{Driver: DriverSQLite, Timeout: time.Second},
		Auth:     Auth{JWTSecret: "x", ProviderSecret: "y", TokenTTL: time.Hour},
		Payment:  Payment{Provider: ProviderStripe, Timeout: time.Second},
	}
}

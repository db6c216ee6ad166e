package client

import (
	"context"
	"fmt"
	"strings"

	"paint-it-black-manufacturer/internal/config"

	"github.com/braintree-go/braintree-go"
	"github.com/google/uuid"
)

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway
func NewBraintreeClient(cfg *config.Braintree) PaymentProcessor {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) Provider() string { return config.ProviderBraintree }

// CreateIntent issues a client token for the Drop-in UI. Braintree binds the amount at
// sale time, so the amount is carried alongside the token rather than inside it.
func (c *braintreeClientImpl) CreateIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error) {
	token, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("braintree generate client token: %w", err)
	}

	return &PaymentIntent{
		ID:           uuid.NewString(),
		ClientSecret: token,
		Amount:       amount,
		Currency:     strings.ToLower(currency),
	}, nil
}

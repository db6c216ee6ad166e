package client

import (
	"context"
	"fmt"

	"paint-it-black-manufacturer/internal/config"
)

// PaymentIntent is the processor's promise to accept a charge; ClientSecret is handed to the
// browser to complete payment out-of-band.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64 // minor units
	Currency     string
}

type PaymentProcessor interface {
	Provider() string
	CreateIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
}

// NewPaymentProcessor returns the processor selected by PAYMENT_PROVIDER.
func NewPaymentProcessor(cfg *config.Config) (PaymentProcessor, error) {
	switch cfg.Payment.Provider {
	case config.ProviderStripe:
		return NewStripeClient(&cfg.Stripe), nil
	case config.ProviderPaypal:
		return NewPaypalClient(&cfg.Paypal), nil
	case config.ProviderBraintree:
		return NewBraintreeClient(&cfg.BrainTree), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.Payment.Provider)
	}
}

// Package payment creates card payment intents with Stripe.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	ErrInvalidAmount = errors.New("payment: amount must be positive")
	ErrNotConfigured = errors.New("payment: STRIPE_SECRET_KEY not configured")
)

// Intent is the part of a created payment intent the client needs to
// confirm the charge.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// Gateway creates payment intents.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (Intent, error)
}

// AmountCents converts a price in major units to the smallest currency unit.
// Sub-cent remainders round half away from zero.
func AmountCents(price decimal.Decimal) int64 {
	return price.Shift(2).Round(0).IntPart()
}

// Stripe is a Gateway backed by the Stripe API.
type Stripe struct {
	sc *client.API
}

// NewStripe builds a client for key. backends may be nil for the public API.
func NewStripe(key string, backends *stripe.Backends) *Stripe {
	if key == "" {
		return &Stripe{}
	}
	return &Stripe{sc: client.New(key, backends)}
}

func (s *Stripe) CreateIntent(ctx context.Context, amountCents int64, currency string) (Intent, error) {
	if s.sc == nil {
		return Intent{}, ErrNotConfigured
	}
	if amountCents <= 0 {
		return Intent{}, ErrInvalidAmount
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.sc.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("payment: create intent: %w", err)
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

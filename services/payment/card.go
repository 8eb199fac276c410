package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// CardClient initiates card charges via Stripe payment intents. The caller
// must have set stripe.Key at startup.
type CardClient struct {
	Currency string
}

// NewCardClient constructs a Stripe-backed card gateway client.
func NewCardClient(currency string) *CardClient {
	return &CardClient{Currency: currency}
}

// Initiate creates a payment intent; the client secret doubles as the
// approval handle the mobile app confirms against.
func (c *CardClient) Initiate(ctx context.Context, amount float64, bookingID, clientID, providerID string) (*InitiateResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(strings.ToLower(c.Currency)),
	}
	params.Context = ctx
	params.AddMetadata("bookingId", bookingID)
	params.AddMetadata("clientId", clientID)
	params.AddMetadata("providerId", providerID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}
	return &InitiateResult{
		TransactionRef: pi.ID,
		ApprovalURL:    pi.ClientSecret,
	}, nil
}

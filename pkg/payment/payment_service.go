package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// ServiceInterface defines the contract for a payment processing service.
type ServiceInterface interface {
	ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error)
}

// StripeService charges card payments through Stripe.
type StripeService struct {
	apiKey string
}

func NewStripeService(apiKey string) *StripeService {
	stripe.Key = apiKey
	return &StripeService{apiKey: apiKey}
}

// ProcessPayment creates and confirms a PaymentIntent for the given amount.
// Amounts are rupees; Stripe wants the smallest currency unit.
func (s *StripeService) ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount: %v", amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(amount * 100)),
		Currency:      stripe.String("lkr"),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("payment.ProcessPayment: %w", err)
	}
	return pi.ID, nil
}

// SimulatedService approves every payment without an external call. Used in
// local and demo environments where no Stripe key is configured.
type SimulatedService struct{}

func NewSimulatedService() *SimulatedService {
	return &SimulatedService{}
}

func (s *SimulatedService) ProcessPayment(ctx context.Context, userID string, amount float64, paymentMethodID string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("invalid payment amount: %v", amount)
	}
	return "simulated-payment-" + userID, nil
}

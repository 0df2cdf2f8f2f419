package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/shopspring/decimal"
)

const GatewayStripe = "stripe"

// StripeGateway drives Stripe Checkout. The customer is redirected to a
// Stripe-hosted page and the outcome comes back on the webhook.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(conf StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(conf.SecretKey, nil)

	return &StripeGateway{
		api:           api,
		webhookSecret: conf.WebhookSecret,
	}
}

func (g *StripeGateway) Name() string {
	return GatewayStripe
}

func (g *StripeGateway) BeginPayment(ctx context.Context, intent PaymentIntent) (CheckoutSession, error) {
	// Stripe wants the amount in the currency's smallest unit.
	unitAmount := intent.UnitPrice.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(intent.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(intent.EventTitle),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(int64(intent.TicketCount)),
			},
		},
		ClientReferenceID: stripe.String(intent.BookingReference),
		CustomerEmail:     stripe.String(intent.CustomerEmail),
		SuccessURL:        stripe.String(intent.SuccessURL),
		CancelURL:         stripe.String(intent.CancelURL),
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, g.mapError(err)
	}

	return CheckoutSession{
		CheckoutRef: sess.ID,
		RedirectURL: sess.URL,
	}, nil
}

func (g *StripeGateway) InterpretCallback(ctx context.Context, cb Callback) (PaymentResult, error) {
	event, err := webhook.ConstructEvent(cb.Body, cb.Headers.Get("Stripe-Signature"), g.webhookSecret)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("webhook.ConstructEvent -> %w", ErrInvalidSignature)
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed", "checkout.session.expired":
	default:
		return PaymentResult{Outcome: OutcomeIgnored}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return PaymentResult{}, fmt.Errorf("json.Unmarshal(checkout session) -> %w", err)
	}

	result := PaymentResult{CheckoutRef: sess.ID}
	if sess.PaymentIntent != nil {
		result.PaymentRef = sess.PaymentIntent.ID
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		result.Outcome = OutcomeSucceeded
	default:
		result.Outcome = OutcomeFailed
	}

	return result, nil
}

func (g *StripeGateway) Refund(ctx context.Context, paymentRef string, amount decimal.Decimal, currency string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
	}
	params.Context = ctx

	if _, err := g.api.Refunds.New(params); err != nil {
		return g.mapError(err)
	}

	return nil
}

func (g *StripeGateway) mapError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		switch stripeErr.Type {
		case stripe.ErrorTypeCard:
			return fmt.Errorf("stripe: %v -> %w", stripeErr.Code, ErrPaymentDeclined)
		case stripe.ErrorTypeAPIConnection, stripe.ErrorTypeAPI:
			return fmt.Errorf("stripe: %v -> %w", stripeErr.Code, ErrGatewayUnavailable)
		}

		return err
	}

	return fmt.Errorf("stripe: %v -> %w", err, ErrGatewayUnavailable)
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	paypal "github.com/plutov/paypal/v4"

	"github.com/shopspring/decimal"
)

const GatewayPayPal = "paypal"

// PayPalGateway drives the PayPal Orders v2 API. The order is created up
// front, the customer approves it on PayPal, and the capture happens when
// they come back on the return URL carrying the order token.
type PayPalGateway struct {
	client *paypal.Client
}

func NewPayPalGateway(conf PayPalConfig) (*PayPalGateway, error) {
	base := paypal.APIBaseSandBox
	if conf.Mode == "live" {
		base = paypal.APIBaseLive
	}

	c, err := paypal.NewClient(conf.ClientID, conf.ClientSecret, base)
	if err != nil {
		return nil, fmt.Errorf("paypal.NewClient -> %w", err)
	}

	return &PayPalGateway{client: c}, nil
}

func (g *PayPalGateway) Name() string {
	return GatewayPayPal
}

func (g *PayPalGateway) BeginPayment(ctx context.Context, intent PaymentIntent) (CheckoutSession, error) {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return CheckoutSession{}, fmt.Errorf("paypal: %v -> %w", err, ErrGatewayUnavailable)
	}

	order, err := g.client.CreateOrder(ctx, paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: intent.BookingReference,
				Description: intent.EventTitle,
				Amount: &paypal.PurchaseUnitAmount{
					Currency: strings.ToUpper(intent.Currency),
					Value:    intent.TotalAmount.StringFixed(2),
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: intent.SuccessURL,
			CancelURL: intent.CancelURL,
		})
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("paypal: %v -> %w", err, ErrGatewayUnavailable)
	}

	var approveURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approveURL = link.Href
			break
		}
	}
	if approveURL == "" {
		return CheckoutSession{}, fmt.Errorf("paypal: order %v has no approve link -> %w", order.ID, ErrGatewayUnavailable)
	}

	return CheckoutSession{
		CheckoutRef: order.ID,
		RedirectURL: approveURL,
	}, nil
}

// InterpretCallback captures the order named by the return-URL token. PayPal
// puts the order id in the "token" query parameter on redirect.
func (g *PayPalGateway) InterpretCallback(ctx context.Context, cb Callback) (PaymentResult, error) {
	orderID := cb.Query.Get("token")
	if orderID == "" {
		return PaymentResult{}, fmt.Errorf("paypal: missing order token -> %w", ErrInvalidSignature)
	}

	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return PaymentResult{}, fmt.Errorf("paypal: %v -> %w", err, ErrGatewayUnavailable)
	}

	capture, err := g.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return PaymentResult{}, g.mapError(err)
	}

	result := PaymentResult{CheckoutRef: orderID}
	for _, unit := range capture.PurchaseUnits {
		if unit.Payments != nil && len(unit.Payments.Captures) > 0 {
			result.PaymentRef = unit.Payments.Captures[0].ID
			break
		}
	}

	if capture.Status == "COMPLETED" {
		result.Outcome = OutcomeSucceeded
	} else {
		result.Outcome = OutcomeFailed
	}

	return result, nil
}

// mapError separates PayPal's own verdicts from transport failures. Only an
// answer from PayPal can be a decline; a request that never got through is
// retryable.
func (g *PayPalGateway) mapError(err error) error {
	var payErr *paypal.ErrorResponse
	if errors.As(err, &payErr) {
		if payErr.Response != nil && payErr.Response.StatusCode >= 500 {
			return fmt.Errorf("paypal: %v -> %w", payErr.Name, ErrGatewayUnavailable)
		}

		return fmt.Errorf("paypal: %v -> %w", payErr.Name, ErrPaymentDeclined)
	}

	return fmt.Errorf("paypal: %v -> %w", err, ErrGatewayUnavailable)
}

func (g *PayPalGateway) Refund(ctx context.Context, paymentRef string, amount decimal.Decimal, currency string) error {
	if _, err := g.client.GetAccessToken(ctx); err != nil {
		return fmt.Errorf("paypal: %v -> %w", err, ErrGatewayUnavailable)
	}

	_, err := g.client.RefundCapture(ctx, paymentRef, paypal.RefundCaptureRequest{
		Amount: &paypal.Money{
			Currency: strings.ToUpper(currency),
			Value:    amount.StringFixed(2),
		},
	})
	if err != nil {
		return fmt.Errorf("paypal.RefundCapture -> %w", err)
	}

	return nil
}

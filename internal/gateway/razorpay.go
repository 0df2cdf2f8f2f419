package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"github.com/shopspring/decimal"
)

const GatewayRazorpay = "razorpay"

// RazorpayGateway drives Razorpay Orders. The checkout itself opens on the
// client with the order id and key id from ClientParams; the outcome arrives
// either as a signed redirect or as a webhook.
type RazorpayGateway struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayGateway(conf RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(conf.KeyID, conf.KeySecret),
		keyID:  conf.KeyID,
		// The webhook secret is configured per endpoint in the Razorpay
		// dashboard and is unrelated to the API key secret.
		keySecret:     conf.KeySecret,
		webhookSecret: conf.WebhookSecret,
	}
}

func (g *RazorpayGateway) Name() string {
	return GatewayRazorpay
}

func (g *RazorpayGateway) BeginPayment(ctx context.Context, intent PaymentIntent) (CheckoutSession, error) {
	// Razorpay wants the amount in paise.
	amount := intent.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()

	data := map[string]interface{}{
		"amount":   amount,
		"currency": strings.ToUpper(intent.Currency),
		"receipt":  intent.BookingReference,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("razorpay: %v -> %w", err, ErrGatewayUnavailable)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return CheckoutSession{}, fmt.Errorf("razorpay: order response has no id -> %w", ErrGatewayUnavailable)
	}

	return CheckoutSession{
		CheckoutRef: orderID,
		ClientParams: map[string]string{
			"key_id":   g.keyID,
			"order_id": orderID,
			"name":     intent.EventTitle,
			"email":    intent.CustomerEmail,
		},
	}, nil
}

// InterpretCallback handles both delivery paths: a webhook carries the
// X-Razorpay-Signature header over the JSON body, a checkout redirect carries
// razorpay_order_id, razorpay_payment_id and razorpay_signature parameters.
func (g *RazorpayGateway) InterpretCallback(ctx context.Context, cb Callback) (PaymentResult, error) {
	if sig := cb.Headers.Get("X-Razorpay-Signature"); sig != "" {
		return g.interpretWebhook(cb.Body, sig)
	}

	return g.interpretRedirect(cb)
}

func (g *RazorpayGateway) interpretRedirect(cb Callback) (PaymentResult, error) {
	orderID := cb.Query.Get("razorpay_order_id")
	paymentID := cb.Query.Get("razorpay_payment_id")
	signature := cb.Query.Get("razorpay_signature")

	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if !utils.VerifyPaymentSignature(params, signature, g.keySecret) {
		return PaymentResult{}, fmt.Errorf("razorpay: payment signature mismatch -> %w", ErrInvalidSignature)
	}

	return PaymentResult{
		Outcome:     OutcomeSucceeded,
		CheckoutRef: orderID,
		PaymentRef:  paymentID,
	}, nil
}

func (g *RazorpayGateway) interpretWebhook(body []byte, signature string) (PaymentResult, error) {
	if !utils.VerifyWebhookSignature(string(body), signature, g.webhookSecret) {
		return PaymentResult{}, fmt.Errorf("razorpay: webhook signature mismatch -> %w", ErrInvalidSignature)
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return PaymentResult{}, fmt.Errorf("json.Unmarshal(razorpay event) -> %w", err)
	}

	result := PaymentResult{
		CheckoutRef: event.Payload.Payment.Entity.OrderID,
		PaymentRef:  event.Payload.Payment.Entity.ID,
	}

	switch event.Event {
	case "payment.captured":
		result.Outcome = OutcomeSucceeded
	case "payment.failed":
		result.Outcome = OutcomeFailed
	default:
		result.Outcome = OutcomeIgnored
	}

	return result, nil
}

func (g *RazorpayGateway) Refund(ctx context.Context, paymentRef string, amount decimal.Decimal, currency string) error {
	paise := int(amount.Mul(decimal.NewFromInt(100)).IntPart())

	if _, err := g.client.Payment.Refund(paymentRef, paise, nil, nil); err != nil {
		return fmt.Errorf("razorpay.Payment.Refund -> %w", err)
	}

	return nil
}

// Package gateway contains the payment provider adapters. Each provider
// implements PaymentGateway, and the rest of the application only ever talks
// to that interface. Adding a provider means writing one adapter and
// registering its constructor, nothing else changes.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownGateway     = errors.New("unknown payment gateway")
	ErrGatewayDisabled    = errors.New("payment gateway is disabled")
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")
	ErrPaymentDeclined    = errors.New("payment was declined")
	ErrInvalidSignature   = errors.New("invalid callback signature")
	ErrUnknownReference   = errors.New("callback references no known checkout")
)

// PaymentIntent describes the charge to set up with a provider.
type PaymentIntent struct {
	BookingID        uint
	BookingReference string
	EventTitle       string
	UnitPrice        decimal.Decimal
	TotalAmount      decimal.Decimal
	Currency         string
	TicketCount      int
	CustomerEmail    string
	SuccessURL       string
	CancelURL        string
}

// CheckoutSession is what a provider hands back after BeginPayment.
// CheckoutRef is the provider-side identifier later callbacks carry, and is
// how a webhook finds its booking again.
type CheckoutSession struct {
	CheckoutRef string
	RedirectURL string

	// ClientParams carries provider-specific values the frontend needs to
	// open the checkout, e.g. the Razorpay key id and order id.
	ClientParams map[string]string
}

// Callback is a raw inbound webhook or redirect, captured before any
// provider-specific parsing.
type Callback struct {
	Body    []byte
	Headers http.Header
	Query   url.Values
}

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeIgnored means the callback was authentic but carries an event
	// this application does not act on.
	OutcomeIgnored Outcome = "ignored"
)

// PaymentResult is a provider callback translated into neutral terms.
type PaymentResult struct {
	Outcome     Outcome
	CheckoutRef string
	PaymentRef  string
}

type PaymentGateway interface {
	Name() string

	// BeginPayment sets up a checkout with the provider and returns where to
	// send the customer.
	BeginPayment(ctx context.Context, intent PaymentIntent) (CheckoutSession, error)

	// InterpretCallback authenticates a webhook or redirect and reduces it to
	// a PaymentResult. An unverifiable callback returns ErrInvalidSignature.
	InterpretCallback(ctx context.Context, cb Callback) (PaymentResult, error)

	// Refund returns the captured amount for a previously confirmed payment.
	Refund(ctx context.Context, paymentRef string, amount decimal.Decimal, currency string) error
}

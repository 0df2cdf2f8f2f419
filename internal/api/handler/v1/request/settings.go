package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type PaymentSettingsRequest struct {
	Currency              string `json:"currency"`
	StripeEnabled         bool   `json:"stripe_enabled"`
	StripeSecretKey       string `json:"stripe_secret_key"`
	StripePublicKey       string `json:"stripe_public_key"`
	StripeWebhookKey      string `json:"stripe_webhook_key"`
	PayPalEnabled         bool   `json:"paypal_enabled"`
	PayPalMode            string `json:"paypal_mode"`
	PayPalClientID        string `json:"paypal_client_id"`
	PayPalSecret          string `json:"paypal_secret"`
	RazorpayEnabled       bool   `json:"razorpay_enabled"`
	RazorpayKeyID         string `json:"razorpay_key_id"`
	RazorpaySecret        string `json:"razorpay_secret"`
	RazorpayWebhookSecret string `json:"razorpay_webhook_secret"`
}

func (req PaymentSettingsRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Currency, validation.Length(0, 3)),
		validation.Field(&req.PayPalMode, validation.In("", "sandbox", "live")),
	)
}

type UpdateSettingsRequest struct {
	SiteName     string                 `json:"site_name"`
	SiteTagline  string                 `json:"site_tagline"`
	ContactEmail string                 `json:"contact_email"`
	ContactPhone string                 `json:"contact_phone"`
	SocialLinks  map[string]string      `json:"social_links"`
	Payment      PaymentSettingsRequest `json:"payment"`
}

func (req *UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SiteName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.ContactEmail, is.Email),
		validation.Field(&req.Payment),
	)
}

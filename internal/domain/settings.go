package domain

import "time"

// PaymentSettings is the admin-editable payment section of WebsiteSettings.
// Gateway credentials stored here override the static configuration, so
// operators can rotate keys or toggle gateways without a redeploy.
type PaymentSettings struct {
	Currency              string `json:"currency,omitempty"`
	StripeEnabled         bool   `json:"stripe_enabled"`
	StripeSecretKey       string `json:"stripe_secret_key,omitempty"`
	StripePublicKey       string `json:"stripe_public_key,omitempty"`
	StripeWebhookKey      string `json:"stripe_webhook_key,omitempty"`
	PayPalEnabled         bool   `json:"paypal_enabled"`
	PayPalMode            string `json:"paypal_mode,omitempty"`
	PayPalClientID        string `json:"paypal_client_id,omitempty"`
	PayPalSecret          string `json:"paypal_secret,omitempty"`
	RazorpayEnabled       bool   `json:"razorpay_enabled"`
	RazorpayKeyID         string `json:"razorpay_key_id,omitempty"`
	RazorpaySecret        string `json:"razorpay_secret,omitempty"`
	RazorpayWebhookSecret string `json:"razorpay_webhook_secret,omitempty"`
}

type WebsiteSettings struct {
	ID           uint              `json:"id"`
	SiteName     string            `json:"site_name"`
	SiteTagline  string            `json:"site_tagline"`
	ContactEmail string            `json:"contact_email"`
	ContactPhone string            `json:"contact_phone"`
	SocialLinks  map[string]string `json:"social_links"`
	Payment      PaymentSettings   `json:"payment"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

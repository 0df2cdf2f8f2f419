package gateway

import (
	"time"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
)

const DefaultTimeout = 15 * time.Second

// Config is the fully resolved payment configuration for one request.
// It is a plain value so callers can build it from any mix of static
// configuration and stored website settings without the adapters knowing
// where a credential came from.
type Config struct {
	Currency string
	Timeout  time.Duration

	Stripe   StripeConfig
	PayPal   PayPalConfig
	Razorpay RazorpayConfig
}

type StripeConfig struct {
	Enabled        bool
	SecretKey      string
	PublishableKey string
	WebhookSecret  string
}

type PayPalConfig struct {
	Enabled      bool
	Mode         string
	ClientID     string
	ClientSecret string
}

type RazorpayConfig struct {
	Enabled       bool
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

// Resolve merges the static configuration with the admin-edited website
// settings. A provider section is taken wholesale from settings when settings
// carry its secret, so a dashboard credential rotation fully replaces the
// static one instead of half-mixing the two.
func Resolve(static *config.PaymentConfig, overrides domain.PaymentSettings) Config {
	conf := Config{
		Currency: "usd",
		Timeout:  DefaultTimeout,
	}

	if static != nil {
		if static.Currency != "" {
			conf.Currency = static.Currency
		}
		if static.TimeoutSeconds > 0 {
			conf.Timeout = time.Duration(static.TimeoutSeconds) * time.Second
		}
		if static.Stripe != nil {
			conf.Stripe = StripeConfig{
				Enabled:        static.Stripe.Enabled,
				SecretKey:      static.Stripe.SecretKey,
				PublishableKey: static.Stripe.PublishableKey,
				WebhookSecret:  static.Stripe.WebhookSecret,
			}
		}
		if static.PayPal != nil {
			conf.PayPal = PayPalConfig{
				Enabled:      static.PayPal.Enabled,
				Mode:         static.PayPal.Mode,
				ClientID:     static.PayPal.ClientID,
				ClientSecret: static.PayPal.ClientSecret,
			}
		}
		if static.Razorpay != nil {
			conf.Razorpay = RazorpayConfig{
				Enabled:       static.Razorpay.Enabled,
				KeyID:         static.Razorpay.KeyID,
				KeySecret:     static.Razorpay.KeySecret,
				WebhookSecret: static.Razorpay.WebhookSecret,
			}
		}
	}

	if overrides.Currency != "" {
		conf.Currency = overrides.Currency
	}
	if overrides.StripeSecretKey != "" {
		conf.Stripe = StripeConfig{
			Enabled:        overrides.StripeEnabled,
			SecretKey:      overrides.StripeSecretKey,
			PublishableKey: overrides.StripePublicKey,
			WebhookSecret:  overrides.StripeWebhookKey,
		}
	}
	if overrides.PayPalClientID != "" {
		conf.PayPal = PayPalConfig{
			Enabled:      overrides.PayPalEnabled,
			Mode:         overrides.PayPalMode,
			ClientID:     overrides.PayPalClientID,
			ClientSecret: overrides.PayPalSecret,
		}
	}
	if overrides.RazorpayKeyID != "" {
		conf.Razorpay = RazorpayConfig{
			Enabled:       overrides.RazorpayEnabled,
			KeyID:         overrides.RazorpayKeyID,
			KeySecret:     overrides.RazorpaySecret,
			WebhookSecret: overrides.RazorpayWebhookSecret,
		}
	}

	return conf
}

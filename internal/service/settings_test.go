package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

type fakeSettingsStore struct {
	settings domain.WebsiteSettings
	saved    bool
	findErr  error
}

func (f *fakeSettingsStore) Find(_ context.Context) (domain.WebsiteSettings, error) {
	if f.findErr != nil {
		return domain.WebsiteSettings{}, f.findErr
	}

	return f.settings, nil
}

func (f *fakeSettingsStore) Save(_ context.Context, settings domain.WebsiteSettings) (domain.WebsiteSettings, error) {
	f.settings = settings
	f.saved = true

	return settings, nil
}

func TestSettingsService_GetSettings(t *testing.T) {
	t.Run("an unsaved row yields empty settings", func(t *testing.T) {
		store := &fakeSettingsStore{findErr: repository.ErrSettingsNotFound}
		svc := NewSettingsService(store, nil)

		settings, err := svc.GetSettings(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, settings.SocialLinks)
		assert.Empty(t, settings.SiteName)
	})
}

func TestSettingsService_GetPublicSettings(t *testing.T) {
	t.Run("strips gateway credentials", func(t *testing.T) {
		store := &fakeSettingsStore{
			settings: domain.WebsiteSettings{
				SiteName: "Tickets R Us",
				Payment: domain.PaymentSettings{
					StripeEnabled:         true,
					StripeSecretKey:       "sk_live_secret",
					StripePublicKey:       "pk_live_public",
					StripeWebhookKey:      "whsec_secret",
					PayPalSecret:          "paypal_secret",
					RazorpaySecret:        "rzp_secret",
					RazorpayKeyID:         "rzp_key",
					RazorpayWebhookSecret: "rzp_webhook",
				},
			},
		}
		svc := NewSettingsService(store, nil)

		settings, err := svc.GetPublicSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Tickets R Us", settings.SiteName)
		assert.Equal(t, "pk_live_public", settings.Payment.StripePublicKey)
		assert.Equal(t, "rzp_key", settings.Payment.RazorpayKeyID)
		assert.Empty(t, settings.Payment.StripeSecretKey)
		assert.Empty(t, settings.Payment.StripeWebhookKey)
		assert.Empty(t, settings.Payment.PayPalSecret)
		assert.Empty(t, settings.Payment.RazorpaySecret)
		assert.Empty(t, settings.Payment.RazorpayWebhookSecret)
	})
}

func TestSettingsService_ResolvePaymentConfig(t *testing.T) {
	staticConf := &config.PaymentConfig{
		Currency: "eur",
		Stripe:   &config.StripeConfig{Enabled: true, SecretKey: "sk_static"},
	}

	t.Run("stored settings override the static config", func(t *testing.T) {
		store := &fakeSettingsStore{
			settings: domain.WebsiteSettings{
				Payment: domain.PaymentSettings{
					StripeEnabled:   true,
					StripeSecretKey: "sk_settings",
				},
			},
		}
		svc := NewSettingsService(store, staticConf)

		conf := svc.ResolvePaymentConfig(context.Background())

		assert.Equal(t, "sk_settings", conf.Stripe.SecretKey)
	})

	t.Run("a settings read failure falls back to the static config", func(t *testing.T) {
		store := &fakeSettingsStore{findErr: errors.New("db down")}
		svc := NewSettingsService(store, staticConf)

		conf := svc.ResolvePaymentConfig(context.Background())

		assert.Equal(t, "sk_static", conf.Stripe.SecretKey)
		assert.Equal(t, "eur", conf.Currency)
	})
}

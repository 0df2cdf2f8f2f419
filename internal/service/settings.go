package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/gateway"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

type SettingsRepository interface {
	Find(ctx context.Context) (domain.WebsiteSettings, error)
	Save(ctx context.Context, settings domain.WebsiteSettings) (domain.WebsiteSettings, error)
}

type SettingsService struct {
	repo          SettingsRepository
	paymentConfig *config.PaymentConfig
}

func NewSettingsService(repo SettingsRepository, paymentConfig *config.PaymentConfig) *SettingsService {
	return &SettingsService{
		repo:          repo,
		paymentConfig: paymentConfig,
	}
}

// GetSettings returns the stored settings, falling back to an empty value
// when the row has never been saved.
func (s *SettingsService) GetSettings(ctx context.Context) (domain.WebsiteSettings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return domain.WebsiteSettings{SocialLinks: map[string]string{}}, nil
		}

		return domain.WebsiteSettings{}, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return settings, nil
}

// GetPublicSettings strips gateway credentials before the settings leave the
// admin surface.
func (s *SettingsService) GetPublicSettings(ctx context.Context) (domain.WebsiteSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return domain.WebsiteSettings{}, err
	}

	settings.Payment = domain.PaymentSettings{
		Currency:        settings.Payment.Currency,
		StripeEnabled:   settings.Payment.StripeEnabled,
		StripePublicKey: settings.Payment.StripePublicKey,
		PayPalEnabled:   settings.Payment.PayPalEnabled,
		PayPalMode:      settings.Payment.PayPalMode,
		RazorpayEnabled: settings.Payment.RazorpayEnabled,
		RazorpayKeyID:   settings.Payment.RazorpayKeyID,
	}

	return settings, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, settings domain.WebsiteSettings) (domain.WebsiteSettings, error) {
	saved, err := s.repo.Save(ctx, settings)
	if err != nil {
		return domain.WebsiteSettings{}, fmt.Errorf("s.repo.Save -> %w", err)
	}

	return saved, nil
}

// ResolvePaymentConfig merges static configuration with stored settings into
// the per-request payment configuration. A settings read failure falls back
// to the static configuration so payments keep working.
func (s *SettingsService) ResolvePaymentConfig(ctx context.Context) gateway.Config {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingsNotFound) {
			zap.L().Warn("payment settings lookup failed, using static config", zap.Error(err))
		}

		return gateway.Resolve(s.paymentConfig, domain.PaymentSettings{})
	}

	return gateway.Resolve(s.paymentConfig, settings.Payment)
}

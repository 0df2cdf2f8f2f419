package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository/dao"
)

var ErrSettingsNotFound = dao.ErrSettingsNotFound

type SettingsDAO interface {
	Find(ctx context.Context) (dao.WebsiteSettings, error)
	Save(ctx context.Context, settings dao.WebsiteSettings) (dao.WebsiteSettings, error)
}

type SettingsRepository struct {
	dao SettingsDAO
}

func NewSettingsRepository(dao SettingsDAO) *SettingsRepository {
	return &SettingsRepository{
		dao: dao,
	}
}

func (r *SettingsRepository) Find(ctx context.Context) (domain.WebsiteSettings, error) {
	found, err := r.dao.Find(ctx)
	if err != nil {
		return domain.WebsiteSettings{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.WebsiteSettings) (domain.WebsiteSettings, error) {
	row, err := r.domainToDao(settings)
	if err != nil {
		return domain.WebsiteSettings{}, err
	}

	saved, err := r.dao.Save(ctx, row)
	if err != nil {
		return domain.WebsiteSettings{}, fmt.Errorf("r.dao.Save -> %w", err)
	}

	return r.daoToDomain(saved)
}

func (r *SettingsRepository) domainToDao(s domain.WebsiteSettings) (dao.WebsiteSettings, error) {
	socialLinks, err := json.Marshal(s.SocialLinks)
	if err != nil {
		return dao.WebsiteSettings{}, fmt.Errorf("json.Marshal(SocialLinks) -> %w", err)
	}

	payment, err := json.Marshal(s.Payment)
	if err != nil {
		return dao.WebsiteSettings{}, fmt.Errorf("json.Marshal(Payment) -> %w", err)
	}

	return dao.WebsiteSettings{
		ID:              s.ID,
		SiteName:        s.SiteName,
		SiteTagline:     s.SiteTagline,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		SocialLinks:     string(socialLinks),
		PaymentSettings: string(payment),
	}, nil
}

func (r *SettingsRepository) daoToDomain(row dao.WebsiteSettings) (domain.WebsiteSettings, error) {
	settings := domain.WebsiteSettings{
		ID:           row.ID,
		SiteName:     row.SiteName,
		SiteTagline:  row.SiteTagline,
		ContactEmail: row.ContactEmail,
		ContactPhone: row.ContactPhone,
		SocialLinks:  map[string]string{},
		UpdatedAt:    row.UpdatedAt,
	}

	if row.SocialLinks != "" {
		if err := json.Unmarshal([]byte(row.SocialLinks), &settings.SocialLinks); err != nil {
			return domain.WebsiteSettings{}, fmt.Errorf("json.Unmarshal(SocialLinks) -> %w", err)
		}
	}

	if row.PaymentSettings != "" {
		if err := json.Unmarshal([]byte(row.PaymentSettings), &settings.Payment); err != nil {
			return domain.WebsiteSettings{}, fmt.Errorf("json.Unmarshal(PaymentSettings) -> %w", err)
		}
	}

	return settings, nil
}

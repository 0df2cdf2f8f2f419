package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSettingsNotFound = errors.New("website settings not found")

// WebsiteSettings is a single-row table. SocialLinks and PaymentSettings are
// stored as JSON text and decoded at the repository layer.
type WebsiteSettings struct {
	ID uint `gorm:"primaryKey"`

	SiteName     string `gorm:"not null"`
	SiteTagline  string
	ContactEmail string
	ContactPhone string

	SocialLinks     string `gorm:"type:jsonb;default:'{}'"`
	PaymentSettings string `gorm:"type:jsonb;default:'{}'"`

	UpdatedAt time.Time `gorm:"not null"`
}

type SettingsDAO struct {
	db *gorm.DB
}

func NewSettingsDAO(db *gorm.DB) *SettingsDAO {
	return &SettingsDAO{
		db: db,
	}
}

func (d *SettingsDAO) Find(ctx context.Context) (WebsiteSettings, error) {
	var settings WebsiteSettings

	result := d.db.WithContext(ctx).First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return WebsiteSettings{}, ErrSettingsNotFound
		}

		return WebsiteSettings{}, result.Error
	}

	return settings, nil
}

func (d *SettingsDAO) Save(ctx context.Context, settings WebsiteSettings) (WebsiteSettings, error) {
	settings.ID = 1

	result := d.db.WithContext(ctx).Save(&settings)
	if result.Error != nil {
		return WebsiteSettings{}, result.Error
	}

	return settings, nil
}

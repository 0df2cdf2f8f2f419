package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRSVPNotFound = errors.New("rsvp not found")

type RSVP struct {
	ID uint `gorm:"primaryKey"`

	EventID    uint   `gorm:"not null;uniqueIndex:idx_rsvps_event_user"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_rsvps_event_user"`
	Status     string `gorm:"not null"`
	GuestCount int    `gorm:"not null;default:1"`

	Event *Event `gorm:"foreignKey:EventID"`
	User  *User  `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RSVPDAO struct {
	db *gorm.DB
}

func NewRSVPDAO(db *gorm.DB) *RSVPDAO {
	return &RSVPDAO{
		db: db,
	}
}

// Upsert inserts the RSVP or, when the user already answered for this event,
// overwrites the previous answer in place.
func (d *RSVPDAO) Upsert(ctx context.Context, rsvp RSVP) (RSVP, error) {
	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "guest_count", "updated_at"}),
	}).Create(&rsvp)
	if result.Error != nil {
		return RSVP{}, result.Error
	}

	var saved RSVP
	if err := d.db.WithContext(ctx).
		First(&saved, "event_id = ? AND user_id = ?", rsvp.EventID, rsvp.UserID).Error; err != nil {
		return RSVP{}, err
	}

	return saved, nil
}

func (d *RSVPDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (RSVP, error) {
	var rsvp RSVP

	result := d.db.WithContext(ctx).First(&rsvp, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RSVP{}, ErrRSVPNotFound
		}

		return RSVP{}, result.Error
	}

	return rsvp, nil
}

func (d *RSVPDAO) FindByEvent(ctx context.Context, eventID uint) ([]RSVP, error) {
	var rsvps []RSVP

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&rsvps)
	if result.Error != nil {
		return nil, result.Error
	}

	return rsvps, nil
}

func (d *RSVPDAO) FindByUser(ctx context.Context, userID uint) ([]RSVP, error) {
	var rsvps []RSVP

	result := d.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rsvps)
	if result.Error != nil {
		return nil, result.Error
	}

	return rsvps, nil
}

func (d *RSVPDAO) Delete(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&RSVP{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRSVPNotFound
	}

	return nil
}

func (d *RSVPDAO) CountByEventAndStatus(ctx context.Context, eventID uint, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&RSVP{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// SumGuestsByEventAndStatus totals the party sizes behind the answers, which
// is the expected headcount rather than the number of responders.
func (d *RSVPDAO) SumGuestsByEventAndStatus(ctx context.Context, eventID uint, status string) (int64, error) {
	var guests *int64

	result := d.db.WithContext(ctx).
		Model(&RSVP{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Select("SUM(guest_count)").
		Scan(&guests)
	if result.Error != nil {
		return 0, result.Error
	}
	if guests == nil {
		return 0, nil
	}

	return *guests, nil
}

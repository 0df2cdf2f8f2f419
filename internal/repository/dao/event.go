package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrInsufficientSeats  = errors.New("insufficient seats available")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Image       string

	Date  time.Time `gorm:"not null;index"`
	Venue string

	Location  string
	Latitude  *float64
	Longitude *float64
	ShowMap   bool `gorm:"not null;default:false"`

	EnableTicketing bool `gorm:"not null;default:true"`
	EnableRSVP      bool `gorm:"not null;default:true"`

	Price          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TotalSeats     int             `gorm:"not null"`
	AvailableSeats int             `gorm:"not null"`

	Status string `gorm:"not null;default:'draft';index"`

	TicketTypes []TicketType

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketType struct {
	ID uint `gorm:"primaryKey"`

	EventID     uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string

	Price             decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AvailableQuantity int             `gorm:"not null"`
	MaxPerOrder       int             `gorm:"not null;default:10"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("TicketTypes").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context, status string, upcomingOnly bool) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).Preload("TicketTypes")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if upcomingOnly {
		query = query.Where("date > ?", time.Now())
	}

	result := query.Order("date ASC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) FindTicketTypeByID(ctx context.Context, id uint) (TicketType, error) {
	var ticketType TicketType

	result := d.db.WithContext(ctx).First(&ticketType, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TicketType{}, ErrTicketTypeNotFound
		}

		return TicketType{}, result.Error
	}

	return ticketType, nil
}

func (d *EventDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountUpcoming(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("status = ? AND date > ?", "published", time.Now()).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

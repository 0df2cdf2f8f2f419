package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyConfirmed = errors.New("booking already confirmed")
	ErrBookingNotPending       = errors.New("booking is not pending")
	ErrBookingNotCancellable   = errors.New("booking cannot be cancelled")
)

type Booking struct {
	ID uint `gorm:"primaryKey"`

	EventID      uint  `gorm:"not null;index"`
	UserID       uint  `gorm:"not null;index"`
	TicketTypeID *uint `gorm:"index"`

	TicketCount int             `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	Status        string `gorm:"not null;default:'pending';index"`
	PaymentStatus string `gorm:"not null;default:'pending'"`

	PaymentMethod    string
	PaymentReference string
	BookingReference string `gorm:"unique;not null"`
	CheckoutRef      string `gorm:"index"`
	QRCode           string

	Event *Event `gorm:"foreignKey:EventID"`
	User  *User  `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BookingDAO struct {
	db *gorm.DB
}

func NewBookingDAO(db *gorm.DB) *BookingDAO {
	return &BookingDAO{
		db: db,
	}
}

func (d *BookingDAO) Insert(ctx context.Context, booking Booking) (Booking, error) {
	result := d.db.WithContext(ctx).Create(&booking)
	if result.Error != nil {
		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) Update(ctx context.Context, booking Booking) (Booking, error) {
	result := d.db.WithContext(ctx).Save(&booking)
	if result.Error != nil {
		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByID(ctx context.Context, id uint) (Booking, error) {
	var booking Booking

	result := d.db.WithContext(ctx).Preload("Event").First(&booking, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByReference(ctx context.Context, reference string) (Booking, error) {
	var booking Booking

	result := d.db.WithContext(ctx).Preload("Event").First(&booking, "booking_reference = ?", reference)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByCheckoutRef(ctx context.Context, checkoutRef string) (Booking, error) {
	var booking Booking

	result := d.db.WithContext(ctx).Preload("Event").First(&booking, "checkout_ref = ?", checkoutRef)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Booking{}, ErrBookingNotFound
		}

		return Booking{}, result.Error
	}

	return booking, nil
}

func (d *BookingDAO) FindByUser(ctx context.Context, userID uint) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

func (d *BookingDAO) FindByEvent(ctx context.Context, eventID uint) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

// ConfirmPending flips a pending booking to confirmed and takes its seats, all
// in one transaction. Both updates are conditional, so a replayed webhook or
// two racing deliveries leave exactly one confirmation and one seat decrement.
func (d *BookingDAO) ConfirmPending(ctx context.Context, bookingID uint, paymentReference, qrCode string) (Booking, error) {
	var confirmed Booking

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, "pending").
			Updates(map[string]interface{}{
				"status":            "confirmed",
				"payment_status":    "paid",
				"payment_reference": paymentReference,
				"qr_code":           qrCode,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var existing Booking
			if err := tx.First(&existing, bookingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBookingNotFound
				}
				return err
			}
			if existing.Status == "confirmed" {
				return ErrBookingAlreadyConfirmed
			}

			return ErrBookingNotPending
		}

		var booking Booking
		if err := tx.Preload("Event").First(&booking, bookingID).Error; err != nil {
			return err
		}

		seats := tx.Model(&Event{}).
			Where("id = ? AND available_seats >= ?", booking.EventID, booking.TicketCount).
			UpdateColumn("available_seats", gorm.Expr("available_seats - ?", booking.TicketCount))
		if seats.Error != nil {
			return seats.Error
		}
		if seats.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&Event{}).Where("id = ?", booking.EventID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrEventNotFound
			}

			return ErrInsufficientSeats
		}

		if booking.TicketTypeID != nil {
			tickets := tx.Model(&TicketType{}).
				Where("id = ? AND available_quantity >= ?", *booking.TicketTypeID, booking.TicketCount).
				UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", booking.TicketCount))
			if tickets.Error != nil {
				return tickets.Error
			}
			if tickets.RowsAffected == 0 {
				return ErrInsufficientSeats
			}
		}

		confirmed = booking

		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	return confirmed, nil
}

// CancelBooking moves a pending or confirmed booking to cancelled. Seats are
// returned only when the booking had been confirmed, since pending bookings
// never held any.
func (d *BookingDAO) CancelBooking(ctx context.Context, bookingID uint, paymentStatus string) (Booking, error) {
	var cancelled Booking

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Preload("Event").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status != "pending" && booking.Status != "confirmed" {
			return ErrBookingNotCancellable
		}

		wasConfirmed := booking.Status == "confirmed"

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, booking.Status).
			Updates(map[string]interface{}{
				"status":         "cancelled",
				"payment_status": paymentStatus,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingNotCancellable
		}

		if wasConfirmed {
			seats := tx.Model(&Event{}).
				Where("id = ?", booking.EventID).
				UpdateColumn("available_seats", gorm.Expr("available_seats + ?", booking.TicketCount))
			if seats.Error != nil {
				return seats.Error
			}

			if booking.TicketTypeID != nil {
				tickets := tx.Model(&TicketType{}).
					Where("id = ?", *booking.TicketTypeID).
					UpdateColumn("available_quantity", gorm.Expr("available_quantity + ?", booking.TicketCount))
				if tickets.Error != nil {
					return tickets.Error
				}
			}
		}

		cancelled = booking
		cancelled.Status = "cancelled"
		cancelled.PaymentStatus = paymentStatus

		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	return cancelled, nil
}

func (d *BookingDAO) MarkPaymentFailed(ctx context.Context, bookingID uint) error {
	result := d.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", bookingID, "pending").
		UpdateColumn("payment_status", "failed")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&Booking{}).Where("id = ?", bookingID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrBookingNotFound
		}

		return ErrBookingNotPending
	}

	return nil
}

func (d *BookingDAO) FindStalePending(ctx context.Context, olderThan time.Time) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", "pending", olderThan).
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

func (d *BookingDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Booking{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *BookingDAO) SumConfirmedAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	result := d.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", "confirmed").
		Select("SUM(total_amount)").
		Scan(&total)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

func (d *BookingDAO) FindRecent(ctx context.Context, limit int) ([]Booking, error) {
	var bookings []Booking

	result := d.db.WithContext(ctx).
		Preload("Event").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings)
	if result.Error != nil {
		return nil, result.Error
	}

	return bookings, nil
}

type MonthlyRevenueRow struct {
	Month   string
	Revenue decimal.Decimal
}

// SumConfirmedAmountByMonth buckets confirmed revenue by calendar month for
// the last `months` months, oldest first. Months without a confirmed booking
// have no row.
func (d *BookingDAO) SumConfirmedAmountByMonth(ctx context.Context, months int) ([]MonthlyRevenueRow, error) {
	var rows []MonthlyRevenueRow

	since := time.Now().AddDate(0, -months, 0)

	result := d.db.WithContext(ctx).
		Model(&Booking{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, SUM(total_amount) AS revenue").
		Where("status = ? AND created_at >= ?", "confirmed", since).
		Group("month").
		Order("month ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

type TopEventRow struct {
	EventID     uint
	Title       string
	TicketsSold int64
	Revenue     decimal.Decimal
}

func (d *BookingDAO) TopEventsByTickets(ctx context.Context, limit int) ([]TopEventRow, error) {
	var rows []TopEventRow

	result := d.db.WithContext(ctx).
		Model(&Booking{}).
		Select("bookings.event_id AS event_id, events.title AS title, SUM(bookings.ticket_count) AS tickets_sold, SUM(bookings.total_amount) AS revenue").
		Joins("JOIN events ON events.id = bookings.event_id").
		Where("bookings.status = ?", "confirmed").
		Group("bookings.event_id, events.title").
		Order("tickets_sold DESC").
		Limit(limit).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *BookingDAO) SumConfirmedTicketsByEvent(ctx context.Context, eventID uint) (int64, error) {
	var tickets *int64

	result := d.db.WithContext(ctx).
		Model(&Booking{}).
		Where("event_id = ? AND status = ?", eventID, "confirmed").
		Select("SUM(ticket_count)").
		Scan(&tickets)
	if result.Error != nil {
		return 0, result.Error
	}
	if tickets == nil {
		return 0, nil
	}

	return *tickets, nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID               uint            `json:"id"`
	UserID           uint            `json:"user_id"`
	EventID          uint            `json:"event_id"`
	TicketTypeID     *uint           `json:"ticket_type_id,omitempty"`
	TicketCount      int             `json:"ticket_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	BookingReference string          `json:"booking_reference"`
	Status           BookingStatus   `json:"status"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	CheckoutRef      string          `json:"checkout_ref"`
	QRCode           string          `json:"qr_code,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Event *Event `json:"event,omitempty"`
	User  *User  `json:"user,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingConfirmed
}

func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// Confirmable reports whether a verified payment success may still be
// applied. Confirmed bookings are terminal for the success path, which is
// what makes duplicate webhook delivery a no-op.
func (b *Booking) Confirmable() bool {
	return b.Status == BookingPending
}

// Cancellable covers both pending and confirmed bookings; only the latter
// hold seats to give back.
func (b *Booking) Cancellable() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/mailer"
)

// BookingNotifier receives booking lifecycle events after the database work
// has committed. Implementations must not block the caller.
type BookingNotifier interface {
	BookingConfirmed(booking domain.Booking)
	PaymentFailed(booking domain.Booking)
	BookingCancelled(booking domain.Booking)
}

type NotificationUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// NotificationService emails the customer and the site admin. Every event is
// handled on its own goroutine; a failed send is logged and dropped, it never
// propagates back into the booking flow.
type NotificationService struct {
	mailer     mailer.Mailer
	users      NotificationUserRepository
	adminEmail string
	timeout    time.Duration
}

func NewNotificationService(m mailer.Mailer, users NotificationUserRepository, adminEmail string) *NotificationService {
	return &NotificationService{
		mailer:     m,
		users:      users,
		adminEmail: adminEmail,
		timeout:    10 * time.Second,
	}
}

func (s *NotificationService) BookingConfirmed(booking domain.Booking) {
	go s.send(booking, "Booking confirmed",
		fmt.Sprintf(
			"<p>Your booking <strong>%v</strong> is confirmed.</p><p>Tickets: %v<br>Total: %v</p>",
			booking.BookingReference, booking.TicketCount, booking.TotalAmount.StringFixed(2),
		))
}

func (s *NotificationService) PaymentFailed(booking domain.Booking) {
	go s.send(booking, "Payment failed",
		fmt.Sprintf(
			"<p>The payment for booking <strong>%v</strong> did not go through.</p><p>Your seats are not reserved yet. You can retry with another payment method.</p>",
			booking.BookingReference,
		))
}

func (s *NotificationService) BookingCancelled(booking domain.Booking) {
	go s.send(booking, "Booking cancelled",
		fmt.Sprintf(
			"<p>Your booking <strong>%v</strong> has been cancelled.</p>",
			booking.BookingReference,
		))
}

func (s *NotificationService) send(booking domain.Booking, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	user, err := s.users.FindByID(ctx, booking.UserID)
	if err != nil {
		zap.L().Warn("notification skipped, user lookup failed",
			zap.Uint("booking_id", booking.ID),
			zap.Error(err),
		)
		return
	}

	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		zap.L().Warn("notification email failed",
			zap.Uint("booking_id", booking.ID),
			zap.String("to", user.Email),
			zap.Error(err),
		)
	}

	if s.adminEmail != "" {
		if err := s.mailer.Send(s.adminEmail, subject, body); err != nil {
			zap.L().Warn("admin notification email failed",
				zap.Uint("booking_id", booking.ID),
				zap.Error(err),
			)
		}
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/gateway"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/metrics"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

var (
	ErrBookingNotFound       = repository.ErrBookingNotFound
	ErrBookingNotCancellable = repository.ErrBookingNotCancellable
	ErrInsufficientSeats     = repository.ErrInsufficientSeats
	ErrTicketingDisabled     = errors.New("ticketing is disabled for this event")
	ErrBookingNotPending     = repository.ErrBookingNotPending
	ErrBookingNotConfirmed   = errors.New("booking is not confirmed")
	ErrPermissionDenied      = errors.New("permission denied")

	ErrUnknownGateway     = gateway.ErrUnknownGateway
	ErrGatewayDisabled    = gateway.ErrGatewayDisabled
	ErrGatewayUnavailable = gateway.ErrGatewayUnavailable
	ErrPaymentDeclined    = gateway.ErrPaymentDeclined
	ErrInvalidSignature   = gateway.ErrInvalidSignature
	ErrUnknownReference   = gateway.ErrUnknownReference
)

type BookingRepository interface {
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	Update(ctx context.Context, booking domain.Booking) (domain.Booking, error)
	FindByID(ctx context.Context, id uint) (domain.Booking, error)
	FindByReference(ctx context.Context, reference string) (domain.Booking, error)
	FindByCheckoutRef(ctx context.Context, checkoutRef string) (domain.Booking, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Booking, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Booking, error)
	ConfirmPending(ctx context.Context, bookingID uint, paymentReference, qrCode string) (domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint, paymentStatus domain.PaymentStatus) (domain.Booking, error)
	MarkPaymentFailed(ctx context.Context, bookingID uint) error
	FindStalePending(ctx context.Context, olderThan time.Time) ([]domain.Booking, error)
}

type BookingEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindTicketTypeByID(ctx context.Context, id uint) (domain.TicketType, error)
}

type BookingUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// PaymentConfigProvider resolves the effective payment configuration for the
// current request, merging static config with stored website settings.
type PaymentConfigProvider interface {
	ResolvePaymentConfig(ctx context.Context) gateway.Config
}

// BookingService owns the booking lifecycle. A booking is created pending,
// seats are only taken when a verified payment confirms it, and every
// confirmation path is idempotent so gateways may deliver the same outcome
// more than once.
type BookingService struct {
	repo      BookingRepository
	eventRepo BookingEventRepository
	userRepo  BookingUserRepository
	registry  *gateway.Registry
	payments  PaymentConfigProvider
	notifier  BookingNotifier
	baseURL   string

	pendingTTL time.Duration
}

func NewBookingService(
	repo BookingRepository,
	eventRepo BookingEventRepository,
	userRepo BookingUserRepository,
	registry *gateway.Registry,
	payments PaymentConfigProvider,
	notifier BookingNotifier,
	baseURL string,
	pendingTTL time.Duration,
) *BookingService {
	return &BookingService{
		repo:       repo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		registry:   registry,
		payments:   payments,
		notifier:   notifier,
		baseURL:    baseURL,
		pendingTTL: pendingTTL,
	}
}

// CreateBooking records a pending booking. No seats are reserved here, the
// availability check is only fast feedback for the caller.
func (s *BookingService) CreateBooking(ctx context.Context, userID, eventID uint, ticketTypeID *uint, ticketCount int) (domain.Booking, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if !event.IsPublished() {
		return domain.Booking{}, ErrEventNotFound
	}
	if !event.EnableTicketing {
		return domain.Booking{}, ErrTicketingDisabled
	}
	if !event.HasAvailableSeats(ticketCount) {
		return domain.Booking{}, ErrInsufficientSeats
	}

	unitPrice := event.Price
	if ticketTypeID != nil {
		ticketType, err := s.eventRepo.FindTicketTypeByID(ctx, *ticketTypeID)
		if err != nil {
			return domain.Booking{}, fmt.Errorf("s.eventRepo.FindTicketTypeByID -> %w", err)
		}
		if ticketType.EventID != eventID {
			return domain.Booking{}, ErrTicketTypeNotFound
		}
		if !ticketType.HasAvailableTickets(ticketCount) {
			return domain.Booking{}, ErrInsufficientSeats
		}
		unitPrice = ticketType.Price
	}

	booking := domain.Booking{
		UserID:           userID,
		EventID:          eventID,
		TicketTypeID:     ticketTypeID,
		TicketCount:      ticketCount,
		TotalAmount:      unitPrice.Mul(decimal.NewFromInt(int64(ticketCount))),
		BookingReference: newBookingReference(),
		Status:           domain.BookingPending,
		PaymentStatus:    domain.PaymentPending,
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	metrics.BookingsCreated.Inc()

	return created, nil
}

// StartCheckout sets up a payment with the named gateway for a pending
// booking and stores the returned checkout reference, which is how later
// callbacks find the booking again.
func (s *BookingService) StartCheckout(ctx context.Context, bookingID, userID uint, gatewayName string) (domain.Booking, gateway.CheckoutSession, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, gateway.CheckoutSession{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if booking.UserID != userID {
		return domain.Booking{}, gateway.CheckoutSession{}, ErrPermissionDenied
	}
	if !booking.Confirmable() {
		return domain.Booking{}, gateway.CheckoutSession{}, ErrBookingNotPending
	}

	conf := s.payments.ResolvePaymentConfig(ctx)

	gw, err := s.registry.Gateway(gatewayName, conf)
	if err != nil {
		return domain.Booking{}, gateway.CheckoutSession{}, err
	}

	user, err := s.userRepo.FindByID(ctx, booking.UserID)
	if err != nil {
		return domain.Booking{}, gateway.CheckoutSession{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	event := domain.Event{Title: "Event booking"}
	if booking.Event != nil {
		event = *booking.Event
	}

	intent := gateway.PaymentIntent{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		EventTitle:       event.Title,
		UnitPrice:        booking.TotalAmount.Div(decimal.NewFromInt(int64(booking.TicketCount))),
		TotalAmount:      booking.TotalAmount,
		Currency:         conf.Currency,
		TicketCount:      booking.TicketCount,
		CustomerEmail:    user.Email,
		SuccessURL:       s.baseURL + "/v1/payments/success?gateway=" + gatewayName + "&ref=" + booking.BookingReference,
		CancelURL:        s.baseURL + "/v1/payments/cancel?gateway=" + gatewayName + "&ref=" + booking.BookingReference,
	}

	checkoutCtx, cancel := context.WithTimeout(ctx, conf.Timeout)
	defer cancel()

	start := time.Now()
	session, err := gw.BeginPayment(checkoutCtx, intent)
	metrics.CheckoutDuration.WithLabelValues(gatewayName).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.Booking{}, gateway.CheckoutSession{}, fmt.Errorf("gw.BeginPayment -> %w", err)
	}

	booking.PaymentMethod = gatewayName
	booking.CheckoutRef = session.CheckoutRef

	updated, err := s.repo.Update(ctx, booking)
	if err != nil {
		return domain.Booking{}, gateway.CheckoutSession{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, session, nil
}

// HandleCallback authenticates a gateway callback and applies its outcome.
// An authentic callback for an unknown checkout returns ErrUnknownReference,
// which receivers acknowledge rather than retry, since redelivery can never
// make the reference known.
func (s *BookingService) HandleCallback(ctx context.Context, gatewayName string, cb gateway.Callback) (domain.Booking, error) {
	conf := s.payments.ResolvePaymentConfig(ctx)

	gw, err := s.registry.Gateway(gatewayName, conf)
	if err != nil {
		return domain.Booking{}, err
	}

	result, err := gw.InterpretCallback(ctx, cb)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			metrics.WebhooksRejected.WithLabelValues(gatewayName).Inc()
		}
		return domain.Booking{}, err
	}

	if result.Outcome == gateway.OutcomeIgnored {
		return domain.Booking{}, nil
	}

	booking, err := s.repo.FindByCheckoutRef(ctx, result.CheckoutRef)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			zap.L().Warn("callback for unknown checkout reference",
				zap.String("gateway", gatewayName),
				zap.String("checkout_ref", result.CheckoutRef),
			)
			return domain.Booking{}, ErrUnknownReference
		}

		return domain.Booking{}, fmt.Errorf("s.repo.FindByCheckoutRef -> %w", err)
	}

	switch result.Outcome {
	case gateway.OutcomeSucceeded:
		return s.ConfirmBooking(ctx, booking.ID, result.PaymentRef)
	default:
		metrics.PaymentFailures.WithLabelValues(gatewayName).Inc()
		return booking, s.FailBooking(ctx, booking.ID)
	}
}

// ConfirmBooking applies a verified payment success. Re-confirming an
// already confirmed booking is a no-op that returns the existing booking.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uint, paymentRef string) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	confirmed, err := s.repo.ConfirmPending(ctx, bookingID, paymentRef, s.qrPayload(booking.BookingReference))
	if err != nil {
		if errors.Is(err, repository.ErrBookingAlreadyConfirmed) {
			existing, findErr := s.repo.FindByID(ctx, bookingID)
			if findErr != nil {
				return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", findErr)
			}
			return existing, nil
		}

		return domain.Booking{}, fmt.Errorf("s.repo.ConfirmPending -> %w", err)
	}

	metrics.BookingsConfirmed.WithLabelValues(confirmed.PaymentMethod).Inc()
	s.notifier.BookingConfirmed(confirmed)

	return confirmed, nil
}

// FailBooking records a failed payment. The booking stays pending so the
// customer can retry with another method.
func (s *BookingService) FailBooking(ctx context.Context, bookingID uint) error {
	if err := s.repo.MarkPaymentFailed(ctx, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotPending) {
			return nil
		}

		return fmt.Errorf("s.repo.MarkPaymentFailed -> %w", err)
	}

	if booking, err := s.repo.FindByID(ctx, bookingID); err == nil {
		s.notifier.PaymentFailed(booking)
	}

	return nil
}

// CancelBooking cancels a pending or confirmed booking. A paid booking is
// refunded best-effort; a refund failure is logged, not surfaced, so the
// seats always come back even when the gateway is down.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID uint, isAdmin bool) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if booking.UserID != userID && !isAdmin {
		return domain.Booking{}, ErrPermissionDenied
	}
	if !booking.Cancellable() {
		return domain.Booking{}, ErrBookingNotCancellable
	}

	paymentStatus := booking.PaymentStatus
	if booking.IsPaid() {
		paymentStatus = domain.PaymentRefunded
	}

	cancelled, err := s.repo.CancelBooking(ctx, bookingID, paymentStatus)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.CancelBooking -> %w", err)
	}

	if booking.IsPaid() && booking.PaymentMethod != "" {
		s.refundBestEffort(ctx, booking)
	}

	metrics.BookingsCancelled.Inc()
	s.notifier.BookingCancelled(cancelled)

	return cancelled, nil
}

func (s *BookingService) refundBestEffort(ctx context.Context, booking domain.Booking) {
	conf := s.payments.ResolvePaymentConfig(ctx)

	gw, err := s.registry.Gateway(booking.PaymentMethod, conf)
	if err != nil {
		zap.L().Error("refund skipped, gateway unavailable",
			zap.Uint("booking_id", booking.ID),
			zap.String("gateway", booking.PaymentMethod),
			zap.Error(err),
		)
		return
	}

	refundCtx, cancel := context.WithTimeout(ctx, conf.Timeout)
	defer cancel()

	if err := gw.Refund(refundCtx, booking.PaymentReference, booking.TotalAmount, conf.Currency); err != nil {
		zap.L().Error("refund failed",
			zap.Uint("booking_id", booking.ID),
			zap.String("gateway", booking.PaymentMethod),
			zap.Error(err),
		)
	}
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID uint, isAdmin bool) (domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if booking.UserID != userID && !isAdmin {
		return domain.Booking{}, ErrPermissionDenied
	}

	return booking, nil
}

func (s *BookingService) GetBookingByReference(ctx context.Context, reference string) (domain.Booking, error) {
	booking, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByReference -> %w", err)
	}

	return booking, nil
}

// VerifyTicket is the door-scan check. Only a confirmed booking is a valid
// ticket.
func (s *BookingService) VerifyTicket(ctx context.Context, reference string) (domain.Booking, error) {
	booking, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("s.repo.FindByReference -> %w", err)
	}

	if !booking.IsConfirmed() {
		return domain.Booking{}, ErrBookingNotConfirmed
	}

	return booking, nil
}

func (s *BookingService) ListUserBookings(ctx context.Context, userID uint) ([]domain.Booking, error) {
	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return bookings, nil
}

func (s *BookingService) ListEventBookings(ctx context.Context, eventID uint) ([]domain.Booking, error) {
	bookings, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return bookings, nil
}

func (s *BookingService) EnabledGateways(ctx context.Context) []string {
	return s.registry.EnabledGateways(s.payments.ResolvePaymentConfig(ctx))
}

// SweepStalePending cancels pending bookings older than the configured TTL.
// They hold no seats, the sweep just stops dead checkouts from cluttering the
// customer's booking list and the dashboards.
func (s *BookingService) SweepStalePending(ctx context.Context) (int, error) {
	if s.pendingTTL <= 0 {
		return 0, nil
	}

	stale, err := s.repo.FindStalePending(ctx, time.Now().Add(-s.pendingTTL))
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindStalePending -> %w", err)
	}

	swept := 0
	for _, booking := range stale {
		if _, err := s.repo.CancelBooking(ctx, booking.ID, domain.PaymentFailed); err != nil {
			zap.L().Warn("stale booking sweep failed",
				zap.Uint("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}

		metrics.BookingsCancelled.Inc()
		swept++
	}

	if swept > 0 {
		zap.L().Info("swept stale pending bookings", zap.Int("count", swept))
	}

	return swept, nil
}

// StartSweeper runs SweepStalePending on a ticker until ctx is cancelled.
func (s *BookingService) StartSweeper(ctx context.Context, interval time.Duration) {
	if s.pendingTTL <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.SweepStalePending(ctx); err != nil {
					zap.L().Error("stale booking sweep errored", zap.Error(err))
				}
			}
		}
	}()
}

func newBookingReference() string {
	return "BK-" + uuid.NewString()
}

// qrPayload is the string encoded into the ticket QR code. Scanning it leads
// straight to the ticket verification endpoint for this booking.
func (s *BookingService) qrPayload(reference string) string {
	return s.baseURL + "/v1/bookings/verify/" + reference
}

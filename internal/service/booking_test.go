package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/gateway"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

type fakeBookingRepo struct {
	bookings map[uint]domain.Booking
	nextID   uint

	// events, when set, mirrors the dao's atomic confirm-and-decrement.
	events *fakeEventRepo

	confirmCalls int
	failCalls    int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uint]domain.Booking),
		nextID:   1,
	}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	f.nextID++
	f.bookings[booking.ID] = booking

	return booking, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking domain.Booking) (domain.Booking, error) {
	if _, ok := f.bookings[booking.ID]; !ok {
		return domain.Booking{}, repository.ErrBookingNotFound
	}
	f.bookings[booking.ID] = booking

	return booking, nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uint) (domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, repository.ErrBookingNotFound
	}

	return booking, nil
}

func (f *fakeBookingRepo) FindByReference(_ context.Context, reference string) (domain.Booking, error) {
	for _, booking := range f.bookings {
		if booking.BookingReference == reference {
			return booking, nil
		}
	}

	return domain.Booking{}, repository.ErrBookingNotFound
}

func (f *fakeBookingRepo) FindByCheckoutRef(_ context.Context, checkoutRef string) (domain.Booking, error) {
	for _, booking := range f.bookings {
		if booking.CheckoutRef == checkoutRef {
			return booking, nil
		}
	}

	return domain.Booking{}, repository.ErrBookingNotFound
}

func (f *fakeBookingRepo) FindByUser(_ context.Context, userID uint) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			result = append(result, booking)
		}
	}

	return result, nil
}

func (f *fakeBookingRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, booking := range f.bookings {
		if booking.EventID == eventID {
			result = append(result, booking)
		}
	}

	return result, nil
}

func (f *fakeBookingRepo) ConfirmPending(_ context.Context, bookingID uint, paymentReference, qrCode string) (domain.Booking, error) {
	f.confirmCalls++

	booking, ok := f.bookings[bookingID]
	if !ok {
		return domain.Booking{}, repository.ErrBookingNotFound
	}

	switch booking.Status {
	case domain.BookingConfirmed:
		return domain.Booking{}, repository.ErrBookingAlreadyConfirmed
	case domain.BookingCancelled:
		return domain.Booking{}, repository.ErrBookingNotPending
	}

	if f.events != nil {
		event, ok := f.events.events[booking.EventID]
		if !ok {
			return domain.Booking{}, repository.ErrEventNotFound
		}
		if event.AvailableSeats < booking.TicketCount {
			return domain.Booking{}, repository.ErrInsufficientSeats
		}
		event.AvailableSeats -= booking.TicketCount
		f.events.events[booking.EventID] = event
	}

	booking.Status = domain.BookingConfirmed
	booking.PaymentStatus = domain.PaymentPaid
	booking.PaymentReference = paymentReference
	booking.QRCode = qrCode
	f.bookings[bookingID] = booking

	return booking, nil
}

func (f *fakeBookingRepo) CancelBooking(_ context.Context, bookingID uint, paymentStatus domain.PaymentStatus) (domain.Booking, error) {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return domain.Booking{}, repository.ErrBookingNotFound
	}
	if booking.Status == domain.BookingCancelled {
		return domain.Booking{}, repository.ErrBookingNotCancellable
	}

	booking.Status = domain.BookingCancelled
	booking.PaymentStatus = paymentStatus
	f.bookings[bookingID] = booking

	return booking, nil
}

func (f *fakeBookingRepo) MarkPaymentFailed(_ context.Context, bookingID uint) error {
	f.failCalls++

	booking, ok := f.bookings[bookingID]
	if !ok {
		return repository.ErrBookingNotFound
	}
	if booking.Status != domain.BookingPending {
		return repository.ErrBookingNotPending
	}

	booking.PaymentStatus = domain.PaymentFailed
	f.bookings[bookingID] = booking

	return nil
}

func (f *fakeBookingRepo) FindStalePending(_ context.Context, olderThan time.Time) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, booking := range f.bookings {
		if booking.Status == domain.BookingPending && booking.CreatedAt.Before(olderThan) {
			result = append(result, booking)
		}
	}

	return result, nil
}

type fakeEventRepo struct {
	events      map[uint]domain.Event
	ticketTypes map[uint]domain.TicketType
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) FindTicketTypeByID(_ context.Context, id uint) (domain.TicketType, error) {
	ticketType, ok := f.ticketTypes[id]
	if !ok {
		return domain.TicketType{}, repository.ErrTicketTypeNotFound
	}

	return ticketType, nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type staticPaymentConfig struct {
	conf gateway.Config
}

func (p *staticPaymentConfig) ResolvePaymentConfig(_ context.Context) gateway.Config {
	return p.conf
}

type recordingNotifier struct {
	confirmed []domain.Booking
	failed    []domain.Booking
	cancelled []domain.Booking
}

func (n *recordingNotifier) BookingConfirmed(booking domain.Booking) {
	n.confirmed = append(n.confirmed, booking)
}

func (n *recordingNotifier) PaymentFailed(booking domain.Booking) {
	n.failed = append(n.failed, booking)
}

func (n *recordingNotifier) BookingCancelled(booking domain.Booking) {
	n.cancelled = append(n.cancelled, booking)
}

type fakeGateway struct {
	name    string
	session gateway.CheckoutSession
	result  gateway.PaymentResult

	beginErr     error
	interpretErr error
	refundErr    error

	refunds []string
}

func (g *fakeGateway) Name() string {
	return g.name
}

func (g *fakeGateway) BeginPayment(_ context.Context, _ gateway.PaymentIntent) (gateway.CheckoutSession, error) {
	if g.beginErr != nil {
		return gateway.CheckoutSession{}, g.beginErr
	}

	return g.session, nil
}

func (g *fakeGateway) InterpretCallback(_ context.Context, _ gateway.Callback) (gateway.PaymentResult, error) {
	if g.interpretErr != nil {
		return gateway.PaymentResult{}, g.interpretErr
	}

	return g.result, nil
}

func (g *fakeGateway) Refund(_ context.Context, paymentRef string, _ decimal.Decimal, _ string) error {
	g.refunds = append(g.refunds, paymentRef)

	return g.refundErr
}

type bookingFixture struct {
	svc      *BookingService
	repo     *fakeBookingRepo
	events   *fakeEventRepo
	users    *fakeUserRepo
	gw       *fakeGateway
	notifier *recordingNotifier
}

func newBookingFixture(t *testing.T, pendingTTL time.Duration) *bookingFixture {
	t.Helper()

	repo := newFakeBookingRepo()
	events := &fakeEventRepo{
		events: map[uint]domain.Event{
			1: {
				ID:              1,
				Title:           "Summer Concert",
				Date:            time.Now().Add(48 * time.Hour),
				Status:          domain.EventPublished,
				EnableTicketing: true,
				Price:           decimal.NewFromInt(25),
				TotalSeats:      100,
				AvailableSeats:  100,
			},
		},
		ticketTypes: map[uint]domain.TicketType{
			10: {
				ID:                10,
				EventID:           1,
				Name:              "VIP",
				Price:             decimal.NewFromInt(80),
				AvailableQuantity: 5,
			},
		},
	}
	users := &fakeUserRepo{
		users: map[uint]domain.User{
			7: {ID: 7, Email: "alice@example.com", Name: "Alice"},
		},
	}

	repo.events = events

	gw := &fakeGateway{
		name: "fake",
		session: gateway.CheckoutSession{
			CheckoutRef: "cs_test_123",
			RedirectURL: "https://pay.example.com/cs_test_123",
		},
	}

	registry := gateway.NewRegistry()
	registry.Register("fake", func(gateway.Config) (gateway.PaymentGateway, error) {
		return gw, nil
	})

	notifier := &recordingNotifier{}

	svc := NewBookingService(
		repo,
		events,
		users,
		registry,
		&staticPaymentConfig{conf: gateway.Config{Currency: "usd", Timeout: time.Second}},
		notifier,
		"http://localhost:8080",
		pendingTTL,
	)

	return &bookingFixture{
		svc:      svc,
		repo:     repo,
		events:   events,
		users:    users,
		gw:       gw,
		notifier: notifier,
	}
}

func (f *bookingFixture) createPending(t *testing.T) domain.Booking {
	t.Helper()

	booking, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 2)
	require.NoError(t, err)

	return booking
}

func (f *bookingFixture) checkout(t *testing.T, bookingID uint) domain.Booking {
	t.Helper()

	booking, _, err := f.svc.StartCheckout(context.Background(), bookingID, 7, "fake")
	require.NoError(t, err)

	return booking
}

func TestBookingService_CreateBooking(t *testing.T) {
	t.Run("creates a pending booking priced from the event", func(t *testing.T) {
		f := newBookingFixture(t, 0)

		booking, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 3)

		require.NoError(t, err)
		assert.Equal(t, domain.BookingPending, booking.Status)
		assert.Equal(t, domain.PaymentPending, booking.PaymentStatus)
		assert.Equal(t, 3, booking.TicketCount)
		assert.True(t, booking.TotalAmount.Equal(decimal.NewFromInt(75)))
		assert.True(t, strings.HasPrefix(booking.BookingReference, "BK-"))
	})

	t.Run("prices from the ticket type when one is chosen", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		ticketTypeID := uint(10)

		booking, err := f.svc.CreateBooking(context.Background(), 7, 1, &ticketTypeID, 2)

		require.NoError(t, err)
		assert.True(t, booking.TotalAmount.Equal(decimal.NewFromInt(160)))
	})

	t.Run("rejects a ticket type from another event", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		f.events.events[2] = domain.Event{
			ID:              2,
			Status:          domain.EventPublished,
			EnableTicketing: true,
			AvailableSeats:  10,
			Price:           decimal.NewFromInt(5),
		}
		ticketTypeID := uint(10)

		_, err := f.svc.CreateBooking(context.Background(), 7, 2, &ticketTypeID, 1)

		assert.ErrorIs(t, err, ErrTicketTypeNotFound)
	})

	t.Run("hides draft events", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		event := f.events.events[1]
		event.Status = domain.EventDraft
		f.events.events[1] = event

		_, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 1)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("rejects events without ticketing", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		event := f.events.events[1]
		event.EnableTicketing = false
		f.events.events[1] = event

		_, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 1)

		assert.ErrorIs(t, err, ErrTicketingDisabled)
	})

	t.Run("rejects more tickets than seats", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		event := f.events.events[1]
		event.AvailableSeats = 2
		f.events.events[1] = event

		_, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 3)

		assert.ErrorIs(t, err, ErrInsufficientSeats)
	})
}

func TestBookingService_StartCheckout(t *testing.T) {
	t.Run("stores the checkout reference and gateway", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		updated, session, err := f.svc.StartCheckout(context.Background(), booking.ID, 7, "fake")

		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", session.CheckoutRef)
		assert.Equal(t, "cs_test_123", updated.CheckoutRef)
		assert.Equal(t, "fake", updated.PaymentMethod)
	})

	t.Run("rejects another user's booking", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		_, _, err := f.svc.StartCheckout(context.Background(), booking.ID, 99, "fake")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("rejects unknown gateways", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		_, _, err := f.svc.StartCheckout(context.Background(), booking.ID, 7, "bitcoin")

		assert.ErrorIs(t, err, ErrUnknownGateway)
	})

	t.Run("rejects a confirmed booking", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_1")
		require.NoError(t, err)

		_, _, err = f.svc.StartCheckout(context.Background(), booking.ID, 7, "fake")

		assert.ErrorIs(t, err, ErrBookingNotPending)
	})

	t.Run("surfaces gateway outages", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		f.gw.beginErr = gateway.ErrGatewayUnavailable
		booking := f.createPending(t)

		_, _, err := f.svc.StartCheckout(context.Background(), booking.ID, 7, "fake")

		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})
}

func TestBookingService_HandleCallback(t *testing.T) {
	t.Run("confirms the booking on success", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		f.checkout(t, booking.ID)
		f.gw.result = gateway.PaymentResult{
			Outcome:     gateway.OutcomeSucceeded,
			CheckoutRef: "cs_test_123",
			PaymentRef:  "pay_abc",
		}

		confirmed, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})

		require.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, confirmed.Status)
		assert.Equal(t, domain.PaymentPaid, confirmed.PaymentStatus)
		assert.Equal(t, "pay_abc", confirmed.PaymentReference)
		assert.Contains(t, confirmed.QRCode, "/v1/bookings/verify/"+booking.BookingReference)
		assert.Len(t, f.notifier.confirmed, 1)
	})

	t.Run("re-delivered success is a no-op", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		f.checkout(t, booking.ID)
		f.gw.result = gateway.PaymentResult{
			Outcome:     gateway.OutcomeSucceeded,
			CheckoutRef: "cs_test_123",
			PaymentRef:  "pay_abc",
		}

		first, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})
		require.NoError(t, err)

		second, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})
		require.NoError(t, err)

		assert.Equal(t, first.PaymentReference, second.PaymentReference)
		assert.Len(t, f.notifier.confirmed, 1, "notification must fire once")
	})

	t.Run("failure keeps the booking pending for retry", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		f.checkout(t, booking.ID)
		f.gw.result = gateway.PaymentResult{
			Outcome:     gateway.OutcomeFailed,
			CheckoutRef: "cs_test_123",
		}

		_, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})
		require.NoError(t, err)

		stored, err := f.svc.GetBooking(context.Background(), booking.ID, 7, false)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingPending, stored.Status)
		assert.Equal(t, domain.PaymentFailed, stored.PaymentStatus)
		assert.Len(t, f.notifier.failed, 1)
	})

	t.Run("unknown checkout reference is reported, not retried", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		f.gw.result = gateway.PaymentResult{
			Outcome:     gateway.OutcomeSucceeded,
			CheckoutRef: "cs_never_seen",
		}

		_, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})

		assert.ErrorIs(t, err, ErrUnknownReference)
	})

	t.Run("invalid signature is rejected", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		f.gw.interpretErr = gateway.ErrInvalidSignature

		_, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})

		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("ignored events are dropped silently", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		f.gw.result = gateway.PaymentResult{Outcome: gateway.OutcomeIgnored}

		booking, err := f.svc.HandleCallback(context.Background(), "fake", gateway.Callback{})

		require.NoError(t, err)
		assert.Zero(t, booking.ID)
	})
}

func TestBookingService_ConfirmBooking(t *testing.T) {
	t.Run("confirmation takes the seats", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_1")

		require.NoError(t, err)
		assert.Equal(t, 98, f.events.events[1].AvailableSeats)
	})

	t.Run("two oversized bookings cannot both confirm", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		event := f.events.events[1]
		event.AvailableSeats = 10
		f.events.events[1] = event

		first, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 6)
		require.NoError(t, err)
		second, err := f.svc.CreateBooking(context.Background(), 7, 1, nil, 6)
		require.NoError(t, err)

		_, err = f.svc.ConfirmBooking(context.Background(), first.ID, "pay_1")
		require.NoError(t, err)

		_, err = f.svc.ConfirmBooking(context.Background(), second.ID, "pay_2")

		assert.ErrorIs(t, err, ErrInsufficientSeats)
		assert.Equal(t, 4, f.events.events[1].AvailableSeats)
	})

	t.Run("a deleted event reports as missing, not sold out", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		delete(f.events.events, 1)

		_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_1")

		assert.ErrorIs(t, err, ErrEventNotFound)
		assert.NotErrorIs(t, err, ErrInsufficientSeats)
	})
}

func TestBookingService_FailBooking(t *testing.T) {
	t.Run("swallows the race with a concurrent confirmation", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_1")
		require.NoError(t, err)

		err = f.svc.FailBooking(context.Background(), booking.ID)

		assert.NoError(t, err)
	})
}

func TestBookingService_CancelBooking(t *testing.T) {
	t.Run("cancels a pending booking without a refund", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		cancelled, err := f.svc.CancelBooking(context.Background(), booking.ID, 7, false)

		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, cancelled.Status)
		assert.Empty(t, f.gw.refunds)
		assert.Len(t, f.notifier.cancelled, 1)
	})

	t.Run("refunds a paid booking", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		f.checkout(t, booking.ID)
		confirmed, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_abc")
		require.NoError(t, err)
		require.True(t, confirmed.IsPaid())

		cancelled, err := f.svc.CancelBooking(context.Background(), booking.ID, 7, false)

		require.NoError(t, err)
		assert.Equal(t, domain.PaymentRefunded, cancelled.PaymentStatus)
		assert.Equal(t, []string{"pay_abc"}, f.gw.refunds)
	})

	t.Run("a refund failure does not block cancellation", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		f.gw.refundErr = errors.New("gateway exploded")
		booking := f.createPending(t)
		f.checkout(t, booking.ID)
		_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_abc")
		require.NoError(t, err)

		cancelled, err := f.svc.CancelBooking(context.Background(), booking.ID, 7, false)

		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	})

	t.Run("admins may cancel other users' bookings", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		_, err := f.svc.CancelBooking(context.Background(), booking.ID, 99, true)

		assert.NoError(t, err)
	})

	t.Run("non-owners may not", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		_, err := f.svc.CancelBooking(context.Background(), booking.ID, 99, false)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("a cancelled booking stays cancelled", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		_, err := f.svc.CancelBooking(context.Background(), booking.ID, 7, false)
		require.NoError(t, err)

		_, err = f.svc.CancelBooking(context.Background(), booking.ID, 7, false)

		assert.ErrorIs(t, err, ErrBookingNotCancellable)
	})
}

func TestBookingService_VerifyTicket(t *testing.T) {
	t.Run("accepts a confirmed booking", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)
		_, err := f.svc.ConfirmBooking(context.Background(), booking.ID, "pay_1")
		require.NoError(t, err)

		verified, err := f.svc.VerifyTicket(context.Background(), booking.BookingReference)

		require.NoError(t, err)
		assert.Equal(t, booking.ID, verified.ID)
	})

	t.Run("rejects a pending booking", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		_, err := f.svc.VerifyTicket(context.Background(), booking.BookingReference)

		assert.ErrorIs(t, err, ErrBookingNotConfirmed)
	})

	t.Run("rejects an unknown reference", func(t *testing.T) {
		f := newBookingFixture(t, 0)

		_, err := f.svc.VerifyTicket(context.Background(), "BK-nope")

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestBookingService_SweepStalePending(t *testing.T) {
	t.Run("cancels pending bookings older than the TTL", func(t *testing.T) {
		f := newBookingFixture(t, 30*time.Minute)
		stale := f.createPending(t)
		fresh := f.createPending(t)

		aged := f.repo.bookings[stale.ID]
		aged.CreatedAt = time.Now().Add(-time.Hour)
		f.repo.bookings[stale.ID] = aged

		swept, err := f.svc.SweepStalePending(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, swept)
		assert.Equal(t, domain.BookingCancelled, f.repo.bookings[stale.ID].Status)
		assert.Equal(t, domain.PaymentFailed, f.repo.bookings[stale.ID].PaymentStatus)
		assert.Equal(t, domain.BookingPending, f.repo.bookings[fresh.ID].Status)
	})

	t.Run("is disabled when the TTL is zero", func(t *testing.T) {
		f := newBookingFixture(t, 0)
		booking := f.createPending(t)

		aged := f.repo.bookings[booking.ID]
		aged.CreatedAt = time.Now().Add(-24 * time.Hour)
		f.repo.bookings[booking.ID] = aged

		swept, err := f.svc.SweepStalePending(context.Background())

		require.NoError(t, err)
		assert.Zero(t, swept)
		assert.Equal(t, domain.BookingPending, f.repo.bookings[booking.ID].Status)
	})
}

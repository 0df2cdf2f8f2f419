package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
)

type DashboardBookingRepository interface {
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	SumConfirmedAmount(ctx context.Context) (decimal.Decimal, error)
	SumConfirmedTicketsByEvent(ctx context.Context, eventID uint) (int64, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Booking, error)
	FindRecent(ctx context.Context, limit int) ([]domain.Booking, error)
	MonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error)
	TopEvents(ctx context.Context, limit int) ([]domain.TopEvent, error)
}

type DashboardEventRepository interface {
	CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type DashboardUserRepository interface {
	CountAll(ctx context.Context) (int64, error)
}

// Window sizes for the admin dashboard lists.
const (
	recentBookingsLimit  = 10
	monthlyRevenueMonths = 6
	topEventsLimit       = 5
)

type AdminDashboard struct {
	TotalUsers        int64           `json:"total_users"`
	PublishedEvents   int64           `json:"published_events"`
	UpcomingEvents    int64           `json:"upcoming_events"`
	PendingBookings   int64           `json:"pending_bookings"`
	ConfirmedBookings int64           `json:"confirmed_bookings"`
	CancelledBookings int64           `json:"cancelled_bookings"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`

	RecentBookings []domain.Booking        `json:"recent_bookings"`
	MonthlyRevenue []domain.MonthlyRevenue `json:"monthly_revenue"`
	TopEvents      []domain.TopEvent       `json:"top_events"`
}

type EventStats struct {
	Event       domain.Event `json:"event"`
	TicketsSold int64        `json:"tickets_sold"`
	SeatsLeft   int          `json:"seats_left"`
	RSVPCounts  EventCounts  `json:"rsvp_counts"`
}

type UserDashboard struct {
	UpcomingBookings []domain.Booking `json:"upcoming_bookings"`
	PastBookings     []domain.Booking `json:"past_bookings"`
}

type DashboardService struct {
	bookingRepo DashboardBookingRepository
	eventRepo   DashboardEventRepository
	userRepo    DashboardUserRepository
	rsvps       *RSVPService
}

func NewDashboardService(
	bookingRepo DashboardBookingRepository,
	eventRepo DashboardEventRepository,
	userRepo DashboardUserRepository,
	rsvps *RSVPService,
) *DashboardService {
	return &DashboardService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		rsvps:       rsvps,
	}
}

func (s *DashboardService) GetAdminDashboard(ctx context.Context) (AdminDashboard, error) {
	var dashboard AdminDashboard
	var err error

	if dashboard.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.userRepo.CountAll -> %w", err)
	}
	if dashboard.PublishedEvents, err = s.eventRepo.CountByStatus(ctx, domain.EventPublished); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.eventRepo.CountByStatus -> %w", err)
	}
	if dashboard.UpcomingEvents, err = s.eventRepo.CountUpcoming(ctx); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.eventRepo.CountUpcoming -> %w", err)
	}
	if dashboard.PendingBookings, err = s.bookingRepo.CountByStatus(ctx, domain.BookingPending); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.CountByStatus -> %w", err)
	}
	if dashboard.ConfirmedBookings, err = s.bookingRepo.CountByStatus(ctx, domain.BookingConfirmed); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.CountByStatus -> %w", err)
	}
	if dashboard.CancelledBookings, err = s.bookingRepo.CountByStatus(ctx, domain.BookingCancelled); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.CountByStatus -> %w", err)
	}
	if dashboard.TotalRevenue, err = s.bookingRepo.SumConfirmedAmount(ctx); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.SumConfirmedAmount -> %w", err)
	}
	if dashboard.RecentBookings, err = s.bookingRepo.FindRecent(ctx, recentBookingsLimit); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.FindRecent -> %w", err)
	}
	if dashboard.MonthlyRevenue, err = s.bookingRepo.MonthlyRevenue(ctx, monthlyRevenueMonths); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.MonthlyRevenue -> %w", err)
	}
	if dashboard.TopEvents, err = s.bookingRepo.TopEvents(ctx, topEventsLimit); err != nil {
		return AdminDashboard{}, fmt.Errorf("s.bookingRepo.TopEvents -> %w", err)
	}

	return dashboard, nil
}

func (s *DashboardService) GetEventStats(ctx context.Context, eventID uint) (EventStats, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return EventStats{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	sold, err := s.bookingRepo.SumConfirmedTicketsByEvent(ctx, eventID)
	if err != nil {
		return EventStats{}, fmt.Errorf("s.bookingRepo.SumConfirmedTicketsByEvent -> %w", err)
	}

	counts, err := s.rsvps.CountEventResponses(ctx, eventID)
	if err != nil {
		return EventStats{}, fmt.Errorf("s.rsvps.CountEventResponses -> %w", err)
	}

	return EventStats{
		Event:       event,
		TicketsSold: sold,
		SeatsLeft:   event.AvailableSeats,
		RSVPCounts:  counts,
	}, nil
}

func (s *DashboardService) GetUserDashboard(ctx context.Context, userID uint) (UserDashboard, error) {
	bookings, err := s.bookingRepo.FindByUser(ctx, userID)
	if err != nil {
		return UserDashboard{}, fmt.Errorf("s.bookingRepo.FindByUser -> %w", err)
	}

	dashboard := UserDashboard{
		UpcomingBookings: []domain.Booking{},
		PastBookings:     []domain.Booking{},
	}
	for _, booking := range bookings {
		if booking.Event != nil && booking.Event.IsPast() {
			dashboard.PastBookings = append(dashboard.PastBookings, booking)
		} else {
			dashboard.UpcomingBookings = append(dashboard.UpcomingBookings, booking)
		}
	}

	return dashboard, nil
}

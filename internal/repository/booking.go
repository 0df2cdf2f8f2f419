package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository/dao"
)

var (
	ErrBookingNotFound         = dao.ErrBookingNotFound
	ErrBookingAlreadyConfirmed = dao.ErrBookingAlreadyConfirmed
	ErrBookingNotPending       = dao.ErrBookingNotPending
	ErrBookingNotCancellable   = dao.ErrBookingNotCancellable
)

type BookingDAO interface {
	Insert(ctx context.Context, booking dao.Booking) (dao.Booking, error)
	Update(ctx context.Context, booking dao.Booking) (dao.Booking, error)
	FindByID(ctx context.Context, id uint) (dao.Booking, error)
	FindByReference(ctx context.Context, reference string) (dao.Booking, error)
	FindByCheckoutRef(ctx context.Context, checkoutRef string) (dao.Booking, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.Booking, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Booking, error)
	ConfirmPending(ctx context.Context, bookingID uint, paymentReference, qrCode string) (dao.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint, paymentStatus string) (dao.Booking, error)
	MarkPaymentFailed(ctx context.Context, bookingID uint) error
	FindStalePending(ctx context.Context, olderThan time.Time) ([]dao.Booking, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumConfirmedAmount(ctx context.Context) (decimal.Decimal, error)
	SumConfirmedTicketsByEvent(ctx context.Context, eventID uint) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]dao.Booking, error)
	SumConfirmedAmountByMonth(ctx context.Context, months int) ([]dao.MonthlyRevenueRow, error)
	TopEventsByTickets(ctx context.Context, limit int) ([]dao.TopEventRow, error)
}

type BookingRepository struct {
	dao BookingDAO
}

func NewBookingRepository(dao BookingDAO) *BookingRepository {
	return &BookingRepository{
		dao: dao,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(booking))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *BookingRepository) Update(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(booking))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (domain.Booking, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference string) (domain.Booking, error) {
	found, err := r.dao.FindByReference(ctx, reference)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.FindByReference -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BookingRepository) FindByCheckoutRef(ctx context.Context, checkoutRef string) (domain.Booking, error) {
	found, err := r.dao.FindByCheckoutRef(ctx, checkoutRef)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.FindByCheckoutRef -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	bookings := make([]domain.Booking, 0, len(found))
	for _, b := range found {
		bookings = append(bookings, r.daoToDomain(b))
	}

	return bookings, nil
}

func (r *BookingRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Booking, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	bookings := make([]domain.Booking, 0, len(found))
	for _, b := range found {
		bookings = append(bookings, r.daoToDomain(b))
	}

	return bookings, nil
}

func (r *BookingRepository) ConfirmPending(ctx context.Context, bookingID uint, paymentReference, qrCode string) (domain.Booking, error) {
	confirmed, err := r.dao.ConfirmPending(ctx, bookingID, paymentReference, qrCode)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.ConfirmPending -> %w", err)
	}

	booking := r.daoToDomain(confirmed)
	booking.Status = domain.BookingConfirmed
	booking.PaymentStatus = domain.PaymentPaid
	booking.PaymentReference = paymentReference
	booking.QRCode = qrCode

	return booking, nil
}

func (r *BookingRepository) CancelBooking(ctx context.Context, bookingID uint, paymentStatus domain.PaymentStatus) (domain.Booking, error) {
	cancelled, err := r.dao.CancelBooking(ctx, bookingID, string(paymentStatus))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("r.dao.CancelBooking -> %w", err)
	}

	return r.daoToDomain(cancelled), nil
}

func (r *BookingRepository) MarkPaymentFailed(ctx context.Context, bookingID uint) error {
	if err := r.dao.MarkPaymentFailed(ctx, bookingID); err != nil {
		return fmt.Errorf("r.dao.MarkPaymentFailed -> %w", err)
	}

	return nil
}

func (r *BookingRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]domain.Booking, error) {
	found, err := r.dao.FindStalePending(ctx, olderThan)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindStalePending -> %w", err)
	}

	bookings := make([]domain.Booking, 0, len(found))
	for _, b := range found {
		bookings = append(bookings, r.daoToDomain(b))
	}

	return bookings, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *BookingRepository) SumConfirmedAmount(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.dao.SumConfirmedAmount(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumConfirmedAmount -> %w", err)
	}

	return total, nil
}

func (r *BookingRepository) SumConfirmedTicketsByEvent(ctx context.Context, eventID uint) (int64, error) {
	tickets, err := r.dao.SumConfirmedTicketsByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumConfirmedTicketsByEvent -> %w", err)
	}

	return tickets, nil
}

func (r *BookingRepository) FindRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	found, err := r.dao.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecent -> %w", err)
	}

	bookings := make([]domain.Booking, 0, len(found))
	for _, b := range found {
		bookings = append(bookings, r.daoToDomain(b))
	}

	return bookings, nil
}

func (r *BookingRepository) MonthlyRevenue(ctx context.Context, months int) ([]domain.MonthlyRevenue, error) {
	rows, err := r.dao.SumConfirmedAmountByMonth(ctx, months)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SumConfirmedAmountByMonth -> %w", err)
	}

	revenue := make([]domain.MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		revenue = append(revenue, domain.MonthlyRevenue{
			Month:   row.Month,
			Revenue: row.Revenue,
		})
	}

	return revenue, nil
}

func (r *BookingRepository) TopEvents(ctx context.Context, limit int) ([]domain.TopEvent, error) {
	rows, err := r.dao.TopEventsByTickets(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopEventsByTickets -> %w", err)
	}

	top := make([]domain.TopEvent, 0, len(rows))
	for _, row := range rows {
		top = append(top, domain.TopEvent{
			EventID:     row.EventID,
			Title:       row.Title,
			TicketsSold: row.TicketsSold,
			Revenue:     row.Revenue,
		})
	}

	return top, nil
}

func (r *BookingRepository) domainToDao(b domain.Booking) dao.Booking {
	return dao.Booking{
		ID:               b.ID,
		EventID:          b.EventID,
		UserID:           b.UserID,
		TicketTypeID:     b.TicketTypeID,
		TicketCount:      b.TicketCount,
		TotalAmount:      b.TotalAmount,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		BookingReference: b.BookingReference,
		CheckoutRef:      b.CheckoutRef,
		QRCode:           b.QRCode,
	}
}

func (r *BookingRepository) daoToDomain(b dao.Booking) domain.Booking {
	booking := domain.Booking{
		ID:               b.ID,
		UserID:           b.UserID,
		EventID:          b.EventID,
		TicketTypeID:     b.TicketTypeID,
		TicketCount:      b.TicketCount,
		TotalAmount:      b.TotalAmount,
		BookingReference: b.BookingReference,
		Status:           domain.BookingStatus(b.Status),
		PaymentStatus:    domain.PaymentStatus(b.PaymentStatus),
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		CheckoutRef:      b.CheckoutRef,
		QRCode:           b.QRCode,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.Event != nil {
		event := domain.Event{
			ID:             b.Event.ID,
			Title:          b.Event.Title,
			Date:           b.Event.Date,
			Venue:          b.Event.Venue,
			Location:       b.Event.Location,
			Price:          b.Event.Price,
			TotalSeats:     b.Event.TotalSeats,
			AvailableSeats: b.Event.AvailableSeats,
			Status:         domain.EventStatus(b.Event.Status),
		}
		booking.Event = &event
	}

	if b.User != nil {
		user := domain.User{
			ID:    b.User.ID,
			Email: b.User.Email,
			Name:  b.User.Name,
		}
		booking.User = &user
	}

	return booking
}

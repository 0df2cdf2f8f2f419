package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository/dao"
)

var (
	ErrEventNotFound      = dao.ErrEventNotFound
	ErrTicketTypeNotFound = dao.ErrTicketTypeNotFound
	ErrInsufficientSeats  = dao.ErrInsufficientSeats
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context, status string, upcomingOnly bool) ([]dao.Event, error)
	Delete(ctx context.Context, id uint) error
	FindTicketTypeByID(ctx context.Context, id uint) (dao.TicketType, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountUpcoming(ctx context.Context) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context, status domain.EventStatus, upcomingOnly bool) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx, string(status), upcomingOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindTicketTypeByID(ctx context.Context, id uint) (domain.TicketType, error) {
	found, err := r.dao.FindTicketTypeByID(ctx, id)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("r.dao.FindTicketTypeByID -> %w", err)
	}

	return r.ticketTypeDaoToDomain(found), nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	count, err := r.dao.CountUpcoming(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUpcoming -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	ticketTypes := make([]dao.TicketType, 0, len(e.TicketTypes))
	for _, t := range e.TicketTypes {
		ticketTypes = append(ticketTypes, dao.TicketType{
			ID:                t.ID,
			EventID:           t.EventID,
			Name:              t.Name,
			Description:       t.Description,
			Price:             t.Price,
			AvailableQuantity: t.AvailableQuantity,
			MaxPerOrder:       t.MaxPerOrder,
		})
	}

	return dao.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Image:           e.Image,
		Date:            e.Date,
		Venue:           e.Venue,
		Location:        e.Location,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		ShowMap:         e.ShowMap,
		EnableTicketing: e.EnableTicketing,
		EnableRSVP:      e.EnableRSVP,
		Price:           e.Price,
		TotalSeats:      e.TotalSeats,
		AvailableSeats:  e.AvailableSeats,
		Status:          string(e.Status),
		TicketTypes:     ticketTypes,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	ticketTypes := make([]domain.TicketType, 0, len(e.TicketTypes))
	for _, t := range e.TicketTypes {
		ticketTypes = append(ticketTypes, r.ticketTypeDaoToDomain(t))
	}

	return domain.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Image:           e.Image,
		Date:            e.Date,
		Venue:           e.Venue,
		Location:        e.Location,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		ShowMap:         e.ShowMap,
		EnableTicketing: e.EnableTicketing,
		EnableRSVP:      e.EnableRSVP,
		Price:           e.Price,
		TotalSeats:      e.TotalSeats,
		AvailableSeats:  e.AvailableSeats,
		Status:          domain.EventStatus(e.Status),
		TicketTypes:     ticketTypes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) ticketTypeDaoToDomain(t dao.TicketType) domain.TicketType {
	return domain.TicketType{
		ID:                t.ID,
		EventID:           t.EventID,
		Name:              t.Name,
		Description:       t.Description,
		Price:             t.Price,
		AvailableQuantity: t.AvailableQuantity,
		MaxPerOrder:       t.MaxPerOrder,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

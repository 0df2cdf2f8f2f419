package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

var (
	ErrEventNotFound      = repository.ErrEventNotFound
	ErrTicketTypeNotFound = repository.ErrTicketTypeNotFound
	ErrEventNotPublished  = errors.New("event is not published")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context, status domain.EventStatus, upcomingOnly bool) ([]domain.Event, error)
	Delete(ctx context.Context, id uint) error
	FindTicketTypeByID(ctx context.Context, id uint) (domain.TicketType, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.Status == "" {
		event.Status = domain.EventDraft
	}
	if event.AvailableSeats == 0 {
		event.AvailableSeats = event.TotalSeats
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	existing, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Seat capacity changes keep the number of seats already sold intact.
	sold := existing.TotalSeats - existing.AvailableSeats
	event.AvailableSeats = event.TotalSeats - sold
	if event.AvailableSeats < 0 {
		event.AvailableSeats = 0
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// GetPublishedEvent is the public-facing lookup. Drafts and cancelled events
// stay invisible to visitors.
func (s *EventService) GetPublishedEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !event.IsPublished() {
		return domain.Event{}, ErrEventNotFound
	}

	// The map only renders when there are coordinates to point at.
	if !event.HasLocation() {
		event.ShowMap = false
	}

	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, status domain.EventStatus, upcomingOnly bool) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, status, upcomingOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListPublishedEvents(ctx context.Context, upcomingOnly bool) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx, domain.EventPublished, upcomingOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	for i := range events {
		if !events[i].HasLocation() {
			events[i].ShowMap = false
		}
	}

	return events, nil
}

func (s *EventService) PublishEvent(ctx context.Context, id uint) (domain.Event, error) {
	return s.setStatus(ctx, id, domain.EventPublished)
}

func (s *EventService) CancelEvent(ctx context.Context, id uint) (domain.Event, error) {
	return s.setStatus(ctx, id, domain.EventCancelled)
}

func (s *EventService) setStatus(ctx context.Context, id uint, status domain.EventStatus) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event.Status = status

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

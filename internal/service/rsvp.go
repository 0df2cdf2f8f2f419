package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

var (
	ErrRSVPNotFound  = repository.ErrRSVPNotFound
	ErrRSVPDisabled  = errors.New("rsvp is disabled for this event")
	ErrInvalidStatus = errors.New("invalid rsvp status")
)

type RSVPRepository interface {
	Upsert(ctx context.Context, rsvp domain.RSVP) (domain.RSVP, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.RSVP, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.RSVP, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.RSVP, error)
	Delete(ctx context.Context, eventID, userID uint) error
	CountByEventAndStatus(ctx context.Context, eventID uint, status domain.RSVPStatus) (int64, error)
	SumGuestsByEventAndStatus(ctx context.Context, eventID uint, status domain.RSVPStatus) (int64, error)
}

type RSVPEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type RSVPService struct {
	repo      RSVPRepository
	eventRepo RSVPEventRepository
}

func NewRSVPService(repo RSVPRepository, eventRepo RSVPEventRepository) *RSVPService {
	return &RSVPService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// Respond records or replaces the user's answer for an event. One user holds
// at most one answer per event; guestCount is the party size the answer
// stands for and defaults to the responder alone.
func (s *RSVPService) Respond(ctx context.Context, eventID, userID uint, status domain.RSVPStatus, guestCount int) (domain.RSVP, error) {
	if !domain.ValidRSVPStatus(status) {
		return domain.RSVP{}, ErrInvalidStatus
	}
	if guestCount < 1 {
		guestCount = 1
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if !event.IsPublished() {
		return domain.RSVP{}, ErrEventNotFound
	}
	if !event.EnableRSVP {
		return domain.RSVP{}, ErrRSVPDisabled
	}

	rsvp, err := s.repo.Upsert(ctx, domain.RSVP{
		EventID:    eventID,
		UserID:     userID,
		Status:     status,
		GuestCount: guestCount,
	})
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return rsvp, nil
}

func (s *RSVPService) GetResponse(ctx context.Context, eventID, userID uint) (domain.RSVP, error) {
	rsvp, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("s.repo.FindByEventAndUser -> %w", err)
	}

	return rsvp, nil
}

func (s *RSVPService) ListEventResponses(ctx context.Context, eventID uint) ([]domain.RSVP, error) {
	rsvps, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return rsvps, nil
}

func (s *RSVPService) ListUserResponses(ctx context.Context, userID uint) ([]domain.RSVP, error) {
	rsvps, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return rsvps, nil
}

func (s *RSVPService) Withdraw(ctx context.Context, eventID, userID uint) error {
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// EventCounts summarizes RSVP answers for one event. GoingGuests is the
// expected headcount behind the going answers, party sizes included.
type EventCounts struct {
	Going       int64 `json:"going"`
	Interested  int64 `json:"interested"`
	Declined    int64 `json:"declined"`
	GoingGuests int64 `json:"going_guests"`
}

func (s *RSVPService) CountEventResponses(ctx context.Context, eventID uint) (EventCounts, error) {
	var counts EventCounts
	var err error

	if counts.Going, err = s.repo.CountByEventAndStatus(ctx, eventID, domain.RSVPStatusGoing); err != nil {
		return EventCounts{}, fmt.Errorf("s.repo.CountByEventAndStatus -> %w", err)
	}
	if counts.Interested, err = s.repo.CountByEventAndStatus(ctx, eventID, domain.RSVPStatusInterested); err != nil {
		return EventCounts{}, fmt.Errorf("s.repo.CountByEventAndStatus -> %w", err)
	}
	if counts.Declined, err = s.repo.CountByEventAndStatus(ctx, eventID, domain.RSVPStatusDeclined); err != nil {
		return EventCounts{}, fmt.Errorf("s.repo.CountByEventAndStatus -> %w", err)
	}
	if counts.GoingGuests, err = s.repo.SumGuestsByEventAndStatus(ctx, eventID, domain.RSVPStatusGoing); err != nil {
		return EventCounts{}, fmt.Errorf("s.repo.SumGuestsByEventAndStatus -> %w", err)
	}

	return counts, nil
}

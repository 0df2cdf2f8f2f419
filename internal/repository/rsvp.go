package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository/dao"
)

var ErrRSVPNotFound = dao.ErrRSVPNotFound

type RSVPDAO interface {
	Upsert(ctx context.Context, rsvp dao.RSVP) (dao.RSVP, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.RSVP, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.RSVP, error)
	FindByUser(ctx context.Context, userID uint) ([]dao.RSVP, error)
	Delete(ctx context.Context, eventID, userID uint) error
	CountByEventAndStatus(ctx context.Context, eventID uint, status string) (int64, error)
	SumGuestsByEventAndStatus(ctx context.Context, eventID uint, status string) (int64, error)
}

type RSVPRepository struct {
	dao RSVPDAO
}

func NewRSVPRepository(dao RSVPDAO) *RSVPRepository {
	return &RSVPRepository{
		dao: dao,
	}
}

func (r *RSVPRepository) Upsert(ctx context.Context, rsvp domain.RSVP) (domain.RSVP, error) {
	saved, err := r.dao.Upsert(ctx, dao.RSVP{
		EventID:    rsvp.EventID,
		UserID:     rsvp.UserID,
		Status:     string(rsvp.Status),
		GuestCount: rsvp.GuestCount,
	})
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *RSVPRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.RSVP, error) {
	found, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.RSVP{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RSVPRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.RSVP, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	rsvps := make([]domain.RSVP, 0, len(found))
	for _, v := range found {
		rsvps = append(rsvps, r.daoToDomain(v))
	}

	return rsvps, nil
}

func (r *RSVPRepository) FindByUser(ctx context.Context, userID uint) ([]domain.RSVP, error) {
	found, err := r.dao.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	rsvps := make([]domain.RSVP, 0, len(found))
	for _, v := range found {
		rsvps = append(rsvps, r.daoToDomain(v))
	}

	return rsvps, nil
}

func (r *RSVPRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RSVPRepository) CountByEventAndStatus(ctx context.Context, eventID uint, status domain.RSVPStatus) (int64, error) {
	count, err := r.dao.CountByEventAndStatus(ctx, eventID, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByEventAndStatus -> %w", err)
	}

	return count, nil
}

func (r *RSVPRepository) SumGuestsByEventAndStatus(ctx context.Context, eventID uint, status domain.RSVPStatus) (int64, error) {
	guests, err := r.dao.SumGuestsByEventAndStatus(ctx, eventID, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumGuestsByEventAndStatus -> %w", err)
	}

	return guests, nil
}

func (r *RSVPRepository) daoToDomain(v dao.RSVP) domain.RSVP {
	rsvp := domain.RSVP{
		ID:         v.ID,
		EventID:    v.EventID,
		UserID:     v.UserID,
		Status:     domain.RSVPStatus(v.Status),
		GuestCount: v.GuestCount,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}

	if v.User != nil {
		user := domain.User{
			ID:    v.User.ID,
			Email: v.User.Email,
			Name:  v.User.Name,
		}
		rsvp.User = &user
	}

	return rsvp
}

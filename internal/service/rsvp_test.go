package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

type rsvpKey struct {
	eventID uint
	userID  uint
}

type fakeRSVPStore struct {
	rsvps map[rsvpKey]domain.RSVP
}

func newFakeRSVPStore() *fakeRSVPStore {
	return &fakeRSVPStore{rsvps: make(map[rsvpKey]domain.RSVP)}
}

func (f *fakeRSVPStore) Upsert(_ context.Context, rsvp domain.RSVP) (domain.RSVP, error) {
	f.rsvps[rsvpKey{rsvp.EventID, rsvp.UserID}] = rsvp

	return rsvp, nil
}

func (f *fakeRSVPStore) FindByEventAndUser(_ context.Context, eventID, userID uint) (domain.RSVP, error) {
	rsvp, ok := f.rsvps[rsvpKey{eventID, userID}]
	if !ok {
		return domain.RSVP{}, repository.ErrRSVPNotFound
	}

	return rsvp, nil
}

func (f *fakeRSVPStore) FindByEvent(_ context.Context, eventID uint) ([]domain.RSVP, error) {
	var result []domain.RSVP
	for _, rsvp := range f.rsvps {
		if rsvp.EventID == eventID {
			result = append(result, rsvp)
		}
	}

	return result, nil
}

func (f *fakeRSVPStore) FindByUser(_ context.Context, userID uint) ([]domain.RSVP, error) {
	var result []domain.RSVP
	for _, rsvp := range f.rsvps {
		if rsvp.UserID == userID {
			result = append(result, rsvp)
		}
	}

	return result, nil
}

func (f *fakeRSVPStore) Delete(_ context.Context, eventID, userID uint) error {
	key := rsvpKey{eventID, userID}
	if _, ok := f.rsvps[key]; !ok {
		return repository.ErrRSVPNotFound
	}
	delete(f.rsvps, key)

	return nil
}

func (f *fakeRSVPStore) CountByEventAndStatus(_ context.Context, eventID uint, status domain.RSVPStatus) (int64, error) {
	var count int64
	for _, rsvp := range f.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == status {
			count++
		}
	}

	return count, nil
}

func (f *fakeRSVPStore) SumGuestsByEventAndStatus(_ context.Context, eventID uint, status domain.RSVPStatus) (int64, error) {
	var guests int64
	for _, rsvp := range f.rsvps {
		if rsvp.EventID == eventID && rsvp.Status == status {
			guests += int64(rsvp.GuestCount)
		}
	}

	return guests, nil
}

func newRSVPFixture() (*RSVPService, *fakeRSVPStore) {
	store := newFakeRSVPStore()
	events := &fakeEventRepo{
		events: map[uint]domain.Event{
			1: {ID: 1, Status: domain.EventPublished, EnableRSVP: true},
			2: {ID: 2, Status: domain.EventPublished, EnableRSVP: false},
			3: {ID: 3, Status: domain.EventDraft, EnableRSVP: true},
		},
	}

	return NewRSVPService(store, events), store
}

func TestRSVPService_Respond(t *testing.T) {
	t.Run("records an answer", func(t *testing.T) {
		svc, _ := newRSVPFixture()

		rsvp, err := svc.Respond(context.Background(), 1, 7, domain.RSVPStatusGoing, 3)

		require.NoError(t, err)
		assert.Equal(t, domain.RSVPStatusGoing, rsvp.Status)
		assert.Equal(t, 3, rsvp.GuestCount)
	})

	t.Run("an omitted guest count means just the responder", func(t *testing.T) {
		svc, _ := newRSVPFixture()

		rsvp, err := svc.Respond(context.Background(), 1, 7, domain.RSVPStatusGoing, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, rsvp.GuestCount)
	})

	t.Run("a second answer replaces the first", func(t *testing.T) {
		svc, store := newRSVPFixture()

		_, err := svc.Respond(context.Background(), 1, 7, domain.RSVPStatusGoing, 4)
		require.NoError(t, err)

		_, err = svc.Respond(context.Background(), 1, 7, domain.RSVPStatusDeclined, 1)
		require.NoError(t, err)

		assert.Len(t, store.rsvps, 1)
		assert.Equal(t, domain.RSVPStatusDeclined, store.rsvps[rsvpKey{1, 7}].Status)
		assert.Equal(t, 1, store.rsvps[rsvpKey{1, 7}].GuestCount)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc, _ := newRSVPFixture()

		_, err := svc.Respond(context.Background(), 1, 7, "maybe", 1)

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("rejects events without RSVP", func(t *testing.T) {
		svc, _ := newRSVPFixture()

		_, err := svc.Respond(context.Background(), 2, 7, domain.RSVPStatusGoing, 1)

		assert.ErrorIs(t, err, ErrRSVPDisabled)
	})

	t.Run("hides draft events", func(t *testing.T) {
		svc, _ := newRSVPFixture()

		_, err := svc.Respond(context.Background(), 3, 7, domain.RSVPStatusGoing, 1)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestRSVPService_CountEventResponses(t *testing.T) {
	svc, _ := newRSVPFixture()

	_, err := svc.Respond(context.Background(), 1, 7, domain.RSVPStatusGoing, 3)
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), 1, 8, domain.RSVPStatusGoing, 1)
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), 1, 9, domain.RSVPStatusInterested, 5)
	require.NoError(t, err)

	counts, err := svc.CountEventResponses(context.Background(), 1)

	require.NoError(t, err)
	// The expected headcount follows the party sizes, not the answer count.
	assert.Equal(t, EventCounts{Going: 2, Interested: 1, Declined: 0, GoingGuests: 4}, counts)
}

func TestRSVPService_Withdraw(t *testing.T) {
	t.Run("removes the answer", func(t *testing.T) {
		svc, store := newRSVPFixture()

		_, err := svc.Respond(context.Background(), 1, 7, domain.RSVPStatusGoing, 1)
		require.NoError(t, err)

		err = svc.Withdraw(context.Background(), 1, 7)

		require.NoError(t, err)
		assert.Empty(t, store.rsvps)
	})

	t.Run("withdrawing nothing reports not found", func(t *testing.T) {
		svc, _ := newRSVPFixture()

		err := svc.Withdraw(context.Background(), 1, 7)

		assert.ErrorIs(t, err, ErrRSVPNotFound)
	})
}

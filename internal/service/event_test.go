package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
)

type fakeEventStore struct {
	events map[uint]domain.Event
	nextID uint
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events: make(map[uint]domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventStore) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = f.nextID
	f.nextID++
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventStore) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventStore) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventStore) FindAll(_ context.Context, status domain.EventStatus, _ bool) ([]domain.Event, error) {
	var result []domain.Event
	for _, event := range f.events {
		if status == "" || event.Status == status {
			result = append(result, event)
		}
	}

	return result, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.events, id)

	return nil
}

func (f *fakeEventStore) FindTicketTypeByID(_ context.Context, _ uint) (domain.TicketType, error) {
	return domain.TicketType{}, repository.ErrTicketTypeNotFound
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Run("defaults to draft with all seats open", func(t *testing.T) {
		svc := NewEventService(newFakeEventStore())

		event, err := svc.CreateEvent(context.Background(), domain.Event{
			Title:      "Summer Concert",
			TotalSeats: 50,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.EventDraft, event.Status)
		assert.Equal(t, 50, event.AvailableSeats)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	t.Run("capacity changes keep sold seats intact", func(t *testing.T) {
		store := newFakeEventStore()
		svc := NewEventService(store)

		created, err := svc.CreateEvent(context.Background(), domain.Event{
			Title:      "Summer Concert",
			TotalSeats: 100,
		})
		require.NoError(t, err)

		// 30 seats sold.
		sold := store.events[created.ID]
		sold.AvailableSeats = 70
		store.events[created.ID] = sold

		created.TotalSeats = 120
		updated, err := svc.UpdateEvent(context.Background(), created)

		require.NoError(t, err)
		assert.Equal(t, 90, updated.AvailableSeats)
	})

	t.Run("shrinking below sold floors at zero", func(t *testing.T) {
		store := newFakeEventStore()
		svc := NewEventService(store)

		created, err := svc.CreateEvent(context.Background(), domain.Event{
			Title:      "Summer Concert",
			TotalSeats: 100,
		})
		require.NoError(t, err)

		sold := store.events[created.ID]
		sold.AvailableSeats = 10
		store.events[created.ID] = sold

		created.TotalSeats = 50
		updated, err := svc.UpdateEvent(context.Background(), created)

		require.NoError(t, err)
		assert.Equal(t, 0, updated.AvailableSeats)
	})
}

func TestEventService_GetPublishedEvent(t *testing.T) {
	t.Run("drafts are invisible to visitors", func(t *testing.T) {
		store := newFakeEventStore()
		svc := NewEventService(store)

		created, err := svc.CreateEvent(context.Background(), domain.Event{Title: "Secret"})
		require.NoError(t, err)

		_, err = svc.GetPublishedEvent(context.Background(), created.ID)

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("published events are visible", func(t *testing.T) {
		store := newFakeEventStore()
		svc := NewEventService(store)

		created, err := svc.CreateEvent(context.Background(), domain.Event{Title: "Open"})
		require.NoError(t, err)

		_, err = svc.PublishEvent(context.Background(), created.ID)
		require.NoError(t, err)

		event, err := svc.GetPublishedEvent(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.EventPublished, event.Status)
	})

	t.Run("the map flag is dropped without coordinates", func(t *testing.T) {
		store := newFakeEventStore()
		svc := NewEventService(store)

		created, err := svc.CreateEvent(context.Background(), domain.Event{
			Title:   "No Pin",
			ShowMap: true,
		})
		require.NoError(t, err)

		_, err = svc.PublishEvent(context.Background(), created.ID)
		require.NoError(t, err)

		event, err := svc.GetPublishedEvent(context.Background(), created.ID)

		require.NoError(t, err)
		assert.False(t, event.ShowMap)
	})
}

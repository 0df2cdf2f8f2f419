package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Confirmable(t *testing.T) {
	tests := []struct {
		name   string
		status BookingStatus
		want   bool
	}{
		{name: "pending is confirmable", status: BookingPending, want: true},
		{name: "confirmed is terminal", status: BookingConfirmed, want: false},
		{name: "cancelled is terminal", status: BookingCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := Booking{Status: tt.status}

			assert.Equal(t, tt.want, booking.Confirmable())
		})
	}
}

func TestBooking_Cancellable(t *testing.T) {
	tests := []struct {
		name   string
		status BookingStatus
		want   bool
	}{
		{name: "confirmed is cancellable", status: BookingConfirmed, want: true},
		{name: "pending is cancellable", status: BookingPending, want: true},
		{name: "cancelled is terminal", status: BookingCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := Booking{Status: tt.status}

			assert.Equal(t, tt.want, booking.Cancellable())
		})
	}
}

func TestEvent_HasAvailableSeats(t *testing.T) {
	event := Event{AvailableSeats: 3}

	assert.True(t, event.HasAvailableSeats(3))
	assert.False(t, event.HasAvailableSeats(4))
}

func TestTicketType_HasAvailableTickets(t *testing.T) {
	ticketType := TicketType{AvailableQuantity: 2}

	assert.True(t, ticketType.HasAvailableTickets(2))
	assert.False(t, ticketType.HasAvailableTickets(3))
}

func TestEvent_HasLocation(t *testing.T) {
	lat, lng := 48.86, 2.35

	located := Event{Latitude: &lat, Longitude: &lng}
	partial := Event{Latitude: &lat}

	assert.True(t, located.HasLocation())
	assert.False(t, partial.HasLocation())
	assert.False(t, (&Event{}).HasLocation())
}

func TestEvent_IsPast(t *testing.T) {
	past := Event{Date: time.Now().Add(-time.Hour)}
	upcoming := Event{Date: time.Now().Add(time.Hour)}

	assert.True(t, past.IsPast())
	assert.False(t, upcoming.IsPast())
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
)

type Event struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	Date            time.Time       `json:"date"`
	Venue           string          `json:"venue"`
	Location        string          `json:"location"`
	Latitude        *float64        `json:"latitude"`
	Longitude       *float64        `json:"longitude"`
	ShowMap         bool            `json:"show_map"`
	EnableTicketing bool            `json:"enable_ticketing"`
	EnableRSVP      bool            `json:"enable_rsvp"`
	Price           decimal.Decimal `json:"price"`
	TotalSeats      int             `json:"total_seats"`
	AvailableSeats  int             `json:"available_seats"`
	Status          EventStatus     `json:"status"`
	TicketTypes     []TicketType    `json:"ticket_types,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (e *Event) IsPublished() bool {
	return e.Status == EventPublished
}

func (e *Event) HasAvailableSeats(n int) bool {
	return e.AvailableSeats >= n
}

func (e *Event) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}

func (e *Event) IsPast() bool {
	return e.Date.Before(time.Now())
}

type TicketType struct {
	ID                uint            `json:"id"`
	EventID           uint            `json:"event_id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Description       string          `json:"description"`
	AvailableQuantity int             `json:"available_quantity"`
	MaxPerOrder       int             `json:"max_per_order"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (t *TicketType) HasAvailableTickets(n int) bool {
	return t.AvailableQuantity >= n
}

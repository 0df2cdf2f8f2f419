package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type TicketTypeRequest struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	AvailableQuantity int             `json:"available_quantity"`
	MaxPerOrder       int             `json:"max_per_order"`
}

func (req TicketTypeRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.By(nonNegativeAmount)),
		validation.Field(&req.AvailableQuantity, validation.Min(0)),
	)
}

type CreateEventRequest struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Image           string              `json:"image"`
	Date            time.Time           `json:"date"`
	Venue           string              `json:"venue"`
	Location        string              `json:"location"`
	Latitude        *float64            `json:"latitude"`
	Longitude       *float64            `json:"longitude"`
	ShowMap         bool                `json:"show_map"`
	EnableTicketing *bool               `json:"enable_ticketing"`
	EnableRSVP      *bool               `json:"enable_rsvp"`
	Price           decimal.Decimal     `json:"price"`
	TotalSeats      int                 `json:"total_seats"`
	Status          string              `json:"status"`
	TicketTypes     []TicketTypeRequest `json:"ticket_types"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Price, validation.By(nonNegativeAmount)),
		validation.Field(&req.TotalSeats, validation.Required, validation.Min(1)),
		validation.Field(&req.Status, validation.In("", "draft", "published")),
		validation.Field(&req.Latitude, validation.By(validLatitude)),
		validation.Field(&req.Longitude, validation.By(validLongitude)),
		validation.Field(&req.TicketTypes),
	)
}

type UpdateEventRequest struct {
	CreateEventRequest
}

func nonNegativeAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_amount", "must be a decimal amount")
	}
	if amount.IsNegative() {
		return validation.NewError("validation_amount_negative", "must not be negative")
	}

	return nil
}

func validLatitude(value interface{}) error {
	lat, ok := value.(*float64)
	if !ok || lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return validation.NewError("validation_latitude", "must be between -90 and 90")
	}

	return nil
}

func validLongitude(value interface{}) error {
	long, ok := value.(*float64)
	if !ok || long == nil {
		return nil
	}
	if *long < -180 || *long > 180 {
		return validation.NewError("validation_longitude", "must be between -180 and 180")
	}

	return nil
}

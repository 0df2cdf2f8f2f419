package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateBookingRequest struct {
	EventID      uint  `json:"event_id"`
	TicketTypeID *uint `json:"ticket_type_id"`
	TicketCount  int   `json:"ticket_count"`
}

func (req *CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.TicketCount, validation.Required, validation.Min(1), validation.Max(20)),
	)
}

type CheckoutRequest struct {
	BookingID uint `json:"booking_id"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BookingID, validation.Required),
	)
}

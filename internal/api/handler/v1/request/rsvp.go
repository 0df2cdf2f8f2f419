package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type RSVPRequest struct {
	Status string `json:"status"`
	// GuestCount is the party size the answer covers. Zero means just the
	// responder.
	GuestCount int `json:"guest_count"`
}

func (req *RSVPRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("going", "interested", "declined")),
		validation.Field(&req.GuestCount, validation.Min(0), validation.Max(20)),
	)
}

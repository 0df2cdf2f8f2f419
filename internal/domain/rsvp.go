package domain

import "time"

type RSVPStatus string

const (
	RSVPStatusGoing      RSVPStatus = "going"
	RSVPStatusInterested RSVPStatus = "interested"
	RSVPStatusDeclined   RSVPStatus = "declined"
)

// ValidRSVPStatus reports whether s is one of the accepted RSVP answers.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPStatusGoing, RSVPStatusInterested, RSVPStatusDeclined:
		return true
	}
	return false
}

type RSVP struct {
	ID      uint       `json:"id"`
	EventID uint       `json:"event_id"`
	UserID  uint       `json:"user_id"`
	Status  RSVPStatus `json:"status"`

	// GuestCount is the party size the answer stands for, the responder
	// included.
	GuestCount int `json:"guest_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Event *Event `json:"event,omitempty"`
	User  *User  `json:"user,omitempty"`
}

package response

import (
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// CheckoutResponse is returned when a payment has been set up with a
// gateway. RedirectURL is empty for client-opened checkouts, in which case
// ClientParams holds what the frontend needs.
type CheckoutResponse struct {
	Booking      domain.Booking    `json:"booking"`
	Gateway      string            `json:"gateway"`
	CheckoutRef  string            `json:"checkout_ref"`
	RedirectURL  string            `json:"redirect_url,omitempty"`
	ClientParams map[string]string `json:"client_params,omitempty"`
}

type GatewaysResponse struct {
	Gateways []string `json:"gateways"`
}

type TicketVerificationResponse struct {
	Valid   bool           `json:"valid"`
	Booking domain.Booking `json:"booking"`
}

type SweepResponse struct {
	Swept int `json:"swept"`
}

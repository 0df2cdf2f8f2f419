package domain

import "github.com/shopspring/decimal"

// MonthlyRevenue is one month of confirmed booking revenue. Month is
// formatted "YYYY-MM".
type MonthlyRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopEvent ranks an event by confirmed ticket sales.
type TopEvent struct {
	EventID     uint            `json:"event_id"`
	Title       string          `json:"title"`
	TicketsSold int64           `json:"tickets_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

package models

import "time"

// OrderLine is one priced line of a submitted order.
type OrderLine struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

// Order is the cart contents handed to a checkout submitter.
type Order struct {
	SessionID string      `json:"-"`
	Lines     []OrderLine `json:"lines"`
	ItemCount int         `json:"itemCount"`
	Total     int64       `json:"total"`
	Currency  string      `json:"currency"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Receipt confirms an accepted order.
type Receipt struct {
	ID         string    `json:"id"`
	Total      int64     `json:"total"`
	ItemCount  int       `json:"itemCount"`
	Currency   string    `json:"currency"`
	AcceptedAt time.Time `json:"acceptedAt"`
}

package models

import (
	"errors"
	"time"
)

// Quantity bounds for a single ticket purchase
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Ticket represents a paid ticket for a club event. It is created exactly
// once per successful purchase and never mutated or deleted by the purchase
// flow.
type Ticket struct {
	ID          string    `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	ClubID      int       `json:"club_id" db:"club_id"`
	EventID     int       `json:"event_id" db:"event_id"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`
	TotalPrice  int       `json:"total_price" db:"total_price"` // Amount paid in cents
	EventDate   time.Time `json:"event_date" db:"event_date"`   // Denormalized copy
	Quantity    int       `json:"quantity" db:"quantity"`       // Number of people, 1..10
}

// Validate validates the ticket data
func (t *Ticket) Validate() error {
	if t.ID == "" {
		return errors.New("ticket id is required")
	}

	if t.UserID <= 0 {
		return errors.New("ticket user is required")
	}

	if t.ClubID <= 0 {
		return errors.New("ticket club is required")
	}

	if t.EventID <= 0 {
		return errors.New("ticket event is required")
	}

	if t.Quantity < MinQuantity || t.Quantity > MaxQuantity {
		return errors.New("ticket quantity must be between 1 and 10")
	}

	if t.TotalPrice < 0 {
		return errors.New("ticket total price cannot be negative")
	}

	if t.EventDate.IsZero() {
		return errors.New("ticket event date is required")
	}

	return nil
}

// TotalPriceInCurrency returns the amount paid in the main currency as a float
func (t *Ticket) TotalPriceInCurrency() float64 {
	return float64(t.TotalPrice) / 100.0
}

package models

import (
	"errors"
	"strings"
	"time"
)

// Event represents a club event that tickets can be purchased for
type Event struct {
	ID          int       `json:"id" db:"id"`
	ClubID      int       `json:"club_id" db:"club_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	EventDate   time.Time `json:"event_date" db:"event_date"`
	Price       int       `json:"price" db:"price"` // Unit price in cents
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Related data
	Club *Club `json:"club,omitempty"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	ClubID      int       `json:"club_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Price       int       `json:"price"`
	ImageURL    string    `json:"image_url"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if req.ClubID <= 0 {
		return errors.New("club is required")
	}

	if err := validateEventName(req.Name); err != nil {
		return err
	}

	if err := validateEventPrice(req.Price); err != nil {
		return err
	}

	if req.EventDate.IsZero() {
		return errors.New("event date is required")
	}

	if len(req.Description) > 1000 {
		return errors.New("event description must be less than 1000 characters")
	}

	return nil
}

// validateEventName validates an event name
func validateEventName(name string) error {
	if name == "" {
		return errors.New("event name is required")
	}

	if len(name) > 100 {
		return errors.New("event name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("event name cannot be only whitespace")
	}

	return nil
}

// validateEventPrice validates an event ticket price
func validateEventPrice(price int) error {
	if price < 0 {
		return errors.New("event price cannot be negative")
	}

	// Maximum price of $10,000 (1,000,000 cents)
	if price > 1000000 {
		return errors.New("event price cannot exceed $10,000")
	}

	return nil
}

// IsUpcoming returns true if the event has not started yet
func (e *Event) IsUpcoming() bool {
	return e.EventDate.After(time.Now())
}

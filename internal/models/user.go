package models

import "time"

// User is the identity projection used by the purchase flow and club
// ownership checks. Authentication itself is delegated to the session layer.
type User struct {
	ID          int       `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

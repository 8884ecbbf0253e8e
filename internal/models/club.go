package models

import (
	"errors"
	"strings"
	"time"
)

// Club represents a nightlife venue
type Club struct {
	ID           int       `json:"id" db:"id"`
	OwnerID      int       `json:"owner_id" db:"owner_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Address      string    `json:"address" db:"address"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	OpeningHours string    `json:"opening_hours" db:"opening_hours"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ClubCreateRequest represents the data needed to create a new club
type ClubCreateRequest struct {
	OwnerID      int     `json:"owner_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ImageURL     string  `json:"image_url"`
	OpeningHours string  `json:"opening_hours"`
}

// ClubUpdateRequest represents the data that can be updated for a club
type ClubUpdateRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ImageURL     string  `json:"image_url"`
	OpeningHours string  `json:"opening_hours"`
}

// Validate validates club creation data
func (req *ClubCreateRequest) Validate() error {
	if req.OwnerID <= 0 {
		return errors.New("owner is required")
	}

	if err := validateClubName(req.Name); err != nil {
		return err
	}

	if err := validateClubAddress(req.Address); err != nil {
		return err
	}

	if err := validateClubCoordinates(req.Latitude, req.Longitude); err != nil {
		return err
	}

	return validateClubDescription(req.Description)
}

// Validate validates club update data
func (req *ClubUpdateRequest) Validate() error {
	if err := validateClubName(req.Name); err != nil {
		return err
	}

	if err := validateClubAddress(req.Address); err != nil {
		return err
	}

	if err := validateClubCoordinates(req.Latitude, req.Longitude); err != nil {
		return err
	}

	return validateClubDescription(req.Description)
}

// validateClubName validates a club name
func validateClubName(name string) error {
	if name == "" {
		return errors.New("club name is required")
	}

	if len(name) > 100 {
		return errors.New("club name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("club name cannot be only whitespace")
	}

	return nil
}

// validateClubAddress validates a club address
func validateClubAddress(address string) error {
	if address == "" {
		return errors.New("club address is required")
	}

	if len(address) > 255 {
		return errors.New("club address must be less than 255 characters")
	}

	return nil
}

// validateClubCoordinates validates club map coordinates
func validateClubCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return errors.New("latitude must be between -90 and 90")
	}

	if longitude < -180 || longitude > 180 {
		return errors.New("longitude must be between -180 and 180")
	}

	return nil
}

// validateClubDescription validates a club description
func validateClubDescription(description string) error {
	// Description is optional, but if provided, it should not be too long
	if len(description) > 1000 {
		return errors.New("club description must be less than 1000 characters")
	}

	return nil
}

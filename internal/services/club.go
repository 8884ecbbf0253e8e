package services

import (
	"fmt"

	"nightlife-ticketing-platform/internal/models"
)

// ClubRepository interface for club data operations
type ClubRepository interface {
	Create(req *models.ClubCreateRequest) (*models.Club, error)
	GetByID(id int) (*models.Club, error)
	Update(id int, req *models.ClubUpdateRequest) (*models.Club, error)
	Delete(id int) error
	List(limit, offset int) ([]*models.Club, int, error)
	GetByOwner(ownerID int) ([]*models.Club, error)
}

// ClubService handles club-related business logic
type ClubService struct {
	clubRepo ClubRepository
}

// NewClubService creates a new club service
func NewClubService(clubRepo ClubRepository) *ClubService {
	return &ClubService{clubRepo: clubRepo}
}

// CreateClub creates a club owned by the given user
func (s *ClubService) CreateClub(ownerID int, req *models.ClubCreateRequest) (*models.Club, error) {
	req.OwnerID = ownerID
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	return s.clubRepo.Create(req)
}

// GetClub retrieves a club by ID
func (s *ClubService) GetClub(id int) (*models.Club, error) {
	return s.clubRepo.GetByID(id)
}

// UpdateClub updates a club after checking the requesting user owns it
func (s *ClubService) UpdateClub(id int, requestingUserID int, req *models.ClubUpdateRequest) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if club.OwnerID != requestingUserID {
		return nil, fmt.Errorf("%w: only the owner can update this club", models.ErrUnauthorized)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	return s.clubRepo.Update(id, req)
}

// DeleteClub deletes a club after checking the requesting user owns it
func (s *ClubService) DeleteClub(id int, requestingUserID int) error {
	club, err := s.clubRepo.GetByID(id)
	if err != nil {
		return err
	}

	if club.OwnerID != requestingUserID {
		return fmt.Errorf("%w: only the owner can delete this club", models.ErrUnauthorized)
	}

	return s.clubRepo.Delete(id)
}

// ListClubs retrieves clubs with pagination
func (s *ClubService) ListClubs(page, perPage int) ([]*models.Club, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}

	return s.clubRepo.List(perPage, (page-1)*perPage)
}

// GetOwnedClubs retrieves clubs owned by a user
func (s *ClubService) GetOwnedClubs(ownerID int) ([]*models.Club, error) {
	return s.clubRepo.GetByOwner(ownerID)
}

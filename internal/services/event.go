package services

import (
	"fmt"
	"time"

	"nightlife-ticketing-platform/internal/models"
	"nightlife-ticketing-platform/internal/repositories"
)

// EventRepository interface for event data operations
type EventRepository interface {
	Create(req *models.EventCreateRequest) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	Search(filters repositories.EventSearchFilters) ([]*models.Event, int, error)
	GetByClub(clubID int) ([]*models.Event, error)
}

// EventService handles event-related business logic
type EventService struct {
	eventRepo EventRepository
	clubRepo  ClubRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, clubRepo ClubRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
	}
}

// CreateEvent creates an event after checking the requesting user owns the
// club it belongs to
func (s *EventService) CreateEvent(requestingUserID int, req *models.EventCreateRequest) (*models.Event, error) {
	club, err := s.clubRepo.GetByID(req.ClubID)
	if err != nil {
		return nil, err
	}

	if club.OwnerID != requestingUserID {
		return nil, fmt.Errorf("%w: only the club owner can create events", models.ErrUnauthorized)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	return s.eventRepo.Create(req)
}

// GetEvent retrieves an event with its club attached
func (s *EventService) GetEvent(id int) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	club, err := s.clubRepo.GetByID(event.ClubID)
	if err == nil {
		event.Club = club
	}

	return event, nil
}

// UpcomingEvents retrieves upcoming events with pagination, optionally
// filtered by club
func (s *EventService) UpcomingEvents(clubID, page, perPage int) ([]*models.Event, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 20
	}

	now := time.Now()
	filters := repositories.EventSearchFilters{
		ClubID:   clubID,
		DateFrom: &now,
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	return s.eventRepo.Search(filters)
}

// GetClubEvents retrieves all events for a club
func (s *EventService) GetClubEvents(clubID int) ([]*models.Event, error) {
	return s.eventRepo.GetByClub(clubID)
}

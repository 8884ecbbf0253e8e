package services

import (
	"context"

	"nightlife-ticketing-platform/internal/models"
)

// ClubServiceInterface defines the interface for club services
type ClubServiceInterface interface {
	CreateClub(ownerID int, req *models.ClubCreateRequest) (*models.Club, error)
	GetClub(id int) (*models.Club, error)
	UpdateClub(id int, requestingUserID int, req *models.ClubUpdateRequest) (*models.Club, error)
	DeleteClub(id int, requestingUserID int) error
	ListClubs(page, perPage int) ([]*models.Club, int, error)
	GetOwnedClubs(ownerID int) ([]*models.Club, error)
}

// EventServiceInterface defines the interface for event services
type EventServiceInterface interface {
	CreateEvent(requestingUserID int, req *models.EventCreateRequest) (*models.Event, error)
	GetEvent(id int) (*models.Event, error)
	UpcomingEvents(clubID, page, perPage int) ([]*models.Event, int, error)
	GetClubEvents(clubID int) ([]*models.Event, error)
}

// TicketServiceInterface defines the interface for ticket services
type TicketServiceInterface interface {
	GetUserTickets(userID int) ([]*models.Ticket, error)
	GetTicket(id string, requestingUserID int) (*models.Ticket, error)
	EventAttendance(eventID int) (int, error)
}

// PurchaseServiceInterface defines the interface for the purchase
// orchestrator
type PurchaseServiceInterface interface {
	Begin(ctx context.Context, eventID, userID int) (*PurchaseSession, error)
	Get(sessionID string, userID int) (*PurchaseSession, error)
	SetQuantity(ctx context.Context, sessionID string, userID, quantity int) (*PurchaseSession, error)
	Purchase(ctx context.Context, sessionID string, userID int) (*models.Ticket, error)
}

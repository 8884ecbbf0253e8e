package services

import (
	"fmt"

	"nightlife-ticketing-platform/internal/models"
)

// TicketRepository interface for ticket data operations
type TicketRepository interface {
	Create(ticket *models.Ticket) (*models.Ticket, error)
	GetByID(id string) (*models.Ticket, error)
	GetByUser(userID int) ([]*models.Ticket, error)
	CountForEvent(eventID int) (int, error)
}

// TicketService handles ticket-related business logic
type TicketService struct {
	ticketRepo TicketRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo TicketRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

// GetUserTickets retrieves all tickets purchased by a user
func (s *TicketService) GetUserTickets(userID int) ([]*models.Ticket, error) {
	return s.ticketRepo.GetByUser(userID)
}

// GetTicket retrieves a ticket with permission checking: users can only
// view their own tickets
func (s *TicketService) GetTicket(id string, requestingUserID int) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: insufficient permissions to view this ticket", models.ErrUnauthorized)
	}

	return ticket, nil
}

// EventAttendance returns the number of people ticketed for an event
func (s *TicketService) EventAttendance(eventID int) (int, error) {
	return s.ticketRepo.CountForEvent(eventID)
}

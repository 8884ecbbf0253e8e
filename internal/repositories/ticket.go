package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"nightlife-ticketing-platform/internal/models"

	"github.com/lib/pq"
)

// TicketRepository handles ticket data operations. It is the persister for
// the purchase flow: a ticket row must only ever be written after the
// payment provider has confirmed the matching payment.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, user_id, club_id, event_id, purchased_at, total_price, event_date, quantity`

// Create inserts a ticket and returns the created row. An insert that
// returns no row is treated the same as a driver error: the write did not
// durably occur.
func (r *TicketRepository) Create(ticket *models.Ticket) (*models.Ticket, error) {
	if err := ticket.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tickets (id, user_id, club_id, event_id, purchased_at, total_price, event_date, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ticketColumns

	created := &models.Ticket{}
	err := r.db.QueryRow(
		query,
		ticket.ID,
		ticket.UserID,
		ticket.ClubID,
		ticket.EventID,
		ticket.PurchasedAt,
		ticket.TotalPrice,
		ticket.EventDate,
		ticket.Quantity,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.ClubID,
		&created.EventID,
		&created.PurchasedAt,
		&created.TotalPrice,
		&created.EventDate,
		&created.Quantity,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("ticket insert returned no row")
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: ticket %s already exists", models.ErrDuplicateEntry, ticket.ID)
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return created, nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(id string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket := &models.Ticket{}
	err := r.db.QueryRow(query, id).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.ClubID,
		&ticket.EventID,
		&ticket.PurchasedAt,
		&ticket.TotalPrice,
		&ticket.EventDate,
		&ticket.Quantity,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return ticket, nil
}

// GetByUser retrieves all tickets purchased by a user, newest first
func (r *TicketRepository) GetByUser(userID int) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY purchased_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets by user: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket := &models.Ticket{}
		err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.ClubID,
			&ticket.EventID,
			&ticket.PurchasedAt,
			&ticket.TotalPrice,
			&ticket.EventDate,
			&ticket.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

// CountForEvent returns the number of people ticketed for an event
func (r *TicketRepository) CountForEvent(eventID int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COALESCE(SUM(quantity), 0) FROM tickets WHERE event_id = $1", eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets for event: %w", err)
	}

	return count, nil
}

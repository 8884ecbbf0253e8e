package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nightlife-ticketing-platform/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventSearchFilters represents filters for event listings
type EventSearchFilters struct {
	ClubID   int        // Filter by club, 0 means all clubs
	DateFrom *time.Time // Events on or after this date
	DateTo   *time.Time // Events before this date
	Limit    int        // Number of results to return
	Offset   int        // Number of results to skip
}

const eventColumns = `id, club_id, name, description, event_date, price, image_url, created_at`

// Create creates a new event
func (r *EventRepository) Create(req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO events (club_id, name, description, event_date, price, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	event := &models.Event{}
	err := r.db.QueryRow(
		query,
		req.ClubID,
		req.Name,
		req.Description,
		req.EventDate,
		req.Price,
		req.ImageURL,
		time.Now(),
	).Scan(
		&event.ID,
		&event.ClubID,
		&event.Name,
		&event.Description,
		&event.EventDate,
		&event.Price,
		&event.ImageURL,
		&event.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event := &models.Event{}
	err := r.db.QueryRow(query, id).Scan(
		&event.ID,
		&event.ClubID,
		&event.Name,
		&event.Description,
		&event.EventDate,
		&event.Price,
		&event.ImageURL,
		&event.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// Search retrieves events matching the given filters, soonest first
func (r *EventRepository) Search(filters EventSearchFilters) ([]*models.Event, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filters.ClubID > 0 {
		where += fmt.Sprintf(" AND club_id = $%d", argIndex)
		args = append(args, filters.ClubID)
		argIndex++
	}

	if filters.DateFrom != nil {
		where += fmt.Sprintf(" AND event_date >= $%d", argIndex)
		args = append(args, *filters.DateFrom)
		argIndex++
	}

	if filters.DateTo != nil {
		where += fmt.Sprintf(" AND event_date < $%d", argIndex)
		args = append(args, *filters.DateTo)
		argIndex++
	}

	// Get total count for pagination
	var total int
	countQuery := "SELECT COUNT(*) FROM events " + where
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM events %s ORDER BY event_date ASC LIMIT $%d OFFSET $%d",
		eventColumns, where, argIndex, argIndex+1,
	)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(
			&event.ID,
			&event.ClubID,
			&event.Name,
			&event.Description,
			&event.EventDate,
			&event.Price,
			&event.ImageURL,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, total, rows.Err()
}

// GetByClub retrieves all events for a club, soonest first
func (r *EventRepository) GetByClub(clubID int) ([]*models.Event, error) {
	events, _, err := r.Search(EventSearchFilters{ClubID: clubID, Limit: 100})
	return events, err
}

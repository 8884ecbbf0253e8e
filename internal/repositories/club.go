package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nightlife-ticketing-platform/internal/models"
)

// ClubRepository handles club data operations
type ClubRepository struct {
	db *sql.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *sql.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubColumns = `id, owner_id, name, description, address, latitude, longitude, image_url, opening_hours, created_at, updated_at`

func scanClub(row *sql.Row) (*models.Club, error) {
	club := &models.Club{}
	err := row.Scan(
		&club.ID,
		&club.OwnerID,
		&club.Name,
		&club.Description,
		&club.Address,
		&club.Latitude,
		&club.Longitude,
		&club.ImageURL,
		&club.OpeningHours,
		&club.CreatedAt,
		&club.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return club, nil
}

// Create creates a new club
func (r *ClubRepository) Create(req *models.ClubCreateRequest) (*models.Club, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO clubs (owner_id, name, description, address, latitude, longitude, image_url, opening_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + clubColumns

	now := time.Now()
	row := r.db.QueryRow(
		query,
		req.OwnerID,
		req.Name,
		req.Description,
		req.Address,
		req.Latitude,
		req.Longitude,
		req.ImageURL,
		req.OpeningHours,
		now,
		now,
	)

	club, err := scanClub(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	return club, nil
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(id int) (*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE id = $1`

	club, err := scanClub(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}

	return club, nil
}

// Update updates a club
func (r *ClubRepository) Update(id int, req *models.ClubUpdateRequest) (*models.Club, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE clubs
		SET name = $1, description = $2, address = $3, latitude = $4, longitude = $5, image_url = $6, opening_hours = $7, updated_at = $8
		WHERE id = $9
		RETURNING ` + clubColumns

	row := r.db.QueryRow(
		query,
		req.Name,
		req.Description,
		req.Address,
		req.Latitude,
		req.Longitude,
		req.ImageURL,
		req.OpeningHours,
		time.Now(),
		id,
	)

	club, err := scanClub(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to update club: %w", err)
	}

	return club, nil
}

// Delete deletes a club
func (r *ClubRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM clubs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rows == 0 {
		return models.ErrClubNotFound
	}

	return nil
}

// List retrieves clubs with pagination, newest first
func (r *ClubRepository) List(limit, offset int) ([]*models.Club, int, error) {
	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM clubs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clubs: %w", err)
	}

	query := `SELECT ` + clubColumns + ` FROM clubs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*models.Club
	for rows.Next() {
		club := &models.Club{}
		err := rows.Scan(
			&club.ID,
			&club.OwnerID,
			&club.Name,
			&club.Description,
			&club.Address,
			&club.Latitude,
			&club.Longitude,
			&club.ImageURL,
			&club.OpeningHours,
			&club.CreatedAt,
			&club.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	return clubs, total, rows.Err()
}

// GetByOwner retrieves all clubs owned by a user
func (r *ClubRepository) GetByOwner(ownerID int) ([]*models.Club, error) {
	query := `SELECT ` + clubColumns + ` FROM clubs WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get clubs by owner: %w", err)
	}
	defer rows.Close()

	var clubs []*models.Club
	for rows.Next() {
		club := &models.Club{}
		err := rows.Scan(
			&club.ID,
			&club.OwnerID,
			&club.Name,
			&club.Description,
			&club.Address,
			&club.Latitude,
			&club.Longitude,
			&club.ImageURL,
			&club.OpeningHours,
			&club.CreatedAt,
			&club.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	return clubs, rows.Err()
}

package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// PaymentDivergence records a payment that was captured while the
// corresponding ticket write failed. These rows exist solely for manual
// reconciliation by operators.
type PaymentDivergence struct {
	ID         int        `json:"id" db:"id"`
	PaymentRef string     `json:"payment_ref" db:"payment_ref"`
	UserID     int        `json:"user_id" db:"user_id"`
	EventID    int        `json:"event_id" db:"event_id"`
	Amount     int        `json:"amount" db:"amount"` // In cents
	Quantity   int        `json:"quantity" db:"quantity"`
	Reason     string     `json:"reason" db:"reason"`
	Resolved   bool       `json:"resolved" db:"resolved"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at" db:"resolved_at"`
}

// ReconciliationRepository stores payment divergences
type ReconciliationRepository struct {
	db *sql.DB
}

// NewReconciliationRepository creates a new reconciliation repository
func NewReconciliationRepository(db *sql.DB) *ReconciliationRepository {
	return &ReconciliationRepository{db: db}
}

// Record stores a new unresolved divergence
func (r *ReconciliationRepository) Record(paymentRef string, userID, eventID, amount, quantity int, reason string) error {
	query := `
		INSERT INTO payment_reconciliation (payment_ref, user_id, event_id, amount, quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, paymentRef, userID, eventID, amount, quantity, reason, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record payment divergence: %w", err)
	}

	return nil
}

// ListUnresolved returns all divergences awaiting manual reconciliation
func (r *ReconciliationRepository) ListUnresolved() ([]*PaymentDivergence, error) {
	query := `
		SELECT id, payment_ref, user_id, event_id, amount, quantity, reason, resolved, created_at, resolved_at
		FROM payment_reconciliation
		WHERE resolved = FALSE
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment divergences: %w", err)
	}
	defer rows.Close()

	var divergences []*PaymentDivergence
	for rows.Next() {
		d := &PaymentDivergence{}
		err := rows.Scan(
			&d.ID,
			&d.PaymentRef,
			&d.UserID,
			&d.EventID,
			&d.Amount,
			&d.Quantity,
			&d.Reason,
			&d.Resolved,
			&d.CreatedAt,
			&d.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment divergence: %w", err)
		}
		divergences = append(divergences, d)
	}

	return divergences, rows.Err()
}

// MarkResolved marks a divergence as manually reconciled
func (r *ReconciliationRepository) MarkResolved(id int) error {
	result, err := r.db.Exec(
		"UPDATE payment_reconciliation SET resolved = TRUE, resolved_at = $1 WHERE id = $2",
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve payment divergence: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check resolved rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("payment divergence %d not found", id)
	}

	return nil
}

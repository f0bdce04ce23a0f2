// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/ports/secondary"
)

// DisasterRepository implements secondary.DisasterRepository with SQLite.
type DisasterRepository struct {
	db *sql.DB
}

// NewDisasterRepository creates a new SQLite disaster repository.
func NewDisasterRepository(db *sql.DB) *DisasterRepository {
	return &DisasterRepository{db: db}
}

// Create persists a new disaster with an audit row in the same transaction.
func (r *DisasterRepository) Create(ctx context.Context, disaster *secondary.DisasterRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO disasters (id, name, severity, status) VALUES (?, ?, ?, ?)`,
		disaster.ID,
		disaster.Name,
		disaster.Severity,
		disaster.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create disaster: %w", err)
	}

	if err := audit(ctx, tx, "disaster", disaster.ID, "create", "", "", disaster.Name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit disaster: %w", err)
	}
	return nil
}

// GetByID retrieves a disaster by its ID.
func (r *DisasterRepository) GetByID(ctx context.Context, id string) (*secondary.DisasterRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.DisasterRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, severity, status, created_at, updated_at FROM disasters WHERE id = ?`,
		id,
	).Scan(&record.ID, &record.Name, &record.Severity, &record.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("disaster %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get disaster: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves disasters matching the given filters.
func (r *DisasterRepository) List(ctx context.Context, filters secondary.DisasterFilters) ([]*secondary.DisasterRecord, error) {
	query := `SELECT id, name, severity, status, created_at, updated_at FROM disasters WHERE 1=1`
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.Severity != "" {
		query += " AND severity = ?"
		args = append(args, filters.Severity)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list disasters: %w", err)
	}
	defer rows.Close()

	var disasters []*secondary.DisasterRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time

		record := &secondary.DisasterRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Severity, &record.Status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan disaster: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		disasters = append(disasters, record)
	}

	return disasters, nil
}

// UpdateStatus updates the status of a disaster, with an audit row in the
// same transaction.
func (r *DisasterRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT status FROM disasters WHERE id = ?", id).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("disaster %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read disaster: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE disasters SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update disaster status: %w", err)
	}

	if err := audit(ctx, tx, "disaster", id, "update", "status", oldStatus, status); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit disaster status: %w", err)
	}
	return nil
}

// GetNextID returns the next available disaster ID.
func (r *DisasterRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("DIS-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM disasters", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next disaster ID: %w", err)
	}

	return fmt.Sprintf("DIS-%03d", maxID+1), nil
}

// Ensure DisasterRepository implements the interface
var _ secondary.DisasterRepository = (*DisasterRepository)(nil)

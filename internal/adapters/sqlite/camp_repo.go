package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/ports/secondary"
)

// CampRepository implements secondary.CampRepository with SQLite.
type CampRepository struct {
	db *sql.DB
}

// NewCampRepository creates a new SQLite camp repository.
func NewCampRepository(db *sql.DB) *CampRepository {
	return &CampRepository{db: db}
}

const campSelect = `SELECT c.id, c.disaster_id, c.name, c.capacity, c.current_occupancy, c.status,
	d.severity, d.status, c.created_at, c.updated_at
	FROM relief_camps c
	JOIN disasters d ON d.id = c.disaster_id`

// Create persists a new camp with an audit row in the same transaction.
func (r *CampRepository) Create(ctx context.Context, camp *secondary.CampRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO relief_camps (id, disaster_id, name, capacity, current_occupancy, status) VALUES (?, ?, ?, ?, ?, ?)`,
		camp.ID,
		camp.DisasterID,
		camp.Name,
		camp.Capacity,
		camp.CurrentOccupancy,
		camp.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create camp: %w", err)
	}

	if err := audit(ctx, tx, "camp", camp.ID, "create", "", "", camp.Name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit camp: %w", err)
	}
	return nil
}

// GetByID retrieves a camp by its ID, with disaster fields joined in.
func (r *CampRepository) GetByID(ctx context.Context, id string) (*secondary.CampRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.CampRecord{}
	err := r.db.QueryRowContext(ctx, campSelect+" WHERE c.id = ?", id).Scan(
		&record.ID, &record.DisasterID, &record.Name, &record.Capacity, &record.CurrentOccupancy,
		&record.Status, &record.DisasterSeverity, &record.DisasterStatus, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("camp %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get camp: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves camps matching the given filters.
func (r *CampRepository) List(ctx context.Context, filters secondary.CampFilters) ([]*secondary.CampRecord, error) {
	query := campSelect + " WHERE 1=1"
	args := []any{}

	if filters.DisasterID != "" {
		query += " AND c.disaster_id = ?"
		args = append(args, filters.DisasterID)
	}

	if filters.Status != "" {
		query += " AND c.status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY c.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list camps: %w", err)
	}
	defer rows.Close()

	var camps []*secondary.CampRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time

		record := &secondary.CampRecord{}
		err := rows.Scan(
			&record.ID, &record.DisasterID, &record.Name, &record.Capacity, &record.CurrentOccupancy,
			&record.Status, &record.DisasterSeverity, &record.DisasterStatus, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camp: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		camps = append(camps, record)
	}

	return camps, nil
}

// UpdateOccupancy updates the current occupancy of a camp, with an audit row
// in the same transaction.
func (r *CampRepository) UpdateOccupancy(ctx context.Context, id string, occupancy int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldOccupancy int
	err = tx.QueryRowContext(ctx, "SELECT current_occupancy FROM relief_camps WHERE id = ?", id).Scan(&oldOccupancy)
	if err == sql.ErrNoRows {
		return fmt.Errorf("camp %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read camp: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE relief_camps SET current_occupancy = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		occupancy, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update camp occupancy: %w", err)
	}

	if err := audit(ctx, tx, "camp", id, "update", "current_occupancy",
		fmt.Sprintf("%d", oldOccupancy), fmt.Sprintf("%d", occupancy)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit camp occupancy: %w", err)
	}
	return nil
}

// UpdateStatus updates the status of a camp, with an audit row in the same
// transaction.
func (r *CampRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT status FROM relief_camps WHERE id = ?", id).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("camp %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read camp: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE relief_camps SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update camp status: %w", err)
	}

	if err := audit(ctx, tx, "camp", id, "update", "status", oldStatus, status); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit camp status: %w", err)
	}
	return nil
}

// GetNextID returns the next available camp ID.
func (r *CampRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("CAMP-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM relief_camps", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next camp ID: %w", err)
	}

	return fmt.Sprintf("CAMP-%03d", maxID+1), nil
}

// DisasterExists checks if a disaster exists.
func (r *CampRepository) DisasterExists(ctx context.Context, disasterID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM disasters WHERE id = ?", disasterID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check disaster existence: %w", err)
	}
	return count > 0, nil
}

// Ensure CampRepository implements the interface
var _ secondary.CampRepository = (*CampRepository)(nil)

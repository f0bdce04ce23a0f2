package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/ports/secondary"
)

// VolunteerRepository implements secondary.VolunteerRepository with SQLite.
// Assignment counts are derived from the assignments table on every read.
type VolunteerRepository struct {
	db *sql.DB
}

// NewVolunteerRepository creates a new SQLite volunteer repository.
func NewVolunteerRepository(db *sql.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

const volunteerSelect = `SELECT v.id, v.name, COALESCE(v.skills, ''), v.availability_status,
	COALESCE(SUM(CASE WHEN a.status = 'Active' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN a.status = 'Completed' THEN 1 ELSE 0 END), 0),
	v.created_at, v.updated_at
	FROM volunteers v
	LEFT JOIN assignments a ON a.volunteer_id = v.id`

// Create persists a new volunteer with an audit row in the same transaction.
func (r *VolunteerRepository) Create(ctx context.Context, volunteer *secondary.VolunteerRecord) error {
	var skills sql.NullString
	if volunteer.Skills != "" {
		skills = sql.NullString{String: volunteer.Skills, Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO volunteers (id, name, skills, availability_status) VALUES (?, ?, ?, ?)`,
		volunteer.ID,
		volunteer.Name,
		skills,
		volunteer.AvailabilityStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create volunteer: %w", err)
	}

	if err := audit(ctx, tx, "volunteer", volunteer.ID, "create", "", "", volunteer.Name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit volunteer: %w", err)
	}
	return nil
}

// GetByID retrieves a volunteer by its ID with assignment counts.
func (r *VolunteerRepository) GetByID(ctx context.Context, id string) (*secondary.VolunteerRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.VolunteerRecord{}
	err := r.db.QueryRowContext(ctx, volunteerSelect+" WHERE v.id = ? GROUP BY v.id", id).Scan(
		&record.ID, &record.Name, &record.Skills, &record.AvailabilityStatus,
		&record.ActiveAssignments, &record.CompletedAssignments, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("volunteer %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves volunteers matching the given filters with assignment counts.
func (r *VolunteerRepository) List(ctx context.Context, filters secondary.VolunteerFilters) ([]*secondary.VolunteerRecord, error) {
	query := volunteerSelect + " WHERE 1=1"
	args := []any{}

	if filters.AvailabilityStatus != "" {
		query += " AND v.availability_status = ?"
		args = append(args, filters.AvailabilityStatus)
	}

	query += " GROUP BY v.id ORDER BY v.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	defer rows.Close()

	var volunteers []*secondary.VolunteerRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time

		record := &secondary.VolunteerRecord{}
		err := rows.Scan(
			&record.ID, &record.Name, &record.Skills, &record.AvailabilityStatus,
			&record.ActiveAssignments, &record.CompletedAssignments, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volunteer: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		volunteers = append(volunteers, record)
	}

	return volunteers, nil
}

// UpdateAvailability updates the availability status of a volunteer, with an
// audit row in the same transaction.
func (r *VolunteerRepository) UpdateAvailability(ctx context.Context, id, status string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT availability_status FROM volunteers WHERE id = ?", id).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("volunteer %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read volunteer: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE volunteers SET availability_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update volunteer availability: %w", err)
	}

	if err := audit(ctx, tx, "volunteer", id, "update", "availability_status", oldStatus, status); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit volunteer availability: %w", err)
	}
	return nil
}

// GetNextID returns the next available volunteer ID.
func (r *VolunteerRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("VOL-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM volunteers", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next volunteer ID: %w", err)
	}

	return fmt.Sprintf("VOL-%03d", maxID+1), nil
}

// Ensure VolunteerRepository implements the interface
var _ secondary.VolunteerRepository = (*VolunteerRepository)(nil)

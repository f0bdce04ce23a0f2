package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/ports/secondary"
)

// AssignmentRepository implements secondary.AssignmentRepository with SQLite.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new SQLite assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create persists a new assignment with an audit row in the same transaction.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *secondary.AssignmentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.insert(ctx, tx, assignment); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	return nil
}

// CreateActive inserts the assignment and marks the volunteer Assigned in one
// transaction, so a failure cannot leave an assignment without the matching
// availability flip.
func (r *AssignmentRepository) CreateActive(ctx context.Context, assignment *secondary.AssignmentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.insert(ctx, tx, assignment); err != nil {
		return err
	}

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT availability_status FROM volunteers WHERE id = ?", assignment.VolunteerID).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("volunteer %s: %w", assignment.VolunteerID, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read volunteer: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE volunteers SET availability_status = 'Assigned', updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		assignment.VolunteerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update volunteer availability: %w", err)
	}

	if err := audit(ctx, tx, "volunteer", assignment.VolunteerID, "update", "availability_status", oldStatus, "Assigned"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) insert(ctx context.Context, tx *sql.Tx, assignment *secondary.AssignmentRecord) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (id, volunteer_id, camp_id, role, status) VALUES (?, ?, ?, ?, ?)`,
		assignment.ID,
		assignment.VolunteerID,
		assignment.CampID,
		assignment.Role,
		assignment.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return audit(ctx, tx, "assignment", assignment.ID, "create", "", "",
		fmt.Sprintf("%s as %s at %s", assignment.VolunteerID, assignment.Role, assignment.CampID))
}

// GetByID retrieves an assignment by its ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*secondary.AssignmentRecord, error) {
	var (
		startDate time.Time
		endDate   sql.NullTime
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.AssignmentRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, volunteer_id, camp_id, role, status, start_date, end_date, created_at, updated_at FROM assignments WHERE id = ?`,
		id,
	).Scan(&record.ID, &record.VolunteerID, &record.CampID, &record.Role, &record.Status, &startDate, &endDate, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assignment %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	record.StartDate = startDate.Format(time.RFC3339)
	if endDate.Valid {
		record.EndDate = endDate.Time.Format(time.RFC3339)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves assignments matching the given filters.
func (r *AssignmentRepository) List(ctx context.Context, filters secondary.AssignmentFilters) ([]*secondary.AssignmentRecord, error) {
	query := `SELECT id, volunteer_id, camp_id, role, status, start_date, end_date, created_at, updated_at FROM assignments WHERE 1=1`
	args := []any{}

	if filters.VolunteerID != "" {
		query += " AND volunteer_id = ?"
		args = append(args, filters.VolunteerID)
	}

	if filters.CampID != "" {
		query += " AND camp_id = ?"
		args = append(args, filters.CampID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*secondary.AssignmentRecord
	for rows.Next() {
		var (
			startDate time.Time
			endDate   sql.NullTime
			createdAt time.Time
			updatedAt time.Time
		)

		record := &secondary.AssignmentRecord{}
		err := rows.Scan(&record.ID, &record.VolunteerID, &record.CampID, &record.Role, &record.Status, &startDate, &endDate, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		record.StartDate = startDate.Format(time.RFC3339)
		if endDate.Valid {
			record.EndDate = endDate.Time.Format(time.RFC3339)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		assignments = append(assignments, record)
	}

	return assignments, nil
}

// Complete marks an assignment Completed and stamps its end date, with an
// audit row in the same transaction.
func (r *AssignmentRepository) Complete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT status FROM assignments WHERE id = ?", id).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("assignment %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read assignment: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE assignments SET status = 'Completed', end_date = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete assignment: %w", err)
	}

	if err := audit(ctx, tx, "assignment", id, "update", "status", oldStatus, "Completed"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment completion: %w", err)
	}
	return nil
}

// CountActiveForVolunteer returns the number of Active assignments held by a
// volunteer.
func (r *AssignmentRepository) CountActiveForVolunteer(ctx context.Context, volunteerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignments WHERE volunteer_id = ? AND status = 'Active'",
		volunteerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active assignments: %w", err)
	}
	return count, nil
}

// GetNextID returns the next available assignment ID.
func (r *AssignmentRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("ASSIGN-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM assignments", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next assignment ID: %w", err)
	}

	return fmt.Sprintf("ASSIGN-%03d", maxID+1), nil
}

// CampExists checks if a camp exists.
func (r *AssignmentRepository) CampExists(ctx context.Context, campID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM relief_camps WHERE id = ?", campID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check camp existence: %w", err)
	}
	return count > 0, nil
}

// VolunteerExists checks if a volunteer exists.
func (r *AssignmentRepository) VolunteerExists(ctx context.Context, volunteerID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM volunteers WHERE id = ?", volunteerID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check volunteer existence: %w", err)
	}
	return count > 0, nil
}

// Ensure AssignmentRepository implements the interface
var _ secondary.AssignmentRepository = (*AssignmentRepository)(nil)

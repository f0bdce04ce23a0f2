package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/ports/secondary"
)

// ResourceRepository implements secondary.ResourceRepository with SQLite.
type ResourceRepository struct {
	db *sql.DB
}

// NewResourceRepository creates a new SQLite resource repository.
func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Create persists a new resource row with an audit row in the same
// transaction.
func (r *ResourceRepository) Create(ctx context.Context, resource *secondary.ResourceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO resources (id, camp_id, resource_type, quantity_available, quantity_needed) VALUES (?, ?, ?, ?, ?)`,
		resource.ID,
		resource.CampID,
		resource.ResourceType,
		resource.QuantityAvailable,
		resource.QuantityNeeded,
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	if err := audit(ctx, tx, "resource", resource.ID, "create", "", "",
		fmt.Sprintf("%s at %s", resource.ResourceType, resource.CampID)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resource: %w", err)
	}
	return nil
}

// GetByID retrieves a resource row by its ID.
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*secondary.ResourceRecord, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByCampAndType retrieves the resource row for a (camp, type) pair.
func (r *ResourceRepository) GetByCampAndType(ctx context.Context, campID, resourceType string) (*secondary.ResourceRecord, error) {
	return r.getOne(ctx, "camp_id = ? AND resource_type = ?", campID, resourceType)
}

func (r *ResourceRepository) getOne(ctx context.Context, where string, args ...any) (*secondary.ResourceRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.ResourceRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, camp_id, resource_type, quantity_available, quantity_needed, created_at, updated_at FROM resources WHERE `+where,
		args...,
	).Scan(&record.ID, &record.CampID, &record.ResourceType, &record.QuantityAvailable, &record.QuantityNeeded, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resource: %w", secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves resource rows matching the given filters.
func (r *ResourceRepository) List(ctx context.Context, filters secondary.ResourceFilters) ([]*secondary.ResourceRecord, error) {
	query := `SELECT id, camp_id, resource_type, quantity_available, quantity_needed, created_at, updated_at FROM resources WHERE 1=1`
	args := []any{}

	if filters.CampID != "" {
		query += " AND camp_id = ?"
		args = append(args, filters.CampID)
	}

	if filters.ResourceType != "" {
		query += " AND resource_type = ?"
		args = append(args, filters.ResourceType)
	}

	query += " ORDER BY camp_id, resource_type"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var resources []*secondary.ResourceRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time

		record := &secondary.ResourceRecord{}
		err := rows.Scan(&record.ID, &record.CampID, &record.ResourceType, &record.QuantityAvailable, &record.QuantityNeeded, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		resources = append(resources, record)
	}

	return resources, nil
}

// UpdateQuantities updates both quantities of a resource row, with one audit
// row per changed field in the same transaction.
func (r *ResourceRepository) UpdateQuantities(ctx context.Context, id string, available, needed int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldAvailable, oldNeeded int
	err = tx.QueryRowContext(ctx, "SELECT quantity_available, quantity_needed FROM resources WHERE id = ?", id).Scan(&oldAvailable, &oldNeeded)
	if err == sql.ErrNoRows {
		return fmt.Errorf("resource %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read resource: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE resources SET quantity_available = ?, quantity_needed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		available, needed, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resource quantities: %w", err)
	}

	if available != oldAvailable {
		if err := audit(ctx, tx, "resource", id, "update", "quantity_available",
			fmt.Sprintf("%d", oldAvailable), fmt.Sprintf("%d", available)); err != nil {
			return err
		}
	}
	if needed != oldNeeded {
		if err := audit(ctx, tx, "resource", id, "update", "quantity_needed",
			fmt.Sprintf("%d", oldNeeded), fmt.Sprintf("%d", needed)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resource quantities: %w", err)
	}
	return nil
}

// ListShortageSnapshots retrieves one row per (camp, resource type) for
// camps whose disaster is Active or Ongoing. Resolved and Contained
// disasters no longer feed the shortage calculator.
func (r *ResourceRepository) ListShortageSnapshots(ctx context.Context) ([]*secondary.ShortageSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.camp_id, c.name, r.resource_type, r.quantity_available, r.quantity_needed, d.severity
		FROM resources r
		JOIN relief_camps c ON c.id = r.camp_id
		JOIN disasters d ON d.id = c.disaster_id
		WHERE d.status IN ('Active', 'Ongoing')
		ORDER BY r.camp_id, r.resource_type`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortage snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*secondary.ShortageSnapshot
	for rows.Next() {
		snap := &secondary.ShortageSnapshot{}
		err := rows.Scan(&snap.CampID, &snap.CampName, &snap.ResourceType, &snap.QuantityAvailable, &snap.QuantityNeeded, &snap.DisasterSeverity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shortage snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, nil
}

// GetNextID returns the next available resource ID.
func (r *ResourceRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("RES-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM resources", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next resource ID: %w", err)
	}

	return fmt.Sprintf("RES-%03d", maxID+1), nil
}

// CampExists checks if a camp exists.
func (r *ResourceRepository) CampExists(ctx context.Context, campID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM relief_camps WHERE id = ?", campID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check camp existence: %w", err)
	}
	return count > 0, nil
}

// Ensure ResourceRepository implements the interface
var _ secondary.ResourceRepository = (*ResourceRepository)(nil)

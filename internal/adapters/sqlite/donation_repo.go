package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/ports/secondary"
)

// DonationRepository implements secondary.DonationRepository with SQLite.
// The allocated total is always derived from the allocations table, never
// stored on the donation row.
type DonationRepository struct {
	db *sql.DB
}

// NewDonationRepository creates a new SQLite donation repository.
func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

const donationSelect = `SELECT d.id, d.donor_name, d.resource_type, d.quantity_donated, d.status,
	COALESCE((SELECT SUM(a.quantity_allocated) FROM allocations a WHERE a.donation_id = d.id), 0),
	d.created_at, d.updated_at
	FROM donations d`

// Create persists a new donation with an audit row in the same transaction.
func (r *DonationRepository) Create(ctx context.Context, donation *secondary.DonationRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO donations (id, donor_name, resource_type, quantity_donated, status) VALUES (?, ?, ?, ?, ?)`,
		donation.ID,
		donation.DonorName,
		donation.ResourceType,
		donation.QuantityDonated,
		donation.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	if err := audit(ctx, tx, "donation", donation.ID, "create", "", "",
		fmt.Sprintf("%d %s from %s", donation.QuantityDonated, donation.ResourceType, donation.DonorName)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit donation: %w", err)
	}
	return nil
}

// GetByID retrieves a donation by its ID.
func (r *DonationRepository) GetByID(ctx context.Context, id string) (*secondary.DonationRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.DonationRecord{}
	err := r.db.QueryRowContext(ctx, donationSelect+" WHERE d.id = ?", id).Scan(
		&record.ID, &record.DonorName, &record.ResourceType, &record.QuantityDonated,
		&record.Status, &record.AllocatedTotal, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("donation %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves donations matching the given filters, in creation order.
func (r *DonationRepository) List(ctx context.Context, filters secondary.DonationFilters) ([]*secondary.DonationRecord, error) {
	query := donationSelect + " WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND d.status = ?"
		args = append(args, filters.Status)
	}

	if filters.ResourceType != "" {
		query += " AND d.resource_type = ?"
		args = append(args, filters.ResourceType)
	}

	query += " ORDER BY " + donationOrder

	return r.scanMany(ctx, query, args...)
}

// UpdateStatus updates the status of a donation, with an audit row in the
// same transaction.
func (r *DonationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT status FROM donations WHERE id = ?", id).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("donation %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read donation: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE donations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update donation status: %w", err)
	}

	if err := audit(ctx, tx, "donation", id, "update", "status", oldStatus, status); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit donation status: %w", err)
	}
	return nil
}

// donationOrder sorts by the numeric ID suffix so arrival order survives the
// rollover from DON-999 to DON-1000, where plain string order would invert.
const donationOrder = "CAST(SUBSTR(d.id, 5) AS INTEGER)"

// ListPool retrieves the supply pool input: Received or Allocated donations
// with the derived allocated total, earliest donation first.
func (r *DonationRepository) ListPool(ctx context.Context) ([]*secondary.DonationRecord, error) {
	return r.scanMany(ctx, donationSelect+" WHERE d.status IN ('Received', 'Allocated') ORDER BY "+donationOrder)
}

// AllocatedTotal returns the derived sum of allocation quantities for a
// donation.
func (r *DonationRepository) AllocatedTotal(ctx context.Context, donationID string) (int, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM donations WHERE id = ?", donationID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to check donation existence: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("donation %s: %w", donationID, secondary.ErrNotFound)
	}

	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity_allocated), 0) FROM allocations WHERE donation_id = ?",
		donationID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum allocations: %w", err)
	}
	return total, nil
}

// GetNextID returns the next available donation ID.
func (r *DonationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("DON-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM donations", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next donation ID: %w", err)
	}

	return fmt.Sprintf("DON-%03d", maxID+1), nil
}

func (r *DonationRepository) scanMany(ctx context.Context, query string, args ...any) ([]*secondary.DonationRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var donations []*secondary.DonationRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time

		record := &secondary.DonationRecord{}
		err := rows.Scan(
			&record.ID, &record.DonorName, &record.ResourceType, &record.QuantityDonated,
			&record.Status, &record.AllocatedTotal, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		donations = append(donations, record)
	}

	return donations, nil
}

// Ensure DonationRepository implements the interface
var _ secondary.DonationRepository = (*DonationRepository)(nil)

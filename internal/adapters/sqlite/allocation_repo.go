package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/relief/internal/core/allocation"
	"github.com/example/relief/internal/ports/secondary"
)

// AllocationRepository implements secondary.AllocationRepository with SQLite.
// Allocation rows are append-only; Apply is the only write path that creates
// them.
type AllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new SQLite allocation repository.
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// Apply executes one proposal inside a transaction. Supply and deficit are
// re-read from current rows, not trusted from the planner's snapshot; a
// proposal the current rows can no longer satisfy fails with
// ErrStaleProposal and leaves no trace.
func (r *AllocationRepository) Apply(ctx context.Context, proposal *secondary.ProposedAllocationRecord) (*secondary.ApplyReceipt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin allocation transaction: %w", err)
	}
	defer tx.Rollback()

	// Re-read the donation and its derived allocated total.
	var quantityDonated int
	var donationStatus string
	err = tx.QueryRowContext(ctx,
		"SELECT quantity_donated, status FROM donations WHERE id = ?",
		proposal.DonationID,
	).Scan(&quantityDonated, &donationStatus)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("donation %s: %w", proposal.DonationID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read donation: %w", err)
	}

	var allocatedTotal int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity_allocated), 0) FROM allocations WHERE donation_id = ?",
		proposal.DonationID,
	).Scan(&allocatedTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocations: %w", err)
	}

	if donationStatus != "Received" && donationStatus != "Allocated" {
		return nil, fmt.Errorf("donation %s is %s, not in the pool: %w",
			proposal.DonationID, donationStatus, secondary.ErrStaleProposal)
	}

	// Re-read the camp's inventory row for this resource type.
	var resourceID string
	var available, needed int
	err = tx.QueryRowContext(ctx,
		"SELECT id, quantity_available, quantity_needed FROM resources WHERE camp_id = ? AND resource_type = ?",
		proposal.CampID, proposal.ResourceType,
	).Scan(&resourceID, &available, &needed)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resource row for camp %s type %s: %w",
			proposal.CampID, proposal.ResourceType, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read resource row: %w", err)
	}

	remainingNeed := needed - available
	if remainingNeed < 0 {
		remainingNeed = 0
	}
	guard := allocation.CanApply(allocation.ApplyContext{
		DonationID:      proposal.DonationID,
		CampID:          proposal.CampID,
		Quantity:        proposal.Quantity,
		RemainingSupply: quantityDonated - allocatedTotal,
		RemainingNeed:   remainingNeed,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%s: %w", guard.Reason, secondary.ErrStaleProposal)
	}

	allocationID, err := nextID(ctx, tx, "allocations", "ALLOC-")
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO allocations (id, donation_id, camp_id, quantity_allocated, status) VALUES (?, ?, ?, ?, 'Pending')`,
		allocationID, proposal.DonationID, proposal.CampID, proposal.Quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert allocation: %w", err)
	}

	newAvailable := allocation.ClampAvailable(available, needed, proposal.Quantity)
	_, err = tx.ExecContext(ctx,
		"UPDATE resources SET quantity_available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		newAvailable, resourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update resource inventory: %w", err)
	}

	exhausted := allocatedTotal+proposal.Quantity >= quantityDonated
	if exhausted && donationStatus != "Allocated" {
		_, err = tx.ExecContext(ctx,
			"UPDATE donations SET status = 'Allocated', updated_at = CURRENT_TIMESTAMP WHERE id = ?",
			proposal.DonationID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update donation status: %w", err)
		}
	}

	if err := audit(ctx, tx, "allocation", allocationID, "create", "", "", fmt.Sprintf("%d from %s to %s", proposal.Quantity, proposal.DonationID, proposal.CampID)); err != nil {
		return nil, err
	}
	if err := audit(ctx, tx, "resource", resourceID, "update", "quantity_available", fmt.Sprintf("%d", available), fmt.Sprintf("%d", newAvailable)); err != nil {
		return nil, err
	}
	if exhausted && donationStatus != "Allocated" {
		if err := audit(ctx, tx, "donation", proposal.DonationID, "update", "status", donationStatus, "Allocated"); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	deficitAfter := needed - newAvailable
	if deficitAfter < 0 {
		deficitAfter = 0
	}
	return &secondary.ApplyReceipt{
		AllocationID:      allocationID,
		AppliedQuantity:   proposal.Quantity,
		DonationExhausted: exhausted,
		AvailableAfter:    newAvailable,
		DeficitAfter:      deficitAfter,
	}, nil
}

// GetByID retrieves an allocation by its ID.
func (r *AllocationRepository) GetByID(ctx context.Context, id string) (*secondary.AllocationRecord, error) {
	var createdAt, updatedAt time.Time

	record := &secondary.AllocationRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, donation_id, camp_id, quantity_allocated, status, created_at, updated_at FROM allocations WHERE id = ?`,
		id,
	).Scan(&record.ID, &record.DonationID, &record.CampID, &record.QuantityAllocated, &record.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("allocation %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves allocations matching the given filters.
func (r *AllocationRepository) List(ctx context.Context, filters secondary.AllocationFilters) ([]*secondary.AllocationRecord, error) {
	query := `SELECT id, donation_id, camp_id, quantity_allocated, status, created_at, updated_at FROM allocations WHERE 1=1`
	args := []any{}

	if filters.DonationID != "" {
		query += " AND donation_id = ?"
		args = append(args, filters.DonationID)
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
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*secondary.AllocationRecord
	for rows.Next() {
		var createdAt, updatedAt time.Time

		record := &secondary.AllocationRecord{}
		err := rows.Scan(&record.ID, &record.DonationID, &record.CampID, &record.QuantityAllocated, &record.Status, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)

		allocations = append(allocations, record)
	}

	return allocations, nil
}

// UpdateStatus updates the delivery status of an allocation, with an audit
// row in the same transaction.
func (r *AllocationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRowContext(ctx, "SELECT status FROM allocations WHERE id = ?", id).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return fmt.Errorf("allocation %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read allocation: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE allocations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation status: %w", err)
	}

	if err := audit(ctx, tx, "allocation", id, "update", "status", oldStatus, status); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit allocation status: %w", err)
	}
	return nil
}

// Ensure AllocationRepository implements the interface
var _ secondary.AllocationRepository = (*AllocationRepository)(nil)

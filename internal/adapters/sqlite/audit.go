package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// audit helpers work inside and outside explicit transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nextID computes the next prefixed sequential ID from the numeric suffix.
func nextID(ctx context.Context, q dbtx, table, prefix string) (string, error) {
	var maxID int
	err := q.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s", len(prefix)+1, table),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next %s ID: %w", table, err)
	}
	return fmt.Sprintf("%s%03d", prefix, maxID+1), nil
}

// audit appends one audit trail row. Called inside the same transaction as
// the write it describes so the trail commits or rolls back with it.
func audit(ctx context.Context, q dbtx, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	id, err := nextID(ctx, q, "audit_log", "LOG-")
	if err != nil {
		return err
	}

	var field, oldV, newV sql.NullString
	if fieldName != "" {
		field = sql.NullString{String: fieldName, Valid: true}
	}
	if oldValue != "" {
		oldV = sql.NullString{String: oldValue, Valid: true}
	}
	if newValue != "" {
		newV = sql.NullString{String: newValue, Valid: true}
	}

	_, err = q.ExecContext(ctx,
		`INSERT INTO audit_log (id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, entityType, entityID, action, field, oldV, newV,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_audit_log_table",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_overcrowded_camp_status",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_assignment_end_date",
		Up:      migrationV3,
	},
}

// RunMigrations applies all pending migrations in order.
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	// Create schema_version table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

func migrationV1(db *sql.DB) error {
	// Append-only audit trail; every repository write produces one row here.
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_log (
			id TEXT PRIMARY KEY,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
			field_name TEXT,
			old_value TEXT,
			new_value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create audit_log table: %w", err)
	}

	_, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id)")
	if err != nil {
		return fmt.Errorf("failed to create audit_log index: %w", err)
	}

	return nil
}

func migrationV2(db *sql.DB) error {
	// SQLite cannot alter CHECK constraints in place; rebuild relief_camps
	// with the Overcrowded status allowed.
	_, err := db.Exec(`
		CREATE TABLE relief_camps_new (
			id TEXT PRIMARY KEY,
			disaster_id TEXT NOT NULL,
			name TEXT NOT NULL,
			capacity INTEGER NOT NULL CHECK(capacity > 0),
			current_occupancy INTEGER NOT NULL CHECK(current_occupancy >= 0) DEFAULT 0,
			status TEXT NOT NULL CHECK(status IN ('Active', 'Overcrowded', 'Closed')) DEFAULT 'Active',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (disaster_id) REFERENCES disasters(id)
		);
		INSERT INTO relief_camps_new SELECT * FROM relief_camps;
		DROP TABLE relief_camps;
		ALTER TABLE relief_camps_new RENAME TO relief_camps;
		CREATE INDEX IF NOT EXISTS idx_camps_disaster ON relief_camps(disaster_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to rebuild relief_camps table: %w", err)
	}

	return nil
}

func migrationV3(db *sql.DB) error {
	_, err := db.Exec("ALTER TABLE assignments ADD COLUMN end_date DATETIME")
	if err != nil {
		return fmt.Errorf("failed to add end_date to assignments: %w", err)
	}

	return nil
}

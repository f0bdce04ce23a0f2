package db

// SchemaSQL is the complete schema for fresh relief installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(); repository code that references a column
// missing here fails immediately with "no such column" at test time.
//
// IMPORTANT: keep this in sync with migrations in internal/db/migrations.go.
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Disasters (top-level events camps belong to)
CREATE TABLE IF NOT EXISTS disasters (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	severity TEXT NOT NULL CHECK(severity IN ('Low', 'Medium', 'High', 'Critical')),
	status TEXT NOT NULL CHECK(status IN ('Active', 'Ongoing', 'Contained', 'Resolved')) DEFAULT 'Active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Relief camps (shelter locations with capacity)
CREATE TABLE IF NOT EXISTS relief_camps (
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

-- Per-camp resource inventory (one row per camp and resource type)
CREATE TABLE IF NOT EXISTS resources (
	id TEXT PRIMARY KEY,
	camp_id TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	quantity_available INTEGER NOT NULL CHECK(quantity_available >= 0) DEFAULT 0,
	quantity_needed INTEGER NOT NULL CHECK(quantity_needed >= 0) DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (camp_id) REFERENCES relief_camps(id),
	UNIQUE(camp_id, resource_type)
);

-- Donations (incoming supply; quantity_allocated_total is derived from
-- allocations, never stored)
CREATE TABLE IF NOT EXISTS donations (
	id TEXT PRIMARY KEY,
	donor_name TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	quantity_donated INTEGER NOT NULL CHECK(quantity_donated > 0),
	status TEXT NOT NULL CHECK(status IN ('Pending', 'Received', 'Allocated', 'Distributed')) DEFAULT 'Pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Allocations (donation quantity routed to a camp; append-only)
CREATE TABLE IF NOT EXISTS allocations (
	id TEXT PRIMARY KEY,
	donation_id TEXT NOT NULL,
	camp_id TEXT NOT NULL,
	quantity_allocated INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Pending', 'Delivered', 'Received')) DEFAULT 'Pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (donation_id) REFERENCES donations(id),
	FOREIGN KEY (camp_id) REFERENCES relief_camps(id)
);

-- Volunteers (skills stored as free-text comma-separated tags)
CREATE TABLE IF NOT EXISTS volunteers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	skills TEXT,
	availability_status TEXT NOT NULL CHECK(availability_status IN ('Available', 'Assigned', 'Unavailable')) DEFAULT 'Available',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Assignments (volunteer placed in a camp role)
CREATE TABLE IF NOT EXISTS assignments (
	id TEXT PRIMARY KEY,
	volunteer_id TEXT NOT NULL,
	camp_id TEXT NOT NULL,
	role TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Active', 'Completed', 'Cancelled')) DEFAULT 'Active',
	start_date DATETIME DEFAULT CURRENT_TIMESTAMP,
	end_date DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (volunteer_id) REFERENCES volunteers(id),
	FOREIGN KEY (camp_id) REFERENCES relief_camps(id)
);

-- Audit log (immutable, one row per write on any entity)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_camps_disaster ON relief_camps(disaster_id);
CREATE INDEX IF NOT EXISTS idx_resources_camp ON resources(camp_id);
CREATE INDEX IF NOT EXISTS idx_resources_type ON resources(resource_type);
CREATE INDEX IF NOT EXISTS idx_donations_status ON donations(status);
CREATE INDEX IF NOT EXISTS idx_allocations_donation ON allocations(donation_id);
CREATE INDEX IF NOT EXISTS idx_allocations_camp ON allocations(camp_id);
CREATE INDEX IF NOT EXISTS idx_assignments_volunteer ON assignments(volunteer_id);
CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_log(entity_type, entity_id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the modern schema directly and mark all
		// migrations as applied so they never run against it.
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}

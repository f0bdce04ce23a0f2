// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/relief/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedDisaster inserts a test disaster and returns its ID.
func seedDisaster(t *testing.T, db *sql.DB, id, severity, status string) string {
	t.Helper()
	if id == "" {
		id = "DIS-001"
	}
	if severity == "" {
		severity = "High"
	}
	if status == "" {
		status = "Active"
	}
	_, err := db.Exec("INSERT INTO disasters (id, name, severity, status) VALUES (?, ?, ?, ?)", id, "Test Disaster", severity, status)
	if err != nil {
		t.Fatalf("failed to seed disaster: %v", err)
	}
	return id
}

// seedCamp inserts a test camp and returns its ID.
func seedCamp(t *testing.T, db *sql.DB, id, disasterID string, capacity, occupancy int) string {
	t.Helper()
	if id == "" {
		id = "CAMP-001"
	}
	if disasterID == "" {
		disasterID = "DIS-001"
	}
	if capacity == 0 {
		capacity = 500
	}
	_, err := db.Exec("INSERT INTO relief_camps (id, disaster_id, name, capacity, current_occupancy, status) VALUES (?, ?, ?, ?, ?, 'Active')",
		id, disasterID, "Test Camp "+id, capacity, occupancy)
	if err != nil {
		t.Fatalf("failed to seed camp: %v", err)
	}
	return id
}

// seedResource inserts a test resource row and returns its ID.
func seedResource(t *testing.T, db *sql.DB, id, campID, resourceType string, available, needed int) string {
	t.Helper()
	if id == "" {
		id = "RES-001"
	}
	if campID == "" {
		campID = "CAMP-001"
	}
	if resourceType == "" {
		resourceType = "Food"
	}
	_, err := db.Exec("INSERT INTO resources (id, camp_id, resource_type, quantity_available, quantity_needed) VALUES (?, ?, ?, ?, ?)",
		id, campID, resourceType, available, needed)
	if err != nil {
		t.Fatalf("failed to seed resource: %v", err)
	}
	return id
}

// seedDonation inserts a test donation and returns its ID.
func seedDonation(t *testing.T, db *sql.DB, id, resourceType string, quantity int, status string) string {
	t.Helper()
	if id == "" {
		id = "DON-001"
	}
	if resourceType == "" {
		resourceType = "Food"
	}
	if status == "" {
		status = "Received"
	}
	_, err := db.Exec("INSERT INTO donations (id, donor_name, resource_type, quantity_donated, status) VALUES (?, ?, ?, ?, ?)",
		id, "Test Donor", resourceType, quantity, status)
	if err != nil {
		t.Fatalf("failed to seed donation: %v", err)
	}
	return id
}

// seedVolunteer inserts a test volunteer and returns its ID.
func seedVolunteer(t *testing.T, db *sql.DB, id, skills, availability string) string {
	t.Helper()
	if id == "" {
		id = "VOL-001"
	}
	if availability == "" {
		availability = "Available"
	}
	_, err := db.Exec("INSERT INTO volunteers (id, name, skills, availability_status) VALUES (?, ?, ?, ?)",
		id, "Test Volunteer "+id, skills, availability)
	if err != nil {
		t.Fatalf("failed to seed volunteer: %v", err)
	}
	return id
}

// seedAssignment inserts a test assignment and returns its ID.
func seedAssignment(t *testing.T, db *sql.DB, id, volunteerID, campID, status string) string {
	t.Helper()
	if id == "" {
		id = "ASSIGN-001"
	}
	if volunteerID == "" {
		volunteerID = "VOL-001"
	}
	if campID == "" {
		campID = "CAMP-001"
	}
	if status == "" {
		status = "Active"
	}
	_, err := db.Exec("INSERT INTO assignments (id, volunteer_id, camp_id, role, status) VALUES (?, ?, ?, 'Helper', ?)",
		id, volunteerID, campID, status)
	if err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return id
}

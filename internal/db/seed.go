package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with demonstration fixtures.
// Uses realistic IDs and data that exercises shortages, a donation pool
// with partial allocation, and a small volunteer roster.
func SeedFixtures(database *sql.DB) error {
	disasters := []struct{ id, name, severity, status string }{
		{"DIS-001", "Coastal Earthquake", "Critical", "Active"},
		{"DIS-002", "River Basin Flood", "Medium", "Ongoing"},
		{"DIS-003", "Hill Country Wildfire", "High", "Resolved"},
	}
	for _, d := range disasters {
		if _, err := database.Exec(
			"INSERT INTO disasters (id, name, severity, status) VALUES (?, ?, ?, ?)",
			d.id, d.name, d.severity, d.status,
		); err != nil {
			return fmt.Errorf("seed disasters: %w", err)
		}
	}

	camps := []struct {
		id, disasterID, name string
		capacity, occupancy  int
	}{
		{"CAMP-001", "DIS-001", "Harbor School Shelter", 500, 480},
		{"CAMP-002", "DIS-001", "Stadium Relief Site", 1200, 650},
		{"CAMP-003", "DIS-002", "Riverside Community Hall", 300, 120},
	}
	for _, c := range camps {
		if _, err := database.Exec(
			"INSERT INTO relief_camps (id, disaster_id, name, capacity, current_occupancy, status) VALUES (?, ?, ?, ?, ?, 'Active')",
			c.id, c.disasterID, c.name, c.capacity, c.occupancy,
		); err != nil {
			return fmt.Errorf("seed camps: %w", err)
		}
	}

	resources := []struct {
		id, campID, resourceType string
		available, needed        int
	}{
		{"RES-001", "CAMP-001", "Food", 200, 300},
		{"RES-002", "CAMP-001", "Water", 500, 1000},
		{"RES-003", "CAMP-002", "Food", 150, 400},
		{"RES-004", "CAMP-002", "Medical Supplies", 40, 100},
		{"RES-005", "CAMP-003", "Water", 300, 500},
		{"RES-006", "CAMP-003", "Blankets", 90, 80},
	}
	for _, r := range resources {
		if _, err := database.Exec(
			"INSERT INTO resources (id, camp_id, resource_type, quantity_available, quantity_needed) VALUES (?, ?, ?, ?, ?)",
			r.id, r.campID, r.resourceType, r.available, r.needed,
		); err != nil {
			return fmt.Errorf("seed resources: %w", err)
		}
	}

	donations := []struct {
		id, donor, resourceType string
		quantity                int
		status                  string
	}{
		{"DON-001", "Red Crescent Society", "Food", 250, "Received"},
		{"DON-002", "City Food Bank", "Food", 180, "Received"},
		{"DON-003", "Clearwater Charity", "Water", 600, "Received"},
		{"DON-004", "MedAid International", "Medical Supplies", 50, "Pending"},
	}
	for _, d := range donations {
		if _, err := database.Exec(
			"INSERT INTO donations (id, donor_name, resource_type, quantity_donated, status) VALUES (?, ?, ?, ?, ?)",
			d.id, d.donor, d.resourceType, d.quantity, d.status,
		); err != nil {
			return fmt.Errorf("seed donations: %w", err)
		}
	}

	volunteers := []struct{ id, name, skills, status string }{
		{"VOL-001", "Amina Osei", "Medical, First Aid", "Available"},
		{"VOL-002", "Jonas Berg", "Logistics, Driving", "Available"},
		{"VOL-003", "Priya Nair", "Cooking, First Aid", "Available"},
		{"VOL-004", "Tomas Rivera", "Construction", "Unavailable"},
	}
	for _, v := range volunteers {
		if _, err := database.Exec(
			"INSERT INTO volunteers (id, name, skills, availability_status) VALUES (?, ?, ?, ?)",
			v.id, v.name, v.skills, v.status,
		); err != nil {
			return fmt.Errorf("seed volunteers: %w", err)
		}
	}

	return nil
}

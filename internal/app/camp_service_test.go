package app

import (
	"context"
	"testing"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

func newTestCampService(threshold float64) (*CampServiceImpl, *mockCampRepository) {
	repo := newMockCampRepository()
	service := NewCampService(repo, threshold)
	return service, repo
}

func TestCampService_GetCamp(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{
		ID: "CAMP-001", DisasterID: "DIS-001", Name: "North Camp",
		Capacity: 500, CurrentOccupancy: 250, Status: "Active", DisasterSeverity: "High",
	}

	camp, err := service.GetCamp(ctx, "CAMP-001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if camp.OccupancyRatio != 0.5 {
		t.Errorf("expected ratio 0.5, got %v", camp.OccupancyRatio)
	}
	if camp.DisasterSeverity != "High" {
		t.Errorf("expected severity joined in, got %q", camp.DisasterSeverity)
	}
}

func TestCampService_UpdateOccupancy_FlagsOvercrowded(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{
		ID: "CAMP-001", Name: "North Camp", Capacity: 500, CurrentOccupancy: 400, Status: "Active",
	}

	resp, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-001", Occupancy: 480})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 480/500 = 0.96 > 0.95
	if resp.Status != "Overcrowded" || !resp.StatusChanged {
		t.Errorf("expected flip to Overcrowded, got %q (changed=%v)", resp.Status, resp.StatusChanged)
	}
	if repo.camps["CAMP-001"].Status != "Overcrowded" {
		t.Errorf("expected persisted Overcrowded, got %q", repo.camps["CAMP-001"].Status)
	}
	if repo.camps["CAMP-001"].CurrentOccupancy != 480 {
		t.Errorf("expected occupancy persisted, got %d", repo.camps["CAMP-001"].CurrentOccupancy)
	}
}

func TestCampService_UpdateOccupancy_RevertsToActive(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{
		ID: "CAMP-001", Name: "North Camp", Capacity: 500, CurrentOccupancy: 480, Status: "Overcrowded",
	}

	resp, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-001", Occupancy: 450})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 450/500 = 0.90 <= 0.95
	if resp.Status != "Active" || !resp.StatusChanged {
		t.Errorf("expected revert to Active, got %q (changed=%v)", resp.Status, resp.StatusChanged)
	}
}

func TestCampService_UpdateOccupancy_NoChangeBelowThreshold(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{
		ID: "CAMP-001", Name: "North Camp", Capacity: 500, CurrentOccupancy: 100, Status: "Active",
	}

	resp, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-001", Occupancy: 200})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusChanged {
		t.Error("expected no status change at 0.40 occupancy")
	}
	if resp.Status != "Active" {
		t.Errorf("expected Active, got %q", resp.Status)
	}
}

func TestCampService_UpdateOccupancy_ClosedCampUntouched(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{
		ID: "CAMP-001", Name: "North Camp", Capacity: 100, CurrentOccupancy: 0, Status: "Closed",
	}

	resp, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-001", Occupancy: 99})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Status != "Closed" || resp.StatusChanged {
		t.Errorf("expected Closed camp left alone, got %q (changed=%v)", resp.Status, resp.StatusChanged)
	}
}

func TestCampService_UpdateOccupancy_Validation(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{
		ID: "CAMP-001", Name: "North Camp", Capacity: 500, CurrentOccupancy: 100, Status: "Active",
	}

	if _, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-001", Occupancy: -1}); err == nil {
		t.Error("expected error for negative occupancy")
	}
	if _, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-001", Occupancy: 501}); err == nil {
		t.Error("expected error for occupancy above capacity")
	}
	if _, err := service.UpdateOccupancy(ctx, primary.UpdateOccupancyRequest{CampID: "CAMP-404", Occupancy: 10}); err == nil {
		t.Error("expected error for unknown camp")
	}
}

func TestCampService_ListCamps_FilterByDisaster(t *testing.T) {
	service, repo := newTestCampService(0.95)
	ctx := context.Background()

	repo.camps["CAMP-001"] = &secondary.CampRecord{ID: "CAMP-001", DisasterID: "DIS-001", Name: "North Camp", Capacity: 500, Status: "Active"}
	repo.camps["CAMP-002"] = &secondary.CampRecord{ID: "CAMP-002", DisasterID: "DIS-002", Name: "South Camp", Capacity: 300, Status: "Active"}

	camps, err := service.ListCamps(ctx, primary.CampFilters{DisasterID: "DIS-001"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(camps) != 1 || camps[0].ID != "CAMP-001" {
		t.Errorf("expected only CAMP-001, got %d camps", len(camps))
	}
}

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

func newTestVolunteerService(maxActive int) (*VolunteerServiceImpl, *mockVolunteerRepository, *mockAssignmentRepository) {
	volunteerRepo := newMockVolunteerRepository()
	assignmentRepo := newMockAssignmentRepository()
	assignmentRepo.volunteers = volunteerRepo
	service := NewVolunteerService(volunteerRepo, assignmentRepo, maxActive)
	return service, volunteerRepo, assignmentRepo
}

func TestVolunteerService_RegisterVolunteer(t *testing.T) {
	service, repo, _ := newTestVolunteerService(1)
	ctx := context.Background()

	resp, err := service.RegisterVolunteer(ctx, primary.RegisterVolunteerRequest{
		Name:   "Dana Reyes",
		Skills: "Medical, First Aid",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.VolunteerID != "VOL-001" {
		t.Errorf("expected VOL-001, got %q", resp.VolunteerID)
	}
	if resp.Volunteer.AvailabilityStatus != "Available" {
		t.Errorf("expected new volunteer to be Available, got %q", resp.Volunteer.AvailabilityStatus)
	}
	if len(repo.volunteers) != 1 {
		t.Errorf("expected 1 stored volunteer, got %d", len(repo.volunteers))
	}
}

func TestVolunteerService_RegisterVolunteer_MissingName(t *testing.T) {
	service, _, _ := newTestVolunteerService(1)
	ctx := context.Background()

	if _, err := service.RegisterVolunteer(ctx, primary.RegisterVolunteerRequest{Skills: "Logistics"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestVolunteerService_MatchVolunteer_BySkill(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(1)
	ctx := context.Background()

	assignmentRepo.campExists["CAMP-001"] = true
	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical, First Aid", AvailabilityStatus: "Available",
	}
	volunteerRepo.volunteers["VOL-002"] = &secondary.VolunteerRecord{
		ID: "VOL-002", Name: "Sam", Skills: "Logistics", AvailabilityStatus: "Available",
	}

	resp, err := service.MatchVolunteer(ctx, primary.MatchRequest{
		CampID:        "CAMP-001",
		Role:          "Nurse",
		RequiredSkill: "Medical",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.VolunteerID != "VOL-001" {
		t.Errorf("expected VOL-001 matched, got %q", resp.VolunteerID)
	}
	if resp.Assignment.Status != "Active" {
		t.Errorf("expected Active assignment, got %q", resp.Assignment.Status)
	}
	if volunteerRepo.volunteers["VOL-001"].AvailabilityStatus != "Assigned" {
		t.Errorf("expected volunteer flipped to Assigned, got %q", volunteerRepo.volunteers["VOL-001"].AvailabilityStatus)
	}
}

func TestVolunteerService_MatchVolunteer_NoMatchAfterAssignment(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(1)
	ctx := context.Background()

	assignmentRepo.campExists["CAMP-001"] = true
	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical, First Aid", AvailabilityStatus: "Available",
	}

	if _, err := service.MatchVolunteer(ctx, primary.MatchRequest{CampID: "CAMP-001", Role: "Nurse", RequiredSkill: "Medical"}); err != nil {
		t.Fatalf("first match: expected no error, got %v", err)
	}

	// The only Medical volunteer is now Assigned; a second request finds nobody.
	_, err := service.MatchVolunteer(ctx, primary.MatchRequest{CampID: "CAMP-001", Role: "Nurse", RequiredSkill: "Medical"})
	if err == nil {
		t.Fatal("expected no-match error")
	}
	if !errors.Is(err, secondary.ErrNoMatch) {
		t.Errorf("expected wrapped ErrNoMatch, got %v", err)
	}
}

func TestVolunteerService_MatchVolunteer_IdleFirst(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(-1)
	ctx := context.Background()

	assignmentRepo.campExists["CAMP-001"] = true
	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Logistics", AvailabilityStatus: "Available", CompletedAssignments: 3,
	}
	volunteerRepo.volunteers["VOL-002"] = &secondary.VolunteerRecord{
		ID: "VOL-002", Name: "Sam", Skills: "Logistics", AvailabilityStatus: "Available", CompletedAssignments: 1,
	}

	resp, err := service.MatchVolunteer(ctx, primary.MatchRequest{CampID: "CAMP-001", Role: "Driver", RequiredSkill: "Logistics"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.VolunteerID != "VOL-002" {
		t.Errorf("expected less-worked VOL-002 matched, got %q", resp.VolunteerID)
	}
}

func TestVolunteerService_MatchVolunteer_RespectsActiveCap(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(2)
	ctx := context.Background()

	assignmentRepo.campExists["CAMP-001"] = true
	// Available but already at the cap of 2 active assignments.
	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical", AvailabilityStatus: "Available", ActiveAssignments: 2,
	}

	_, err := service.MatchVolunteer(ctx, primary.MatchRequest{CampID: "CAMP-001", Role: "Nurse", RequiredSkill: "Medical"})
	if !errors.Is(err, secondary.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch for capped volunteer, got %v", err)
	}
}

func TestVolunteerService_MatchVolunteer_UnlimitedCap(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(-1)
	ctx := context.Background()

	assignmentRepo.campExists["CAMP-001"] = true
	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical", AvailabilityStatus: "Available", ActiveAssignments: 5,
	}

	resp, err := service.MatchVolunteer(ctx, primary.MatchRequest{CampID: "CAMP-001", Role: "Nurse", RequiredSkill: "Medical"})
	if err != nil {
		t.Fatalf("expected match with unlimited cap, got %v", err)
	}
	if resp.VolunteerID != "VOL-001" {
		t.Errorf("expected VOL-001, got %q", resp.VolunteerID)
	}
}

func TestVolunteerService_MatchVolunteer_CampNotFound(t *testing.T) {
	service, volunteerRepo, _ := newTestVolunteerService(1)
	ctx := context.Background()

	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical", AvailabilityStatus: "Available",
	}

	_, err := service.MatchVolunteer(ctx, primary.MatchRequest{CampID: "CAMP-404", Role: "Nurse"})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown camp, got %v", err)
	}
}

func TestVolunteerService_CompleteAssignment_RestoresAvailability(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(1)
	ctx := context.Background()

	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical", AvailabilityStatus: "Assigned",
	}
	assignmentRepo.assignments["ASSIGN-001"] = &secondary.AssignmentRecord{
		ID: "ASSIGN-001", VolunteerID: "VOL-001", CampID: "CAMP-001", Role: "Nurse", Status: "Active",
	}

	if err := service.CompleteAssignment(ctx, "ASSIGN-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if assignmentRepo.assignments["ASSIGN-001"].Status != "Completed" {
		t.Errorf("expected Completed, got %q", assignmentRepo.assignments["ASSIGN-001"].Status)
	}
	if assignmentRepo.assignments["ASSIGN-001"].EndDate == "" {
		t.Error("expected end date set on completion")
	}
	if volunteerRepo.volunteers["VOL-001"].AvailabilityStatus != "Available" {
		t.Errorf("expected volunteer restored to Available, got %q", volunteerRepo.volunteers["VOL-001"].AvailabilityStatus)
	}
}

func TestVolunteerService_CompleteAssignment_OtherActiveRemains(t *testing.T) {
	service, volunteerRepo, assignmentRepo := newTestVolunteerService(-1)
	ctx := context.Background()

	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{
		ID: "VOL-001", Name: "Dana", Skills: "Medical", AvailabilityStatus: "Assigned",
	}
	assignmentRepo.assignments["ASSIGN-001"] = &secondary.AssignmentRecord{
		ID: "ASSIGN-001", VolunteerID: "VOL-001", CampID: "CAMP-001", Role: "Nurse", Status: "Active",
	}
	assignmentRepo.assignments["ASSIGN-002"] = &secondary.AssignmentRecord{
		ID: "ASSIGN-002", VolunteerID: "VOL-001", CampID: "CAMP-002", Role: "Medic", Status: "Active",
	}

	if err := service.CompleteAssignment(ctx, "ASSIGN-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// A second Active assignment keeps the volunteer Assigned.
	if volunteerRepo.volunteers["VOL-001"].AvailabilityStatus != "Assigned" {
		t.Errorf("expected volunteer still Assigned, got %q", volunteerRepo.volunteers["VOL-001"].AvailabilityStatus)
	}
}

func TestVolunteerService_CompleteAssignment_NotActive(t *testing.T) {
	service, _, assignmentRepo := newTestVolunteerService(1)
	ctx := context.Background()

	assignmentRepo.assignments["ASSIGN-001"] = &secondary.AssignmentRecord{
		ID: "ASSIGN-001", VolunteerID: "VOL-001", CampID: "CAMP-001", Role: "Nurse", Status: "Completed",
	}

	if err := service.CompleteAssignment(ctx, "ASSIGN-001"); err == nil {
		t.Error("expected error completing a non-active assignment")
	}
}

func TestVolunteerService_CompleteAssignment_NotFound(t *testing.T) {
	service, _, _ := newTestVolunteerService(1)
	ctx := context.Background()

	err := service.CompleteAssignment(ctx, "ASSIGN-999")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVolunteerService_ListVolunteers_FilterByAvailability(t *testing.T) {
	service, volunteerRepo, _ := newTestVolunteerService(1)
	ctx := context.Background()

	volunteerRepo.volunteers["VOL-001"] = &secondary.VolunteerRecord{ID: "VOL-001", Name: "Dana", AvailabilityStatus: "Available"}
	volunteerRepo.volunteers["VOL-002"] = &secondary.VolunteerRecord{ID: "VOL-002", Name: "Sam", AvailabilityStatus: "Assigned"}

	volunteers, err := service.ListVolunteers(ctx, primary.VolunteerFilters{AvailabilityStatus: "Available"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(volunteers) != 1 || volunteers[0].ID != "VOL-001" {
		t.Errorf("expected only VOL-001, got %d volunteers", len(volunteers))
	}
}

func TestVolunteerService_ListAssignments_FilterByCamp(t *testing.T) {
	service, _, assignmentRepo := newTestVolunteerService(1)
	ctx := context.Background()

	assignmentRepo.assignments["ASSIGN-001"] = &secondary.AssignmentRecord{ID: "ASSIGN-001", VolunteerID: "VOL-001", CampID: "CAMP-001", Role: "Nurse", Status: "Active"}
	assignmentRepo.assignments["ASSIGN-002"] = &secondary.AssignmentRecord{ID: "ASSIGN-002", VolunteerID: "VOL-002", CampID: "CAMP-002", Role: "Cook", Status: "Active"}

	assignments, err := service.ListAssignments(ctx, primary.AssignmentFilters{CampID: "CAMP-001"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(assignments) != 1 || assignments[0].ID != "ASSIGN-001" {
		t.Errorf("expected only ASSIGN-001, got %d assignments", len(assignments))
	}
}

package app

import (
	"context"
	"fmt"

	"github.com/example/relief/internal/core/matching"
	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

// VolunteerServiceImpl implements the VolunteerService interface.
type VolunteerServiceImpl struct {
	volunteerRepo  secondary.VolunteerRepository
	assignmentRepo secondary.AssignmentRepository

	// maxActive caps Active assignments per volunteer; -1 means unlimited.
	maxActive int
}

// NewVolunteerService creates a new VolunteerService with injected
// dependencies. maxActive caps concurrent Active assignments per volunteer
// (-1 for no cap).
func NewVolunteerService(
	volunteerRepo secondary.VolunteerRepository,
	assignmentRepo secondary.AssignmentRepository,
	maxActive int,
) *VolunteerServiceImpl {
	return &VolunteerServiceImpl{
		volunteerRepo:  volunteerRepo,
		assignmentRepo: assignmentRepo,
		maxActive:      maxActive,
	}
}

// RegisterVolunteer registers a new volunteer.
func (s *VolunteerServiceImpl) RegisterVolunteer(ctx context.Context, req primary.RegisterVolunteerRequest) (*primary.RegisterVolunteerResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("volunteer name is required")
	}

	nextID, err := s.volunteerRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer ID: %w", err)
	}

	record := &secondary.VolunteerRecord{
		ID:                 nextID,
		Name:               req.Name,
		Skills:             req.Skills,
		AvailabilityStatus: "Available",
	}
	if err := s.volunteerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register volunteer: %w", err)
	}

	created, err := s.volunteerRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created volunteer: %w", err)
	}

	return &primary.RegisterVolunteerResponse{
		VolunteerID: created.ID,
		Volunteer:   recordToVolunteer(created),
	}, nil
}

// ListVolunteers lists volunteers with assignment counts.
func (s *VolunteerServiceImpl) ListVolunteers(ctx context.Context, filters primary.VolunteerFilters) ([]*primary.Volunteer, error) {
	records, err := s.volunteerRepo.List(ctx, secondary.VolunteerFilters{
		AvailabilityStatus: filters.AvailabilityStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	volunteers := make([]*primary.Volunteer, len(records))
	for i, r := range records {
		volunteers[i] = recordToVolunteer(r)
	}
	return volunteers, nil
}

// MatchVolunteer finds the best available volunteer for a camp role request
// and creates an Active assignment.
func (s *VolunteerServiceImpl) MatchVolunteer(ctx context.Context, req primary.MatchRequest) (*primary.MatchResponse, error) {
	if req.CampID == "" || req.Role == "" {
		return nil, fmt.Errorf("camp and role are required")
	}

	exists, err := s.assignmentRepo.CampExists(ctx, req.CampID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate camp: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("camp %s: %w", req.CampID, secondary.ErrNotFound)
	}

	available, err := s.volunteerRepo.List(ctx, secondary.VolunteerFilters{AvailabilityStatus: "Available"})
	if err != nil {
		return nil, fmt.Errorf("failed to list available volunteers: %w", err)
	}

	// Guard out volunteers at the active-assignment cap before selection
	// so the selector only sees assignable candidates.
	var candidates []matching.Candidate
	for _, v := range available {
		guard := matching.CanAssign(matching.AssignContext{
			VolunteerID:        v.ID,
			AvailabilityStatus: v.AvailabilityStatus,
			ActiveAssignments:  v.ActiveAssignments,
			MaxActive:          s.maxActive,
		})
		if !guard.Allowed {
			continue
		}
		candidates = append(candidates, matching.Candidate{
			VolunteerID:          v.ID,
			Skills:               matching.FreeTextSkills(v.Skills),
			ActiveAssignments:    v.ActiveAssignments,
			CompletedAssignments: v.CompletedAssignments,
		})
	}

	volunteerID, ok := matching.Select(candidates, req.RequiredSkill)
	if !ok {
		return nil, fmt.Errorf("no available volunteer for role %q (skill %q): %w",
			req.Role, req.RequiredSkill, secondary.ErrNoMatch)
	}

	assignmentID, err := s.assignmentRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate assignment ID: %w", err)
	}

	assignment := &secondary.AssignmentRecord{
		ID:          assignmentID,
		VolunteerID: volunteerID,
		CampID:      req.CampID,
		Role:        req.Role,
		Status:      "Active",
	}
	if err := s.assignmentRepo.CreateActive(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	created, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created assignment: %w", err)
	}

	return &primary.MatchResponse{
		VolunteerID:  volunteerID,
		AssignmentID: assignmentID,
		Assignment:   recordToAssignment(created),
	}, nil
}

// CompleteAssignment marks an assignment Completed and restores the
// volunteer to Available when no other Active assignment remains.
func (s *VolunteerServiceImpl) CompleteAssignment(ctx context.Context, assignmentID string) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment.Status != "Active" {
		return fmt.Errorf("can only complete active assignments (current status: %s)", assignment.Status)
	}

	if err := s.assignmentRepo.Complete(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to complete assignment: %w", err)
	}

	remaining, err := s.assignmentRepo.CountActiveForVolunteer(ctx, assignment.VolunteerID)
	if err != nil {
		return fmt.Errorf("failed to count active assignments: %w", err)
	}
	if remaining == 0 {
		if err := s.volunteerRepo.UpdateAvailability(ctx, assignment.VolunteerID, "Available"); err != nil {
			return fmt.Errorf("failed to restore volunteer availability: %w", err)
		}
	}

	return nil
}

// ListAssignments lists assignments with optional filters.
func (s *VolunteerServiceImpl) ListAssignments(ctx context.Context, filters primary.AssignmentFilters) ([]*primary.Assignment, error) {
	records, err := s.assignmentRepo.List(ctx, secondary.AssignmentFilters{
		VolunteerID: filters.VolunteerID,
		CampID:      filters.CampID,
		Status:      filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]*primary.Assignment, len(records))
	for i, r := range records {
		assignments[i] = recordToAssignment(r)
	}
	return assignments, nil
}

// recordToVolunteer converts a persistence record to the port type.
func recordToVolunteer(r *secondary.VolunteerRecord) *primary.Volunteer {
	return &primary.Volunteer{
		ID:                   r.ID,
		Name:                 r.Name,
		Skills:               r.Skills,
		AvailabilityStatus:   r.AvailabilityStatus,
		ActiveAssignments:    r.ActiveAssignments,
		CompletedAssignments: r.CompletedAssignments,
		CreatedAt:            r.CreatedAt,
	}
}

// recordToAssignment converts a persistence record to the port type.
func recordToAssignment(r *secondary.AssignmentRecord) *primary.Assignment {
	return &primary.Assignment{
		ID:          r.ID,
		VolunteerID: r.VolunteerID,
		CampID:      r.CampID,
		Role:        r.Role,
		Status:      r.Status,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// Ensure VolunteerServiceImpl implements the interface
var _ primary.VolunteerService = (*VolunteerServiceImpl)(nil)

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

// VolunteerAdapter is a thin adapter that translates CLI operations to
// VolunteerService calls.
type VolunteerAdapter struct {
	service primary.VolunteerService
	out     io.Writer
}

// NewVolunteerAdapter creates a new VolunteerAdapter with the given service.
func NewVolunteerAdapter(service primary.VolunteerService, out io.Writer) *VolunteerAdapter {
	return &VolunteerAdapter{
		service: service,
		out:     out,
	}
}

// Register registers a new volunteer.
func (a *VolunteerAdapter) Register(ctx context.Context, name, skills string) error {
	resp, err := a.service.RegisterVolunteer(ctx, primary.RegisterVolunteerRequest{
		Name:   name,
		Skills: skills,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Registered volunteer %s: %s\n", resp.VolunteerID, resp.Volunteer.Name)
	return nil
}

// List lists volunteers with optional availability filter.
func (a *VolunteerAdapter) List(ctx context.Context, availability string) error {
	volunteers, err := a.service.ListVolunteers(ctx, primary.VolunteerFilters{
		AvailabilityStatus: availability,
	})
	if err != nil {
		return fmt.Errorf("failed to list volunteers: %w", err)
	}

	if len(volunteers) == 0 {
		fmt.Fprintln(a.out, "No volunteers found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-22s %-26s %-12s %6s %9s\n", "ID", "NAME", "SKILLS", "STATUS", "ACTIVE", "COMPLETED")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────────────────────────────")
	for _, v := range volunteers {
		skills := v.Skills
		if skills == "" {
			skills = "-"
		}
		fmt.Fprintf(a.out, "%-10s %-22s %-26s %-12s %6d %9d\n",
			v.ID, v.Name, skills, v.AvailabilityStatus, v.ActiveAssignments, v.CompletedAssignments)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Match finds a volunteer for a camp role request and creates an assignment.
func (a *VolunteerAdapter) Match(ctx context.Context, campID, role, requiredSkill string) error {
	resp, err := a.service.MatchVolunteer(ctx, primary.MatchRequest{
		CampID:        campID,
		Role:          role,
		RequiredSkill: requiredSkill,
	})
	if errors.Is(err, secondary.ErrNoMatch) {
		fmt.Fprintf(a.out, "No available volunteer matches role %q", role)
		if requiredSkill != "" {
			fmt.Fprintf(a.out, " (skill %q)", requiredSkill)
		}
		fmt.Fprintln(a.out)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Assigned %s to %s as %s (%s)\n",
		resp.VolunteerID, campID, role, resp.AssignmentID)
	return nil
}

// Complete marks an assignment Completed.
func (a *VolunteerAdapter) Complete(ctx context.Context, assignmentID string) error {
	if err := a.service.CompleteAssignment(ctx, assignmentID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Assignment %s completed\n", assignmentID)
	return nil
}

// Assignments lists assignments with optional filters.
func (a *VolunteerAdapter) Assignments(ctx context.Context, volunteerID, campID, status string) error {
	assignments, err := a.service.ListAssignments(ctx, primary.AssignmentFilters{
		VolunteerID: volunteerID,
		CampID:      campID,
		Status:      status,
	})
	if err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}

	if len(assignments) == 0 {
		fmt.Fprintln(a.out, "No assignments found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-10s %-10s %-18s %s\n", "ID", "VOLUNTEER", "CAMP", "ROLE", "STATUS")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────")
	for _, as := range assignments {
		fmt.Fprintf(a.out, "%-12s %-10s %-10s %-18s %s\n",
			as.ID, as.VolunteerID, as.CampID, as.Role, as.Status)
	}
	fmt.Fprintln(a.out)

	return nil
}

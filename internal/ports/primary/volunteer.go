package primary

import "context"

// VolunteerService defines the primary port for volunteer registration,
// skill matching, and assignment lifecycle.
type VolunteerService interface {
	// RegisterVolunteer registers a new volunteer.
	RegisterVolunteer(ctx context.Context, req RegisterVolunteerRequest) (*RegisterVolunteerResponse, error)

	// ListVolunteers lists volunteers with assignment counts.
	ListVolunteers(ctx context.Context, filters VolunteerFilters) ([]*Volunteer, error)

	// MatchVolunteer finds the best available volunteer for a camp role
	// request and creates an Active assignment. Returns a wrapped
	// secondary.ErrNoMatch when no available volunteer satisfies the
	// skill requirement.
	MatchVolunteer(ctx context.Context, req MatchRequest) (*MatchResponse, error)

	// CompleteAssignment marks an assignment Completed and restores the
	// volunteer to Available when no other Active assignment remains.
	CompleteAssignment(ctx context.Context, assignmentID string) error

	// ListAssignments lists assignments with optional filters.
	ListAssignments(ctx context.Context, filters AssignmentFilters) ([]*Assignment, error)
}

// RegisterVolunteerRequest contains parameters for registering a volunteer.
type RegisterVolunteerRequest struct {
	Name   string
	Skills string // free-text comma-separated tags
}

// RegisterVolunteerResponse contains the result of registering a volunteer.
type RegisterVolunteerResponse struct {
	VolunteerID string
	Volunteer   *Volunteer
}

// Volunteer represents a volunteer at the port boundary.
type Volunteer struct {
	ID                   string
	Name                 string
	Skills               string
	AvailabilityStatus   string
	ActiveAssignments    int
	CompletedAssignments int
	CreatedAt            string
}

// VolunteerFilters contains filter options for listing volunteers.
type VolunteerFilters struct {
	AvailabilityStatus string
}

// MatchRequest describes a camp role request.
type MatchRequest struct {
	CampID        string
	Role          string
	RequiredSkill string // optional skill tag
}

// MatchResponse contains the result of a successful match.
type MatchResponse struct {
	VolunteerID  string
	AssignmentID string
	Assignment   *Assignment
}

// Assignment represents an assignment at the port boundary.
type Assignment struct {
	ID          string
	VolunteerID string
	CampID      string
	Role        string
	Status      string
	StartDate   string
	EndDate     string
}

// AssignmentFilters contains filter options for listing assignments.
type AssignmentFilters struct {
	VolunteerID string
	CampID      string
	Status      string
}

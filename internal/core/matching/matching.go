// Package matching contains the pure business logic for matching available
// volunteers to camp role requests by declared skill.
package matching

import (
	"fmt"
	"strings"
)

// SkillSet is the capability a candidate exposes for skill filtering.
// The free-text implementation below is a compatibility shim; a structured
// tag relation can implement this interface without touching the selector.
type SkillSet interface {
	// Matches reports whether the set satisfies the required skill tag.
	Matches(required string) bool
}

// FreeTextSkills is a comma-separated skills string as stored today
// (e.g. "Medical, First Aid"). Matching is a case-insensitive substring
// check against each declared skill.
type FreeTextSkills string

// Matches implements SkillSet. An empty required tag matches any set.
func (s FreeTextSkills) Matches(required string) bool {
	if required == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(required))
	for _, skill := range strings.Split(string(s), ",") {
		if strings.Contains(strings.ToLower(strings.TrimSpace(skill)), needle) {
			return true
		}
	}
	return false
}

// Candidate is one available volunteer considered for selection.
type Candidate struct {
	VolunteerID          string
	Skills               SkillSet
	ActiveAssignments    int
	CompletedAssignments int
}

// workload is the idle-first selection key: volunteers with fewer past and
// present assignments are preferred.
func (c Candidate) workload() int {
	return c.ActiveAssignments + c.CompletedAssignments
}

// Select picks the volunteer for a required skill: filter to candidates
// whose skills match, prefer the lowest workload, tie-break by lowest
// volunteer ID. Returns false when no candidate matches.
func Select(candidates []Candidate, requiredSkill string) (string, bool) {
	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Skills == nil || !c.Skills.Matches(requiredSkill) {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if c.workload() < best.workload() ||
			(c.workload() == best.workload() && c.VolunteerID < best.VolunteerID) {
			best = c
		}
	}

	if best == nil {
		return "", false
	}
	return best.VolunteerID, true
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AssignContext provides context for assignment guards.
type AssignContext struct {
	VolunteerID        string
	AvailabilityStatus string
	ActiveAssignments  int
	MaxActive          int // -1 means unlimited
}

// CanAssign evaluates whether a volunteer can take a new assignment.
// Rules:
// - Volunteer must be Available
// - Active assignment count must stay under the configured cap
func CanAssign(ctx AssignContext) GuardResult {
	if ctx.AvailabilityStatus != "Available" {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("volunteer %s is not available (status: %s)",
				ctx.VolunteerID, ctx.AvailabilityStatus),
		}
	}

	if ctx.MaxActive >= 0 && ctx.ActiveAssignments >= ctx.MaxActive {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("volunteer %s already holds %d active assignment(s), cap is %d",
				ctx.VolunteerID, ctx.ActiveAssignments, ctx.MaxActive),
		}
	}

	return GuardResult{Allowed: true}
}

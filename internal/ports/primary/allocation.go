package primary

import "context"

// AllocationService defines the primary port for the matching and
// allocation engine: shortage derivation, pool tracking, planning, and
// transactional plan execution.
type AllocationService interface {
	// ListShortages derives the current shortage list from inventory
	// snapshots. Read-only.
	ListShortages(ctx context.Context, filters ShortageFilters) ([]*Shortage, error)

	// ListPool derives the unallocated donation pool. Read-only.
	ListPool(ctx context.Context) ([]*PoolEntry, error)

	// PreviewPlan computes the allocation plan for the current snapshots
	// without applying it.
	PreviewPlan(ctx context.Context, req PlanRequest) (*PlanResponse, error)

	// RunAllocation computes a plan and applies it proposal by proposal.
	// Stale proposals are skipped and counted, not fatal; a missing
	// donation, camp, or resource row aborts the run.
	RunAllocation(ctx context.Context, req PlanRequest) (*RunResponse, error)

	// ListAllocations lists allocation rows with optional filters.
	ListAllocations(ctx context.Context, filters AllocationFilters) ([]*Allocation, error)

	// UpdateAllocationStatus advances an allocation's delivery status
	// (Pending -> Delivered -> Received).
	UpdateAllocationStatus(ctx context.Context, allocationID, status string) error
}

// Shortage represents an outstanding camp shortage at the port boundary.
type Shortage struct {
	CampID           string
	CampName         string
	ResourceType     string
	Deficit          int
	DisasterSeverity string
	Band             string // Critical/High shortage band, empty otherwise
}

// ShortageFilters contains filter options for listing shortages.
type ShortageFilters struct {
	ResourceType string
	CriticalOnly bool
}

// PoolEntry represents an unallocated donation at the port boundary.
type PoolEntry struct {
	DonationID   string
	DonorName    string
	ResourceType string
	Unallocated  int
}

// PlanRequest scopes a planning or allocation run.
type PlanRequest struct {
	ResourceType string // empty plans all resource types
}

// PlanResponse contains a computed allocation plan.
type PlanResponse struct {
	Proposals []*ProposedAllocation
}

// ProposedAllocation is one planned donation-to-camp transfer.
type ProposedAllocation struct {
	DonationID   string
	CampID       string
	ResourceType string
	Quantity     int
}

// RunResponse reports the outcome of an allocation run.
type RunResponse struct {
	Planned int
	Applied int
	Skipped int
	Results []*ProposalResult
}

// ProposalResult is the per-proposal outcome of an allocation run.
type ProposalResult struct {
	Proposal     *ProposedAllocation
	AllocationID string // set when applied
	Applied      bool
	SkipReason   string // set when skipped as stale
}

// Allocation represents an allocation row at the port boundary.
type Allocation struct {
	ID                string
	DonationID        string
	CampID            string
	QuantityAllocated int
	Status            string
	CreatedAt         string
	UpdatedAt         string
}

// AllocationFilters contains filter options for listing allocations.
type AllocationFilters struct {
	DonationID string
	CampID     string
	Status     string
}

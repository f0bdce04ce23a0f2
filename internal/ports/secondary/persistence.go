// Package secondary defines the secondary ports (driven adapters) for the
// engine. These are the interfaces through which the engine reaches the
// persistence collaborator.
package secondary

import "context"

// DisasterRepository defines the secondary port for disaster persistence.
type DisasterRepository interface {
	// Create persists a new disaster.
	Create(ctx context.Context, disaster *DisasterRecord) error

	// GetByID retrieves a disaster by its ID.
	GetByID(ctx context.Context, id string) (*DisasterRecord, error)

	// List retrieves disasters matching the given filters.
	List(ctx context.Context, filters DisasterFilters) ([]*DisasterRecord, error)

	// UpdateStatus updates the status of a disaster.
	UpdateStatus(ctx context.Context, id, status string) error

	// GetNextID returns the next available disaster ID.
	GetNextID(ctx context.Context) (string, error)
}

// DisasterRecord represents a disaster as stored in persistence.
type DisasterRecord struct {
	ID        string
	Name      string
	Severity  string // Low, Medium, High, Critical
	Status    string // Active, Ongoing, Contained, Resolved
	CreatedAt string
	UpdatedAt string
}

// DisasterFilters contains filter options for querying disasters.
type DisasterFilters struct {
	Status   string
	Severity string
}

// CampRepository defines the secondary port for relief camp persistence.
type CampRepository interface {
	// Create persists a new camp.
	Create(ctx context.Context, camp *CampRecord) error

	// GetByID retrieves a camp by its ID.
	GetByID(ctx context.Context, id string) (*CampRecord, error)

	// List retrieves camps matching the given filters.
	List(ctx context.Context, filters CampFilters) ([]*CampRecord, error)

	// UpdateOccupancy updates the current occupancy of a camp.
	UpdateOccupancy(ctx context.Context, id string, occupancy int) error

	// UpdateStatus updates the status of a camp.
	UpdateStatus(ctx context.Context, id, status string) error

	// GetNextID returns the next available camp ID.
	GetNextID(ctx context.Context) (string, error)

	// DisasterExists checks if a disaster exists (for validation).
	DisasterExists(ctx context.Context, disasterID string) (bool, error)
}

// CampRecord represents a relief camp as stored in persistence.
type CampRecord struct {
	ID               string
	DisasterID       string
	Name             string
	Capacity         int
	CurrentOccupancy int
	Status           string // Active, Overcrowded, Closed
	DisasterSeverity string // joined from disasters, read-only
	DisasterStatus   string // joined from disasters, read-only
	CreatedAt        string
	UpdatedAt        string
}

// CampFilters contains filter options for querying camps.
type CampFilters struct {
	DisasterID string
	Status     string
}

// ResourceRepository defines the secondary port for resource inventory
// persistence. Resource rows are never deleted, only updated.
type ResourceRepository interface {
	// Create persists a new resource row.
	Create(ctx context.Context, resource *ResourceRecord) error

	// GetByID retrieves a resource row by its ID.
	GetByID(ctx context.Context, id string) (*ResourceRecord, error)

	// GetByCampAndType retrieves the resource row for a (camp, type) pair.
	GetByCampAndType(ctx context.Context, campID, resourceType string) (*ResourceRecord, error)

	// List retrieves resource rows matching the given filters.
	List(ctx context.Context, filters ResourceFilters) ([]*ResourceRecord, error)

	// UpdateQuantities updates both quantities of a resource row.
	UpdateQuantities(ctx context.Context, id string, available, needed int) error

	// ListShortageSnapshots retrieves the shortage input snapshot: one row
	// per (camp, resource type) for camps belonging to disasters with
	// status Active or Ongoing, with the disaster severity joined in.
	ListShortageSnapshots(ctx context.Context) ([]*ShortageSnapshot, error)

	// GetNextID returns the next available resource ID.
	GetNextID(ctx context.Context) (string, error)

	// CampExists checks if a camp exists (for validation).
	CampExists(ctx context.Context, campID string) (bool, error)
}

// ResourceRecord represents a resource inventory row as stored in persistence.
type ResourceRecord struct {
	ID                string
	CampID            string
	ResourceType      string
	QuantityAvailable int
	QuantityNeeded    int
	CreatedAt         string
	UpdatedAt         string
}

// ResourceFilters contains filter options for querying resource rows.
type ResourceFilters struct {
	CampID       string
	ResourceType string
}

// ShortageSnapshot is one row of the shortage calculator's input: the
// inventory state of a (camp, resource type) pair plus the severity of the
// camp's disaster.
type ShortageSnapshot struct {
	CampID            string
	CampName          string
	ResourceType      string
	QuantityAvailable int
	QuantityNeeded    int
	DisasterSeverity  string
}

// DonationRepository defines the secondary port for donation persistence.
type DonationRepository interface {
	// Create persists a new donation.
	Create(ctx context.Context, donation *DonationRecord) error

	// GetByID retrieves a donation by its ID.
	GetByID(ctx context.Context, id string) (*DonationRecord, error)

	// List retrieves donations matching the given filters, in creation order.
	List(ctx context.Context, filters DonationFilters) ([]*DonationRecord, error)

	// UpdateStatus updates the status of a donation.
	UpdateStatus(ctx context.Context, id, status string) error

	// ListPool retrieves the supply pool input: donations with status
	// Received or Allocated, with the derived allocated total, in creation
	// order (earliest donation first).
	ListPool(ctx context.Context) ([]*DonationRecord, error)

	// AllocatedTotal returns the derived sum of allocation quantities for a
	// donation.
	AllocatedTotal(ctx context.Context, donationID string) (int, error)

	// GetNextID returns the next available donation ID.
	GetNextID(ctx context.Context) (string, error)
}

// DonationRecord represents a donation as stored in persistence.
// AllocatedTotal is derived from the allocations table, never stored.
type DonationRecord struct {
	ID              string
	DonorName       string
	ResourceType    string
	QuantityDonated int
	Status          string // Pending, Received, Allocated, Distributed
	AllocatedTotal  int
	CreatedAt       string
	UpdatedAt       string
}

// DonationFilters contains filter options for querying donations.
type DonationFilters struct {
	Status       string
	ResourceType string
}

// ProposedAllocationRecord is one planner proposal handed to the
// transactional apply step.
type ProposedAllocationRecord struct {
	DonationID   string
	CampID       string
	ResourceType string
	Quantity     int
}

// ApplyReceipt reports the effects of one applied proposal.
type ApplyReceipt struct {
	AllocationID      string
	AppliedQuantity   int
	DonationExhausted bool // donation became fully allocated
	AvailableAfter    int  // camp quantity_available after the clamped update
	DeficitAfter      int  // remaining deficit after the update
}

// AllocationRepository defines the secondary port for allocation persistence.
// Allocation rows are append-only; corrections are new rows, never edits.
type AllocationRepository interface {
	// Apply executes one proposal inside a transaction: it re-validates
	// remaining supply and deficit against current rows, inserts the
	// allocation, bumps the camp inventory (clamped at need), and
	// transitions the donation to Allocated when fully consumed.
	// Returns ErrStaleProposal when re-validation fails and ErrNotFound
	// when the donation, camp, or resource row no longer exists.
	Apply(ctx context.Context, proposal *ProposedAllocationRecord) (*ApplyReceipt, error)

	// GetByID retrieves an allocation by its ID.
	GetByID(ctx context.Context, id string) (*AllocationRecord, error)

	// List retrieves allocations matching the given filters.
	List(ctx context.Context, filters AllocationFilters) ([]*AllocationRecord, error)

	// UpdateStatus updates the delivery status of an allocation
	// (Pending -> Delivered -> Received).
	UpdateStatus(ctx context.Context, id, status string) error
}

// AllocationRecord represents an allocation as stored in persistence.
type AllocationRecord struct {
	ID                string
	DonationID        string
	CampID            string
	QuantityAllocated int
	Status            string // Pending, Delivered, Received
	CreatedAt         string
	UpdatedAt         string
}

// AllocationFilters contains filter options for querying allocations.
type AllocationFilters struct {
	DonationID string
	CampID     string
	Status     string
}

// VolunteerRepository defines the secondary port for volunteer persistence.
type VolunteerRepository interface {
	// Create persists a new volunteer.
	Create(ctx context.Context, volunteer *VolunteerRecord) error

	// GetByID retrieves a volunteer by its ID.
	GetByID(ctx context.Context, id string) (*VolunteerRecord, error)

	// List retrieves volunteers matching the given filters, with assignment
	// counts joined in.
	List(ctx context.Context, filters VolunteerFilters) ([]*VolunteerRecord, error)

	// UpdateAvailability updates the availability status of a volunteer.
	UpdateAvailability(ctx context.Context, id, status string) error

	// GetNextID returns the next available volunteer ID.
	GetNextID(ctx context.Context) (string, error)
}

// VolunteerRecord represents a volunteer as stored in persistence.
// The assignment counts are derived from the assignments table.
type VolunteerRecord struct {
	ID                   string
	Name                 string
	Skills               string // free-text comma-separated tags
	AvailabilityStatus   string // Available, Assigned, Unavailable
	ActiveAssignments    int
	CompletedAssignments int
	CreatedAt            string
	UpdatedAt            string
}

// VolunteerFilters contains filter options for querying volunteers.
type VolunteerFilters struct {
	AvailabilityStatus string
}

// AssignmentRepository defines the secondary port for assignment persistence.
type AssignmentRepository interface {
	// Create persists a new assignment.
	Create(ctx context.Context, assignment *AssignmentRecord) error

	// CreateActive persists a new Active assignment and marks the volunteer
	// Assigned in one transaction, so a failure between the two writes
	// cannot leave an assignment without the availability flip.
	CreateActive(ctx context.Context, assignment *AssignmentRecord) error

	// GetByID retrieves an assignment by its ID.
	GetByID(ctx context.Context, id string) (*AssignmentRecord, error)

	// List retrieves assignments matching the given filters.
	List(ctx context.Context, filters AssignmentFilters) ([]*AssignmentRecord, error)

	// Complete marks an assignment Completed and sets its end date.
	Complete(ctx context.Context, id string) error

	// CountActiveForVolunteer returns the number of Active assignments held
	// by a volunteer.
	CountActiveForVolunteer(ctx context.Context, volunteerID string) (int, error)

	// GetNextID returns the next available assignment ID.
	GetNextID(ctx context.Context) (string, error)

	// CampExists checks if a camp exists (for validation).
	CampExists(ctx context.Context, campID string) (bool, error)

	// VolunteerExists checks if a volunteer exists (for validation).
	VolunteerExists(ctx context.Context, volunteerID string) (bool, error)
}

// AssignmentRecord represents an assignment as stored in persistence.
type AssignmentRecord struct {
	ID          string
	VolunteerID string
	CampID      string
	Role        string
	Status      string // Active, Completed, Cancelled
	StartDate   string
	EndDate     string // Empty string means null
	CreatedAt   string
	UpdatedAt   string
}

// AssignmentFilters contains filter options for querying assignments.
type AssignmentFilters struct {
	VolunteerID string
	CampID      string
	Status      string
}

// AuditLogRepository defines the secondary port for the audit trail.
// Audit rows are immutable - no Update or Delete operations.
type AuditLogRepository interface {
	// Create persists a new audit entry.
	Create(ctx context.Context, entry *AuditRecord) error

	// List retrieves audit entries matching the given filters.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)

	// GetNextID returns the next available audit entry ID.
	GetNextID(ctx context.Context) (string, error)
}

// AuditRecord represents an audit trail entry as stored in persistence.
type AuditRecord struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  string
}

// AuditFilters contains filter options for querying the audit trail.
type AuditFilters struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}

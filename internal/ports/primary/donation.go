package primary

import "context"

// DonationService defines the primary port for donation intake and status
// edits. Allocation-driven status transitions are owned by the
// AllocationService; this port covers intake and the thin manual edits.
type DonationService interface {
	// RecordDonation registers a new donation (status Pending).
	RecordDonation(ctx context.Context, req RecordDonationRequest) (*RecordDonationResponse, error)

	// GetDonation retrieves a donation with its derived allocated total.
	GetDonation(ctx context.Context, donationID string) (*Donation, error)

	// ListDonations lists donations with optional filters.
	ListDonations(ctx context.Context, filters DonationFilters) ([]*Donation, error)

	// UpdateDonationStatus applies a manual status edit (e.g. Pending ->
	// Received on intake confirmation, Allocated -> Distributed on
	// delivery). Transitions are validated.
	UpdateDonationStatus(ctx context.Context, donationID, status string) error
}

// RecordDonationRequest contains parameters for registering a donation.
type RecordDonationRequest struct {
	DonorName       string
	ResourceType    string
	QuantityDonated int
}

// RecordDonationResponse contains the result of registering a donation.
type RecordDonationResponse struct {
	DonationID string
	Donation   *Donation
}

// Donation represents a donation at the port boundary.
type Donation struct {
	ID              string
	DonorName       string
	ResourceType    string
	QuantityDonated int
	AllocatedTotal  int
	Unallocated     int
	Status          string
	CreatedAt       string
	UpdatedAt       string
}

// DonationFilters contains filter options for listing donations.
type DonationFilters struct {
	Status       string
	ResourceType string
}

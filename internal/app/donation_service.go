package app

import (
	"context"
	"fmt"

	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

// DonationServiceImpl implements the DonationService interface.
type DonationServiceImpl struct {
	donationRepo secondary.DonationRepository
}

// NewDonationService creates a new DonationService with injected dependencies.
func NewDonationService(donationRepo secondary.DonationRepository) *DonationServiceImpl {
	return &DonationServiceImpl{donationRepo: donationRepo}
}

// manualStatusTransitions are the donation edits allowed outside the
// allocation executor: intake confirms receipt, distribution closes out a
// fully allocated donation. Pending -> Allocated and back-transitions are
// owned by the executor or forbidden outright.
var manualStatusTransitions = map[string]string{
	"Pending":   "Received",
	"Allocated": "Distributed",
}

// RecordDonation registers a new donation with status Pending.
func (s *DonationServiceImpl) RecordDonation(ctx context.Context, req primary.RecordDonationRequest) (*primary.RecordDonationResponse, error) {
	if req.DonorName == "" {
		return nil, fmt.Errorf("donor name is required")
	}
	if req.ResourceType == "" {
		return nil, fmt.Errorf("resource type is required")
	}
	if req.QuantityDonated <= 0 {
		return nil, fmt.Errorf("donation quantity must be positive, got %d", req.QuantityDonated)
	}

	nextID, err := s.donationRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation ID: %w", err)
	}

	record := &secondary.DonationRecord{
		ID:              nextID,
		DonorName:       req.DonorName,
		ResourceType:    req.ResourceType,
		QuantityDonated: req.QuantityDonated,
		Status:          "Pending",
	}
	if err := s.donationRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	created, err := s.donationRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created donation: %w", err)
	}

	return &primary.RecordDonationResponse{
		DonationID: created.ID,
		Donation:   recordToDonation(created),
	}, nil
}

// GetDonation retrieves a donation with its derived allocated total.
func (s *DonationServiceImpl) GetDonation(ctx context.Context, donationID string) (*primary.Donation, error) {
	record, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	return recordToDonation(record), nil
}

// ListDonations lists donations with optional filters.
func (s *DonationServiceImpl) ListDonations(ctx context.Context, filters primary.DonationFilters) ([]*primary.Donation, error) {
	records, err := s.donationRepo.List(ctx, secondary.DonationFilters{
		Status:       filters.Status,
		ResourceType: filters.ResourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	donations := make([]*primary.Donation, len(records))
	for i, r := range records {
		donations[i] = recordToDonation(r)
	}
	return donations, nil
}

// UpdateDonationStatus applies a manual status edit with transition
// validation.
func (s *DonationServiceImpl) UpdateDonationStatus(ctx context.Context, donationID, status string) error {
	record, err := s.donationRepo.GetByID(ctx, donationID)
	if err != nil {
		return err
	}

	if manualStatusTransitions[record.Status] != status {
		return fmt.Errorf("cannot move donation %s from %s to %s (allowed: Pending -> Received, Allocated -> Distributed)",
			donationID, record.Status, status)
	}

	if err := s.donationRepo.UpdateStatus(ctx, donationID, status); err != nil {
		return fmt.Errorf("failed to update donation status: %w", err)
	}
	return nil
}

// recordToDonation converts a persistence record to the port type.
func recordToDonation(r *secondary.DonationRecord) *primary.Donation {
	return &primary.Donation{
		ID:              r.ID,
		DonorName:       r.DonorName,
		ResourceType:    r.ResourceType,
		QuantityDonated: r.QuantityDonated,
		AllocatedTotal:  r.AllocatedTotal,
		Unallocated:     r.QuantityDonated - r.AllocatedTotal,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Ensure DonationServiceImpl implements the interface
var _ primary.DonationService = (*DonationServiceImpl)(nil)

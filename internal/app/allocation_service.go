package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/relief/internal/core/allocation"
	"github.com/example/relief/internal/core/shortage"
	"github.com/example/relief/internal/core/supply"
	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

// AllocationServiceImpl implements the AllocationService interface.
type AllocationServiceImpl struct {
	resourceRepo secondary.ResourceRepository
	donationRepo secondary.DonationRepository
	allocRepo    secondary.AllocationRepository
	planner      *allocation.Planner
}

// NewAllocationService creates a new AllocationService with injected
// dependencies and the default planner ordering policies.
func NewAllocationService(
	resourceRepo secondary.ResourceRepository,
	donationRepo secondary.DonationRepository,
	allocRepo secondary.AllocationRepository,
) *AllocationServiceImpl {
	return &AllocationServiceImpl{
		resourceRepo: resourceRepo,
		donationRepo: donationRepo,
		allocRepo:    allocRepo,
		planner:      allocation.NewPlanner(),
	}
}

// allocationStatusTransitions defines the delivery lifecycle of an
// allocation row. The engine only ever inserts Pending rows; these edits
// are externally triggered.
var allocationStatusTransitions = map[string]string{
	"Pending":   "Delivered",
	"Delivered": "Received",
}

// ListShortages derives the current shortage list from inventory snapshots.
func (s *AllocationServiceImpl) ListShortages(ctx context.Context, filters primary.ShortageFilters) ([]*primary.Shortage, error) {
	snaps, err := s.resourceRepo.ListShortageSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read shortage snapshot: %w", err)
	}

	var shortages []*primary.Shortage
	for _, snap := range snaps {
		if filters.ResourceType != "" && snap.ResourceType != filters.ResourceType {
			continue
		}
		deficit := shortage.Deficit(snap.QuantityAvailable, snap.QuantityNeeded)
		if deficit <= 0 {
			continue
		}
		band := shortage.Classify(snap.QuantityAvailable, snap.QuantityNeeded)
		if filters.CriticalOnly && band == shortage.BandNone {
			continue
		}
		shortages = append(shortages, &primary.Shortage{
			CampID:           snap.CampID,
			CampName:         snap.CampName,
			ResourceType:     snap.ResourceType,
			Deficit:          deficit,
			DisasterSeverity: snap.DisasterSeverity,
			Band:             string(band),
		})
	}
	return shortages, nil
}

// ListPool derives the unallocated donation pool.
func (s *AllocationServiceImpl) ListPool(ctx context.Context) ([]*primary.PoolEntry, error) {
	donations, err := s.donationRepo.ListPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read donation pool: %w", err)
	}

	donors := make(map[string]string, len(donations))
	for _, d := range donations {
		donors[d.ID] = d.DonorName
	}

	var entries []*primary.PoolEntry
	for _, e := range supply.BuildPool(poolInput(donations)) {
		entries = append(entries, &primary.PoolEntry{
			DonationID:   e.DonationID,
			DonorName:    donors[e.DonationID],
			ResourceType: e.ResourceType,
			Unallocated:  e.Unallocated,
		})
	}
	return entries, nil
}

// PreviewPlan computes the allocation plan without applying it.
func (s *AllocationServiceImpl) PreviewPlan(ctx context.Context, req primary.PlanRequest) (*primary.PlanResponse, error) {
	proposals, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	return &primary.PlanResponse{Proposals: proposals}, nil
}

// RunAllocation computes a plan against fresh snapshots and applies it one
// proposal at a time. Each apply is its own transaction with in-transaction
// re-validation; stale proposals are skipped and reported, the rest of the
// batch proceeds.
func (s *AllocationServiceImpl) RunAllocation(ctx context.Context, req primary.PlanRequest) (*primary.RunResponse, error) {
	proposals, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &primary.RunResponse{Planned: len(proposals)}
	for _, p := range proposals {
		result := &primary.ProposalResult{Proposal: p}

		receipt, err := s.allocRepo.Apply(ctx, &secondary.ProposedAllocationRecord{
			DonationID:   p.DonationID,
			CampID:       p.CampID,
			ResourceType: p.ResourceType,
			Quantity:     p.Quantity,
		})
		switch {
		case err == nil:
			result.Applied = true
			result.AllocationID = receipt.AllocationID
			resp.Applied++
		case errors.Is(err, secondary.ErrStaleProposal):
			result.SkipReason = err.Error()
			resp.Skipped++
		case errors.Is(err, secondary.ErrNotFound):
			// A referenced entity vanished: the whole snapshot is suspect.
			return nil, fmt.Errorf("allocation run aborted: %w", err)
		default:
			return nil, fmt.Errorf("failed to apply allocation: %w", err)
		}

		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

// ListAllocations lists allocation rows with optional filters.
func (s *AllocationServiceImpl) ListAllocations(ctx context.Context, filters primary.AllocationFilters) ([]*primary.Allocation, error) {
	records, err := s.allocRepo.List(ctx, secondary.AllocationFilters{
		DonationID: filters.DonationID,
		CampID:     filters.CampID,
		Status:     filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	allocations := make([]*primary.Allocation, len(records))
	for i, r := range records {
		allocations[i] = &primary.Allocation{
			ID:                r.ID,
			DonationID:        r.DonationID,
			CampID:            r.CampID,
			QuantityAllocated: r.QuantityAllocated,
			Status:            r.Status,
			CreatedAt:         r.CreatedAt,
			UpdatedAt:         r.UpdatedAt,
		}
	}
	return allocations, nil
}

// UpdateAllocationStatus advances an allocation's delivery status.
func (s *AllocationServiceImpl) UpdateAllocationStatus(ctx context.Context, allocationID, status string) error {
	record, err := s.allocRepo.GetByID(ctx, allocationID)
	if err != nil {
		return err
	}

	if allocationStatusTransitions[record.Status] != status {
		return fmt.Errorf("cannot move allocation %s from %s to %s (lifecycle: Pending -> Delivered -> Received)",
			allocationID, record.Status, status)
	}

	if err := s.allocRepo.UpdateStatus(ctx, allocationID, status); err != nil {
		return fmt.Errorf("failed to update allocation status: %w", err)
	}
	return nil
}

// plan reads fresh shortage and pool snapshots and runs the pure planner.
func (s *AllocationServiceImpl) plan(ctx context.Context, req primary.PlanRequest) ([]*primary.ProposedAllocation, error) {
	snaps, err := s.resourceRepo.ListShortageSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read shortage snapshot: %w", err)
	}

	var shortageSnaps []shortage.Snapshot
	for _, snap := range snaps {
		if req.ResourceType != "" && snap.ResourceType != req.ResourceType {
			continue
		}
		shortageSnaps = append(shortageSnaps, shortage.Snapshot{
			CampID:            snap.CampID,
			ResourceType:      snap.ResourceType,
			QuantityAvailable: snap.QuantityAvailable,
			QuantityNeeded:    snap.QuantityNeeded,
			DisasterSeverity:  snap.DisasterSeverity,
		})
	}

	donations, err := s.donationRepo.ListPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read donation pool: %w", err)
	}

	pool := supply.BuildPool(poolInput(donations))
	if req.ResourceType != "" {
		filtered := pool[:0]
		for _, e := range pool {
			if e.ResourceType == req.ResourceType {
				filtered = append(filtered, e)
			}
		}
		pool = filtered
	}

	var proposals []*primary.ProposedAllocation
	for _, p := range s.planner.Plan(shortage.Compute(shortageSnaps), pool) {
		proposals = append(proposals, &primary.ProposedAllocation{
			DonationID:   p.DonationID,
			CampID:       p.CampID,
			ResourceType: p.ResourceType,
			Quantity:     p.Quantity,
		})
	}
	return proposals, nil
}

// poolInput converts donation records to the pool tracker's input type.
func poolInput(records []*secondary.DonationRecord) []supply.Donation {
	donations := make([]supply.Donation, len(records))
	for i, r := range records {
		donations[i] = supply.Donation{
			DonationID:      r.ID,
			ResourceType:    r.ResourceType,
			QuantityDonated: r.QuantityDonated,
			AllocatedTotal:  r.AllocatedTotal,
			Status:          r.Status,
		}
	}
	return donations
}

// Ensure AllocationServiceImpl implements the interface
var _ primary.AllocationService = (*AllocationServiceImpl)(nil)

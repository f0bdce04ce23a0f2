package app

import (
	"context"
	"fmt"

	"github.com/example/relief/internal/core/occupancy"
	"github.com/example/relief/internal/ports/primary"
	"github.com/example/relief/internal/ports/secondary"
)

// CampServiceImpl implements the CampService interface.
type CampServiceImpl struct {
	campRepo  secondary.CampRepository
	threshold float64
}

// NewCampService creates a new CampService with injected dependencies.
// threshold is the occupancy ratio above which a camp is flagged Overcrowded.
func NewCampService(campRepo secondary.CampRepository, threshold float64) *CampServiceImpl {
	if threshold <= 0 {
		threshold = occupancy.DefaultThreshold
	}
	return &CampServiceImpl{campRepo: campRepo, threshold: threshold}
}

// GetCamp retrieves a camp with its occupancy ratio.
func (s *CampServiceImpl) GetCamp(ctx context.Context, campID string) (*primary.Camp, error) {
	record, err := s.campRepo.GetByID(ctx, campID)
	if err != nil {
		return nil, err
	}
	return recordToCamp(record), nil
}

// ListCamps lists camps with optional filters.
func (s *CampServiceImpl) ListCamps(ctx context.Context, filters primary.CampFilters) ([]*primary.Camp, error) {
	records, err := s.campRepo.List(ctx, secondary.CampFilters{
		DisasterID: filters.DisasterID,
		Status:     filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list camps: %w", err)
	}

	camps := make([]*primary.Camp, len(records))
	for i, r := range records {
		camps[i] = recordToCamp(r)
	}
	return camps, nil
}

// UpdateOccupancy writes a new occupancy figure and runs the occupancy
// monitor against the configured threshold.
func (s *CampServiceImpl) UpdateOccupancy(ctx context.Context, req primary.UpdateOccupancyRequest) (*primary.UpdateOccupancyResponse, error) {
	camp, err := s.campRepo.GetByID(ctx, req.CampID)
	if err != nil {
		return nil, err
	}

	if req.Occupancy < 0 {
		return nil, fmt.Errorf("occupancy cannot be negative, got %d", req.Occupancy)
	}
	if req.Occupancy > camp.Capacity {
		return nil, fmt.Errorf("occupancy %d exceeds camp capacity %d", req.Occupancy, camp.Capacity)
	}

	if err := s.campRepo.UpdateOccupancy(ctx, req.CampID, req.Occupancy); err != nil {
		return nil, fmt.Errorf("failed to update occupancy: %w", err)
	}

	ratio := occupancy.Ratio(req.Occupancy, camp.Capacity)
	status := camp.Status
	changed := false
	if next := occupancy.NextStatus(camp.Status, ratio, s.threshold); next != "" {
		if err := s.campRepo.UpdateStatus(ctx, req.CampID, next); err != nil {
			return nil, fmt.Errorf("failed to update camp status: %w", err)
		}
		status = next
		changed = true
	}

	return &primary.UpdateOccupancyResponse{
		CampID:         req.CampID,
		Occupancy:      req.Occupancy,
		OccupancyRatio: ratio,
		Status:         status,
		StatusChanged:  changed,
	}, nil
}

// recordToCamp converts a persistence record to the port type.
func recordToCamp(r *secondary.CampRecord) *primary.Camp {
	return &primary.Camp{
		ID:               r.ID,
		DisasterID:       r.DisasterID,
		Name:             r.Name,
		Capacity:         r.Capacity,
		CurrentOccupancy: r.CurrentOccupancy,
		OccupancyRatio:   occupancy.Ratio(r.CurrentOccupancy, r.Capacity),
		Status:           r.Status,
		DisasterSeverity: r.DisasterSeverity,
	}
}

// Ensure CampServiceImpl implements the interface
var _ primary.CampService = (*CampServiceImpl)(nil)

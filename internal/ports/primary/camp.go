package primary

import "context"

// CampService defines the primary port for camp reads and the occupancy
// monitor. Camp creation and closure belong to the outer record-keeping
// surface; only occupancy-affecting writes run through the engine.
type CampService interface {
	// GetCamp retrieves a camp with its occupancy ratio.
	GetCamp(ctx context.Context, campID string) (*Camp, error)

	// ListCamps lists camps with optional filters.
	ListCamps(ctx context.Context, filters CampFilters) ([]*Camp, error)

	// UpdateOccupancy writes a new occupancy figure and runs the
	// occupancy monitor: ratio above the configured threshold flags the
	// camp Overcrowded, dropping back reverts it to Active.
	UpdateOccupancy(ctx context.Context, req UpdateOccupancyRequest) (*UpdateOccupancyResponse, error)
}

// Camp represents a relief camp at the port boundary.
type Camp struct {
	ID               string
	DisasterID       string
	Name             string
	Capacity         int
	CurrentOccupancy int
	OccupancyRatio   float64
	Status           string
	DisasterSeverity string
}

// CampFilters contains filter options for listing camps.
type CampFilters struct {
	DisasterID string
	Status     string
}

// UpdateOccupancyRequest contains parameters for an occupancy update.
type UpdateOccupancyRequest struct {
	CampID    string
	Occupancy int
}

// UpdateOccupancyResponse reports the monitor's outcome.
type UpdateOccupancyResponse struct {
	CampID         string
	Occupancy      int
	OccupancyRatio float64
	Status         string
	StatusChanged  bool
}

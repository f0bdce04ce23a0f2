package app

import (
	"context"
	"fmt"

	"github.com/example/relief/internal/ports/secondary"
)

// Ensure the mocks implement their interfaces
var (
	_ secondary.ResourceRepository   = (*mockResourceRepository)(nil)
	_ secondary.DonationRepository   = (*mockDonationRepository)(nil)
	_ secondary.AllocationRepository = (*mockAllocationRepository)(nil)
	_ secondary.VolunteerRepository  = (*mockVolunteerRepository)(nil)
	_ secondary.AssignmentRepository = (*mockAssignmentRepository)(nil)
	_ secondary.CampRepository       = (*mockCampRepository)(nil)
)

// mockResourceRepository implements secondary.ResourceRepository for testing.
type mockResourceRepository struct {
	resources  map[string]*secondary.ResourceRecord
	snapshots  []*secondary.ShortageSnapshot
	campExists map[string]bool
	nextID     int
}

func newMockResourceRepository() *mockResourceRepository {
	return &mockResourceRepository{
		resources:  make(map[string]*secondary.ResourceRecord),
		campExists: make(map[string]bool),
		nextID:     1,
	}
}

func (m *mockResourceRepository) Create(ctx context.Context, resource *secondary.ResourceRecord) error {
	m.resources[resource.ID] = resource
	return nil
}

func (m *mockResourceRepository) GetByID(ctx context.Context, id string) (*secondary.ResourceRecord, error) {
	if r, ok := m.resources[id]; ok {
		return r, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockResourceRepository) GetByCampAndType(ctx context.Context, campID, resourceType string) (*secondary.ResourceRecord, error) {
	for _, r := range m.resources {
		if r.CampID == campID && r.ResourceType == resourceType {
			return r, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (m *mockResourceRepository) List(ctx context.Context, filters secondary.ResourceFilters) ([]*secondary.ResourceRecord, error) {
	var result []*secondary.ResourceRecord
	for _, r := range m.resources {
		if filters.CampID != "" && r.CampID != filters.CampID {
			continue
		}
		if filters.ResourceType != "" && r.ResourceType != filters.ResourceType {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockResourceRepository) UpdateQuantities(ctx context.Context, id string, available, needed int) error {
	if r, ok := m.resources[id]; ok {
		r.QuantityAvailable = available
		r.QuantityNeeded = needed
		return nil
	}
	return secondary.ErrNotFound
}

func (m *mockResourceRepository) ListShortageSnapshots(ctx context.Context) ([]*secondary.ShortageSnapshot, error) {
	return m.snapshots, nil
}

func (m *mockResourceRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("RES-%03d", id), nil
}

func (m *mockResourceRepository) CampExists(ctx context.Context, campID string) (bool, error) {
	return m.campExists[campID], nil
}

// mockDonationRepository implements secondary.DonationRepository for testing.
// Donations are held in a slice to preserve creation order, which the pool
// contract requires.
type mockDonationRepository struct {
	donations []*secondary.DonationRecord
	nextID    int
}

func newMockDonationRepository() *mockDonationRepository {
	return &mockDonationRepository{nextID: 1}
}

func (m *mockDonationRepository) Create(ctx context.Context, donation *secondary.DonationRecord) error {
	m.donations = append(m.donations, donation)
	return nil
}

func (m *mockDonationRepository) GetByID(ctx context.Context, id string) (*secondary.DonationRecord, error) {
	for _, d := range m.donations {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (m *mockDonationRepository) List(ctx context.Context, filters secondary.DonationFilters) ([]*secondary.DonationRecord, error) {
	var result []*secondary.DonationRecord
	for _, d := range m.donations {
		if filters.Status != "" && d.Status != filters.Status {
			continue
		}
		if filters.ResourceType != "" && d.ResourceType != filters.ResourceType {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

func (m *mockDonationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	for _, d := range m.donations {
		if d.ID == id {
			d.Status = status
			return nil
		}
	}
	return secondary.ErrNotFound
}

func (m *mockDonationRepository) ListPool(ctx context.Context) ([]*secondary.DonationRecord, error) {
	var result []*secondary.DonationRecord
	for _, d := range m.donations {
		if d.Status == "Received" || d.Status == "Allocated" {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDonationRepository) AllocatedTotal(ctx context.Context, donationID string) (int, error) {
	for _, d := range m.donations {
		if d.ID == donationID {
			return d.AllocatedTotal, nil
		}
	}
	return 0, secondary.ErrNotFound
}

func (m *mockDonationRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("DON-%03d", id), nil
}

// mockAllocationRepository implements secondary.AllocationRepository for
// testing. Apply errors can be forced per donation via applyErrs.
type mockAllocationRepository struct {
	allocations map[string]*secondary.AllocationRecord
	applyErrs   map[string]error
	applied     []*secondary.ProposedAllocationRecord
	nextID      int
}

func newMockAllocationRepository() *mockAllocationRepository {
	return &mockAllocationRepository{
		allocations: make(map[string]*secondary.AllocationRecord),
		applyErrs:   make(map[string]error),
		nextID:      1,
	}
}

func (m *mockAllocationRepository) Apply(ctx context.Context, proposal *secondary.ProposedAllocationRecord) (*secondary.ApplyReceipt, error) {
	if err := m.applyErrs[proposal.DonationID]; err != nil {
		return nil, err
	}

	id := fmt.Sprintf("ALLOC-%03d", m.nextID)
	m.nextID++
	m.allocations[id] = &secondary.AllocationRecord{
		ID:                id,
		DonationID:        proposal.DonationID,
		CampID:            proposal.CampID,
		QuantityAllocated: proposal.Quantity,
		Status:            "Pending",
	}
	m.applied = append(m.applied, proposal)
	return &secondary.ApplyReceipt{
		AllocationID:    id,
		AppliedQuantity: proposal.Quantity,
	}, nil
}

func (m *mockAllocationRepository) GetByID(ctx context.Context, id string) (*secondary.AllocationRecord, error) {
	if a, ok := m.allocations[id]; ok {
		return a, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockAllocationRepository) List(ctx context.Context, filters secondary.AllocationFilters) ([]*secondary.AllocationRecord, error) {
	var result []*secondary.AllocationRecord
	for _, a := range m.allocations {
		if filters.DonationID != "" && a.DonationID != filters.DonationID {
			continue
		}
		if filters.CampID != "" && a.CampID != filters.CampID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAllocationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if a, ok := m.allocations[id]; ok {
		a.Status = status
		return nil
	}
	return secondary.ErrNotFound
}

// mockVolunteerRepository implements secondary.VolunteerRepository for testing.
type mockVolunteerRepository struct {
	volunteers map[string]*secondary.VolunteerRecord
	nextID     int
}

func newMockVolunteerRepository() *mockVolunteerRepository {
	return &mockVolunteerRepository{
		volunteers: make(map[string]*secondary.VolunteerRecord),
		nextID:     1,
	}
}

func (m *mockVolunteerRepository) Create(ctx context.Context, volunteer *secondary.VolunteerRecord) error {
	m.volunteers[volunteer.ID] = volunteer
	return nil
}

func (m *mockVolunteerRepository) GetByID(ctx context.Context, id string) (*secondary.VolunteerRecord, error) {
	if v, ok := m.volunteers[id]; ok {
		return v, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockVolunteerRepository) List(ctx context.Context, filters secondary.VolunteerFilters) ([]*secondary.VolunteerRecord, error) {
	var result []*secondary.VolunteerRecord
	for _, v := range m.volunteers {
		if filters.AvailabilityStatus != "" && v.AvailabilityStatus != filters.AvailabilityStatus {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func (m *mockVolunteerRepository) UpdateAvailability(ctx context.Context, id, status string) error {
	if v, ok := m.volunteers[id]; ok {
		v.AvailabilityStatus = status
		return nil
	}
	return secondary.ErrNotFound
}

func (m *mockVolunteerRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("VOL-%03d", id), nil
}

// mockAssignmentRepository implements secondary.AssignmentRepository for
// testing. volunteers, when set, lets CreateActive flip availability the way
// the transactional implementation does.
type mockAssignmentRepository struct {
	assignments     map[string]*secondary.AssignmentRecord
	campExists      map[string]bool
	volunteerExists map[string]bool
	volunteers      *mockVolunteerRepository
	nextID          int
}

func newMockAssignmentRepository() *mockAssignmentRepository {
	return &mockAssignmentRepository{
		assignments:     make(map[string]*secondary.AssignmentRecord),
		campExists:      make(map[string]bool),
		volunteerExists: make(map[string]bool),
		nextID:          1,
	}
}

func (m *mockAssignmentRepository) Create(ctx context.Context, assignment *secondary.AssignmentRecord) error {
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepository) CreateActive(ctx context.Context, assignment *secondary.AssignmentRecord) error {
	m.assignments[assignment.ID] = assignment
	if m.volunteers != nil {
		if v, ok := m.volunteers.volunteers[assignment.VolunteerID]; ok {
			v.AvailabilityStatus = "Assigned"
		}
	}
	return nil
}

func (m *mockAssignmentRepository) GetByID(ctx context.Context, id string) (*secondary.AssignmentRecord, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockAssignmentRepository) List(ctx context.Context, filters secondary.AssignmentFilters) ([]*secondary.AssignmentRecord, error) {
	var result []*secondary.AssignmentRecord
	for _, a := range m.assignments {
		if filters.VolunteerID != "" && a.VolunteerID != filters.VolunteerID {
			continue
		}
		if filters.CampID != "" && a.CampID != filters.CampID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockAssignmentRepository) Complete(ctx context.Context, id string) error {
	if a, ok := m.assignments[id]; ok {
		a.Status = "Completed"
		a.EndDate = "2026-01-01"
		return nil
	}
	return secondary.ErrNotFound
}

func (m *mockAssignmentRepository) CountActiveForVolunteer(ctx context.Context, volunteerID string) (int, error) {
	count := 0
	for _, a := range m.assignments {
		if a.VolunteerID == volunteerID && a.Status == "Active" {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("ASSIGN-%03d", id), nil
}

func (m *mockAssignmentRepository) CampExists(ctx context.Context, campID string) (bool, error) {
	return m.campExists[campID], nil
}

func (m *mockAssignmentRepository) VolunteerExists(ctx context.Context, volunteerID string) (bool, error) {
	return m.volunteerExists[volunteerID], nil
}

// mockCampRepository implements secondary.CampRepository for testing.
type mockCampRepository struct {
	camps          map[string]*secondary.CampRecord
	disasterExists map[string]bool
	nextID         int
}

func newMockCampRepository() *mockCampRepository {
	return &mockCampRepository{
		camps:          make(map[string]*secondary.CampRecord),
		disasterExists: make(map[string]bool),
		nextID:         1,
	}
}

func (m *mockCampRepository) Create(ctx context.Context, camp *secondary.CampRecord) error {
	m.camps[camp.ID] = camp
	return nil
}

func (m *mockCampRepository) GetByID(ctx context.Context, id string) (*secondary.CampRecord, error) {
	if c, ok := m.camps[id]; ok {
		return c, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockCampRepository) List(ctx context.Context, filters secondary.CampFilters) ([]*secondary.CampRecord, error) {
	var result []*secondary.CampRecord
	for _, c := range m.camps {
		if filters.DisasterID != "" && c.DisasterID != filters.DisasterID {
			continue
		}
		if filters.Status != "" && c.Status != filters.Status {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCampRepository) UpdateOccupancy(ctx context.Context, id string, occupancy int) error {
	if c, ok := m.camps[id]; ok {
		c.CurrentOccupancy = occupancy
		return nil
	}
	return secondary.ErrNotFound
}

func (m *mockCampRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if c, ok := m.camps[id]; ok {
		c.Status = status
		return nil
	}
	return secondary.ErrNotFound
}

func (m *mockCampRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("CAMP-%03d", id), nil
}

func (m *mockCampRepository) DisasterExists(ctx context.Context, disasterID string) (bool, error) {
	return m.disasterExists[disasterID], nil
}

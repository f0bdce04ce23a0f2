package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/relief/internal/ports/primary"
)

// mockAllocationService implements primary.AllocationService for testing
type mockAllocationService struct {
	listShortagesFn   func(ctx context.Context, filters primary.ShortageFilters) ([]*primary.Shortage, error)
	listPoolFn        func(ctx context.Context) ([]*primary.PoolEntry, error)
	previewPlanFn     func(ctx context.Context, req primary.PlanRequest) (*primary.PlanResponse, error)
	runAllocationFn   func(ctx context.Context, req primary.PlanRequest) (*primary.RunResponse, error)
	listAllocationsFn func(ctx context.Context, filters primary.AllocationFilters) ([]*primary.Allocation, error)

	lastPlanReq primary.PlanRequest
}

func (m *mockAllocationService) ListShortages(ctx context.Context, filters primary.ShortageFilters) ([]*primary.Shortage, error) {
	if m.listShortagesFn != nil {
		return m.listShortagesFn(ctx, filters)
	}
	return []*primary.Shortage{}, nil
}

func (m *mockAllocationService) ListPool(ctx context.Context) ([]*primary.PoolEntry, error) {
	if m.listPoolFn != nil {
		return m.listPoolFn(ctx)
	}
	return []*primary.PoolEntry{}, nil
}

func (m *mockAllocationService) PreviewPlan(ctx context.Context, req primary.PlanRequest) (*primary.PlanResponse, error) {
	m.lastPlanReq = req
	if m.previewPlanFn != nil {
		return m.previewPlanFn(ctx, req)
	}
	return &primary.PlanResponse{}, nil
}

func (m *mockAllocationService) RunAllocation(ctx context.Context, req primary.PlanRequest) (*primary.RunResponse, error) {
	m.lastPlanReq = req
	if m.runAllocationFn != nil {
		return m.runAllocationFn(ctx, req)
	}
	return &primary.RunResponse{}, nil
}

func (m *mockAllocationService) ListAllocations(ctx context.Context, filters primary.AllocationFilters) ([]*primary.Allocation, error) {
	if m.listAllocationsFn != nil {
		return m.listAllocationsFn(ctx, filters)
	}
	return []*primary.Allocation{}, nil
}

func (m *mockAllocationService) UpdateAllocationStatus(ctx context.Context, allocationID, status string) error {
	return nil
}

func TestAllocationAdapter_Shortages(t *testing.T) {
	mock := &mockAllocationService{
		listShortagesFn: func(ctx context.Context, filters primary.ShortageFilters) ([]*primary.Shortage, error) {
			return []*primary.Shortage{
				{CampID: "CAMP-001", CampName: "Harbor School Shelter", ResourceType: "Water", Deficit: 500, DisasterSeverity: "Critical", Band: "Critical"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAllocationAdapter(mock, &buf)

	if err := adapter.Shortages(context.Background(), "", false); err != nil {
		t.Fatalf("Shortages failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "CAMP-001") || !strings.Contains(out, "500") {
		t.Errorf("output missing shortage row: %q", out)
	}
	if !strings.Contains(out, "Critical") {
		t.Errorf("output missing severity: %q", out)
	}
}

func TestAllocationAdapter_Shortages_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAllocationAdapter(&mockAllocationService{}, &buf)

	if err := adapter.Shortages(context.Background(), "", false); err != nil {
		t.Fatalf("Shortages failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No shortages found") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}

func TestAllocationAdapter_Plan_PassesResourceType(t *testing.T) {
	mock := &mockAllocationService{
		previewPlanFn: func(ctx context.Context, req primary.PlanRequest) (*primary.PlanResponse, error) {
			return &primary.PlanResponse{Proposals: []*primary.ProposedAllocation{
				{DonationID: "DON-001", CampID: "CAMP-001", ResourceType: "Water", Quantity: 300},
			}}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAllocationAdapter(mock, &buf)

	if err := adapter.Plan(context.Background(), "Water"); err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if mock.lastPlanReq.ResourceType != "Water" {
		t.Errorf("ResourceType = %q, want Water", mock.lastPlanReq.ResourceType)
	}
	if !strings.Contains(buf.String(), "DON-001 -> CAMP-001: 300 Water") {
		t.Errorf("output missing proposal line: %q", buf.String())
	}
}

func TestAllocationAdapter_Run_ReportsSkips(t *testing.T) {
	mock := &mockAllocationService{
		runAllocationFn: func(ctx context.Context, req primary.PlanRequest) (*primary.RunResponse, error) {
			return &primary.RunResponse{
				Planned: 2,
				Applied: 1,
				Skipped: 1,
				Results: []*primary.ProposalResult{
					{Proposal: &primary.ProposedAllocation{DonationID: "DON-001", CampID: "CAMP-001", ResourceType: "Food", Quantity: 60}, Applied: true, AllocationID: "ALLOC-001"},
					{Proposal: &primary.ProposedAllocation{DonationID: "DON-002", CampID: "CAMP-002", ResourceType: "Food", Quantity: 40}, SkipReason: "stale proposal - re-plan required"},
				},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAllocationAdapter(mock, &buf)

	if err := adapter.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ALLOC-001") {
		t.Errorf("output missing applied allocation: %q", out)
	}
	if !strings.Contains(out, "skipped DON-002") {
		t.Errorf("output missing skip line: %q", out)
	}
	if !strings.Contains(out, "2 planned, 1 applied, 1 skipped") {
		t.Errorf("output missing totals: %q", out)
	}
}

func TestAllocationAdapter_Pool(t *testing.T) {
	mock := &mockAllocationService{
		listPoolFn: func(ctx context.Context) ([]*primary.PoolEntry, error) {
			return []*primary.PoolEntry{
				{DonationID: "DON-001", DonorName: "Red Cross", ResourceType: "Food", Unallocated: 150},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAllocationAdapter(mock, &buf)

	if err := adapter.Pool(context.Background()); err != nil {
		t.Fatalf("Pool failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Red Cross") {
		t.Errorf("output missing pool entry: %q", buf.String())
	}
}

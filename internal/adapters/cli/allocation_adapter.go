// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/relief/internal/ports/primary"
)

// AllocationAdapter is a thin adapter that translates CLI operations to
// AllocationService calls. It depends only on the AllocationService
// interface, enabling easy testing with mocks.
type AllocationAdapter struct {
	service primary.AllocationService
	out     io.Writer
}

// NewAllocationAdapter creates a new AllocationAdapter with the given service.
func NewAllocationAdapter(service primary.AllocationService, out io.Writer) *AllocationAdapter {
	return &AllocationAdapter{
		service: service,
		out:     out,
	}
}

// Shortages lists current camp shortages.
func (a *AllocationAdapter) Shortages(ctx context.Context, resourceType string, criticalOnly bool) error {
	shortages, err := a.service.ListShortages(ctx, primary.ShortageFilters{
		ResourceType: resourceType,
		CriticalOnly: criticalOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to list shortages: %w", err)
	}

	if len(shortages) == 0 {
		fmt.Fprintln(a.out, "No shortages found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-25s %-18s %8s %-10s %s\n", "CAMP", "NAME", "RESOURCE", "DEFICIT", "SEVERITY", "BAND")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────")
	for _, s := range shortages {
		band := s.Band
		if band == "" {
			band = "-"
		}
		fmt.Fprintf(a.out, "%-10s %-25s %-18s %8d %-10s %s\n",
			s.CampID, s.CampName, s.ResourceType, s.Deficit, s.DisasterSeverity, band)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Pool lists unallocated donations.
func (a *AllocationAdapter) Pool(ctx context.Context) error {
	entries, err := a.service.ListPool(ctx)
	if err != nil {
		return fmt.Errorf("failed to list donation pool: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Donation pool is empty")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-25s %-18s %s\n", "DONATION", "DONOR", "RESOURCE", "UNALLOCATED")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range entries {
		fmt.Fprintf(a.out, "%-10s %-25s %-18s %d\n", e.DonationID, e.DonorName, e.ResourceType, e.Unallocated)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Plan previews the allocation plan without applying it.
func (a *AllocationAdapter) Plan(ctx context.Context, resourceType string) error {
	resp, err := a.service.PreviewPlan(ctx, primary.PlanRequest{ResourceType: resourceType})
	if err != nil {
		return fmt.Errorf("failed to compute plan: %w", err)
	}

	if len(resp.Proposals) == 0 {
		fmt.Fprintln(a.out, "Nothing to allocate (no shortage the pool can cover)")
		return nil
	}

	fmt.Fprintf(a.out, "\nProposed allocations (%d):\n", len(resp.Proposals))
	for _, p := range resp.Proposals {
		fmt.Fprintf(a.out, "  %s -> %s: %d %s\n", p.DonationID, p.CampID, p.Quantity, p.ResourceType)
	}
	fmt.Fprintln(a.out, "\nRun 'relief allocate run' to apply")

	return nil
}

// Run computes and applies the allocation plan.
func (a *AllocationAdapter) Run(ctx context.Context, resourceType string) error {
	resp, err := a.service.RunAllocation(ctx, primary.PlanRequest{ResourceType: resourceType})
	if err != nil {
		return err
	}

	if resp.Planned == 0 {
		fmt.Fprintln(a.out, "Nothing to allocate (no shortage the pool can cover)")
		return nil
	}

	for _, r := range resp.Results {
		if r.Applied {
			fmt.Fprintf(a.out, "✓ %s: %s -> %s: %d %s\n",
				r.AllocationID, r.Proposal.DonationID, r.Proposal.CampID, r.Proposal.Quantity, r.Proposal.ResourceType)
		} else {
			fmt.Fprintf(a.out, "- skipped %s -> %s: %s\n",
				r.Proposal.DonationID, r.Proposal.CampID, r.SkipReason)
		}
	}
	fmt.Fprintf(a.out, "\n%d planned, %d applied, %d skipped\n", resp.Planned, resp.Applied, resp.Skipped)

	return nil
}

// List lists allocation rows with optional filters.
func (a *AllocationAdapter) List(ctx context.Context, donationID, campID, status string) error {
	allocations, err := a.service.ListAllocations(ctx, primary.AllocationFilters{
		DonationID: donationID,
		CampID:     campID,
		Status:     status,
	})
	if err != nil {
		return fmt.Errorf("failed to list allocations: %w", err)
	}

	if len(allocations) == 0 {
		fmt.Fprintln(a.out, "No allocations found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-11s %-10s %-10s %8s %s\n", "ID", "DONATION", "CAMP", "QUANTITY", "STATUS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────")
	for _, al := range allocations {
		fmt.Fprintf(a.out, "%-11s %-10s %-10s %8d %s\n",
			al.ID, al.DonationID, al.CampID, al.QuantityAllocated, al.Status)
	}
	fmt.Fprintln(a.out)

	return nil
}

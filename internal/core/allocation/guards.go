package allocation

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ApplyContext provides the in-transaction state for apply guards. The
// executor re-reads these values inside the transaction, never from the
// planner's snapshot.
type ApplyContext struct {
	DonationID      string
	CampID          string
	Quantity        int
	RemainingSupply int // quantity_donated minus derived allocated total
	RemainingNeed   int // quantity_needed minus quantity_available, floored at 0
}

// CanApply evaluates whether a proposal may still be applied.
// Rules:
// - Quantity must be positive
// - The donation must still have at least Quantity unallocated
// - The camp must still have an outstanding deficit
func CanApply(ctx ApplyContext) GuardResult {
	if ctx.Quantity <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("allocation quantity must be positive, got %d", ctx.Quantity),
		}
	}

	if ctx.RemainingSupply < ctx.Quantity {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("donation %s has %d unallocated, cannot cover %d",
				ctx.DonationID, ctx.RemainingSupply, ctx.Quantity),
		}
	}

	if ctx.RemainingNeed <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("camp %s no longer has a deficit for this resource", ctx.CampID),
		}
	}

	return GuardResult{Allowed: true}
}

// ClampAvailable returns the camp's new quantity_available after receiving
// an allocation. Excess beyond quantity_needed is discarded rather than
// recorded as negative deficit.
func ClampAvailable(available, needed, quantity int) int {
	next := available + quantity
	if next > needed {
		return needed
	}
	return next
}

// Package allocation contains the pure matching logic that turns shortages
// and donation supply into a concrete allocation plan, plus the guards the
// executor re-evaluates at apply time.
package allocation

import (
	"sort"

	"github.com/example/relief/internal/core/shortage"
	"github.com/example/relief/internal/core/supply"
)

// Proposal is one planned transfer: a quantity from a donation to a camp.
type Proposal struct {
	DonationID   string
	CampID       string
	ResourceType string
	Quantity     int
}

// ShortageOrder reports whether shortage a should be served before b.
type ShortageOrder func(a, b shortage.Entry) bool

// SupplyOrder reports whether supply entry a should be drawn before b.
type SupplyOrder func(a, b supply.Entry) bool

// DefaultShortageOrder serves higher disaster severity first, then larger
// deficits, then lower camp IDs (deterministic tie-break).
func DefaultShortageOrder(a, b shortage.Entry) bool {
	ra, rb := shortage.SeverityRank(a.DisasterSeverity), shortage.SeverityRank(b.DisasterSeverity)
	if ra != rb {
		return ra > rb
	}
	if a.Deficit != b.Deficit {
		return a.Deficit > b.Deficit
	}
	return a.CampID < b.CampID
}

// DefaultSupplyOrder drains donations first-in-first-out. Donation IDs are
// sequential and zero-padded, so a shorter ID is always older; comparing
// length before value keeps DON-999 ahead of DON-1000 where plain string
// order would invert.
func DefaultSupplyOrder(a, b supply.Entry) bool {
	if len(a.DonationID) != len(b.DonationID) {
		return len(a.DonationID) < len(b.DonationID)
	}
	return a.DonationID < b.DonationID
}

// Planner matches shortages against the donation pool. It holds only its
// ordering policies; Plan is a pure function of its inputs.
type Planner struct {
	shortageOrder ShortageOrder
	supplyOrder   SupplyOrder
}

// NewPlanner creates a planner with the default ordering policies.
func NewPlanner() *Planner {
	return &Planner{
		shortageOrder: DefaultShortageOrder,
		supplyOrder:   DefaultSupplyOrder,
	}
}

// NewPlannerWithOrder creates a planner with injected ordering policies.
// Nil policies fall back to the defaults.
func NewPlannerWithOrder(so ShortageOrder, po SupplyOrder) *Planner {
	p := NewPlanner()
	if so != nil {
		p.shortageOrder = so
	}
	if po != nil {
		p.supplyOrder = po
	}
	return p
}

// Plan matches unallocated supply to outstanding shortages, one resource
// type at a time. For each resource type, shortages are served in policy
// order and draw greedily from supply entries in policy order; a donation
// may be split across camps and a camp may draw from several donations.
// The plan never contains a zero-quantity proposal and never exceeds either
// side's remaining quantity. Deterministic and idempotent: identical inputs
// yield the identical plan.
func (p *Planner) Plan(shortages []shortage.Entry, supplies []supply.Entry) []Proposal {
	byType := map[string]bool{}
	for _, s := range shortages {
		byType[s.ResourceType] = true
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	var plan []Proposal
	for _, resourceType := range types {
		plan = append(plan, p.planResource(resourceType, shortages, supplies)...)
	}
	return plan
}

// planResource runs the matching loop for a single resource type.
// Shortage/supply partitions by resource type are disjoint, so each type is
// planned independently.
func (p *Planner) planResource(resourceType string, shortages []shortage.Entry, supplies []supply.Entry) []Proposal {
	var demand []shortage.Entry
	for _, s := range shortages {
		if s.ResourceType == resourceType {
			demand = append(demand, s)
		}
	}

	var pool []supply.Entry
	for _, s := range supplies {
		if s.ResourceType == resourceType {
			pool = append(pool, s)
		}
	}

	if len(demand) == 0 || len(pool) == 0 {
		return nil
	}

	sort.SliceStable(demand, func(i, j int) bool { return p.shortageOrder(demand[i], demand[j]) })
	sort.SliceStable(pool, func(i, j int) bool { return p.supplyOrder(pool[i], pool[j]) })

	var plan []Proposal
	cursor := 0

	for _, d := range demand {
		remaining := d.Deficit

		for remaining > 0 && cursor < len(pool) {
			entry := &pool[cursor]
			if entry.Unallocated <= 0 {
				cursor++
				continue
			}

			quantity := remaining
			if entry.Unallocated < quantity {
				quantity = entry.Unallocated
			}

			plan = append(plan, Proposal{
				DonationID:   entry.DonationID,
				CampID:       d.CampID,
				ResourceType: resourceType,
				Quantity:     quantity,
			})

			entry.Unallocated -= quantity
			remaining -= quantity
		}

		if cursor >= len(pool) {
			break
		}
	}

	return plan
}

// Package supply contains the pure business logic for deriving the
// unallocated donation pool. No side effects.
package supply

// Donation is the pool tracker's input: one donation with its derived
// allocated total.
type Donation struct {
	DonationID      string
	ResourceType    string
	QuantityDonated int
	AllocatedTotal  int
	Status          string
}

// Entry is one pool entry: a donation with quantity still unallocated.
type Entry struct {
	DonationID   string
	ResourceType string
	Unallocated  int
}

// eligible reports whether a donation status may supply allocations.
// Pending donations are excluded until intake confirms receipt; Distributed
// donations have left the pool entirely.
func eligible(status string) bool {
	return status == "Received" || status == "Allocated"
}

// BuildPool derives the supply pool: eligible donations with unallocated
// quantity > 0, in input order (callers pass donations in creation order,
// which the planner consumes first-in-first-out).
func BuildPool(donations []Donation) []Entry {
	var entries []Entry
	for _, d := range donations {
		if !eligible(d.Status) {
			continue
		}
		unallocated := d.QuantityDonated - d.AllocatedTotal
		if unallocated <= 0 {
			continue
		}
		entries = append(entries, Entry{
			DonationID:   d.DonationID,
			ResourceType: d.ResourceType,
			Unallocated:  unallocated,
		})
	}
	return entries
}

// Package shortage contains the pure business logic for deriving unmet
// camp needs from inventory snapshots. No side effects.
package shortage

// Snapshot is the inventory state of one (camp, resource type) pair,
// carrying the severity of the camp's disaster.
type Snapshot struct {
	CampID            string
	ResourceType      string
	QuantityAvailable int
	QuantityNeeded    int
	DisasterSeverity  string
}

// Entry is one outstanding shortage: a (camp, resource type) pair with a
// positive deficit.
type Entry struct {
	CampID           string
	ResourceType     string
	Deficit          int
	DisasterSeverity string
}

// Deficit returns the unmet need for a pair of quantities, floored at zero.
func Deficit(available, needed int) int {
	if needed <= available {
		return 0
	}
	return needed - available
}

// Compute derives the shortage list from a snapshot: one entry per input row
// with deficit > 0, in input order. Deterministic given the snapshot.
func Compute(snaps []Snapshot) []Entry {
	var entries []Entry
	for _, s := range snaps {
		d := Deficit(s.QuantityAvailable, s.QuantityNeeded)
		if d <= 0 {
			continue
		}
		entries = append(entries, Entry{
			CampID:           s.CampID,
			ResourceType:     s.ResourceType,
			Deficit:          d,
			DisasterSeverity: s.DisasterSeverity,
		})
	}
	return entries
}

// SeverityRank maps a disaster severity to a sortable rank.
// Critical > High > Medium > Low; unknown severities rank lowest.
func SeverityRank(severity string) int {
	switch severity {
	case "Critical":
		return 4
	case "High":
		return 3
	case "Medium":
		return 2
	case "Low":
		return 1
	}
	return 0
}

// Band classifies how severe a shortage is relative to stock on hand.
type Band string

const (
	// BandCritical means needed exceeds double the available quantity.
	BandCritical Band = "Critical"
	// BandHigh means needed exceeds 1.5x the available quantity.
	BandHigh Band = "High"
	// BandNone means the shortage is below the critical thresholds.
	BandNone Band = ""
)

// Classify bands a shortage by its need-to-stock ratio. A camp with nothing
// on hand and any need at all is always Critical.
func Classify(available, needed int) Band {
	if needed <= available {
		return BandNone
	}
	if needed > available*2 {
		return BandCritical
	}
	if float64(needed) > float64(available)*1.5 {
		return BandHigh
	}
	return BandNone
}

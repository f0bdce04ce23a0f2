// Package occupancy contains the pure recomputation of camp occupancy
// status. Runs after any write that changes occupancy or capacity.
package occupancy

// Camp statuses the monitor transitions between. Closed camps are never
// touched by the monitor.
const (
	StatusActive      = "Active"
	StatusOvercrowded = "Overcrowded"
	StatusClosed      = "Closed"
)

// DefaultThreshold is the occupancy ratio above which a camp is flagged
// Overcrowded.
const DefaultThreshold = 0.95

// Ratio returns occupancy divided by capacity. Capacity > 0 is an invariant
// enforced at camp creation; a zero capacity yields 0 rather than dividing.
func Ratio(occupancy, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return float64(occupancy) / float64(capacity)
}

// NextStatus returns the status a camp should hold at the given ratio, or
// the empty string when no change is required. A ratio above the threshold
// flags the camp Overcrowded; an Overcrowded camp back at or under the
// threshold reverts to Active.
func NextStatus(current string, ratio, threshold float64) string {
	if current == StatusClosed {
		return ""
	}

	if ratio > threshold {
		if current == StatusOvercrowded {
			return ""
		}
		return StatusOvercrowded
	}

	if current == StatusOvercrowded {
		return StatusActive
	}
	return ""
}

package allocation

import (
	"strings"
	"testing"
)

func TestCanApplyAllowed(t *testing.T) {
	result := CanApply(ApplyContext{
		DonationID:      "DON-001",
		CampID:          "CAMP-001",
		Quantity:        50,
		RemainingSupply: 50,
		RemainingNeed:   30,
	})

	if !result.Allowed {
		t.Errorf("expected allowed, got reason: %s", result.Reason)
	}
	if result.Error() != nil {
		t.Errorf("allowed result must convert to nil error")
	}
}

func TestCanApplyRejectsOverdraw(t *testing.T) {
	result := CanApply(ApplyContext{
		DonationID:      "DON-001",
		CampID:          "CAMP-001",
		Quantity:        60,
		RemainingSupply: 40,
		RemainingNeed:   100,
	})

	if result.Allowed {
		t.Fatal("expected rejection when quantity exceeds remaining supply")
	}
	if !strings.Contains(result.Reason, "DON-001") {
		t.Errorf("reason should name the donation: %s", result.Reason)
	}
	if result.Error() == nil {
		t.Error("rejected result must convert to non-nil error")
	}
}

func TestCanApplyRejectsSatisfiedCamp(t *testing.T) {
	result := CanApply(ApplyContext{
		DonationID:      "DON-001",
		CampID:          "CAMP-001",
		Quantity:        10,
		RemainingSupply: 100,
		RemainingNeed:   0,
	})

	if result.Allowed {
		t.Fatal("expected rejection when the camp deficit is already satisfied")
	}
	if !strings.Contains(result.Reason, "CAMP-001") {
		t.Errorf("reason should name the camp: %s", result.Reason)
	}
}

func TestCanApplyRejectsNonPositiveQuantity(t *testing.T) {
	for _, q := range []int{0, -5} {
		result := CanApply(ApplyContext{Quantity: q, RemainingSupply: 100, RemainingNeed: 100})
		if result.Allowed {
			t.Errorf("expected rejection for quantity %d", q)
		}
	}
}

func TestClampAvailable(t *testing.T) {
	tests := []struct {
		name      string
		available int
		needed    int
		quantity  int
		want      int
	}{
		{"within need", 200, 300, 50, 250},
		{"exactly fills need", 200, 300, 100, 300},
		{"excess clamped at need", 200, 300, 150, 300},
		{"already at need", 300, 300, 10, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampAvailable(tt.available, tt.needed, tt.quantity); got != tt.want {
				t.Errorf("ClampAvailable(%d, %d, %d) = %d, want %d",
					tt.available, tt.needed, tt.quantity, got, tt.want)
			}
		})
	}
}

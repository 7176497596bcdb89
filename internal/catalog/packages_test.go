package catalog

import (
	"math"
	"testing"
)

func TestBasePrice(t *testing.T) {
	tests := []struct {
		tier     string
		duration int
		price    float64
		ok       bool
	}{
		{TierTop, 7, 54.99, true},
		{TierTop, 15, 64.99, true},
		{TierTop, 30, 99.99, true},
		{TierPrime, 7, 19.99, true},
		{TierPrime, 15, 35.99, true},
		{TierPrime, 30, 54.99, true},
		{TierBasic, 7, 14.99, true},
		{TierBasic, 15, 22.99, true},
		{TierBasic, 30, 34.99, true},

		{TierBasic, 14, 0, false},
		{"GOLD", 7, 0, false},
		{"", 7, 0, false},
		{TierTop, 0, 0, false},
	}

	for _, tt := range tests {
		price, ok := BasePrice(tt.tier, tt.duration)
		if ok != tt.ok || price != tt.price {
			t.Errorf("BasePrice(%q, %d) = %v, %v, want %v, %v",
				tt.tier, tt.duration, price, ok, tt.price, tt.ok)
		}
	}
}

func TestIsPromoCodeValid(t *testing.T) {
	valid := []string{"DIXLAUNCH", "dixlaunch", "DixLaunch", "  DIXLAUNCH  "}
	for _, code := range valid {
		if !IsPromoCodeValid(code) {
			t.Errorf("code %q should be valid", code)
		}
	}
	invalid := []string{"", "DIXLAUNCH2", "LAUNCH", "DIX"}
	for _, code := range invalid {
		if IsPromoCodeValid(code) {
			t.Errorf("code %q should not be valid", code)
		}
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name           string
		basePrice      float64
		bookingEnabled bool
		promoCode      string
		expected       float64
	}{
		{"base only", 35.99, false, "", 35.99},
		{"with booking", 35.99, true, "", 80.99},
		{"promo zeroes total", 35.99, false, "DIXLAUNCH", 0},
		{"promo zeroes booking too", 99.99, true, "dixlaunch", 0},
		{"invalid promo ignored", 14.99, false, "NOPE", 14.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := ComputeTotal(tt.basePrice, tt.bookingEnabled, tt.promoCode)
			if total != tt.expected {
				t.Errorf("ComputeTotal(%v, %v, %q) = %v, want %v",
					tt.basePrice, tt.bookingEnabled, tt.promoCode, total, tt.expected)
			}
		})
	}
}

// Every booking total must land exactly on a cent value; float addition
// alone leaves residues like 80.99000000000001.
func TestComputeTotalIsExactCents(t *testing.T) {
	for _, tier := range Tiers {
		for _, days := range Durations {
			base, ok := BasePrice(tier, days)
			if !ok {
				t.Fatalf("missing price for %s/%d", tier, days)
			}
			total := ComputeTotal(base, true, "")
			if total != math.Round(total*100)/100 {
				t.Errorf("ComputeTotal(%v, true, \"\") = %v, carries sub-cent noise", base, total)
			}
			if total != math.Round((base+BookingFeatureCost)*100)/100 {
				t.Errorf("ComputeTotal(%v, true, \"\") = %v", base, total)
			}
		}
	}
}

func TestPackagesCoverAllTiersAndDurations(t *testing.T) {
	packages := Packages()
	if len(packages) != len(Tiers) {
		t.Fatalf("expected %d packages, got %d", len(Tiers), len(packages))
	}
	for _, p := range packages {
		if len(p.Durations) != len(Durations) {
			t.Errorf("tier %s: expected %d durations, got %d", p.Tier, len(Durations), len(p.Durations))
		}
	}
}

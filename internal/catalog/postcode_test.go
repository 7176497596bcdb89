package catalog

import (
	"reflect"
	"testing"
)

func TestExtractPostcode(t *testing.T) {
	tests := []struct {
		area     string
		expected string
	}{
		{"Brick Lane - E1", "E1"},
		{"Soho - W1", "W1"},
		{"Canary Wharf - E14", "E14"},
		{"Knightsbridge - SW1", "SW1"},
		{"No district here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.area, func(t *testing.T) {
			got := ExtractPostcode(tt.area)
			if got != tt.expected {
				t.Errorf("ExtractPostcode(%q) = %q, want %q", tt.area, got, tt.expected)
			}
		})
	}
}

func TestSortAreasByPostcode(t *testing.T) {
	areas := []string{"Canary Wharf - E14", "Brick Lane - E1", "Bow - E3"}
	sorted := SortAreasByPostcode(areas)

	expected := []string{"Brick Lane - E1", "Bow - E3", "Canary Wharf - E14"}
	if !reflect.DeepEqual(sorted, expected) {
		t.Errorf("SortAreasByPostcode = %v, want %v", sorted, expected)
	}

	// Input order is untouched
	if areas[0] != "Canary Wharf - E14" {
		t.Error("input slice was mutated")
	}
}

func TestCityCatalog(t *testing.T) {
	if !IsKnownCity("London") {
		t.Error("London should be a known city")
	}
	if !IsKnownRegion("London", "Central London") {
		t.Error("Central London should be a known region")
	}
	if !IsKnownArea("London", "Central London", "Soho - W1") {
		t.Error("Soho - W1 should be a known area")
	}
	if IsKnownArea("London", "East London", "Soho - W1") {
		t.Error("Soho - W1 should not be in East London")
	}
	if IsKnownCity("Atlantis") {
		t.Error("unknown city should not be known")
	}
}

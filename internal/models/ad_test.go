package models

import "testing"

func TestIsValidAdTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{AdStatusPending, AdStatusActive, true},
		{AdStatusPending, AdStatusRejected, true},
		{AdStatusActive, AdStatusExpired, true},
		{AdStatusActive, AdStatusRejected, true},

		// Invalid transitions
		{AdStatusPending, AdStatusExpired, false},
		{AdStatusRejected, AdStatusActive, false},
		{AdStatusExpired, AdStatusActive, false},
		{AdStatusActive, AdStatusPending, false},
		{"nonexistent", AdStatusActive, false},
		{AdStatusPending, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidAdTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidAdTransition(%q, %q) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestAllAdStatusesHaveTransitionEntry(t *testing.T) {
	allStatuses := []string{AdStatusPending, AdStatusActive, AdStatusRejected, AdStatusExpired}
	for _, status := range allStatuses {
		if _, ok := ValidAdTransitions[status]; !ok {
			t.Errorf("status %q missing from ValidAdTransitions map", status)
		}
	}
}

func TestTerminalAdStatusesHaveNoTransitions(t *testing.T) {
	terminal := []string{AdStatusRejected, AdStatusExpired}
	for _, status := range terminal {
		transitions := ValidAdTransitions[status]
		if len(transitions) != 0 {
			t.Errorf("terminal status %q should have no transitions, got %v", status, transitions)
		}
	}
}

func TestIsValidVerificationRole(t *testing.T) {
	for _, role := range VerificationRoles {
		if !IsValidVerificationRole(role) {
			t.Errorf("role %q should be valid", role)
		}
	}
	if IsValidVerificationRole("passport") {
		t.Error("unknown role should not be valid")
	}
}

package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty string", "", true},
		{"whitespace only", "   \t ", true},
		{"non-empty", "value", false},
		{"padded value", "  value  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.input); got != tt.want {
				t.Errorf("IsEmpty(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid uuidv7", "01921f0e-53a7-7cc2-9d44-1d9a2a5f1e3b", true},
		{"uppercase accepted", "01921F0E-53A7-7CC2-9D44-1D9A2A5F1E3B", true},
		{"uuidv4 rejected", "7f6c5a8e-8d1a-4f3b-9c2d-1e0f9a8b7c6d", false},
		{"not a uuid", "not-a-uuid", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidUUID(tt.input); got != tt.want {
				t.Errorf("IsValidUUID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid date", "2025-03-14", true},
		{"invalid month", "2025-13-01", false},
		{"wrong format", "14-03-2025", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := IsValidDate(tt.input); ok != tt.want {
				t.Errorf("IsValidDate(%q) ok = %v, want %v", tt.input, ok, tt.want)
			}
		})
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"draft", "confirmed", "approved"}

	if !IsInSlice("confirmed", slice) {
		t.Errorf("IsInSlice(confirmed) = false, want true")
	}
	if IsInSlice("paid", slice) {
		t.Errorf("IsInSlice(paid) = true, want false")
	}
	if IsInSlice("draft", nil) {
		t.Errorf("IsInSlice on nil slice = true, want false")
	}
}

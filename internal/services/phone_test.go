package services

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		cc       string
		expected string
	}{
		{"local number gets default country code", "9876543210", "+91", "+919876543210"},
		{"explicit country code wins", "+1 555-123-4567", "+91", "+15551234567"},
		{"punctuation stripped", "(987) 654-3210", "+91", "+919876543210"},
		{"country code without plus", "9876543210", "91", "+919876543210"},
		{"plus in the middle dropped", "98+76", "+91", "+919876"},
		{"empty country code", "555 0100", "", "5550100"},
		{"empty input", "", "+91", "+91"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.raw, tt.cc); got != tt.expected {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.raw, tt.cc, got, tt.expected)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"9876543210", "+1 555-123-4567", "  (0) 12 34 ", "+", "abc", "0091 98765"}
	codes := []string{"+91", "91", "+1", "", "+ 44"}

	for _, raw := range inputs {
		for _, cc := range codes {
			once := NormalizePhone(raw, cc)
			if twice := NormalizePhone(once, cc); twice != once {
				t.Errorf("not idempotent for (%q, %q): %q then %q", raw, cc, once, twice)
			}
		}
	}
}

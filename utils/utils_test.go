package utils

import (
	"testing"
	"time"
)

func TestNextDocNumber(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prefix   string
		lastNo   string
		expected string
	}{
		{"first_of_day", "SI", "", "SI2509010001"},
		{"increments_same_day", "SI", "SI2509010007", "SI2509010008"},
		{"resets_on_new_day", "SI", "SI2508310042", "SI2509010001"},
		{"malformed_last_resets", "SI", "SI-9", "SI2509010001"},
		{"widens_past_9999", "SI", "SI2509019999", "SI25090110000"},
		{"counts_in_wide_sequence", "SI", "SI25090110000", "SI25090110001"},
		{"challan_prefix", "CH", "CH2509010001", "CH2509010002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDocNumber(tt.prefix, tt.lastNo, now); got != tt.expected {
				t.Errorf("NextDocNumber(%s, %s) = %s, want %s", tt.prefix, tt.lastNo, got, tt.expected)
			}
		})
	}
}

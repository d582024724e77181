package warranty

import (
	"testing"
	"time"
)

func date(s string) *time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		now      string
		expected Status
	}{
		{"inside_interval", date("2024-01-01"), date("2024-12-31"), "2024-06-15", StatusActive},
		{"on_start", date("2024-01-01"), date("2024-12-31"), "2024-01-01", StatusActive},
		{"on_end", date("2024-01-01"), date("2024-12-31"), "2024-12-31", StatusActive},
		{"day_after_end", date("2024-01-01"), date("2024-12-31"), "2025-01-01", StatusExpired},
		{"before_start_counts_expired", date("2024-06-01"), date("2024-12-31"), "2024-01-01", StatusExpired},
		{"missing_start", nil, date("2024-12-31"), "2024-06-15", StatusUnset},
		{"missing_end", date("2024-01-01"), nil, "2024-06-15", StatusUnset},
		{"both_missing", nil, nil, "2024-06-15", StatusUnset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := *date(tt.now)
			if got := Compute(tt.start, tt.end, now); got != tt.expected {
				t.Errorf("Compute(%v, %v, %s) = %s, want %s", tt.start, tt.end, tt.now, got, tt.expected)
			}
		})
	}
}

func TestComputeIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	if got := Compute(date("2024-01-01"), date("2024-12-31"), now); got != StatusActive {
		t.Errorf("late on the last day = %s, want %s", got, StatusActive)
	}
}

func TestParseDate(t *testing.T) {
	if d, err := ParseDate(""); err != nil || d != nil {
		t.Errorf("ParseDate(\"\") = %v, %v; want nil, nil", d, err)
	}
	if _, err := ParseDate("31-12-2024"); err == nil {
		t.Error("ParseDate accepted a malformed date")
	}
	d, err := ParseDate("2024-02-29")
	if err != nil || d == nil || d.Day() != 29 {
		t.Errorf("ParseDate leap day = %v, %v", d, err)
	}
}

package allocation

import (
	"reflect"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"equal", "VCI-001", "VCI-001", 0},
		{"numeric_order", "VCI-002", "VCI-010", -1},
		{"numeric_not_lexicographic", "VCI-9", "VCI-10", -1},
		{"reverse", "VCI-010", "VCI-002", 1},
		{"prefix_order", "PCB-100", "VCI-001", -1},
		{"padded_orders_after_unpadded", "VCI-07", "VCI-7", 1},
		{"unpadded_orders_before_padded", "VCI-7", "VCI-07", -1},
		{"no_suffix_fallback", "SPARE", "VCI-001", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name     string
		serial   string
		from, to string
		expected bool
	}{
		{"inside", "VCI-005", "VCI-001", "VCI-010", true},
		{"on_lower_bound", "VCI-001", "VCI-001", "VCI-010", true},
		{"on_upper_bound", "VCI-010", "VCI-001", "VCI-010", true},
		{"below", "VCI-001", "VCI-002", "VCI-010", false},
		{"above", "VCI-011", "VCI-001", "VCI-010", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InRange(tt.serial, tt.from, tt.to); got != tt.expected {
				t.Errorf("InRange(%s, %s, %s) = %v, want %v", tt.serial, tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestExpandRange(t *testing.T) {
	got, err := ExpandRange("PCB-0098", "PCB-0101")
	if err != nil {
		t.Fatalf("ExpandRange: %v", err)
	}
	want := []string{"PCB-0098", "PCB-0099", "PCB-0100", "PCB-0101"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandRange = %v, want %v", got, want)
	}
}

func TestExpandRangeSingle(t *testing.T) {
	got, err := ExpandRange("VCI-42", "VCI-42")
	if err != nil || len(got) != 1 || got[0] != "VCI-42" {
		t.Errorf("ExpandRange(VCI-42, VCI-42) = %v, %v", got, err)
	}
}

func TestExpandRangeErrors(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"prefix_mismatch", "VCI-001", "PCB-010"},
		{"reversed_bounds", "VCI-010", "VCI-001"},
		{"no_numeric_suffix", "VCI-A", "VCI-B"},
		{"span_too_large", "VCI-1", "VCI-999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExpandRange(tt.from, tt.to); err == nil {
				t.Errorf("ExpandRange(%s, %s): expected error", tt.from, tt.to)
			}
		})
	}
}

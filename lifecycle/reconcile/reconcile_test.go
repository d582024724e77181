package reconcile

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		declared int
		serials  []string
		ok       bool
	}{
		{"match", 2, []string{"VCI-001", "VCI-002"}, true},
		{"match_empty", 0, nil, true},
		{"short", 3, []string{"VCI-001"}, false},
		{"over", 1, []string{"VCI-001", "VCI-002"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.declared, tt.serials)
			if tt.ok {
				if err != nil {
					t.Errorf("Check: %v", err)
				}
				return
			}
			var qm *QuantityMismatchError
			if !errors.As(err, &qm) {
				t.Fatalf("got %v, want QuantityMismatchError", err)
			}
			if qm.Declared != tt.declared || qm.Resolved != len(tt.serials) {
				t.Errorf("mismatch payload = %d/%d, want %d/%d", qm.Declared, qm.Resolved, tt.declared, len(tt.serials))
			}
		})
	}
}

package idgen

import "testing"

func TestGenerateIDUnique(t *testing.T) {
	Init()

	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if id <= 0 {
			t.Fatalf("GenerateID() = %d, want positive", id)
		}
		if seen[id] {
			t.Fatalf("GenerateID() repeated %d", id)
		}
		seen[id] = true
	}
}

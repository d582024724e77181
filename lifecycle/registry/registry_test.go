package registry

import (
	"errors"
	"sync"
	"testing"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(NewMemoryStore())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return r
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := r.Register("VCI-0001", 1)
	var dup *DuplicateSerialError
	if !errors.As(err, &dup) {
		t.Fatalf("second register: got %v, want DuplicateSerialError", err)
	}

	s, err := r.Lookup("VCI-0001")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s.Stage != StageAvailable {
		t.Errorf("stage after register = %s, want %s", s.Stage, StageAvailable)
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name  string
		from  Stage
		to    Stage
		valid bool
	}{
		{"available_to_reserved", StageAvailable, StageReserved, true},
		{"reserved_to_sold", StageReserved, StageSold, true},
		{"reserved_cancel", StageReserved, StageAvailable, true},
		{"sold_return", StageSold, StageAvailable, true},
		{"available_to_damaged", StageAvailable, StageDamaged, true},
		{"sold_to_damaged", StageSold, StageDamaged, true},
		{"damaged_replaced", StageDamaged, StageAvailable, true},
		{"damaged_scrapped", StageDamaged, StageScrapped, true},
		{"available_to_service", StageAvailable, StageInService, true},
		{"sold_to_service", StageSold, StageInService, true},
		{"service_to_repaired", StageInService, StageRepaired, true},
		{"repaired_to_available", StageRepaired, StageAvailable, true},
		{"repaired_to_sold", StageRepaired, StageSold, true},

		{"available_to_sold_skips_reserved", StageAvailable, StageSold, false},
		{"available_to_scrapped", StageAvailable, StageScrapped, false},
		{"available_to_repaired", StageAvailable, StageRepaired, false},
		{"reserved_to_damaged", StageReserved, StageDamaged, false},
		{"sold_to_reserved", StageSold, StageReserved, false},
		{"damaged_to_sold", StageDamaged, StageSold, false},
		{"damaged_to_service", StageDamaged, StageInService, false},
		{"service_to_available", StageInService, StageAvailable, false},
		{"scrapped_is_terminal", StageScrapped, StageAvailable, false},
		{"self_transition", StageAvailable, StageAvailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.from, tt.to); got != tt.valid {
				t.Errorf("Allowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.valid)
			}
		})
	}
}

func TestInvalidTransitionLeavesStateUnchanged(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	_, err := r.Transition("VCI-0001", StageSold, "SI-1")
	var inv *InvalidTransitionError
	if !errors.As(err, &inv) {
		t.Fatalf("got %v, want InvalidTransitionError", err)
	}

	s, _ := r.Lookup("VCI-0001")
	if s.Stage != StageAvailable || s.StageRef != "" {
		t.Errorf("state changed after rejected transition: %+v", s)
	}
}

func TestTransitionUnknownSerial(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.Transition("GHOST-1", StageReserved, "x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSaleRoundTripRestoresAvailable(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		to  Stage
		ref string
	}{
		{StageReserved, "SI-250901-0001"},
		{StageSold, "SI-250901-0001"},
		{StageAvailable, ""},
	}
	for _, st := range steps {
		if _, err := r.Transition("VCI-0001", st.to, st.ref); err != nil {
			t.Fatalf("transition to %s: %v", st.to, err)
		}
	}

	s, _ := r.Lookup("VCI-0001")
	if s.Stage != StageAvailable {
		t.Errorf("stage = %s, want %s", s.Stage, StageAvailable)
	}
	if s.StageRef != "" {
		t.Errorf("residual owner ref %q after return", s.StageRef)
	}
}

func TestRepairRestoresPriorOwner(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	must := func(to Stage, ref string) {
		t.Helper()
		if _, err := r.Transition("VCI-0001", to, ref); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}
	must(StageReserved, "SI-1")
	must(StageSold, "SI-1")
	must(StageInService, "CH-1")

	s, _ := r.Lookup("VCI-0001")
	if s.PrevStage != StageSold || s.PrevRef != "SI-1" {
		t.Fatalf("prior owner not recorded: %+v", s)
	}

	must(StageRepaired, "CH-1")
	must(s.PrevStage, s.PrevRef)

	s, _ = r.Lookup("VCI-0001")
	if s.Stage != StageSold || s.StageRef != "SI-1" {
		t.Errorf("restored stage = %s/%q, want sold/SI-1", s.Stage, s.StageRef)
	}
	if s.PrevStage != "" || s.PrevRef != "" {
		t.Errorf("prior-owner bookkeeping not cleared: %+v", s)
	}
}

func TestApplyBatchAllOrNothing(t *testing.T) {
	r := newTestRegistry(t)
	for _, no := range []string{"VCI-0001", "VCI-0002", "VCI-0003"} {
		if _, err := r.Register(no, 1); err != nil {
			t.Fatal(err)
		}
	}
	// second unit already reserved, so the batch must fail
	if _, err := r.Transition("VCI-0002", StageReserved, "other"); err != nil {
		t.Fatal(err)
	}

	_, err := r.ApplyBatch([]Move{
		{SerialNo: "VCI-0001", To: StageReserved, OwnerRef: "SI-9"},
		{SerialNo: "VCI-0002", To: StageReserved, OwnerRef: "SI-9"},
		{SerialNo: "VCI-0003", To: StageReserved, OwnerRef: "SI-9"},
	})
	var inv *InvalidTransitionError
	if !errors.As(err, &inv) {
		t.Fatalf("got %v, want InvalidTransitionError", err)
	}
	if inv.SerialNo != "VCI-0002" {
		t.Errorf("failing serial = %s, want VCI-0002", inv.SerialNo)
	}

	for _, no := range []string{"VCI-0001", "VCI-0003"} {
		s, _ := r.Lookup(no)
		if s.Stage != StageAvailable || s.StageRef != "" {
			t.Errorf("%s touched by failed batch: %+v", no, s)
		}
	}
}

func TestApplyBatchStepsOneSerialThroughStages(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	_, err := r.ApplyBatch([]Move{
		{SerialNo: "VCI-0001", To: StageReserved, OwnerRef: "SI-1"},
		{SerialNo: "VCI-0001", To: StageSold, OwnerRef: "SI-1"},
	})
	if err != nil {
		t.Fatalf("ApplyBatch: %v", err)
	}

	s, _ := r.Lookup("VCI-0001")
	if s.Stage != StageSold {
		t.Errorf("stage = %s, want %s", s.Stage, StageSold)
	}
}

type failingStore struct {
	*MemoryStore
	failUpdates bool
}

func (f *failingStore) UpdateBatch(serials []Serial) error {
	if f.failUpdates {
		return errors.New("disk full")
	}
	return f.MemoryStore.UpdateBatch(serials)
}

func TestStoreFailureRollsBack(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore()}
	r, err := Open(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	store.failUpdates = true
	if _, err := r.Transition("VCI-0001", StageReserved, "SI-1"); err == nil {
		t.Fatal("expected store error")
	}

	s, _ := r.Lookup("VCI-0001")
	if s.Stage != StageAvailable {
		t.Errorf("in-memory state mutated despite store failure: %+v", s)
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	first, _ := r.Lookup("VCI-0001")
	for i := 0; i < 10; i++ {
		got, err := r.Lookup("VCI-0001")
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("lookup %d mutated state: %+v != %+v", i, got, first)
		}
	}
}

func TestConcurrentReserveSingleWinner(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Register("VCI-0001", 1); err != nil {
		t.Fatal(err)
	}

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			_, err := r.ResolveAndApply(func(v View) ([]Move, error) {
				s, ok := v.Serial("VCI-0001")
				if !ok {
					return nil, ErrNotFound
				}
				if s.Stage != StageAvailable {
					return nil, &NotAvailableError{SerialNo: s.SerialNo, Stage: s.Stage}
				}
				return []Move{{SerialNo: "VCI-0001", To: StageReserved, OwnerRef: ref}}, nil
			})
			if err == nil {
				wins <- ref
			}
		}("buyer-" + string(rune('a'+i)))
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	if len(winners) != 1 {
		t.Fatalf("got %d winners (%v), want exactly 1", len(winners), winners)
	}

	s, _ := r.Lookup("VCI-0001")
	if s.Stage != StageReserved || s.StageRef != winners[0] {
		t.Errorf("final state %+v does not match winner %s", s, winners[0])
	}
}

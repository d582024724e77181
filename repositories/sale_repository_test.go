package repositories

import (
	"errors"
	"testing"

	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"

	"github.com/sirupsen/logrus/hooks/test"
)

// offlineStore accepts the initial rows and then refuses every update,
// simulating a store outage mid-flight.
type offlineStore struct {
	*registry.MemoryStore
}

func (s *offlineStore) UpdateBatch([]registry.Serial) error {
	return errors.New("store offline")
}

func TestCancelReservationStoreOutage(t *testing.T) {
	mem := registry.NewMemoryStore()
	if err := mem.InsertBatch([]registry.Serial{
		{SerialNo: "VCI-1", CategoryID: 1, Stage: registry.StageReserved, StageRef: "SI2509010001"},
	}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	reg, err := registry.Open(&offlineStore{MemoryStore: mem})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	hook := test.NewLocal(config.GetLogger())
	defer hook.Reset()

	repo := NewSaleRepository(nil, reg)
	repo.cancelReservation("SI2509010001", []string{"VCI-1"})

	// The failure must land in the structured log, not vanish.
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry for failed reservation release")
	}
	if entry.Data["module"] != "sale" || entry.Data["funcName"] != "cancelReservation" {
		t.Errorf("log entry fields = %v, want module=sale funcName=cancelReservation", entry.Data)
	}

	// And the in-memory state must stay untouched so the stage_ref still
	// points at the dead invoice.
	s, err := reg.Lookup("VCI-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if s.Stage != registry.StageReserved || s.StageRef != "SI2509010001" {
		t.Errorf("serial after failed release = %s/%s, want reserved/SI2509010001", s.Stage, s.StageRef)
	}
}

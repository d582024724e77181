package timeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	name   string
	events []Event
	err    error
	delay  time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Events(ctx context.Context, serialNo string) ([]Event, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.events, s.err
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestTimelineOrdering(t *testing.T) {
	t1 := at(t, "2024-01-01T00:00:00Z")
	t2 := at(t, "2024-02-01T00:00:00Z")
	t3 := at(t, "2024-03-01T00:00:00Z")

	// completion order deliberately scrambled via delays
	agg := New(time.Second,
		&stubSource{name: SubsystemService, delay: 30 * time.Millisecond,
			events: []Event{{Subsystem: SubsystemService, Kind: "challan_sent", At: t3}}},
		&stubSource{name: SubsystemPurchase,
			events: []Event{{Subsystem: SubsystemPurchase, Kind: "purchased", At: t1}}},
		&stubSource{name: SubsystemSale, delay: 10 * time.Millisecond,
			events: []Event{{Subsystem: SubsystemSale, Kind: "sold", At: t2}}},
	)

	res, err := agg.Timeline(context.Background(), "VCI-0001")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	want := []string{"purchased", "sold", "challan_sent"}
	if len(res.Events) != len(want) {
		t.Fatalf("got %d events, want %d", len(res.Events), len(want))
	}
	for i, kind := range want {
		if res.Events[i].Kind != kind {
			t.Errorf("event[%d] = %s, want %s", i, res.Events[i].Kind, kind)
		}
	}
}

func TestTimelineTieBreakBySubsystem(t *testing.T) {
	ts := at(t, "2024-01-01T00:00:00Z")

	agg := New(time.Second,
		&stubSource{name: SubsystemDamage, events: []Event{{Subsystem: SubsystemDamage, Kind: "damaged", At: ts}}},
		&stubSource{name: SubsystemPurchase, events: []Event{{Subsystem: SubsystemPurchase, Kind: "purchased", At: ts}}},
		&stubSource{name: SubsystemProduct, events: []Event{{Subsystem: SubsystemProduct, Kind: "registered", At: ts}}},
	)

	res, err := agg.Timeline(context.Background(), "VCI-0001")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}

	want := []string{SubsystemPurchase, SubsystemProduct, SubsystemDamage}
	for i, sub := range want {
		if res.Events[i].Subsystem != sub {
			t.Errorf("event[%d].Subsystem = %s, want %s", i, res.Events[i].Subsystem, sub)
		}
	}
}

func TestTimelineFailSoft(t *testing.T) {
	t1 := at(t, "2024-01-01T00:00:00Z")

	agg := New(time.Second,
		&stubSource{name: SubsystemPurchase, events: []Event{{Subsystem: SubsystemPurchase, Kind: "purchased", At: t1}}},
		&stubSource{name: SubsystemDamage, err: errors.New("damage table offline")},
	)

	res, err := agg.Timeline(context.Background(), "VCI-0001")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(res.Events) != 1 {
		t.Errorf("got %d events, want 1", len(res.Events))
	}
	if len(res.Gaps) != 1 || res.Gaps[0].Subsystem != SubsystemDamage {
		t.Errorf("gaps = %+v, want one damage gap", res.Gaps)
	}
}

func TestTimelineSlowSourceBecomesGap(t *testing.T) {
	agg := New(20*time.Millisecond,
		&stubSource{name: SubsystemPurchase, events: []Event{{Subsystem: SubsystemPurchase, Kind: "purchased", At: time.Now()}}},
		&stubSource{name: SubsystemService, delay: 500 * time.Millisecond,
			events: []Event{{Subsystem: SubsystemService, Kind: "challan_sent", At: time.Now()}}},
	)

	start := time.Now()
	res, err := agg.Timeline(context.Background(), "VCI-0001")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if time.Since(start) > 300*time.Millisecond {
		t.Error("slow source blocked the whole query")
	}
	if len(res.Gaps) != 1 || res.Gaps[0].Reason != "timeout" {
		t.Errorf("gaps = %+v, want one timeout gap", res.Gaps)
	}
	if len(res.Events) != 1 {
		t.Errorf("got %d events, want the fast source's 1", len(res.Events))
	}
}

func TestTimelineNoHistory(t *testing.T) {
	agg := New(time.Second,
		&stubSource{name: SubsystemPurchase},
		&stubSource{name: SubsystemSale},
	)

	_, err := agg.Timeline(context.Background(), "GHOST-1")
	if !errors.Is(err, ErrNoHistory) {
		t.Fatalf("got %v, want ErrNoHistory", err)
	}
}

func TestTimelineCancellation(t *testing.T) {
	agg := New(time.Second,
		&stubSource{name: SubsystemService, delay: 500 * time.Millisecond},
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := agg.Timeline(ctx, "VCI-0001")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if time.Since(start) > 300*time.Millisecond {
		t.Error("cancellation did not stop outstanding queries promptly")
	}
}

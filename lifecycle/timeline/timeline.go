// Package timeline reconstructs the full lifecycle history of one serial
// by fanning out over every subsystem that may reference it and merging
// the events into a single chronological sequence.
package timeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Subsystem names double as tie-break precedence: when two events share a
// timestamp, the earlier subsystem in this list comes first.
const (
	SubsystemPurchase = "purchase"
	SubsystemProduct  = "product"
	SubsystemSale     = "sale"
	SubsystemDamage   = "damage"
	SubsystemService  = "service"
)

var precedence = map[string]int{
	SubsystemPurchase: 0,
	SubsystemProduct:  1,
	SubsystemSale:     2,
	SubsystemDamage:   3,
	SubsystemService:  4,
}

// Event is one lifecycle occurrence reported by a subsystem.
type Event struct {
	Subsystem string    `json:"subsystem"`
	Kind      string    `json:"kind"`
	SerialNo  string    `json:"serial_no"`
	RefNo     string    `json:"ref_no"`
	Detail    string    `json:"detail"`
	At        time.Time `json:"at"`
}

// Source is one subsystem's read-only event feed for a serial.
type Source interface {
	Name() string
	Events(ctx context.Context, serialNo string) ([]Event, error)
}

// Gap records a subsystem that could not contribute to a timeline.
type Gap struct {
	Subsystem string `json:"subsystem"`
	Reason    string `json:"reason"`
}

// Result is a merged timeline. Gaps lists subsystems whose query failed;
// the events that are present are still valid history.
type Result struct {
	SerialNo string  `json:"serial_no"`
	Events   []Event `json:"events"`
	Gaps     []Gap   `json:"gaps,omitempty"`
}

// ErrNoHistory means no subsystem knows the serial at all.
var ErrNoHistory = errors.New("no lifecycle history for serial")

const defaultSourceTimeout = 3 * time.Second

// Aggregator queries sources in parallel and merges their events.
type Aggregator struct {
	sources []Source
	timeout time.Duration
}

// New builds an aggregator. timeout bounds each source query; zero means
// the default. A slow subsystem degrades into a reported gap instead of
// stalling the whole timeline.
func New(timeout time.Duration, sources ...Source) *Aggregator {
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}
	return &Aggregator{sources: sources, timeout: timeout}
}

// Timeline merges all subsystem events for a serial, ascending by
// timestamp with subsystem precedence breaking ties. Source failures are
// collected as gaps, not propagated; ErrNoHistory is returned only when
// every source succeeded and none had anything.
func (a *Aggregator) Timeline(ctx context.Context, serialNo string) (Result, error) {
	type reply struct {
		name   string
		events []Event
		err    error
	}

	replies := make([]reply, len(a.sources))
	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			events, err := src.Events(sctx, serialNo)
			replies[i] = reply{name: src.Name(), events: events, err: err}
		}(i, src)
	}
	wg.Wait()

	res := Result{SerialNo: serialNo}
	for _, rp := range replies {
		if rp.err != nil {
			reason := rp.err.Error()
			if errors.Is(rp.err, context.DeadlineExceeded) {
				reason = "timeout"
			}
			res.Gaps = append(res.Gaps, Gap{Subsystem: rp.name, Reason: reason})
			continue
		}
		res.Events = append(res.Events, rp.events...)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(res.Events) == 0 && len(res.Gaps) == 0 {
		return Result{}, ErrNoHistory
	}

	sort.SliceStable(res.Events, func(i, j int) bool {
		a, b := res.Events[i], res.Events[j]
		if !a.At.Equal(b.At) {
			return a.At.Before(b.At)
		}
		return rank(a.Subsystem) < rank(b.Subsystem)
	})
	return res, nil
}

func rank(subsystem string) int {
	if r, ok := precedence[subsystem]; ok {
		return r
	}
	return len(precedence)
}

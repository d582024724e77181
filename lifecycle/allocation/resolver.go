package allocation

import (
	"fmt"
	"sort"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
)

// View is the slice of registry state a resolve needs. registry.View
// satisfies it, so resolution can run inside the registry lock scope.
type View interface {
	Serial(serialNo string) (registry.Serial, bool)
	Category(categoryID int64) []registry.Serial
}

// Request asks for concrete serials one of three ways: an exact serial,
// a from/to range, or a quantity with an optional starting serial.
type Request struct {
	CategoryID int64
	SerialNo   string
	FromSerial string
	ToSerial   string
	Quantity   int
}

// Result is always a deduplicated, ascending list. Partial is set when a
// quantity request could not be filled; that is a valid outcome the
// caller decides about, not an error.
type Result struct {
	Serials   []string
	Partial   bool
	Shortfall int
}

// Resolve turns a request into concrete serial numbers. Exact and range
// requests fail if any requested serial is not Available; quantity
// requests return what stock there is.
func Resolve(v View, req Request) (Result, error) {
	switch {
	case req.SerialNo != "":
		return resolveSingle(v, req.SerialNo)
	case req.FromSerial != "" && req.ToSerial != "":
		return resolveRange(v, req)
	case req.Quantity > 0:
		return resolveQuantity(v, req)
	}
	return Result{}, fmt.Errorf("allocation request needs a serial, a range or a quantity")
}

func resolveSingle(v View, serialNo string) (Result, error) {
	s, ok := v.Serial(serialNo)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", serialNo, registry.ErrNotFound)
	}
	if s.Stage != registry.StageAvailable {
		return Result{}, &registry.NotAvailableError{SerialNo: s.SerialNo, Stage: s.Stage}
	}
	return Result{Serials: []string{serialNo}}, nil
}

func resolveRange(v View, req Request) (Result, error) {
	var inRange []registry.Serial
	for _, s := range v.Category(req.CategoryID) {
		if InRange(s.SerialNo, req.FromSerial, req.ToSerial) {
			inRange = append(inRange, s)
		}
	}
	if len(inRange) == 0 {
		return Result{}, fmt.Errorf("range %s..%s: %w", req.FromSerial, req.ToSerial, registry.ErrNotFound)
	}

	sort.Slice(inRange, func(i, j int) bool {
		return Less(inRange[i].SerialNo, inRange[j].SerialNo)
	})

	out := make([]string, 0, len(inRange))
	seen := make(map[string]bool, len(inRange))
	for _, s := range inRange {
		if seen[s.SerialNo] {
			continue
		}
		if s.Stage != registry.StageAvailable {
			return Result{}, &registry.NotAvailableError{SerialNo: s.SerialNo, Stage: s.Stage}
		}
		seen[s.SerialNo] = true
		out = append(out, s.SerialNo)
	}
	return Result{Serials: out}, nil
}

func resolveQuantity(v View, req Request) (Result, error) {
	var available []string
	seen := make(map[string]bool)
	for _, s := range v.Category(req.CategoryID) {
		if s.Stage != registry.StageAvailable || seen[s.SerialNo] {
			continue
		}
		if req.FromSerial != "" && Compare(s.SerialNo, req.FromSerial) < 0 {
			continue
		}
		seen[s.SerialNo] = true
		available = append(available, s.SerialNo)
	}

	sort.Slice(available, func(i, j int) bool {
		return Less(available[i], available[j])
	})

	if len(available) > req.Quantity {
		available = available[:req.Quantity]
	}
	res := Result{Serials: available}
	if len(available) < req.Quantity {
		res.Partial = true
		res.Shortfall = req.Quantity - len(available)
	}
	return res, nil
}

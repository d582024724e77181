// Package warranty computes warranty status from date intervals. Pure
// functions only; status is always recomputed from the stored dates,
// never cached.
package warranty

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusUnset   Status = "unset"
)

// DateLayout is the wire format for warranty dates.
const DateLayout = "2006-01-02"

// Compute classifies a warranty interval against a reference time.
// Bounds are inclusive at day granularity. A missing bound yields Unset.
// A reference before the start also yields Expired; that matches the
// historical behavior of the stock screens even though a distinct
// not-yet-started status would be truer.
func Compute(start, end *time.Time, now time.Time) Status {
	if start == nil || end == nil {
		return StatusUnset
	}

	day := dateOf(now)
	if !day.Before(dateOf(*start)) && !day.After(dateOf(*end)) {
		return StatusActive
	}
	return StatusExpired
}

// ParseDate parses a warranty date in DateLayout. Empty input is a valid
// "no date" and returns nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

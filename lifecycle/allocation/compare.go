package allocation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Serials are opaque strings, but ordering must not fall into the
// lexicographic trap where VCI-9 sorts after VCI-10. Serials matching
// <prefix><digits> are compared by prefix then numeric suffix; anything
// else falls back to plain string comparison.
var serialPattern = regexp.MustCompile(`^(.*?)(\d+)$`)

// Compare returns -1, 0 or 1 ordering two serial numbers. Equal numeric
// suffixes with different zero padding are still distinct serials; the
// shorter, unpadded form orders first (VCI-7 before VCI-07).
func Compare(a, b string) int {
	if a == b {
		return 0
	}

	prefixA, numA, okA := splitSerial(a)
	prefixB, numB, okB := splitSerial(b)
	if !okA || !okB {
		return strings.Compare(a, b)
	}

	if prefixA != prefixB {
		return strings.Compare(prefixA, prefixB)
	}
	switch {
	case numA < numB:
		return -1
	case numA > numB:
		return 1
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// InRange reports whether serial falls inside [from, to] inclusive.
func InRange(serial, from, to string) bool {
	return Compare(serial, from) >= 0 && Compare(serial, to) <= 0
}

func splitSerial(s string) (prefix string, num int64, ok bool) {
	m := serialPattern.FindStringSubmatch(s)
	if len(m) != 3 {
		return "", 0, false
	}
	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// maxRangeSpan caps how many serials a from/to range may generate at
// purchase intake. Larger ranges are almost always a typo in a bound.
const maxRangeSpan = 10000

// ExpandRange generates the concrete serial numbers between from and to
// inclusive, preserving the prefix and zero padding of the bounds.
// Both bounds must share a prefix and carry a numeric suffix.
func ExpandRange(from, to string) ([]string, error) {
	prefixF, numF, okF := splitSerial(from)
	prefixT, numT, okT := splitSerial(to)
	if !okF || !okT {
		return nil, fmt.Errorf("serial range %s..%s: bounds need a numeric suffix", from, to)
	}
	if prefixF != prefixT {
		return nil, fmt.Errorf("serial range %s..%s: prefixes differ", from, to)
	}
	if numT < numF {
		return nil, fmt.Errorf("serial range %s..%s: to is before from", from, to)
	}
	if numT-numF+1 > maxRangeSpan {
		return nil, fmt.Errorf("serial range %s..%s: span exceeds %d", from, to, maxRangeSpan)
	}

	width := len(from) - len(prefixF)
	out := make([]string, 0, numT-numF+1)
	for n := numF; n <= numT; n++ {
		out = append(out, fmt.Sprintf("%s%0*d", prefixF, width, n))
	}
	return out, nil
}

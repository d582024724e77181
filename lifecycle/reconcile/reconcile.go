// Package reconcile guards the declared-quantity invariant: a sale or
// service batch never commits unless the resolved serial list matches the
// quantity the caller declared.
package reconcile

import "fmt"

// QuantityMismatchError carries both sides of the failed comparison so
// callers can report the shortfall instead of a generic failure.
type QuantityMismatchError struct {
	Declared int
	Resolved int
}

func (e *QuantityMismatchError) Error() string {
	return fmt.Sprintf("quantity mismatch: declared %d, resolved %d serials", e.Declared, e.Resolved)
}

// Check validates a declared quantity against a resolved serial list.
// It must run before any registry batch is applied.
func Check(declared int, serials []string) error {
	if len(serials) != declared {
		return &QuantityMismatchError{Declared: declared, Resolved: len(serials)}
	}
	return nil
}

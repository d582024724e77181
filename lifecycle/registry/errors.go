package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a serial was never registered.
var ErrNotFound = errors.New("serial not found")

// DuplicateSerialError rejects registering an already known serial.
type DuplicateSerialError struct {
	SerialNo string
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("serial %s already registered", e.SerialNo)
}

// InvalidTransitionError rejects a move not present in the transition table.
type InvalidTransitionError struct {
	SerialNo string
	From     Stage
	To       Stage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("serial %s: invalid transition %s -> %s", e.SerialNo, e.From, e.To)
}

// NotAvailableError rejects allocating a serial that is not in Available stage.
type NotAvailableError struct {
	SerialNo string
	Stage    Stage
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("serial %s is not available (stage %s)", e.SerialNo, e.Stage)
}

package oerror

import (
	"errors"
	"fmt"
)

// StalkError is the error type returned at the edges of the plugin, such as
// configuration I/O.
type StalkError struct {
	Err string
	err error
}

// New returns a StalkError with a message formatted from the format and args passed. A %w verb
// in the format keeps the wrapped error reachable through errors.Is and errors.As.
func New(format string, args ...interface{}) *StalkError {
	e := fmt.Errorf(format, args...)
	return &StalkError{Err: e.Error(), err: e}
}

func (e *StalkError) Error() string {
	return e.Err
}

func (e *StalkError) Unwrap() error {
	return errors.Unwrap(e.err)
}

package spill

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("spill store closed")

// IOError reports a failed or short transfer on the spill stream.
// The editor treats it as fatal.
type IOError struct {
	Op     string // "seek", "read", "write", "create", "close"
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("spill %s at %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

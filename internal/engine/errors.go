package engine

import (
	"errors"

	"github.com/dshills/aedit/internal/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrOffsetOutOfRange indicates an offset or movement outside the document.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrNoFileName indicates a file operation was given an empty name.
	ErrNoFileName = errors.New("no file name")

	// ErrEmptyRange indicates a range save covering no bytes.
	ErrEmptyRange = errors.New("empty range")

	// ErrClosed indicates the engine has been closed.
	ErrClosed = errors.New("engine is closed")
)

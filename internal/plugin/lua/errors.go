package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrUnknownSetting is raised by aedit.set for a name outside the
	// allowed settings.
	ErrUnknownSetting = errors.New("unknown setting")
)

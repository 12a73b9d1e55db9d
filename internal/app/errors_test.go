package app

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "open log"},
			expected: "open log",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open log", Target: "/tmp/aedit.log"},
			expected: "open log /tmp/aedit.log",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "open log", Target: "/tmp/aedit.log", Err: errors.New("io error")},
			expected: "open log /tmp/aedit.log: io error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("open log", "/tmp/aedit.log", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil Unwrap on nil receiver")
	}
}

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "component only",
			err:      &ComponentError{Component: "editor"},
			expected: "editor",
		},
		{
			name:     "component and action",
			err:      &ComponentError{Component: "editor", Action: "run"},
			expected: "editor: run",
		},
		{
			name:     "component and error",
			err:      &ComponentError{Component: "engine", Err: errors.New("spill failed")},
			expected: "engine: spill failed",
		},
		{
			name:     "full error",
			err:      &ComponentError{Component: "engine", Action: "close", Err: errors.New("spill failed")},
			expected: "engine: close: spill failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestComponentError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewComponentError("editor", "run", inner)
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "terminal", Err: inner}

	if err.Error() != "initializing terminal: no tty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInitialization) {
		t.Error("expected InitError to match ErrInitialization")
	}
	if !errors.Is(err, inner) {
		t.Error("expected InitError to wrap its cause")
	}
}

func TestRecoveredPanicError_Error(t *testing.T) {
	err := NewRecoveredPanicError("boom", "")
	if err.Error() != "panic: boom" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = NewRecoveredPanicError("boom", "goroutine 1")
	if !strings.HasPrefix(err.Error(), "panic: boom\ngoroutine 1") {
		t.Errorf("Error() = %q", err.Error())
	}

	var nilErr *RecoveredPanicError
	if nilErr.Error() != "" {
		t.Error("expected empty message for nil receiver")
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.HasErrors() || list.AsError() != nil {
		t.Fatal("expected empty list")
	}

	list.Add(nil)
	if list.HasErrors() {
		t.Error("nil errors should be ignored")
	}

	first := errors.New("first")
	list.Add(first)
	if list.Error() != "first" {
		t.Errorf("Error() = %q", list.Error())
	}

	list.Add(fs.ErrClosed)
	if list.Error() != "2 errors: first: first" {
		t.Errorf("Error() = %q", list.Error())
	}
	if got := list.Errors(); len(got) != 2 {
		t.Errorf("Errors() returned %d errors", len(got))
	}

	err := list.AsError()
	if !errors.Is(err, first) || !errors.Is(err, fs.ErrClosed) {
		t.Error("expected errors.Is to see every collected error")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrQuit, ErrAlreadyRunning, ErrClosed, ErrInitialization}
	for i, a := range sentinels {
		if a.Error() == "" {
			t.Errorf("sentinel %d has empty message", i)
		}
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}

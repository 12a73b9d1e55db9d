package engine

import (
	"github.com/dshills/aedit/internal/engine/buffer"
	"github.com/dshills/aedit/internal/engine/position"
)

// Default configuration values.
const (
	DefaultTabWidth = position.DefaultTabWidth
	DefaultCapacity = buffer.DefaultCapacity
)

// Logger receives debug traces from the engine and its buffer.
type Logger interface {
	Debug(msg string, args ...any)
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithTabWidth sets the tab stop interval.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithWrap enables or disables wrapping of long lines.
func WithWrap(wrap bool) Option {
	return func(e *Engine) {
		e.wrap = wrap
	}
}

// WithColumns sets the initial screen width used by the mapper.
func WithColumns(cols int) Option {
	return func(e *Engine) {
		if cols > 1 {
			e.cols = cols
		}
	}
}

// WithCapacity sets the size of the in-memory window.
func WithCapacity(n int64) Option {
	return func(e *Engine) {
		e.capacity = n
	}
}

// WithSpillDir places the spill file in dir.
func WithSpillDir(dir string) Option {
	return func(e *Engine) {
		e.spillDir = dir
	}
}

// WithMemorySpill keeps spilled bytes in memory instead of a file.
func WithMemorySpill() Option {
	return func(e *Engine) {
		e.memory = true
	}
}

// WithLogger sets the debug logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

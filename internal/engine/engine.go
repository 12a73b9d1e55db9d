package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dshills/aedit/internal/engine/buffer"
	"github.com/dshills/aedit/internal/engine/position"
	"github.com/dshills/aedit/internal/engine/spill"
)

// Engine is one open document.
type Engine struct {
	buf *buffer.Buffer
	m   *position.Mapper

	tabWidth int
	wrap     bool
	cols     int
	capacity int64
	spillDir string
	memory   bool
	log      Logger

	closed bool
}

// New creates an engine holding an empty document.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		tabWidth: DefaultTabWidth,
		wrap:     true,
		cols:     position.DefaultColumns,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	buf, err := e.newBuffer()
	if err != nil {
		return nil, err
	}
	e.buf = buf
	e.m = position.New(e,
		position.WithTabWidth(e.tabWidth),
		position.WithWrap(e.wrap),
		position.WithColumns(e.cols),
	)
	return e, nil
}

func (e *Engine) newBuffer() (*buffer.Buffer, error) {
	var store *spill.Store
	if e.memory {
		store = spill.NewMemory()
	} else {
		var err error
		store, err = spill.NewFile(e.spillDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", buffer.ErrAllocation, err)
		}
	}
	opts := []buffer.Option{buffer.WithCapacity(e.capacity)}
	if e.log != nil {
		opts = append(opts, buffer.WithLogger(e.log))
	}
	buf, err := buffer.New(store, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return buf, nil
}

// Buffer returns the edit buffer.
func (e *Engine) Buffer() *buffer.Buffer { return e.buf }

// Mapper returns the position mapper. It reads through the engine, so it
// stays valid across Renew.
func (e *Engine) Mapper() *position.Mapper { return e.m }

// Len returns the document length.
func (e *Engine) Len() int64 { return e.buf.Len() }

// Pos returns the cursor offset.
func (e *Engine) Pos() int64 { return e.buf.Pos() }

// ByteAt returns the byte at off.
func (e *Engine) ByteAt(off int64) (byte, error) { return e.buf.ByteAt(off) }

// Open replaces the document with the contents of path. A missing file
// leaves an empty document and returns an error wrapping fs.ErrNotExist.
func (e *Engine) Open(path string) error {
	if e.closed {
		return ErrClosed
	}
	e.buf.Reset()
	if path == "" {
		return ErrNoFileName
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := e.buf.Load(f); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Save writes the whole document to path.
func (e *Engine) Save(path string) error {
	return e.writeRange(path, 0, e.buf.Len())
}

// SaveRange writes the bytes between two offsets to path. The offsets may
// be given in either order. An empty range writes nothing and returns
// ErrEmptyRange.
func (e *Engine) SaveRange(path string, from, to int64) error {
	from, to = min(from, to), max(from, to)
	if from == to {
		return ErrEmptyRange
	}
	return e.writeRange(path, from, to)
}

func (e *Engine) writeRange(path string, from, to int64) error {
	if e.closed {
		return ErrClosed
	}
	if path == "" {
		return ErrNoFileName
	}
	if from < 0 || to > e.buf.Len() {
		return fmt.Errorf("save %s [%d, %d): %w", path, from, to, ErrOffsetOutOfRange)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	_, werr := e.buf.WriteRange(f, from, to)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("save %s: %w", path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("save %s: %w", path, cerr)
	}
	return nil
}

// InsertFile inserts the contents of path at the cursor and returns the
// number of bytes inserted. The cursor ends up after the inserted text.
func (e *Engine) InsertFile(path string) (int64, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if path == "" {
		return 0, ErrNoFileName
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", path, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", path, err)
	}
	if err := e.buf.Reserve(info.Size()); err != nil {
		return 0, err
	}

	var n int64
	r := bufio.NewReader(f)
	for {
		c, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("get %s: %w", path, err)
		}
		if err := e.buf.Insert(c); err != nil {
			return n, err
		}
		n++
	}
}

// Renew discards the document and its spill store and starts over with an
// empty document on a fresh store.
func (e *Engine) Renew() error {
	if e.closed {
		return ErrClosed
	}
	buf, err := e.newBuffer()
	if err != nil {
		return err
	}
	old := e.buf
	e.buf = buf
	return old.Close()
}

// Close releases the spill store.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.buf.Close()
}

package buffer

import (
	"errors"
	"fmt"

	"github.com/dshills/aedit/internal/engine/spill"
)

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset or movement outside the document.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrAllocation indicates the buffer could not be set up.
	ErrAllocation = errors.New("buffer allocation failed")
)

// DefaultCapacity is the size of the in-memory window.
const DefaultCapacity = 32768

// Logger receives debug traces of spill traffic.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Buffer is the document being edited.
//
// Bytes before the cursor live in the low spill extent (store offsets
// [0, lowSpill)) followed by the low region mem[:lowSize]. Bytes after the
// cursor live in the high region mem[cap-highSize:] followed by the high
// spill extent (store offsets [highOff, highOff+highSpill)). The store gap
// between the two extents holds stale data and is never read.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	mem      []byte
	lowSize  int64
	highSize int64

	store     *spill.Store
	lowSpill  int64
	highOff   int64
	highSpill int64

	log Logger
}

// New creates an empty buffer spilling to store.
func New(store *spill.Store, opts ...Option) (*Buffer, error) {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrAllocation, o.capacity)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: no spill store", ErrAllocation)
	}
	b := &Buffer{
		mem:   make([]byte, o.capacity),
		store: store,
		log:   o.logger,
	}
	if b.log == nil {
		b.log = nopLogger{}
	}
	return b, nil
}

// Capacity returns the size of the in-memory window.
func (b *Buffer) Capacity() int64 {
	return int64(len(b.mem))
}

// Len returns the document length.
func (b *Buffer) Len() int64 {
	return b.lowSpill + b.lowSize + b.highSize + b.highSpill
}

// Pos returns the cursor offset.
func (b *Buffer) Pos() int64 {
	return b.lowSpill + b.lowSize
}

// Store returns the spill store.
func (b *Buffer) Store() *spill.Store {
	return b.store
}

func (b *Buffer) room() int64 {
	return b.Capacity() - b.lowSize - b.highSize
}

// Segment identifies which part of the buffer holds an offset.
type Segment uint8

const (
	SegLowSpill Segment = iota
	SegLow
	SegHigh
	SegHighSpill
)

// String returns the segment name.
func (s Segment) String() string {
	switch s {
	case SegLowSpill:
		return "low-spill"
	case SegLow:
		return "low"
	case SegHigh:
		return "high"
	case SegHighSpill:
		return "high-spill"
	default:
		return "unknown"
	}
}

// Location is an offset resolved to a segment and an index inside it.
type Location struct {
	Segment Segment
	Local   int64
}

// Locate resolves a document offset to the segment holding it.
func (b *Buffer) Locate(off int64) (Location, error) {
	if off < 0 || off >= b.Len() {
		return Location{}, fmt.Errorf("locate %d (len %d): %w", off, b.Len(), ErrOffsetOutOfRange)
	}
	if off < b.lowSpill {
		return Location{SegLowSpill, off}, nil
	}
	off -= b.lowSpill
	if off < b.lowSize {
		return Location{SegLow, off}, nil
	}
	off -= b.lowSize
	if off < b.highSize {
		return Location{SegHigh, off}, nil
	}
	return Location{SegHighSpill, off - b.highSize}, nil
}

// ByteAt returns the byte at off.
func (b *Buffer) ByteAt(off int64) (byte, error) {
	loc, err := b.Locate(off)
	if err != nil {
		return 0, err
	}
	switch loc.Segment {
	case SegLowSpill:
		return b.store.ByteAt(loc.Local)
	case SegLow:
		return b.mem[loc.Local], nil
	case SegHigh:
		return b.mem[b.Capacity()-b.highSize+loc.Local], nil
	default:
		return b.store.ByteAt(b.highOff + loc.Local)
	}
}

// Insert inserts c at the cursor and advances the cursor past it.
func (b *Buffer) Insert(c byte) error {
	b.store.Invalidate()
	for b.lowSize+b.highSize >= b.Capacity() {
		if err := b.Reserve(1); err != nil {
			return err
		}
		var err error
		switch {
		case b.highSize > b.lowSize:
			err = b.dumpHigh(max(b.highSize/2, 1))
		case b.lowSize > 1:
			err = b.dumpLow(b.lowSize / 2)
		default:
			err = b.flush()
		}
		if err != nil {
			return err
		}
	}
	b.mem[b.lowSize] = c
	b.lowSize++
	return nil
}

// InsertBytes inserts p at the cursor.
func (b *Buffer) InsertBytes(p []byte) error {
	for _, c := range p {
		if err := b.Insert(c); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes |n| bytes after the cursor when n > 0 and before it when
// n < 0. Bytes outside the in-memory window are dropped by shrinking the
// spill extent without touching the store.
func (b *Buffer) Delete(n int64) error {
	switch {
	case n > 0:
		return b.DeleteForward(n)
	case n < 0:
		return b.DeleteBackward(-n)
	}
	return nil
}

// DeleteForward removes n bytes after the cursor.
func (b *Buffer) DeleteForward(n int64) error {
	if n < 0 || n > b.Len()-b.Pos() {
		return fmt.Errorf("delete %d at %d (len %d): %w", n, b.Pos(), b.Len(), ErrOffsetOutOfRange)
	}
	b.store.Invalidate()
	if n > b.highSize {
		rest := n - b.highSize
		b.highSize = 0
		b.highOff += rest
		b.highSpill -= rest
		return nil
	}
	b.highSize -= n
	return nil
}

// DeleteBackward removes n bytes before the cursor.
func (b *Buffer) DeleteBackward(n int64) error {
	if n < 0 || n > b.Pos() {
		return fmt.Errorf("delete %d before %d: %w", n, b.Pos(), ErrOffsetOutOfRange)
	}
	b.store.Invalidate()
	if n > b.lowSize {
		rest := n - b.lowSize
		b.lowSize = 0
		b.lowSpill -= rest
		return nil
	}
	b.lowSize -= n
	return nil
}

// Move shifts the cursor by delta bytes.
func (b *Buffer) Move(delta int64) error {
	if delta == 0 {
		return nil
	}
	target := b.Pos() + delta
	if target < 0 || target > b.Len() {
		return fmt.Errorf("move %d from %d (len %d): %w", delta, b.Pos(), b.Len(), ErrOffsetOutOfRange)
	}
	capacity := b.Capacity()

	if delta < 0 {
		n := -delta
		if n > b.lowSize {
			return b.moveThroughStore(delta)
		}
		copy(b.mem[capacity-b.highSize-n:capacity-b.highSize], b.mem[b.lowSize-n:b.lowSize])
		b.lowSize -= n
		b.highSize += n
		return nil
	}

	if delta > b.highSize {
		return b.moveThroughStore(delta)
	}
	start := capacity - b.highSize
	copy(b.mem[b.lowSize:b.lowSize+delta], b.mem[start:start+delta])
	b.lowSize += delta
	b.highSize -= delta
	return nil
}

// moveThroughStore handles moves longer than the resident side: everything
// is flushed, the bytes are moved store to store, and the window is refilled
// half from each side of the cursor.
func (b *Buffer) moveThroughStore(delta int64) error {
	b.log.Debug("move %d through store (pos %d)", delta, b.Pos())
	if err := b.flush(); err != nil {
		return err
	}
	if err := b.storeMove(delta); err != nil {
		return err
	}
	half := b.room() / 2
	if err := b.loadHigh(half); err != nil {
		return err
	}
	return b.loadLow(half)
}

// Reserve makes sure the store gap between the two spill extents can take
// n more bytes, moving the high extent later if it cannot.
func (b *Buffer) Reserve(n int64) error {
	b.store.Invalidate()
	if n <= 0 {
		return nil
	}
	need := n - (b.highOff - b.lowSpill)
	if need <= 0 {
		return nil
	}
	if err := b.store.EnsureSize(need + b.highOff + b.highSpill); err != nil {
		return err
	}
	if b.highSpill > 0 {
		if err := b.store.Copy(b.highOff+need, b.highOff, b.highSpill); err != nil {
			return err
		}
	}
	b.highOff += need
	return nil
}

// dumpHigh spills the n high-region bytes farthest from the cursor to the
// front of the high spill extent.
func (b *Buffer) dumpHigh(n int64) error {
	n = min(n, b.highSize)
	if n <= 0 {
		return nil
	}
	if err := b.Reserve(n); err != nil {
		return err
	}
	capacity := b.Capacity()
	b.highOff -= n
	b.highSpill += n
	if err := b.store.WriteAt(b.highOff, b.mem[capacity-n:capacity]); err != nil {
		return err
	}
	b.highSize -= n
	copy(b.mem[capacity-b.highSize:], b.mem[capacity-b.highSize-n:capacity-n])
	b.log.Debug("dump high %d (high spill %d)", n, b.highSpill)
	return nil
}

// dumpLow spills the n low-region bytes farthest from the cursor to the end
// of the low spill extent.
func (b *Buffer) dumpLow(n int64) error {
	if err := b.Reserve(n); err != nil {
		return err
	}
	n = min(n, b.lowSize)
	if n <= 0 {
		return nil
	}
	if err := b.store.WriteAt(b.lowSpill, b.mem[:n]); err != nil {
		return err
	}
	copy(b.mem, b.mem[n:b.lowSize])
	b.lowSize -= n
	b.lowSpill += n
	b.log.Debug("dump low %d (low spill %d)", n, b.lowSpill)
	return nil
}

// flush spills both regions, leaving the window empty.
func (b *Buffer) flush() error {
	if err := b.Reserve(b.lowSize + b.highSize); err != nil {
		return err
	}
	if err := b.dumpLow(b.lowSize); err != nil {
		return err
	}
	return b.dumpHigh(b.highSize)
}

// loadHigh pulls up to n bytes from the front of the high spill extent into
// the high region. The vacated store bytes are zeroed.
func (b *Buffer) loadHigh(n int64) error {
	n = min(n, b.room(), b.highSpill)
	if n <= 0 {
		return nil
	}
	capacity := b.Capacity()
	start := capacity - b.highSize
	copy(b.mem[start-n:capacity-n], b.mem[start:capacity])
	if err := b.store.ReadAt(b.highOff, b.mem[capacity-n:capacity]); err != nil {
		return err
	}
	if err := b.store.ZeroFill(b.highOff, n); err != nil {
		return err
	}
	b.highSize += n
	b.highOff += n
	b.highSpill -= n
	return nil
}

// loadLow pulls up to n bytes from the end of the low spill extent into the
// low region. The vacated store bytes are zeroed.
func (b *Buffer) loadLow(n int64) error {
	n = min(n, b.room(), b.lowSpill)
	if n <= 0 {
		return nil
	}
	copy(b.mem[n:n+b.lowSize], b.mem[:b.lowSize])
	if err := b.store.ReadAt(b.lowSpill-n, b.mem[:n]); err != nil {
		return err
	}
	if err := b.store.ZeroFill(b.lowSpill-n, n); err != nil {
		return err
	}
	b.lowSpill -= n
	b.lowSize += n
	return nil
}

// storeMove moves the cursor by delta with an empty window, copying bytes
// between the spill extents through the window in capacity-sized chunks.
func (b *Buffer) storeMove(delta int64) error {
	capacity := b.Capacity()
	for delta > 0 {
		n := min(delta, capacity)
		if err := b.store.ReadAt(b.highOff, b.mem[:n]); err != nil {
			return err
		}
		b.highOff += n
		b.highSpill -= n
		if err := b.store.WriteAt(b.lowSpill, b.mem[:n]); err != nil {
			return err
		}
		b.lowSpill += n
		delta -= n
	}
	for delta < 0 {
		n := min(-delta, capacity)
		if err := b.store.ReadAt(b.lowSpill-n, b.mem[:n]); err != nil {
			return err
		}
		b.lowSpill -= n
		if err := b.store.WriteAt(b.highOff-n, b.mem[:n]); err != nil {
			return err
		}
		b.highOff -= n
		b.highSpill += n
		delta += n
	}
	return nil
}

// Reset empties the buffer. The store keeps its contents but they are no
// longer part of the document.
func (b *Buffer) Reset() {
	b.lowSize, b.highSize = 0, 0
	b.lowSpill, b.highOff, b.highSpill = 0, 0, 0
	b.store.Invalidate()
}

// Close releases the spill store.
func (b *Buffer) Close() error {
	b.Reset()
	return b.store.Close()
}

// Stats is a snapshot of the buffer layout.
type Stats struct {
	Capacity     int64
	LowSize      int64
	HighSize     int64
	LowSpill     int64
	HighSpillOff int64
	HighSpill    int64
	Len          int64
	Pos          int64
}

// Stats returns the current layout.
func (b *Buffer) Stats() Stats {
	return Stats{
		Capacity:     b.Capacity(),
		LowSize:      b.lowSize,
		HighSize:     b.highSize,
		LowSpill:     b.lowSpill,
		HighSpillOff: b.highOff,
		HighSpill:    b.highSpill,
		Len:          b.Len(),
		Pos:          b.Pos(),
	}
}

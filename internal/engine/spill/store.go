// Package spill implements the on-disk backing store used by the edit
// buffer for text that does not fit in memory.
//
// A Store is a growable, byte-addressable array layered over a seekable
// Stream. Single-byte reads go through a 512-byte read cache aligned to a
// multiple of its size; every write to the store drops the cache.
package spill

import (
	"errors"
	"io"
)

// CacheSize is the size and alignment of the read cache window.
const CacheSize = 512

// chunkSize is the transfer unit for zero extension and copies.
const chunkSize = 512

// fillSize is the transfer unit for zero filling vacated ranges.
const fillSize = 256

var zeros [chunkSize]byte

type cacheWindow struct {
	start  int64
	length int
	data   [CacheSize]byte
}

// Store is a byte-addressable view of a Stream.
// Store is not safe for concurrent use.
type Store struct {
	s      Stream
	cache  cacheWindow
	hits   uint64
	misses uint64
	closed bool
}

// New wraps a Stream in a Store.
func New(s Stream) *Store {
	return &Store{s: s}
}

// Stream returns the underlying stream.
func (st *Store) Stream() Stream {
	return st.s
}

func (st *Store) seek(off int64) error {
	if st.closed {
		return ErrClosed
	}
	n, err := st.s.Seek(off, io.SeekStart)
	if err != nil {
		return &IOError{Op: "seek", Offset: off, Err: err}
	}
	if n != off {
		return &IOError{Op: "seek", Offset: off, Err: io.ErrUnexpectedEOF}
	}
	return nil
}

// ReadAt fills p from the store starting at off. A short read is an error.
func (st *Store) ReadAt(off int64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := st.seek(off); err != nil {
		return err
	}
	if _, err := io.ReadFull(st.s, p); err != nil {
		return &IOError{Op: "read", Offset: off, Err: err}
	}
	return nil
}

// WriteAt writes p to the store starting at off, extending it if needed.
// The read cache is invalidated.
func (st *Store) WriteAt(off int64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	st.Invalidate()
	if err := st.seek(off); err != nil {
		return err
	}
	n, err := st.s.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &IOError{Op: "write", Offset: off, Err: err}
	}
	return nil
}

// ByteAt returns the byte at off, reading through the cache.
func (st *Store) ByteAt(off int64) (byte, error) {
	c := &st.cache
	if c.length > 0 && off >= c.start && off < c.start+int64(c.length) {
		st.hits++
		return c.data[off-c.start], nil
	}
	st.misses++

	start := off &^ (CacheSize - 1)
	if err := st.seek(start); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(st.s, c.data[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		c.length = 0
		return 0, &IOError{Op: "read", Offset: start, Err: err}
	}
	c.start = start
	c.length = n
	if off >= start+int64(n) {
		return 0, &IOError{Op: "read", Offset: off, Err: io.ErrUnexpectedEOF}
	}
	return c.data[off-start], nil
}

// Invalidate drops the read cache.
func (st *Store) Invalidate() {
	st.cache.start = 0
	st.cache.length = 0
}

// CacheStats reports cache hits and misses since the store was created.
func (st *Store) CacheStats() (hits, misses uint64) {
	return st.hits, st.misses
}

// Size returns the current length of the store.
func (st *Store) Size() (int64, error) {
	if st.closed {
		return 0, ErrClosed
	}
	n, err := st.s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, &IOError{Op: "seek", Offset: -1, Err: err}
	}
	return n, nil
}

// EnsureSize zero-extends the store until it is at least n bytes long.
func (st *Store) EnsureSize(n int64) error {
	for {
		end, err := st.Size()
		if err != nil {
			return err
		}
		if end >= n {
			return nil
		}
		if err := st.WriteAt(end, zeros[:min(n-end, chunkSize)]); err != nil {
			return err
		}
	}
}

// ZeroFill overwrites n bytes at off with zeros.
func (st *Store) ZeroFill(off, n int64) error {
	for n > 0 {
		k := min(n, fillSize)
		if err := st.WriteAt(off, zeros[:k]); err != nil {
			return err
		}
		off += k
		n -= k
	}
	return nil
}

// Copy moves n bytes from src to dst inside the store. Overlapping ranges
// are handled in either direction.
func (st *Store) Copy(dst, src, n int64) error {
	if n <= 0 || dst == src {
		return nil
	}
	var buf [chunkSize]byte
	if dst > src {
		// Walk backwards so the tail of the source is read before it is overwritten.
		for n > 0 {
			k := min(n, chunkSize)
			n -= k
			if err := st.ReadAt(src+n, buf[:k]); err != nil {
				return err
			}
			if err := st.WriteAt(dst+n, buf[:k]); err != nil {
				return err
			}
		}
		return nil
	}
	for done := int64(0); done < n; {
		k := min(n-done, chunkSize)
		if err := st.ReadAt(src+done, buf[:k]); err != nil {
			return err
		}
		if err := st.WriteAt(dst+done, buf[:k]); err != nil {
			return err
		}
		done += k
	}
	return nil
}

// Close releases the stream. Further operations return ErrClosed.
func (st *Store) Close() error {
	if st.closed {
		return nil
	}
	st.closed = true
	st.Invalidate()
	if err := st.s.Close(); err != nil {
		return &IOError{Op: "close", Offset: -1, Err: err}
	}
	return nil
}

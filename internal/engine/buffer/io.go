package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Load replaces the document with the contents of r. The bytes are written
// to the spill store first, then the window is filled from the start of the
// document with the cursor at offset 0.
func (b *Buffer) Load(r io.Reader) error {
	b.Reset()
	if err := b.store.EnsureSize(b.highOff); err != nil {
		return err
	}
	chunk := make([]byte, 4096)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if werr := b.store.WriteAt(b.highOff+b.highSpill, chunk[:n]); werr != nil {
				return werr
			}
			b.highSpill += int64(n)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
	}
	b.store.Invalidate()
	if err := b.Move(-b.Pos()); err != nil {
		return err
	}
	return b.loadHigh(b.Capacity())
}

// WriteTo writes the whole document to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	return b.WriteRange(w, 0, b.Len())
}

// WriteRange writes the bytes in [start, end) to w.
func (b *Buffer) WriteRange(w io.Writer, start, end int64) (int64, error) {
	if start < 0 || end > b.Len() || start > end {
		return 0, fmt.Errorf("write range [%d, %d) (len %d): %w", start, end, b.Len(), ErrOffsetOutOfRange)
	}
	bw := bufio.NewWriter(w)
	for off := start; off < end; off++ {
		c, err := b.ByteAt(off)
		if err != nil {
			return off - start, err
		}
		if err := bw.WriteByte(c); err != nil {
			return off - start, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return end - start, nil
}

// Bytes returns a copy of the bytes in [start, end).
func (b *Buffer) Bytes(start, end int64) ([]byte, error) {
	if start < 0 || end > b.Len() || start > end {
		return nil, fmt.Errorf("bytes [%d, %d) (len %d): %w", start, end, b.Len(), ErrOffsetOutOfRange)
	}
	out := make([]byte, 0, end-start)
	for off := start; off < end; off++ {
		c, err := b.ByteAt(off)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

package spill

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
)

func fill(t *testing.T, st *Store, data []byte) {
	t.Helper()
	if err := st.WriteAt(0, data); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + i/251)
	}
	return b
}

func TestByteAtMatchesDirectRead(t *testing.T) {
	st := NewMemory()
	defer st.Close()

	data := pattern(3000)
	fill(t, st, data)

	// Random-ish access order crossing cache windows in both directions.
	offsets := []int64{0, 511, 512, 1023, 5, 2999, 1500, 1501, 1024, 0, 2047, 2048}
	for _, off := range offsets {
		got, err := st.ByteAt(off)
		if err != nil {
			t.Fatalf("ByteAt(%d): %v", off, err)
		}
		if got != data[off] {
			t.Errorf("ByteAt(%d) = %d, want %d", off, got, data[off])
		}
	}
}

func TestCacheHitsWithinWindow(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	fill(t, st, pattern(1024))

	for off := int64(512); off < 1024; off++ {
		if _, err := st.ByteAt(off); err != nil {
			t.Fatalf("ByteAt(%d): %v", off, err)
		}
	}
	hits, misses := st.CacheStats()
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
	if hits != 511 {
		t.Errorf("hits = %d, want 511", hits)
	}
}

func TestWriteInvalidatesCache(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	fill(t, st, pattern(600))

	if _, err := st.ByteAt(10); err != nil {
		t.Fatalf("ByteAt: %v", err)
	}
	if err := st.WriteAt(10, []byte{0xAA}); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	got, err := st.ByteAt(10)
	if err != nil {
		t.Fatalf("ByteAt: %v", err)
	}
	if got != 0xAA {
		t.Errorf("ByteAt after write = %#x, want 0xaa", got)
	}
}

func TestByteAtPastEnd(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	fill(t, st, []byte("abc"))

	_, err := st.ByteAt(3)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("ByteAt(3) error = %v, want *IOError", err)
	}
	if ioErr.Op != "read" {
		t.Errorf("Op = %q, want read", ioErr.Op)
	}
}

func TestReadAtShort(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	fill(t, st, []byte("abc"))

	p := make([]byte, 5)
	err := st.ReadAt(1, p)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadAt short = %v, want ErrUnexpectedEOF", err)
	}
}

func TestEnsureSize(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		ask     int64
		want    int64
	}{
		{"empty", 0, 0, 0},
		{"grow from empty", 0, 1300, 1300},
		{"grow", 100, 700, 700},
		{"already larger", 900, 100, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewMemory()
			defer st.Close()
			if tt.initial > 0 {
				fill(t, st, bytes.Repeat([]byte{'x'}, tt.initial))
			}
			if err := st.EnsureSize(tt.ask); err != nil {
				t.Fatalf("EnsureSize: %v", err)
			}
			size, err := st.Size()
			if err != nil {
				t.Fatalf("Size: %v", err)
			}
			if size != tt.want {
				t.Errorf("Size = %d, want %d", size, tt.want)
			}
			if tt.ask > int64(tt.initial) {
				b, err := st.ByteAt(tt.ask - 1)
				if err != nil || b != 0 {
					t.Errorf("last byte = %d, %v; want 0", b, err)
				}
			}
		})
	}
}

func TestCopyOverlap(t *testing.T) {
	tests := []struct {
		name     string
		dst, src int64
		n        int64
	}{
		{"forward overlap", 100, 0, 1200},
		{"backward overlap", 0, 100, 1200},
		{"disjoint", 2000, 0, 700},
		{"same", 10, 10, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewMemory()
			defer st.Close()
			data := pattern(3000)
			fill(t, st, data)

			want := append([]byte(nil), data...)
			copy(want[tt.dst:tt.dst+tt.n], data[tt.src:tt.src+tt.n])

			if err := st.Copy(tt.dst, tt.src, tt.n); err != nil {
				t.Fatalf("Copy: %v", err)
			}
			got := make([]byte, len(want))
			if err := st.ReadAt(0, got); err != nil {
				t.Fatalf("ReadAt: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("store contents differ after Copy(%d, %d, %d)", tt.dst, tt.src, tt.n)
			}
		})
	}
}

func TestZeroFill(t *testing.T) {
	st := NewMemory()
	defer st.Close()
	fill(t, st, bytes.Repeat([]byte{'x'}, 1000))

	if err := st.ZeroFill(100, 600); err != nil {
		t.Fatalf("ZeroFill: %v", err)
	}
	got := make([]byte, 1000)
	if err := st.ReadAt(0, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i, b := range got {
		zero := i >= 100 && i < 700
		if zero && b != 0 {
			t.Fatalf("byte %d = %q, want 0", i, b)
		}
		if !zero && b != 'x' {
			t.Fatalf("byte %d = %q, want 'x'", i, b)
		}
	}
}

func TestFileStoreRemovedOnClose(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	fill(t, st, []byte("spilled"))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("spill dir has %d entries, want 1", len(entries))
	}

	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("spill file left behind: %v", entries)
	}
	if _, err := st.ByteAt(0); !errors.Is(err, ErrClosed) {
		t.Errorf("ByteAt after Close = %v, want ErrClosed", err)
	}
}

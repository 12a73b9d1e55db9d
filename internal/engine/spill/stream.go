package spill

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Stream is the seekable byte stream a Store is layered over.
type Stream interface {
	io.ReadWriteSeeker
	io.Closer
}

// fileStream is a temporary file that removes itself on Close.
type fileStream struct {
	*os.File
	path string
}

// NewFile creates a Store backed by a fresh temporary file in dir.
// An empty dir selects os.TempDir. The file is removed when the Store is closed.
func NewFile(dir string) (*Store, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "aedit-"+uuid.NewString()+".spill")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, &IOError{Op: "create", Err: err}
	}
	return New(&fileStream{File: f, path: path}), nil
}

// Path returns the location of the spill file.
func (f *fileStream) Path() string {
	return f.path
}

func (f *fileStream) Close() error {
	cerr := f.File.Close()
	rerr := os.Remove(f.path)
	if cerr != nil {
		return cerr
	}
	if rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
		return rerr
	}
	return nil
}

// memStream is an in-memory Stream.
type memStream struct {
	data   []byte
	off    int64
	closed bool
}

// NewMemory creates a Store backed by memory instead of a file.
func NewMemory() *Store {
	return New(&memStream{})
}

var errClosed = errors.New("stream closed")

func (m *memStream) Read(p []byte) (int, error) {
	if m.closed {
		return 0, errClosed
	}
	if m.off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.off:])
	m.off += int64(n)
	return n, nil
}

func (m *memStream) Write(p []byte) (int, error) {
	if m.closed {
		return 0, errClosed
	}
	end := m.off + int64(len(p))
	if end > int64(len(m.data)) {
		if end > int64(cap(m.data)) {
			grown := make([]byte, end, 2*end)
			copy(grown, m.data)
			m.data = grown
		} else {
			m.data = m.data[:end]
		}
	}
	copy(m.data[m.off:end], p)
	m.off = end
	return len(p), nil
}

func (m *memStream) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, errClosed
	}
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = m.off
	case io.SeekEnd:
		base = int64(len(m.data))
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if base+offset < 0 {
		return 0, fmt.Errorf("seek: negative position %d", base+offset)
	}
	m.off = base + offset
	return m.off, nil
}

func (m *memStream) Close() error {
	m.closed = true
	m.data = nil
	return nil
}

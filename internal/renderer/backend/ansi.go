package backend

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Default screen size used when the device cannot be queried.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// ANSI is a CellWriter emitting VT100 escape sequences to a raw-mode
// terminal.
type ANSI struct {
	mu    sync.Mutex
	in    *os.File
	out   io.Writer
	outFd int
	w     *bufio.Writer
	state *term.State
	err   error

	// Forced geometry; zero means ask the device.
	cols, rows int
}

// ANSIOption configures an ANSI writer.
type ANSIOption func(*ANSI)

// WithSize forces the reported screen size. Zero values are ignored.
func WithSize(cols, rows int) ANSIOption {
	return func(a *ANSI) {
		a.cols = cols
		a.rows = rows
	}
}

// WithOutput sends escape sequences to w instead of the terminal. Size
// queries still go to the input device.
func WithOutput(w io.Writer) ANSIOption {
	return func(a *ANSI) {
		a.out = w
	}
}

// NewANSI returns a writer for the terminal on in and out.
func NewANSI(in, out *os.File, opts ...ANSIOption) *ANSI {
	a := &ANSI{
		in:    in,
		out:   io.Discard,
		outFd: -1,
	}
	if out != nil {
		a.out = out
		a.outFd = int(out.Fd())
	}
	for _, opt := range opts {
		opt(a)
	}
	a.w = bufio.NewWriterSize(a.out, 4096)
	return a
}

// Init switches the input device to raw mode.
func (a *ANSI) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.makeRaw()
}

func (a *ANSI) makeRaw() error {
	if a.in == nil || !term.IsTerminal(int(a.in.Fd())) {
		return nil
	}
	state, err := term.MakeRaw(int(a.in.Fd()))
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	a.state = state
	return nil
}

// restore leaves raw mode. The saved state is kept when the device
// refuses it so a later call can try again.
func (a *ANSI) restore() error {
	a.writeString("\x1b[0m\x1b[r")
	_, rows := a.size()
	fmt.Fprintf(a.w, "\x1b[%d;1H\r\n", rows)
	_ = a.w.Flush()
	if a.state == nil {
		return nil
	}
	if err := term.Restore(int(a.in.Fd()), a.state); err != nil {
		return fmt.Errorf("restore mode: %w", err)
	}
	a.state = nil
	return nil
}

// Shutdown resets video attributes and the scroll region, leaves the cursor
// on the last row and restores the terminal mode.
func (a *ANSI) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = a.restore()
}

// Suspend restores cooked mode until Resume.
func (a *ANSI) Suspend() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.restore()
}

// Resume re-enters raw mode.
func (a *ANSI) Resume() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.makeRaw()
}

// Size returns the forced size, the device size, or 80x24.
func (a *ANSI) Size() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.size()
}

func (a *ANSI) size() (int, int) {
	cols, rows := a.cols, a.rows
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	if a.outFd >= 0 {
		if w, h, err := term.GetSize(a.outFd); err == nil && w > 0 && h > 0 {
			if cols <= 0 {
				cols = w
			}
			if rows <= 0 {
				rows = h
			}
		}
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return cols, rows
}

func (a *ANSI) writeString(s string) {
	if a.err != nil {
		return
	}
	if _, err := a.w.WriteString(s); err != nil {
		a.err = err
	}
}

func (a *ANSI) WriteCell(b byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return
	}
	if err := a.w.WriteByte(b); err != nil {
		a.err = err
	}
}

func (a *ANSI) MoveCursorTo(row, col int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeString(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
}

func (a *ANSI) ClearToEndOfLine() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeString("\x1b[K")
}

func (a *ANSI) ClearScreen() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeString("\x1b[H\x1b[2J")
}

func (a *ANSI) SetReverseVideo(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if on {
		a.writeString("\x1b[7m")
	} else {
		a.writeString("\x1b[0m")
	}
}

// ScrollRegion sets the margins, scrolls with NEL at the bottom margin or
// RI at the top margin, and resets the margins to the full screen.
func (a *ANSI) ScrollRegion(top, bottom int, dir Direction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeString(fmt.Sprintf("\x1b[%d;%dr", top+1, bottom+1))
	if dir == ScrollUp {
		a.writeString(fmt.Sprintf("\x1b[%d;1H\x1bE", bottom+1))
	} else {
		a.writeString(fmt.Sprintf("\x1b[%d;1H\x1bM", top+1))
	}
	a.writeString("\x1b[r")
}

func (a *ANSI) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err == nil {
		a.err = a.w.Flush()
	}
	err := a.err
	a.err = nil
	return err
}

// Package backend provides the character-cell writers the renderer paints
// through.
//
// A CellWriter is a cursor-addressed terminal: bytes are written at the
// cursor, which then advances one column. Implementations:
//
//   - ANSI writes escape sequences to a raw-mode terminal (golang.org/x/term).
//   - Tcell drives a tcell screen and doubles as a key.Source.
//   - Grid records cells in memory for tests.
package backend

// Direction selects which way a scroll region moves.
type Direction int

const (
	// ScrollUp moves the region contents up one row, blanking the bottom row.
	ScrollUp Direction = iota
	// ScrollDown moves the region contents down one row, blanking the top row.
	ScrollDown
)

// CellWriter is the output surface the renderer paints through.
type CellWriter interface {
	// Size returns the screen width and height in cells.
	Size() (cols, rows int)

	// WriteCell writes b at the cursor and advances the cursor one column.
	WriteCell(b byte)

	// MoveCursorTo positions the cursor. Rows and columns start at 0.
	MoveCursorTo(row, col int)

	// ClearToEndOfLine blanks from the cursor to the end of its row.
	ClearToEndOfLine()

	// ClearScreen blanks the screen and homes the cursor.
	ClearScreen()

	// SetReverseVideo switches reverse video for following cells.
	SetReverseVideo(on bool)

	// ScrollRegion scrolls rows top..bottom (inclusive) by one row.
	// The cursor position is undefined afterwards.
	ScrollRegion(top, bottom int, dir Direction)

	// Flush pushes buffered output to the device and reports the first
	// error seen since the previous Flush.
	Flush() error
}

// Terminal is a CellWriter attached to a real device.
type Terminal interface {
	CellWriter

	// Init prepares the device for use. Must be called before painting.
	Init() error

	// Shutdown restores the device to the state Init found it in.
	Shutdown()

	// Suspend hands the device back temporarily (shell escape).
	Suspend() error

	// Resume takes the device back after Suspend.
	Resume() error
}

package renderer

import (
	"github.com/dshills/aedit/internal/engine/position"
	"github.com/dshills/aedit/internal/renderer/backend"
)

// MaxRows is the largest number of screen rows used.
const MaxRows = 256

// Smallest usable screen.
const (
	minRows = 4
	minCols = 20
)

// repageLines is how many display lines are kept above the cursor when the
// page is redrawn around it.
const repageLines = 5

// Document is the read-only view of the buffer being displayed.
type Document interface {
	Len() int64
	Pos() int64
	ByteAt(off int64) (byte, error)
}

// Logger receives debug traces of viewport changes.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Screen tracks what is on the terminal and repaints it from the document.
// Errors from the document or the writer are sticky: the first one is kept,
// reported by Err, and painting stops until the Screen is discarded.
type Screen struct {
	w   backend.CellWriter
	doc Document
	m   *position.Mapper
	log Logger

	rows, cols int
	extent     []int

	// Terminal cursor. ttyCol == cols means the last column was just
	// written and the device cursor position is uncertain.
	ttyRow, ttyCol int
	reverse        bool

	// Painting position.
	row, col int

	crsrRow, crsrCol int
	pageStart        int64

	selOn     bool
	selAnchor int64

	status        statusState
	reverseMenu   bool
	scrollRegions bool

	err error
}

// Option configures a Screen.
type Option func(*Screen)

// WithReverseMenu shows the command menus in reverse video.
func WithReverseMenu(on bool) Option {
	return func(s *Screen) { s.reverseMenu = on }
}

// WithScrollRegions allows scrolling the text rows by one line instead of
// repainting the page when the cursor leaves the screen by one line.
func WithScrollRegions(on bool) Option {
	return func(s *Screen) { s.scrollRegions = on }
}

// WithLogger sets the debug logger.
func WithLogger(l Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Screen painting doc through w. The mapper's column count
// follows the screen size.
func New(w backend.CellWriter, doc Document, m *position.Mapper, opts ...Option) *Screen {
	s := &Screen{
		w:             w,
		doc:           doc,
		m:             m,
		log:           nopLogger{},
		reverseMenu:   true,
		scrollRegions: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	cols, rows := w.Size()
	s.Resize(cols, rows)
	return s
}

// SetReverseMenu changes whether menus are shown in reverse video.
func (s *Screen) SetReverseMenu(on bool) { s.reverseMenu = on }

// Resize adopts a new screen size. Rows are limited to MaxRows.
func (s *Screen) Resize(cols, rows int) {
	rows = min(max(rows, minRows), MaxRows)
	cols = max(cols, minCols)
	s.rows, s.cols = rows, cols
	s.m.SetColumns(cols)
	s.extent = make([]int, rows)
	for i := range s.extent {
		s.extent[i] = cols
	}
	s.ttyRow, s.ttyCol = -1, -1
	if s.crsrRow > s.lastText() {
		s.crsrRow, s.crsrCol = 0, 0
	}
}

// Refit adopts the writer's current size and reports whether it changed.
func (s *Screen) Refit() bool {
	oldCols, oldRows := s.cols, s.rows
	cols, rows := s.w.Size()
	s.Resize(cols, rows)
	return s.cols != oldCols || s.rows != oldRows
}

// Size returns the screen size in use.
func (s *Screen) Size() (cols, rows int) { return s.cols, s.rows }

// Mapper returns the position mapper.
func (s *Screen) Mapper() *position.Mapper { return s.m }

func (s *Screen) lastText() int  { return s.rows - 3 }
func (s *Screen) statusRow() int { return s.rows - 2 }
func (s *Screen) menuRow() int   { return s.rows - 1 }
func (s *Screen) lastCol() int   { return s.cols - 1 }

// TextRows returns the number of rows available for document text.
func (s *Screen) TextRows() int { return s.rows - 2 }

// Reset forgets the viewport for a newly loaded document.
func (s *Screen) Reset() {
	s.pageStart = 0
	s.crsrRow, s.crsrCol = 0, 0
	s.selOn = false
	s.selAnchor = 0
	for i := range s.extent {
		s.extent[i] = s.cols
	}
}

// Err returns the first error seen while painting.
func (s *Screen) Err() error { return s.err }

func (s *Screen) fail(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *Screen) byteAt(off int64) byte {
	c, err := s.doc.ByteAt(off)
	if err != nil {
		s.fail(err)
		return 0
	}
	return c
}

// PageStart returns the offset shown at the top left of the screen.
func (s *Screen) PageStart() int64 { return s.pageStart }

// Cursor returns the screen position of the document cursor as of the
// last FindCursor or RenderTop.
func (s *Screen) Cursor() (row, col int) { return s.crsrRow, s.crsrCol }

// SetSelection turns the selection on or off. The selection spans the
// anchor and the document cursor.
func (s *Screen) SetSelection(anchor int64, on bool) {
	s.selAnchor = anchor
	s.selOn = on
}

// Selection returns the anchor and whether the selection is shown.
func (s *Screen) Selection() (anchor int64, on bool) { return s.selAnchor, s.selOn }

// Flush sends buffered output to the terminal.
func (s *Screen) Flush() error {
	s.fail(s.w.Flush())
	return s.err
}

// put writes one byte at the terminal cursor. Bytes outside printable
// ASCII are shown as '?'.
func (s *Screen) put(c byte) {
	if c < 0x20 || c > 0x7e {
		c = '?'
	}
	s.w.WriteCell(c)
	s.ttyCol++
	if s.ttyRow >= 0 && s.ttyRow < s.rows && (c != ' ' || s.reverse) && s.ttyCol > s.extent[s.ttyRow] {
		s.extent[s.ttyRow] = s.ttyCol
	}
	if s.ttyCol > s.lastCol() {
		s.ttyCol = s.cols
	}
}

// putString writes str without touching the last column.
func (s *Screen) putString(str string) {
	for i := 0; i < len(str) && s.ttyCol < s.lastCol(); i++ {
		s.put(str[i])
	}
}

func (s *Screen) plot(row, col int) {
	if s.ttyRow == row && s.ttyCol == col {
		return
	}
	s.w.MoveCursorTo(row, col)
	s.ttyRow, s.ttyCol = row, col
}

func (s *Screen) setReverse(on bool) {
	if s.reverse == on {
		return
	}
	s.w.SetReverseVideo(on)
	s.reverse = on
}

// ClearLine erases from the terminal cursor to the end of its row, if the
// row may hold anything there.
func (s *Screen) ClearLine() {
	if s.ttyRow < 0 || s.ttyRow >= s.rows || s.ttyCol < 0 {
		return
	}
	rev := s.reverse
	s.setReverse(false)
	i := max(s.extent[s.ttyRow], s.ttyCol)
	j := s.ttyCol
	if s.ttyRow >= s.menuRow() {
		i = min(i, s.lastCol())
		j = min(j, s.lastCol())
	}
	if i > j {
		s.w.ClearToEndOfLine()
	}
	s.extent[s.ttyRow] = j
	s.setReverse(rev)
}

// Cls clears the whole terminal.
func (s *Screen) Cls() {
	s.setReverse(false)
	s.w.ClearScreen()
	s.ttyRow, s.ttyCol = 0, 0
	for i := range s.extent {
		s.extent[i] = 0
	}
	s.status.menuErased = true
}

// PlotCursor moves the terminal cursor to the document cursor.
func (s *Screen) PlotCursor() {
	s.plot(s.crsrRow, s.crsrCol)
}

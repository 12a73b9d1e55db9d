// Package position maps document offsets to display rows and columns.
//
// Every computation goes through NextColumn, the single rule for how a byte
// advances the display column. A display line ends when NextColumn returns
// to column 0, either at a newline or when a line wraps at the last column.
package position

import "fmt"

// Source is the read-only view of a document the mapper scans.
type Source interface {
	Len() int64
	ByteAt(off int64) (byte, error)
}

// Default layout values.
const (
	DefaultTabWidth = 4
	DefaultColumns  = 80
)

// Mapper computes line boundaries and columns over a Source.
type Mapper struct {
	src      Source
	tabWidth int
	cols     int
	wrap     bool
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithTabWidth sets the tab stop interval.
func WithTabWidth(width int) Option {
	return func(m *Mapper) {
		if width > 0 {
			m.tabWidth = width
		}
	}
}

// WithColumns sets the screen width.
func WithColumns(cols int) Option {
	return func(m *Mapper) {
		if cols > 1 {
			m.cols = cols
		}
	}
}

// WithWrap enables or disables wrapping at the last column.
func WithWrap(wrap bool) Option {
	return func(m *Mapper) {
		m.wrap = wrap
	}
}

// New creates a Mapper over src.
func New(src Source, opts ...Option) *Mapper {
	m := &Mapper{
		src:      src,
		tabWidth: DefaultTabWidth,
		cols:     DefaultColumns,
		wrap:     true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TabWidth returns the tab stop interval.
func (m *Mapper) TabWidth() int { return m.tabWidth }

// Columns returns the screen width.
func (m *Mapper) Columns() int { return m.cols }

// LastColumn returns the index of the last screen column.
func (m *Mapper) LastColumn() int { return m.cols - 1 }

// Wrap reports whether long lines wrap.
func (m *Mapper) Wrap() bool { return m.wrap }

// SetTabWidth changes the tab stop interval. Non-positive widths are ignored.
func (m *Mapper) SetTabWidth(width int) {
	if width > 0 {
		m.tabWidth = width
	}
}

// SetColumns changes the screen width.
func (m *Mapper) SetColumns(cols int) {
	if cols > 1 {
		m.cols = cols
	}
}

// SetWrap enables or disables wrapping.
func (m *Mapper) SetWrap(wrap bool) { m.wrap = wrap }

// NextTabStop returns the first tab stop after col.
func (m *Mapper) NextTabStop(col int) int {
	return (col/m.tabWidth + 1) * m.tabWidth
}

// NextColumn returns the column following a byte c displayed at col.
// A newline returns 0. A byte that reaches past the last column returns 0
// when wrapping and stays on the last column otherwise.
func (m *Mapper) NextColumn(col int, c byte) int {
	last := m.cols - 1
	switch c {
	case '\n':
		return 0
	case '\t':
		next := m.NextTabStop(col)
		if next <= last {
			return next
		}
	default:
		if col < last {
			return col + 1
		}
	}
	if m.wrap {
		return 0
	}
	return last
}

func (m *Mapper) at(off int64) (byte, error) {
	c, err := m.src.ByteAt(off)
	if err != nil {
		return 0, fmt.Errorf("position: %w", err)
	}
	return c, nil
}

// PhysicalLineStart returns the offset just after the newline preceding off,
// or 0.
func (m *Mapper) PhysicalLineStart(off int64) (int64, error) {
	for off > 0 {
		c, err := m.at(off - 1)
		if err != nil {
			return 0, err
		}
		if c == '\n' {
			return off, nil
		}
		off--
	}
	return 0, nil
}

// PreviousPhysicalLineStart returns the start of the physical line before
// the one containing off, or 0 on the first line.
func (m *Mapper) PreviousPhysicalLineStart(off int64) (int64, error) {
	p, err := m.PhysicalLineStart(off)
	if err != nil || p == 0 {
		return p, err
	}
	return m.PhysicalLineStart(p - 1)
}

// NextDisplayLineStart returns the offset after the display line starting
// at off. It is Len() on the last line.
func (m *Mapper) NextDisplayLineStart(off int64) (int64, error) {
	n := m.src.Len()
	col := 0
	for off < n {
		c, err := m.at(off)
		if err != nil {
			return 0, err
		}
		off++
		col = m.NextColumn(col, c)
		if col == 0 {
			break
		}
	}
	return off, nil
}

// PreviousDisplayLineStart returns the start of the last display line that
// begins before off.
func (m *Mapper) PreviousDisplayLineStart(off int64) (int64, error) {
	l, err := m.PreviousPhysicalLineStart(off)
	if err != nil {
		return 0, err
	}
	for l < off {
		next, err := m.NextDisplayLineStart(l)
		if err != nil {
			return 0, err
		}
		if next >= off {
			break
		}
		l = next
	}
	return l, nil
}

// DisplayLineContaining returns the start of the display line holding off.
func (m *Mapper) DisplayLineContaining(off int64) (int64, error) {
	q, err := m.PhysicalLineStart(off)
	if err != nil {
		return 0, err
	}
	start := q
	col := 0
	for q < off {
		c, err := m.at(q)
		if err != nil {
			return 0, err
		}
		q++
		col = m.NextColumn(col, c)
		if col == 0 {
			start = q
		}
	}
	return start, nil
}

// ColumnAt returns the display column of off.
func (m *Mapper) ColumnAt(off int64) (int, error) {
	q, err := m.DisplayLineContaining(off)
	if err != nil {
		return 0, err
	}
	col := 0
	for ; q < off; q++ {
		c, err := m.at(q)
		if err != nil {
			return 0, err
		}
		col = m.NextColumn(col, c)
	}
	return col, nil
}

// LineLength returns the number of bytes from off up to the next newline
// or the end of the document.
func (m *Mapper) LineLength(off int64) (int64, error) {
	end, err := m.LineEnd(off)
	return end - off, err
}

// LineEnd returns the offset of the next newline at or after off, or Len().
func (m *Mapper) LineEnd(off int64) (int64, error) {
	n := m.src.Len()
	for ; off < n; off++ {
		c, err := m.at(off)
		if err != nil {
			return off, err
		}
		if c == '\n' {
			break
		}
	}
	return off, nil
}

// ScanRows walks n bytes from a display line start and returns the row and
// column reached. It stops early at the end of the document or once the row
// reaches maxRow.
func (m *Mapper) ScanRows(from, n int64, maxRow int) (row, col int, err error) {
	end := min(from+n, m.src.Len())
	for p := from; p < end; p++ {
		c, err := m.at(p)
		if err != nil {
			return row, col, err
		}
		col = m.NextColumn(col, c)
		if col == 0 {
			row++
			if row >= maxRow {
				break
			}
		}
	}
	return row, col, nil
}

// OffsetOfLine returns the start of physical line n, counting from 1.
// Lines past the end resolve to Len().
func (m *Mapper) OffsetOfLine(n int64) (int64, error) {
	remaining := n - 1
	size := m.src.Len()
	var p int64
	for remaining > 0 && p < size {
		c, err := m.at(p)
		if err != nil {
			return 0, err
		}
		if c == '\n' {
			remaining--
		}
		p++
	}
	return p, nil
}

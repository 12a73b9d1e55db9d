package editor

import (
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
)

// cursorKey handles the keys shared by every editing mode: cursor
// movement, paging, delete and redraw. It reports false for other keys.
func (s *Session) cursorKey(ev key.Event) bool {
	switch {
	case ev.Is(key.Control('W')):
		s.redraw()
	case ev.IsKey(key.Resize):
		s.resize(ev)
	case ev.IsKey(key.PageUp):
		if s.pos() > 0 {
			s.flipUp()
		}
	case ev.IsKey(key.PageDown):
		s.flipDown()
	case ev.Is(0x08), ev.Is(0x7f), ev.IsKey(key.Delete):
		s.deleteChar()
	case ev.IsKey(key.Left):
		s.moveLeft()
	case ev.IsKey(key.Right):
		s.moveRight()
	case ev.IsKey(key.Up):
		s.moveUp()
	case ev.IsKey(key.Down):
		s.moveDown()
	case ev.IsKey(key.Start):
		s.moveHome()
	case ev.IsKey(key.End):
		s.moveEnd()
	default:
		return false
	}
	s.scr.FindCursor()
	s.scr.PlotCursor()
	s.flush()
	return true
}

func (s *Session) resize(ev key.Event) {
	if ev.Cols > 0 && ev.Rows > 0 {
		s.scr.Resize(ev.Cols, ev.Rows)
	} else {
		s.scr.Refit()
	}
	cols, rows := s.scr.Size()
	s.log.Debug("resize to %dx%d", cols, rows)
	s.redraw()
}

// redraw clears the terminal and repaints everything around the cursor.
func (s *Session) redraw() {
	s.buf().Store().Invalidate()
	s.scr.Cls()
	s.scr.Repage()
}

// afterMove repaints the span the cursor just crossed while a block is
// selected. delta is how far the cursor moved.
func (s *Session) afterMove(delta int64) {
	if _, on := s.scr.Selection(); on && delta != 0 {
		s.scr.PaintText(-delta)
	}
}

func (s *Session) moveLeft() {
	if s.pos() > 0 {
		s.move(-1)
		s.afterMove(-1)
	}
}

func (s *Session) moveRight() {
	if s.pos() != s.size() {
		s.move(1)
		s.afterMove(1)
	}
}

// moveUp moves to the previous display line, as close to the current
// column as its bytes allow.
func (s *Session) moveUp() {
	m := s.eng.Mapper()
	p := s.pos()
	start, err := m.DisplayLineContaining(p)
	if err != nil {
		s.fail(err)
		return
	}
	i, err := m.PreviousDisplayLineStart(start)
	if err != nil {
		s.fail(err)
		return
	}
	col, err := m.ColumnAt(p)
	if err != nil {
		s.fail(err)
		return
	}

	c2 := 0
	for i < p && s.err == nil {
		c2 = m.NextColumn(c2, s.at(i))
		if c2 == 0 || c2 > col {
			break
		}
		i++
	}
	delta := i - p
	s.move(delta)
	s.afterMove(delta)
}

// moveDown moves to the next display line, as close to the cursor column
// as its bytes allow.
func (s *Session) moveDown() {
	m := s.eng.Mapper()
	crsrRow, crsrCol := s.scr.Cursor()
	row, col := crsrRow, crsrCol
	target := crsrRow + 1

	var j int64
	n := s.size()
	for p := s.pos(); p < n && s.err == nil; p++ {
		col = m.NextColumn(col, s.at(p))
		if col == 0 {
			row++
		}
		if row > target {
			break
		}
		j++
		if row == target && col >= crsrCol {
			break
		}
	}
	s.move(j)
	s.afterMove(j)
}

// moveHome moves to the start of the display line.
func (s *Session) moveHome() {
	start, err := s.eng.Mapper().DisplayLineContaining(s.pos())
	if err != nil {
		s.fail(err)
		return
	}
	delta := start - s.pos()
	s.move(delta)
	s.afterMove(delta)
}

// moveEnd moves to the end of the physical line.
func (s *Session) moveEnd() {
	n, err := s.eng.Mapper().LineLength(s.pos())
	if err != nil {
		s.fail(err)
		return
	}
	s.move(n)
	s.afterMove(n)
}

// pageLines is how many display lines a page flip covers.
func (s *Session) pageLines() int {
	_, rows := s.scr.Size()
	return rows - 5
}

func (s *Session) flipUp() {
	m := s.eng.Mapper()
	l, err := m.DisplayLineContaining(s.pos())
	if err != nil {
		s.fail(err)
		return
	}
	for k := s.pageLines(); k > 0 && l > 0; k-- {
		if l, err = m.PreviousDisplayLineStart(l); err != nil {
			s.fail(err)
			return
		}
	}
	delta := l - s.pos()
	s.move(delta)
	s.afterMove(delta)
}

func (s *Session) flipDown() {
	m := s.eng.Mapper()
	p, err := m.DisplayLineContaining(s.pos())
	if err != nil {
		s.fail(err)
		return
	}
	lines := s.pageLines()
	col := 0
	for n := s.size(); p < n && lines >= 0 && s.err == nil; {
		col = m.NextColumn(col, s.at(p))
		p++
		if col == 0 {
			lines--
		}
	}
	delta := p - s.pos()
	s.move(delta)
	s.afterMove(delta)
}

// deleteChar deletes the byte before the cursor and repaints the line, or
// everything below when the line wrapped or joined another.
func (s *Session) deleteChar() {
	pos := s.pos()
	if pos == 0 {
		return
	}
	m := s.eng.Mapper()
	_, col := s.scr.Cursor()
	rewrap := col == 0
	if !rewrap {
		p := pos - 1
		n, err := m.LineLength(p)
		if err != nil {
			s.fail(err)
			return
		}
		for ; n > 0 && s.err == nil; n-- {
			col = m.NextColumn(col, s.at(p))
			p++
			if col == 0 {
				rewrap = true
				break
			}
		}
	}

	s.fail(s.buf().DeleteBackward(1))
	s.scr.FindCursor()
	s.scr.PlotCursor()
	if rewrap {
		s.scr.RenderBottom(renderer.EraseAfter)
	} else {
		s.scr.ShowLine()
		s.scr.PlotCursor()
	}
}

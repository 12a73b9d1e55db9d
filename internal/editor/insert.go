package editor

import (
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
)

// endsInsert reports whether ev leaves insert or exchange mode.
func endsInsert(ev key.Event) bool {
	return ev.IsKey(key.Escape) || ev.IsKey(key.Insert) || ev.IsKey(key.Find) ||
		ev.IsKey(key.Select) || ev.Is(key.Control('Z'))
}

// insertText runs insert mode, or exchange mode which overwrites the byte
// under the cursor unless it is a newline.
func (s *Session) insertText(mode renderer.Mode) {
	s.scr.SetMode(mode)
	s.redrawStatus()
	s.flush()

	for {
		ev := s.next()
		if endsInsert(ev) {
			break
		}
		if s.cursorKey(ev) || !ev.IsByte() {
			continue
		}
		c := ev.Byte
		if c == '\r' {
			c = '\n'
		}
		s.typeByte(mode, c)
		s.flush()
	}

	s.scr.SetMode(renderer.ModeMain)
	s.redrawStatus()
}

// typeByte enters c at the cursor and repaints what it affects: the rest
// of the line, or everything below when the line wraps or splits.
func (s *Session) typeByte(mode renderer.Mode, c byte) {
	buf := s.buf()
	m := s.eng.Mapper()
	p := s.pos()
	if mode == renderer.ModeExchange && p != s.size() && s.at(p) != '\n' {
		s.fail(buf.DeleteForward(1))
	}
	s.fail(buf.Insert(c))
	s.move(-1)
	if s.err != nil {
		return
	}

	rewrap := c == '\n'
	_, col := s.scr.Cursor()
	for n := s.size(); !rewrap && p < n && s.err == nil; p++ {
		b := s.at(p)
		if b == '\n' {
			break
		}
		col = m.NextColumn(col, b)
		if col == 0 {
			rewrap = true
		}
	}

	s.scr.PlotCursor()
	if rewrap {
		s.scr.RenderBottom(renderer.EraseKeepCursor)
	} else {
		n, err := m.LineLength(s.pos())
		if err != nil {
			s.fail(err)
			return
		}
		row, _ := s.scr.Cursor()
		s.scr.PaintFromCursor(n, row+1)
		s.scr.ClearLine()
	}
	s.move(1)
	s.scr.FindCursor()
	s.scr.PlotCursor()
}

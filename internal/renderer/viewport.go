package renderer

import "github.com/dshills/aedit/internal/renderer/backend"

// Visibility describes where the cursor is relative to the text rows.
type Visibility int

const (
	OnScreen Visibility = iota
	Above
	Below
)

// String returns the visibility name.
func (v Visibility) String() string {
	switch v {
	case OnScreen:
		return "on-screen"
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// Repage redraws the text rows with the cursor a few display lines below
// the top.
func (s *Screen) Repage() {
	back := min(repageLines, s.lastText())
	s.pageStart = s.doc.Pos()
	for i := 0; i < back && s.pageStart > 0; i++ {
		p, err := s.m.PreviousDisplayLineStart(s.pageStart)
		if err != nil {
			s.fail(err)
			return
		}
		s.pageStart = p
	}
	s.log.Debug("repage at %d (pos %d)", s.pageStart, s.doc.Pos())
	s.RenderTop()
	s.RenderBottom(EraseKeepCursor)
	if s.status.menuErased {
		s.ShowStatus()
	}
	s.PlotCursor()
}

// locate reports where the cursor is displayed relative to the page start.
func (s *Screen) locate() (Visibility, int, int) {
	pos := s.doc.Pos()
	if pos < s.pageStart {
		return Above, 0, 0
	}
	row, col, err := s.m.ScanRows(s.pageStart, pos-s.pageStart, s.statusRow()+1)
	s.fail(err)
	if row < s.statusRow() {
		return OnScreen, row, col
	}
	return Below, row, col
}

// FindCursor brings the cursor on screen and records its position. A cursor
// one display line above or below the text rows scrolls them by one line;
// anything further away redraws the page.
func (s *Screen) FindCursor() Visibility {
	vis, _, _ := s.locate()
	if vis == Above {
		s.scrollToPrevious()
	}
	for attempt := 0; attempt < 2 && s.err == nil; attempt++ {
		v, row, col := s.locate()
		switch {
		case v == OnScreen:
			s.crsrRow, s.crsrCol = row, col
			return vis
		case v == Below && row == s.statusRow() && s.scrollRegions:
			s.scrollNext(col)
			return vis
		}
		s.Repage()
	}
	return vis
}

// scrollToPrevious handles a cursor above the page start: if it is on the
// display line just before the page, scroll down one line and paint it,
// otherwise repage.
func (s *Screen) scrollToPrevious() {
	pos := s.doc.Pos()
	if !s.scrollRegions || s.pageStart > s.doc.Len() {
		s.Repage()
		return
	}
	prev, err := s.m.PreviousDisplayLineStart(s.pageStart)
	if err != nil {
		s.fail(err)
		return
	}
	if prev > pos {
		s.Repage()
		return
	}
	s.scrollDown()
	s.row, s.col = 0, 0
	s.plot(0, 0)
	n := s.pageStart - prev
	s.pageStart = prev
	s.ShowText(prev, n, 1)
}

// scrollNext scrolls the text rows up by one line for a cursor sitting on
// the row just below them.
func (s *Screen) scrollNext(col int) {
	s.scrollUp()
	s.crsrRow, s.crsrCol = s.lastText(), col
	next, err := s.m.NextDisplayLineStart(s.pageStart)
	if err != nil {
		s.fail(err)
		return
	}
	s.pageStart = next
	start, err := s.m.DisplayLineContaining(s.doc.Pos())
	if err != nil {
		s.fail(err)
		return
	}
	s.PaintText(start - s.doc.Pos())
	s.RenderBottom(EraseNone)
}

func (s *Screen) scrollUp() {
	last := s.lastText()
	s.setReverse(false)
	s.w.ScrollRegion(0, last, backend.ScrollUp)
	copy(s.extent[0:last], s.extent[1:last+1])
	s.extent[last] = 0
	s.ttyRow, s.ttyCol = -1, -1
	s.log.Debug("scroll up, page start %d", s.pageStart)
}

func (s *Screen) scrollDown() {
	last := s.lastText()
	s.setReverse(false)
	s.w.ScrollRegion(0, last, backend.ScrollDown)
	copy(s.extent[1:last+1], s.extent[0:last])
	s.extent[0] = 0
	s.ttyRow, s.ttyCol = -1, -1
	s.log.Debug("scroll down, page start %d", s.pageStart)
}

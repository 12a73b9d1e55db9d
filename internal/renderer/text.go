package renderer

// EraseMode selects what RenderBottom does after painting to the end of
// the document.
type EraseMode int

const (
	// EraseNone leaves the remaining rows alone and returns the terminal
	// cursor to the document cursor.
	EraseNone EraseMode = iota
	// EraseAfter clears every text row below the painted text and returns
	// the terminal cursor to the document cursor.
	EraseAfter
	// EraseKeepCursor clears like EraseAfter but leaves the terminal cursor
	// where clearing finished.
	EraseKeepCursor
)

// showBlock paints n bytes from q at the painting position, stopping when
// the painting row reaches endRow.
func (s *Screen) showBlock(q, n int64, endRow int) {
	if s.row >= endRow {
		return
	}
	for ; n > 0 && s.err == nil; n-- {
		c := s.byteAt(q)
		q++
		if c == '\n' {
			s.ClearLine()
			s.row++
			s.col = 0
			if s.row >= endRow {
				return
			}
			s.plot(s.row, 0)
			continue
		}

		next := s.m.NextColumn(s.col, c)
		s.plot(s.row, s.col)
		if c == '\t' {
			end := next
			if next == 0 {
				end = s.cols
			}
			for s.col < end {
				s.put(' ')
				s.col++
			}
		} else {
			s.put(c)
		}
		if next == 0 {
			s.row++
			s.col = 0
			if s.row >= endRow {
				return
			}
			s.plot(s.row, 0)
			continue
		}
		s.col = next
	}
}

// ShowText paints n bytes starting at pos from the painting position,
// drawing the selected part in reverse video.
func (s *Screen) ShowText(pos, n int64, endRow int) {
	if !s.selOn {
		s.showBlock(pos, n, endRow)
		return
	}
	end := pos + n
	cur := s.doc.Pos()
	lo := min(max(min(s.selAnchor, cur), pos), end)
	hi := min(max(max(s.selAnchor, cur), pos), end)

	s.showBlock(pos, lo-pos, endRow)
	s.setReverse(true)
	s.showBlock(lo, hi-lo, endRow)
	s.setReverse(false)
	s.showBlock(hi, end-hi, endRow)
}

// RenderTop paints from the page start up to the cursor and records where
// the cursor landed.
func (s *Screen) RenderTop() {
	s.row, s.col = 0, 0
	s.plot(0, 0)
	s.ShowText(s.pageStart, s.doc.Pos()-s.pageStart, s.statusRow())
	s.crsrRow, s.crsrCol = s.row, s.col
}

// RenderBottom paints from the cursor to the end of the text rows.
func (s *Screen) RenderBottom(mode EraseMode) {
	s.row, s.col = s.crsrRow, s.crsrCol
	s.plot(s.row, s.col)
	pos := s.doc.Pos()
	s.ShowText(pos, s.doc.Len()-pos, s.statusRow())
	if mode != EraseNone {
		if s.row < s.statusRow() {
			s.ClearLine()
		}
		for r := s.row + 1; r < s.statusRow(); r++ {
			if s.extent[r] != 0 {
				s.plot(r, 0)
				s.ClearLine()
			}
		}
	}
	if mode != EraseKeepCursor {
		s.PlotCursor()
	}
}

// PaintFromCursor paints n bytes from the cursor, limited to endRow.
func (s *Screen) PaintFromCursor(n int64, endRow int) {
	s.row, s.col = s.crsrRow, s.crsrCol
	s.PlotCursor()
	s.ShowText(s.doc.Pos(), n, endRow)
}

// ShowLine repaints the rest of the cursor's physical line on the cursor row.
func (s *Screen) ShowLine() {
	s.row, s.col = s.crsrRow, s.crsrCol
	s.PlotCursor()
	pos := s.doc.Pos()
	n, err := s.m.LineLength(pos)
	if err != nil {
		s.fail(err)
		return
	}
	if n > 0 {
		s.ShowText(pos, n, s.statusRow())
	}
	s.ClearLine()
}

// scanPos sets the painting position to where n bytes past the page start
// are displayed.
func (s *Screen) scanPos(n int64) {
	row, col, err := s.m.ScanRows(s.pageStart, n, s.statusRow())
	s.fail(err)
	s.row, s.col = row, col
}

// PaintText repaints the n bytes after the cursor, or the -n bytes before
// it, in place. Used to redraw a span whose selection state changed.
func (s *Screen) PaintText(n int64) {
	pos := s.doc.Pos()
	if n == 0 || pos < s.pageStart {
		return
	}
	if n < 0 {
		i := max(pos+n, s.pageStart) - s.pageStart
		s.scanPos(i)
		s.plot(s.row, s.col)
		s.ShowText(s.pageStart+i, pos-s.pageStart-i, s.statusRow())
		return
	}
	s.scanPos(pos - s.pageStart)
	s.plot(s.row, s.col)
	s.ShowText(pos, n, s.statusRow())
}

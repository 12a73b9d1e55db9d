package editor

var findPrompts = map[byte]string{
	'f': "Find \"",
	'-': "-find \"",
	'r': "Replace \"",
	'?': "?replace \"",
}

// find searches for the find string, prompting for it unless m is 'a'
// (again). f searches forward and selects the match; - searches
// backward; r and ? replace the next match.
func (s *Session) find(m byte) {
	if m != 'a' {
		s.lastCmd = m
		s.scr.PlotMenu(0)
		s.scr.PutString(findPrompts[m])
		s.findStr = s.textInput(s.findStr)
	}
	pattern := s.findStr
	n := int64(len(pattern))

	found := false
	if n > 0 && s.err == nil {
		if m == 'r' || m == '?' {
			s.scr.PutString("\" with \"")
			col := s.scr.Column()
			s.scr.Put('"')
			s.scr.ClearLine()
			s.scr.PlotMenu(col)
			s.flush()
			s.replStr = s.textInput(s.replStr)
		}
		if s.lastCmd == '-' {
			found = s.findBackward(pattern)
		} else {
			found = s.findForward(pattern)
		}
	}

	if !found && s.err == nil {
		s.scr.SetMessage("not found")
		s.scr.EraseMenu()
	}
	if s.scr.MenuErased() {
		s.scr.ShowStatus()
	}
	s.scr.PlotCursor()
	s.flush()
	if !found {
		s.again = 0
	}
}

func (s *Session) matchAt(p int64, pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if s.at(p+int64(i)) != pattern[i] {
			return false
		}
	}
	return true
}

func (s *Session) findForward(pattern string) bool {
	n := int64(len(pattern))
	pos, size := s.pos(), s.size()
	for p := pos; p+n <= size && s.err == nil; p++ {
		if !s.matchAt(p, pattern) {
			continue
		}
		if s.lastCmd == 'f' {
			s.move(p + n - pos)
			anchor := s.pos() - n
			s.scr.SetSelection(anchor, true)
			s.scr.PaintText(anchor - s.pos())
		} else {
			s.replace(p-pos, n)
		}
		s.scr.FindCursor()
		return true
	}
	return false
}

// replace swaps the n bytes delta bytes from the cursor for the
// replacement string, selects it and redraws the page around it.
func (s *Session) replace(delta, n int64) {
	buf := s.buf()
	s.move(delta)
	s.fail(buf.DeleteForward(n))
	anchor := s.pos()
	s.fail(buf.InsertBytes([]byte(s.replStr)))
	if anchor != s.pos() {
		s.scr.SetSelection(anchor, true)
	}
	s.scr.Repage()
}

// findBackward searches toward the start of the document. The first
// candidate starts len(pattern)+1 bytes before the cursor.
func (s *Session) findBackward(pattern string) bool {
	n := int64(len(pattern))
	pos := s.pos()
	for p := pos - n - 1; p >= 0 && s.err == nil; p-- {
		if !s.matchAt(p, pattern) {
			continue
		}
		s.move(p - pos)
		anchor := s.pos() + n
		s.scr.SetSelection(anchor, true)
		s.scr.PaintText(anchor - s.pos())
		s.scr.FindCursor()
		return true
	}
	return false
}

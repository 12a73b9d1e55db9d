package editor

import (
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
)

// quit runs the quit menu and reports whether editing continues.
func (s *Session) quit() bool {
	s.scr.SetMode(renderer.ModeQuit)
	s.redrawStatus()
	s.flush()

	for s.err == nil {
		ev := s.next()
		switch {
		case ev.Is('a'):
			return false
		case ev.Is('e'):
			// A failed save keeps the editor open with the error showing.
			return !s.update()
		case ev.Is('u'):
			s.update()
			return true
		case ev.IsKey(key.Insert), ev.IsKey(key.Escape), ev.Is(key.Control('Z')):
			return true
		case ev.Is('w'):
			name, isDefault := s.enterFilename("Write file - ")
			s.scr.EraseMenu()
			if name != "" && !isDefault {
				s.writeFile(name)
			}
			s.scr.ShowStatus()
			s.scr.PlotCursor()
			s.flush()
		case ev.Is('i'):
			name, isDefault := s.enterFilename("Edit file - ")
			s.scr.EraseMenu()
			if name != "" && !isDefault && s.err == nil {
				s.edit(name)
				return true
			}
			s.scr.ShowStatus()
			s.scr.PlotCursor()
			s.flush()
		}
	}
	return true
}

// update saves the document under its own name and reports success.
func (s *Session) update() bool {
	s.scr.ShowSize(renderer.SizeSaving)
	s.scr.ShowStatus()
	s.scr.PlotCursor()
	s.flush()
	ok := s.writeFile(s.filename)
	s.scr.ShowStatus()
	s.scr.PlotCursor()
	return ok
}

func (s *Session) writeFile(name string) bool {
	if name == "" {
		s.scr.SetMessage("no file name")
		return false
	}
	if err := s.eng.Save(name); err != nil {
		s.fileError("cannot write "+name, err)
		return false
	}
	s.log.Info("wrote %s, %d bytes", name, s.size())
	return true
}

// edit discards the document and its spill store and opens name.
func (s *Session) edit(name string) {
	if err := s.eng.Renew(); err != nil {
		s.fail(err)
		return
	}
	s.open(name)
}

// jump moves to the start of line n, counting from 1. Zero means line 1.
func (s *Session) jump(n int) {
	off, err := s.eng.Mapper().OffsetOfLine(int64(n))
	if err != nil {
		s.fail(err)
		return
	}
	s.move(off - s.pos())
	s.scr.FindCursor()
	if s.scr.MenuErased() {
		s.scr.ShowStatus()
	}
	s.scr.PlotCursor()
}

// shellEscape suspends the terminal, runs a shell and redraws afterwards.
func (s *Session) shellEscape() {
	s.scr.PlotMenu(0)
	s.scr.ClearLine()
	s.scr.PlotMenu(0)
	s.scr.EraseMenu()
	s.flush()
	if s.shell == nil {
		s.redrawStatus()
		return
	}

	if s.term != nil {
		if err := s.term.Suspend(); err != nil {
			s.fail(err)
			return
		}
	}
	if err := s.shell(s.ctx); err != nil {
		s.log.Info("shell: %v", err)
	}
	if s.term != nil {
		if err := s.term.Resume(); err != nil {
			s.fail(err)
			return
		}
	}
	s.cursorKey(key.Key(key.Resize))
}

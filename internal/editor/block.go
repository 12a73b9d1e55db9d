package editor

import (
	"errors"

	"github.com/dshills/aedit/internal/engine"
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
)

// block runs block mode: the selection is anchored at the cursor and grows
// with cursor movement until a key other than a cursor key ends it.
func (s *Session) block() {
	s.scr.SetMode(renderer.ModeBlock)
	s.scr.SetSelection(s.pos(), true)
	s.redrawStatus()
	s.flush()

	var ev key.Event
	for {
		ev = s.next()
		if !s.cursorKey(ev) {
			break
		}
		if s.scr.MenuErased() {
			s.scr.ShowStatus()
			s.scr.PlotCursor()
		}
	}

	anchor, _ := s.scr.Selection()
	s.scr.SetSelection(anchor, false)
	if s.err == nil {
		s.blockCommand(ev, anchor)
	}
	s.scr.SetMode(renderer.ModeMain)
	s.redrawStatus()
}

// blockCommand applies the key that ended block mode to the block between
// anchor and the cursor.
func (s *Session) blockCommand(ev key.Event, anchor int64) {
	switch {
	case ev.Is('b'):
		s.saveSelection(s.clipName, anchor)
		s.scr.PaintText(anchor - s.pos())
	case ev.Is('c'):
		name, _ := s.enterFilename("Copy text to - ")
		s.saveSelection(name, anchor)
		s.scr.PaintText(anchor - s.pos())
	case ev.Is('p'):
		name, _ := s.enterFilename("Put text in - ")
		s.saveSelection(name, anchor)
		s.deleteSelection(anchor)
	case ev.Is('d'):
		s.saveSelection(s.clipName, anchor)
		s.deleteSelection(anchor)
	default:
		s.scr.PaintText(anchor - s.pos())
	}
}

// saveSelection writes the block to name. Saves to the clip file are
// mirrored to the system clipboard when one is configured.
func (s *Session) saveSelection(name string, anchor int64) {
	pos := s.pos()
	if name == "" || anchor == pos || s.err != nil {
		return
	}
	if err := s.eng.SaveRange(name, anchor, pos); err != nil {
		s.fileError("cannot write "+name, err)
		return
	}
	s.log.Debug("saved %d bytes to %s", max(anchor, pos)-min(anchor, pos), name)
	if s.clipboard == nil || name != s.clipName {
		return
	}
	p, err := s.buf().Bytes(min(anchor, pos), max(anchor, pos))
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.clipboard.WriteAll(string(p)); err != nil {
		s.log.Info("clipboard: %v", err)
	}
}

func (s *Session) deleteSelection(anchor int64) {
	pos := s.pos()
	if anchor == pos || s.err != nil {
		return
	}
	if anchor < pos {
		s.fail(s.buf().DeleteBackward(pos - anchor))
		onPage := anchor >= s.scr.PageStart()
		s.scr.FindCursor()
		s.scr.PlotCursor()
		if onPage {
			s.scr.RenderBottom(renderer.EraseAfter)
		}
		return
	}
	s.fail(s.buf().DeleteForward(anchor - pos))
	s.scr.RenderBottom(renderer.EraseAfter)
}

// get inserts a file at the cursor and selects the inserted text.
func (s *Session) get() {
	name, _ := s.enterFilename("Get text from - ")
	if name == "" || s.err != nil {
		return
	}
	n, err := s.eng.InsertFile(name)
	if err != nil {
		s.fileError("cannot read "+name, err)
	}
	if n == 0 || s.err != nil {
		return
	}
	s.scr.SetSelection(s.pos(), true)
	s.move(-n)
	s.scr.RenderBottom(renderer.EraseKeepCursor)
	s.move(n)
	s.scr.SetSelection(s.pos()-n, true)
	s.scr.FindCursor()
	s.scr.PlotCursor()
}

// fileError shows msg on the status line for a file problem, and fails
// the session for anything else.
func (s *Session) fileError(msg string, err error) {
	if !s.userError(err) && !errors.Is(err, engine.ErrEmptyRange) {
		s.fail(err)
		return
	}
	s.log.Info("%s: %v", msg, err)
	s.scr.SetMessage(msg)
	s.scr.EraseMenu()
}

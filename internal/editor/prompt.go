package editor

import (
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
)

func isBackspace(ev key.Event) bool {
	return ev.Is(0x08) || ev.Is(0x7f) || ev.IsKey(key.Delete)
}

// enterFilename prompts for a file name on the menu line. An empty answer
// selects the clip file and reports it as the default.
func (s *Session) enterFilename(prompt string) (name string, isDefault bool) {
	s.scr.EraseMenu()
	s.scr.PlotMenu(0)
	s.scr.PutString(prompt)
	start := s.scr.Column()
	s.scr.ClearLine()
	s.scr.PlotMenu(start)
	s.flush()

	var typed []byte
	for {
		ev := s.next()
		if ev.Is('\n') || ev.Is('\r') || ev.IsKey(key.Escape) {
			break
		}
		switch {
		case isBackspace(ev):
			if len(typed) > 0 {
				s.scr.PlotMenu(s.scr.Column() - 1)
				s.scr.ClearLine()
				typed = typed[:len(typed)-1]
			}
		case ev.IsByte():
			typed = append(typed, ev.Byte)
			s.scr.Put(ev.Byte)
		default:
			continue
		}
		s.flush()
	}

	if len(typed) == 0 {
		s.scr.PutString(s.clipName)
		return s.clipName, true
	}
	return string(typed), false
}

// textInput edits a search or replacement string on the menu line after
// the prompt already shown. The previous value is kept unless something is
// typed; backspacing past the start clears it.
func (s *Session) textInput(cur string) string {
	start := s.scr.Column()
	s.scr.PutString(cur)
	s.scr.Put('"')
	s.scr.ClearLine()
	s.scr.PlotMenu(start)
	s.flush()

	text := []byte(cur)
	typed := 0
	for {
		ev := s.next()
		if ev.Is('\n') || ev.Is('\r') || ev.IsKey(key.Escape) || ev.Is(key.Control('Z')) || ev.IsKey(key.Insert) {
			break
		}
		switch {
		case isBackspace(ev):
			col := start
			if typed > 0 {
				typed--
				col = s.scr.Column() - 1
			}
			s.scr.ClearLine()
			s.scr.PlotMenu(col)
			text = text[:typed]
		case ev.IsByte():
			if typed == 0 {
				s.scr.ClearLine()
				s.scr.PlotMenu(start)
			}
			text = append(text[:typed], ev.Byte)
			typed++
			s.scr.Put(ev.Byte)
		default:
			continue
		}
		col := s.scr.Column()
		s.scr.Put('"')
		s.scr.PlotMenu(col)
		s.flush()
	}
	s.scr.PlotMenu(start + len(text))
	s.scr.EraseMenu()
	return string(text)
}

// maxAgain bounds the repeat count.
const maxAgain = 1 << 30

// getAgain reads the digits of a repeat count starting with first, echoing
// them on the status line, and returns the key that followed them.
func (s *Session) getAgain(first byte) key.Event {
	s.scr.SetMode(renderer.ModeMain)
	s.again = int(first - '0')
	s.scr.PlotStatus(0)
	s.scr.PutString(" ---- ")
	s.scr.Put(first)
	s.scr.ClearLine()
	s.scr.PlotStatus(7)

	digits := 1
	for {
		s.flush()
		ev := s.next()
		switch {
		case ev.IsByte() && ev.Byte >= '0' && ev.Byte <= '9':
			digits++
			s.scr.Put(ev.Byte)
			if s.again < maxAgain {
				s.again = s.again*10 + int(ev.Byte-'0')
			}
		case isBackspace(ev):
			if digits > 0 {
				digits--
				s.scr.PlotStatus(s.scr.Column() - 1)
				s.scr.Put(' ')
				s.scr.PlotStatus(s.scr.Column() - 1)
				s.again /= 10
			}
		default:
			if ev.Is('\r') {
				ev = key.Byte('\n')
			}
			s.redrawStatus()
			return ev
		}
	}
}

package editor

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/dshills/aedit/internal/engine"
	"github.com/dshills/aedit/internal/engine/buffer"
	"github.com/dshills/aedit/internal/engine/spill"
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
)

// Settings are the display settings that can change while editing.
type Settings struct {
	TabWidth    int
	Wrap        bool
	ReverseMenu bool
}

// Session is an interactive editing session.
type Session struct {
	eng  *engine.Engine
	scr  *renderer.Screen
	keys key.Source
	log  Logger

	filename  string
	clipName  string
	clipboard Clipboard
	term      Terminal
	shell     ShellFunc

	findStr string
	replStr string
	lastCmd byte
	again   int

	ctx context.Context
	err error

	resizePending atomic.Bool
	settings      atomic.Pointer[Settings]
	mu            sync.Mutex
	cancelRead    context.CancelFunc
}

// New creates a session editing eng on scr with keys from src. The screen
// must display eng.
func New(eng *engine.Engine, scr *renderer.Screen, src key.Source, opts ...Option) *Session {
	s := &Session{
		eng:  eng,
		scr:  scr,
		keys: src,
		log:  nopLogger{},
		ctx:  context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filename returns the name of the file being edited.
func (s *Session) Filename() string { return s.filename }

// NotifyResize tells the session the terminal size may have changed.
func (s *Session) NotifyResize() {
	s.resizePending.Store(true)
	s.interrupt()
}

// ApplySettings replaces the display settings. The screen is redrawn with
// them before the next key is handled.
func (s *Session) ApplySettings(st Settings) {
	s.settings.Store(&st)
	s.interrupt()
}

func (s *Session) interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelRead != nil {
		s.cancelRead()
	}
}

func (s *Session) setCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelRead = cancel
}

// Run edits until the user quits, the key source ends or a fatal error
// occurs. Quitting returns ErrQuit; the end of input returns nil.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx
	s.open(s.filename)
	s.flush()

	for s.err == nil {
		var ev key.Event
		if s.again > 0 {
			ev = key.Byte('a')
			s.again--
		} else {
			ev = s.next()
		}
		if s.err != nil {
			break
		}
		if s.dispatch(ev) {
			s.flush()
			return ErrQuit
		}
		s.flush()
	}
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}

// dispatch handles one main-mode key and reports whether the session
// should end.
func (s *Session) dispatch(ev key.Event) bool {
	s.scr.SetMessage("")
	if anchor, on := s.scr.Selection(); on {
		s.scr.SetSelection(anchor, false)
		s.scr.PaintText(anchor - s.pos())
	}
	if ev.IsByte() && ev.Byte >= '0' && ev.Byte <= '9' {
		ev = s.getAgain(ev.Byte)
	}

	switch {
	case ev.Is('\n'):
		if s.again > 0 {
			s.jump(s.again)
			s.again = 0
		}
	case ev.IsKey(key.Insert), ev.Is('i'):
		s.insertText(renderer.ModeInsert)
	case ev.Is('x'):
		s.insertText(renderer.ModeExchange)
	case ev.Is('d'), ev.Is('b'), ev.IsKey(key.Select):
		s.block()
	case ev.Is('\t'):
		s.scr.NextMenuPage()
		s.redrawStatus()
	case ev.Is('q'):
		if !s.quit() {
			return true
		}
		s.scr.SetMode(renderer.ModeMain)
		s.redrawStatus()
	case ev.Is(key.Control('F')), ev.IsKey(key.Find), ev.Is('f'):
		s.startFind('f')
	case ev.Is('-'), ev.Is('r'), ev.Is('?'):
		s.startFind(ev.Byte)
	case ev.Is('l'):
		s.scr.ShowSize(renderer.SizeBytes)
		s.scr.ShowStatus()
		s.scr.PlotCursor()
	case ev.Is('a'):
		switch s.lastCmd {
		case 'f', '-', 'r', '?':
			s.find('a')
		default:
			s.again = 0
		}
	case ev.Is('g'):
		s.get()
		if s.scr.MenuErased() {
			s.scr.ShowStatus()
		}
		s.scr.PlotCursor()
	case ev.Is('j'):
		s.jump(s.again)
		s.again = 0
	case ev.Is('s'):
		s.shellEscape()
	case ev.Is('v'):
		s.cursorKey(key.Byte(key.Control('W')))
	default:
		s.cursorKey(ev)
	}
	return false
}

func (s *Session) startFind(m byte) {
	if s.again > 0 {
		s.again--
	}
	s.lastCmd = m
	s.find(m)
}

// next returns the next key. Pending resizes and settings changes come
// back as Resize events. Once the session has failed, every read returns
// Escape so that prompts and modes unwind.
func (s *Session) next() key.Event {
	for s.err == nil {
		if s.resizePending.Swap(false) {
			return key.Key(key.Resize)
		}
		if st := s.settings.Swap(nil); st != nil {
			s.apply(*st)
			return key.Key(key.Resize)
		}

		ctx, cancel := context.WithCancel(s.ctx)
		s.setCancel(cancel)
		if s.resizePending.Load() || s.settings.Load() != nil {
			cancel()
		}
		ev, err := s.keys.NextEvent(ctx)
		s.setCancel(nil)
		cancel()
		if err == nil {
			return ev
		}
		if errors.Is(err, context.Canceled) && s.ctx.Err() == nil {
			continue
		}
		s.fail(err)
	}
	return key.Key(key.Escape)
}

func (s *Session) apply(st Settings) {
	m := s.eng.Mapper()
	m.SetTabWidth(st.TabWidth)
	m.SetWrap(st.Wrap)
	s.scr.SetReverseMenu(st.ReverseMenu)
	s.log.Info("settings applied: tabs %d, wrap %v, reverse menu %v", st.TabWidth, st.Wrap, st.ReverseMenu)
}

func (s *Session) fail(err error) {
	if err != nil && s.err == nil {
		s.err = err
		if !errors.Is(err, io.EOF) {
			s.log.Info("session failed: %v", err)
		}
	}
}

func (s *Session) flush() {
	s.fail(s.scr.Flush())
}

func (s *Session) buf() *buffer.Buffer { return s.eng.Buffer() }

func (s *Session) pos() int64 { return s.eng.Pos() }

func (s *Session) size() int64 { return s.eng.Len() }

func (s *Session) at(off int64) byte {
	c, err := s.eng.ByteAt(off)
	s.fail(err)
	return c
}

func (s *Session) move(delta int64) {
	s.fail(s.buf().Move(delta))
}

func (s *Session) redrawStatus() {
	s.scr.EraseMenu()
	s.scr.ShowStatus()
	s.scr.PlotCursor()
}

// open starts editing name on a cleared screen. A missing file starts an
// empty document under that name.
func (s *Session) open(name string) {
	s.filename = name
	s.scr.SetFilename(name)
	s.scr.SetMode(renderer.ModeMain)
	s.scr.Reset()
	s.scr.Cls()
	s.scr.ShowStatus()
	s.flush()

	if name == "" {
		s.scr.RenderBottom(renderer.EraseAfter)
		return
	}
	if err := s.eng.Open(name); err != nil {
		if !s.userError(err) {
			s.fail(err)
			return
		}
		if errors.Is(err, fs.ErrNotExist) {
			s.scr.SetMessage("new file")
		} else {
			s.scr.SetMessage("cannot read " + name)
		}
		s.scr.ShowStatus()
		s.scr.RenderBottom(renderer.EraseAfter)
		return
	}
	s.log.Debug("opened %s, %d bytes", name, s.size())
	s.scr.ShowSize(renderer.SizeBytes)
	s.scr.ShowStatus()
	s.scr.RenderTop()
	s.scr.RenderBottom(renderer.EraseAfter)
}

// userError reports whether err is a file problem to show on the status
// line rather than a failure of the document store.
func (s *Session) userError(err error) bool {
	var ioe *spill.IOError
	if errors.As(err, &ioe) {
		return false
	}
	var pe *fs.PathError
	return errors.As(err, &pe) || errors.Is(err, engine.ErrNoFileName)
}

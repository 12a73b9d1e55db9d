package backend

import (
	"context"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/aedit/internal/input/key"
)

// Tcell implements Terminal on a tcell screen. It also serves key events
// from the same screen.
type Tcell struct {
	screen  tcell.Screen
	mu      sync.Mutex
	row     int
	col     int
	style   tcell.Style
	events  chan tcell.Event
	polling sync.Once
}

// NewTcell creates a tcell-backed terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTcell(screen), nil
}

func newTcell(screen tcell.Screen) *Tcell {
	return &Tcell{
		screen: screen,
		style:  tcell.StyleDefault,
		events: make(chan tcell.Event, 16),
	}
}

func (t *Tcell) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

func (t *Tcell) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Tcell) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Suspend()
}

func (t *Tcell) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Resume()
}

func (t *Tcell) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Tcell) WriteCell(b byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(t.col, t.row, rune(b), nil, t.style)
	t.col++
}

func (t *Tcell) MoveCursorTo(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.row, t.col = row, col
	t.screen.ShowCursor(col, row)
}

func (t *Tcell) ClearToEndOfLine() {
	t.mu.Lock()
	defer t.mu.Unlock()
	width, _ := t.screen.Size()
	for x := t.col; x < width; x++ {
		t.screen.SetContent(x, t.row, ' ', nil, tcell.StyleDefault)
	}
}

func (t *Tcell) ClearScreen() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
	t.row, t.col = 0, 0
}

func (t *Tcell) SetReverseVideo(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.style = tcell.StyleDefault.Reverse(on)
}

func (t *Tcell) ScrollRegion(top, bottom int, dir Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	width, _ := t.screen.Size()
	copyRow := func(dst, src int) {
		for x := 0; x < width; x++ {
			mainc, combc, style, _ := t.screen.GetContent(x, src) //nolint:staticcheck // GetContent is the correct API
			t.screen.SetContent(x, dst, mainc, combc, style)
		}
	}
	blankRow := func(y int) {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	if dir == ScrollUp {
		for y := top; y < bottom; y++ {
			copyRow(y, y+1)
		}
		blankRow(bottom)
	} else {
		for y := bottom; y > top; y-- {
			copyRow(y, y-1)
		}
		blankRow(top)
	}
	t.row, t.col = 0, 0
}

func (t *Tcell) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
	return nil
}

// NextEvent returns the next key or resize event from the screen.
func (t *Tcell) NextEvent(ctx context.Context) (key.Event, error) {
	ev, err := t.nextKey(ctx)
	if err != nil || ev.Special != key.Home {
		return ev, err
	}
	next, err := t.nextKey(ctx)
	if err != nil {
		return key.Event{}, err
	}
	return key.AfterPrefix(next), nil
}

func (t *Tcell) nextKey(ctx context.Context) (key.Event, error) {
	t.polling.Do(func() {
		go func() {
			for {
				ev := t.screen.PollEvent()
				if ev == nil {
					close(t.events)
					return
				}
				t.events <- ev
			}
		}()
	})
	for {
		select {
		case <-ctx.Done():
			return key.Event{}, ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return key.Event{}, io.EOF
			}
			if kev, ok := convertEvent(ev); ok {
				return kev, nil
			}
		}
	}
}

// convertEvent converts tcell events to key events. Events the editor has
// no use for report false.
func convertEvent(ev tcell.Event) (key.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e.Key(), e.Rune())
	case *tcell.EventResize:
		w, h := e.Size()
		return key.Event{Special: key.Resize, Cols: w, Rows: h}, true
	}
	return key.Event{}, false
}

// convertKey converts a tcell key to a key event.
func convertKey(k tcell.Key, r rune) (key.Event, bool) {
	switch k {
	case tcell.KeyRune:
		if r < 0 || r > 0xff {
			return key.Byte('?'), true
		}
		return key.Byte(byte(r)), true
	case tcell.KeyUp:
		return key.Key(key.Up), true
	case tcell.KeyDown:
		return key.Key(key.Down), true
	case tcell.KeyLeft:
		return key.Key(key.Left), true
	case tcell.KeyRight:
		return key.Key(key.Right), true
	case tcell.KeyHome:
		return key.Key(key.Start), true
	case tcell.KeyEnd:
		return key.Key(key.End), true
	case tcell.KeyPgUp:
		return key.Key(key.PageUp), true
	case tcell.KeyPgDn:
		return key.Key(key.PageDown), true
	case tcell.KeyInsert:
		return key.Key(key.Insert), true
	case tcell.KeyDelete:
		return key.Key(key.Delete), true
	case tcell.KeyEscape:
		return key.Key(key.Escape), true
	case tcell.KeyBackspace2:
		return key.Byte(0x7f), true
	}
	switch {
	case k >= 0 && k < 0x20:
		return key.FromByte(byte(k)), true
	case k >= tcell.KeyCtrlSpace && k <= tcell.KeyCtrlUnderscore:
		// tcell reports Ctrl-letter chords above the control bytes.
		return key.FromByte(byte(k - tcell.KeyCtrlSpace)), true
	}
	return key.Event{}, false
}

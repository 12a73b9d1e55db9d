package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/aedit/internal/engine"
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
	"github.com/dshills/aedit/internal/renderer/backend"
)

// ============================================================================
// Harness
// ============================================================================

type harness struct {
	t    *testing.T
	dir  string
	file string
	clip string
	eng  *engine.Engine
	grid *backend.Grid
	scr  *renderer.Screen
	keys *key.Script
	s    *Session
}

// newHarness creates a session on an 80x24 grid. A non-empty content is
// written to doc.txt, which the session opens.
func newHarness(t *testing.T, content string, opts ...Option) *harness {
	t.Helper()
	return newHarnessWith(t, content, []engine.Option{engine.WithMemorySpill()}, opts...)
}

func newHarnessWith(t *testing.T, content string, engOpts []engine.Option, opts ...Option) *harness {
	t.Helper()
	h := &harness{t: t, dir: t.TempDir()}
	h.clip = filepath.Join(h.dir, "clip")
	if content != "" {
		h.file = h.path("doc.txt")
		if err := os.WriteFile(h.file, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	eng, err := engine.New(engOpts...)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(func() { _ = eng.Close() })
	h.eng = eng
	h.grid = backend.NewGrid(80, 24)
	h.scr = renderer.New(h.grid, eng, eng.Mapper())
	h.keys = key.NewScript()

	opts = append([]Option{WithFile(h.file), WithClipFile(h.clip)}, opts...)
	h.s = New(eng, h.scr, h.keys, opts...)
	return h
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

// run replays keys and returns what Run returned.
func (h *harness) run(keys string) error {
	h.t.Helper()
	h.keys.Append(key.MustParse(keys)...)
	return h.s.Run(context.Background())
}

// mustRun replays keys and fails unless the session ends with the input.
func (h *harness) mustRun(keys string) {
	h.t.Helper()
	if err := h.run(keys); err != nil {
		h.t.Fatalf("Run(%q) = %v", keys, err)
	}
}

func (h *harness) text() string {
	h.t.Helper()
	p, err := h.eng.Buffer().Bytes(0, h.eng.Len())
	if err != nil {
		h.t.Fatalf("Bytes: %v", err)
	}
	return string(p)
}

func (h *harness) readFile(path string) string {
	h.t.Helper()
	p, err := os.ReadFile(path)
	if err != nil {
		h.t.Fatalf("ReadFile: %v", err)
	}
	return string(p)
}

func (h *harness) status() string { return h.grid.Line(22) }
func (h *harness) menu() string   { return h.grid.Line(23) }

// ============================================================================
// Startup
// ============================================================================

func TestOpenShowsFile(t *testing.T) {
	h := newHarness(t, "hello\nworld\n")
	h.mustRun("")
	if got := h.grid.Line(0); got != "hello" {
		t.Errorf("Line(0) = %q", got)
	}
	if got := h.grid.Line(1); got != "world" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := h.status(); got != " ---- "+h.file+", 12 bytes" {
		t.Errorf("status = %q", got)
	}
	if !strings.HasPrefix(h.menu(), "  Again") {
		t.Errorf("menu = %q", h.menu())
	}
}

func TestOpenMissingFile(t *testing.T) {
	h := newHarness(t, "")
	name := h.path("new.txt")
	h.s.filename = name
	h.mustRun("ihi<Esc>qu")
	if got := h.readFile(name); got != "hi" {
		t.Errorf("saved %q, want %q", got, "hi")
	}
}

// ============================================================================
// Insert and Exchange
// ============================================================================

func TestInsertMode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		keys    string
		want    string
		wantPos int64
	}{
		{"insert", "", "ihello<Esc>", "hello", 5},
		{"insert key", "", "<Ins>ab<Ins>", "ab", 2},
		{"carriage return is newline", "", "iab<CR>cd<Esc>", "ab\ncd", 5},
		{"backspace", "", "iabc<BS><Esc>", "ab", 2},
		{"delete key in main mode", "abc", "<End><Del>", "ab", 2},
		{"insert in the middle", "ac", "<Right>ib<Esc>", "abc", 2},
		{"tab", "", "i<Tab>x<Esc>", "\tx", 2},
		{"exchange", "abc\ndef", "xXY<Esc>", "XYc\ndef", 2},
		{"exchange keeps newline", "abc\ndef", "<End>xZ<Esc>", "abcZ\ndef", 4},
		{"exchange at end", "ab", "<End>xcd<Esc>", "abcd", 4},
		{"ctrl-z ends insert", "", "ia<C-z>", "a", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.content)
			h.mustRun(tt.keys)
			if got := h.text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if got := h.eng.Pos(); got != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", got, tt.wantPos)
			}
		})
	}
}

func TestInsertRepaints(t *testing.T) {
	h := newHarness(t, "world")
	h.mustRun("ihello <Esc>")
	if got := h.grid.Line(0); got != "hello world" {
		t.Errorf("Line(0) = %q", got)
	}
	if got := h.menu(); !strings.HasPrefix(got, "  Again") {
		t.Errorf("menu after insert = %q", got)
	}
	if r, c := h.scr.Cursor(); r != 0 || c != 6 {
		t.Errorf("Cursor() = %d,%d; want 0,6", r, c)
	}
}

func TestInsertNewlineRepaintsBelow(t *testing.T) {
	h := newHarness(t, "abcd\nnext")
	h.mustRun("<Right><Right>i<CR><Esc>")
	want := []string{"ab", "cd", "next"}
	for i, w := range want {
		if got := h.grid.Line(i); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestDeleteJoinsLines(t *testing.T) {
	h := newHarness(t, "ab\ncd\nef")
	h.mustRun("<Down><BS>")
	if got := h.text(); got != "abcd\nef" {
		t.Errorf("text = %q", got)
	}
	for i, w := range []string{"abcd", "ef", ""} {
		if got := h.grid.Line(i); got != w {
			t.Errorf("Line(%d) = %q, want %q", i, got, w)
		}
	}
}

// ============================================================================
// Cursor Movement
// ============================================================================

func TestMovement(t *testing.T) {
	tests := []struct {
		keys string
		want int64
	}{
		{"<Down><Right><Right>", 6},
		{"<Down><Right><Right><Up>", 2},
		{"<Down><End>", 7},
		{"<Down><End><Start>", 4},
		{"<Right><Left><Left>", 0},
		{"<Down><Down>", 8},
		{"<Down><Down><Down>", 13},
		{"<End><Down>", 7},
		{"<PageDown>", 13},
		{"<PageDown><PageUp>", 0},
		{"<Up>", 0},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newHarness(t, "one\ntwo\nthree")
			h.mustRun(tt.keys)
			if got := h.eng.Pos(); got != tt.want {
				t.Errorf("Pos() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMovementOnWrappedLine(t *testing.T) {
	long := strings.Repeat("x", 100)
	tests := []struct {
		keys string
		want int64
	}{
		{"<Right><Right><Down>", 82},
		{"<Right><Right><Down><Start>", 80},
		{"<Right><Right><Down><Up>", 2},
		{"<Right><Right><Down><End>", 100},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newHarness(t, long+"\nend")
			h.mustRun(tt.keys)
			if got := h.eng.Pos(); got != tt.want {
				t.Errorf("Pos() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPagingLargeDocument(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 200; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	h := newHarnessWith(t, sb.String(), []engine.Option{engine.WithMemorySpill(), engine.WithCapacity(64)})
	h.mustRun("<PageDown><PageDown>")

	// Each flip advances rows-4 display lines.
	off, _ := h.eng.Mapper().OffsetOfLine(41)
	if got := h.eng.Pos(); got != off {
		t.Errorf("Pos() = %d, want start of line 41 (%d)", got, off)
	}
	row, _ := h.scr.Cursor()
	if got := h.grid.Line(row); got != "line 41" {
		t.Errorf("cursor row shows %q", got)
	}
}

// ============================================================================
// Find and Replace
// ============================================================================

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want int64
	}{
		{"forward", "fone<CR>", 3},
		{"again reaches the last position", "fone<CR>a", 11},
		{"ctrl-f", "<C-f>two<CR>", 7},
		{"find key", "<Find>two<CR>", 7},
		{"backward", "<End>-t<CR>", 4},
		{"repeat count", "2fo<CR>", 7},
		{"not found keeps position", "<Right>fzzz<CR>", 1},
		{"again without search", "a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "one two one")
			h.mustRun(tt.keys)
			if got := h.eng.Pos(); got != tt.want {
				t.Errorf("Pos() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindSelectsMatch(t *testing.T) {
	h := newHarness(t, "one two one")
	h.mustRun("ftwo<CR>")
	anchor, on := h.scr.Selection()
	if !on || anchor != 4 {
		t.Errorf("Selection() = %d, %v; want 4, true", anchor, on)
	}
	if got := h.grid.ReverseMask(0)[:11]; got != "....###...." {
		t.Errorf("ReverseMask = %q", got)
	}
}

func TestFindKeepsPreviousString(t *testing.T) {
	h := newHarness(t, "ab ab ab")
	h.mustRun("fab<CR>f<CR>")
	if got := h.eng.Pos(); got != 5 {
		t.Errorf("Pos() = %d, want 5", got)
	}
	if h.s.findStr != "ab" {
		t.Errorf("find string = %q", h.s.findStr)
	}
}

func TestFindNotFoundMessage(t *testing.T) {
	h := newHarness(t, "abc")
	h.mustRun("fzz<CR>")
	if !strings.Contains(h.status(), "not found") {
		t.Errorf("status = %q", h.status())
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"rone<CR>1<CR>", "1 two one"},
		{"rone<CR>1<CR>a", "1 two 1"},
		{"rone<CR><CR>", " two one"},
		{"rzz<CR>1<CR>", "one two one"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newHarness(t, "one two one")
			h.mustRun(tt.keys)
			if got := h.text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if got := h.grid.Line(0); got != tt.want {
				t.Errorf("Line(0) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryReplaceWithCount(t *testing.T) {
	h := newHarness(t, "a-a-a-a")
	h.mustRun("3?a<CR>b<CR>")
	if got := h.text(); got != "b-b-b-a" {
		t.Errorf("text = %q", got)
	}
}

// ============================================================================
// Jump and Status
// ============================================================================

func TestJump(t *testing.T) {
	tests := []struct {
		keys string
		want int64
	}{
		{"3<CR>", 4},
		{"2j", 2},
		{"<End>j", 0},
		{"99j", 7},
		{"31<BS><CR>", 4},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			h := newHarness(t, "a\nb\nc\nd")
			h.mustRun(tt.keys)
			if got := h.eng.Pos(); got != tt.want {
				t.Errorf("Pos() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLength(t *testing.T) {
	h := newHarness(t, "one two one")
	h.mustRun("l")
	if !strings.HasSuffix(h.status(), ", 11 bytes") {
		t.Errorf("status = %q", h.status())
	}
}

func TestMenuPaging(t *testing.T) {
	h := newHarness(t, "one two one")
	h.mustRun("<Tab>")
	if !strings.HasPrefix(h.menu(), "  Jump") {
		t.Errorf("menu after tab = %q", h.menu())
	}
}

// ============================================================================
// Blocks
// ============================================================================

func TestBlockCommands(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		wantText string
		wantClip string
		wantPos  int64
	}{
		{"save to clip file", "<Right><Right>b<Right><Right><Right>b", "0123456789", "234", 5},
		{"delete", "<Right><Right>d<Right><Right><Right>d", "0156789", "234", 2},
		{"delete backward", "<End>b<Left><Left>d", "01234567", "89", 8},
		{"copy to default", "b<Right>c<CR>", "0123456789", "0", 1},
		{"select key", "<Select><Right><Right>b", "0123456789", "01", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "0123456789")
			h.mustRun(tt.keys)
			if got := h.text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got := h.readFile(h.clip); got != tt.wantClip {
				t.Errorf("clip = %q, want %q", got, tt.wantClip)
			}
			if got := h.eng.Pos(); got != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", got, tt.wantPos)
			}
			if _, on := h.scr.Selection(); on {
				t.Error("selection still on")
			}
		})
	}
}

func TestBlockPutAndCopy(t *testing.T) {
	h := newHarness(t, "0123456789")
	out := h.path("out.txt")
	cp := h.path("copy.txt")
	h.mustRun("b<Right><Right>p" + out + "<CR>" + "b<Right><Right><Right>c" + cp + "<CR>")
	if got := h.text(); got != "23456789" {
		t.Errorf("text = %q", got)
	}
	if got := h.readFile(out); got != "01" {
		t.Errorf("put file = %q", got)
	}
	if got := h.readFile(cp); got != "234" {
		t.Errorf("copy file = %q", got)
	}
	if got := h.grid.Line(0); got != "23456789" {
		t.Errorf("Line(0) = %q", got)
	}
	if strings.Contains(h.grid.ReverseMask(0), "#") {
		t.Error("block still shown reversed")
	}
}

func TestBlockCancel(t *testing.T) {
	h := newHarness(t, "0123456789")
	h.mustRun("b<Right><Right><Esc>")
	if got := h.text(); got != "0123456789" {
		t.Errorf("text = %q", got)
	}
	if _, err := os.Stat(h.clip); err == nil {
		t.Error("cancelled block wrote the clip file")
	}
}

func TestBlockFileNameEditing(t *testing.T) {
	h := newHarness(t, "0123456789")
	out := h.path("ab")
	h.mustRun("b<Right>c" + out + "x<BS><CR>")
	if got := h.readFile(out); got != "0" {
		t.Errorf("copy = %q", got)
	}
}

type fakeClipboard struct{ got []string }

func (c *fakeClipboard) WriteAll(text string) error {
	c.got = append(c.got, text)
	return nil
}

func TestClipboardMirror(t *testing.T) {
	cb := &fakeClipboard{}
	h := newHarness(t, "0123456789", WithClipboard(cb))
	h.mustRun("b<Right><Right>b<Right>b<Right>c" + h.path("other") + "<CR>")
	if len(cb.got) != 1 || cb.got[0] != "01" {
		t.Errorf("clipboard got %q, want [\"01\"]", cb.got)
	}
}

func TestGet(t *testing.T) {
	h := newHarness(t, "ab")
	part := h.path("part.txt")
	if err := os.WriteFile(part, []byte("XY"), 0o644); err != nil {
		t.Fatal(err)
	}
	h.mustRun("<Right>g" + part + "<CR>")
	if got := h.text(); got != "aXYb" {
		t.Errorf("text = %q", got)
	}
	if got := h.eng.Pos(); got != 3 {
		t.Errorf("Pos() = %d, want 3", got)
	}
	anchor, on := h.scr.Selection()
	if !on || anchor != 1 {
		t.Errorf("Selection() = %d, %v; want 1, true", anchor, on)
	}
	if got := h.grid.Line(0); got != "aXYb" {
		t.Errorf("Line(0) = %q", got)
	}
}

func TestGetMissingFile(t *testing.T) {
	h := newHarness(t, "ab")
	h.mustRun("g" + h.path("none") + "<CR>")
	if got := h.text(); got != "ab" {
		t.Errorf("text = %q", got)
	}
	if !strings.Contains(h.status(), "cannot read") {
		t.Errorf("status = %q", h.status())
	}
}

// ============================================================================
// Quit Menu
// ============================================================================

func TestQuitMenu(t *testing.T) {
	t.Run("abort", func(t *testing.T) {
		h := newHarness(t, "abc")
		if err := h.run("iZ<Esc>qa"); !errors.Is(err, ErrQuit) {
			t.Fatalf("Run = %v, want ErrQuit", err)
		}
		if got := h.readFile(h.file); got != "abc" {
			t.Errorf("file = %q", got)
		}
	})
	t.Run("exit saves", func(t *testing.T) {
		h := newHarness(t, "abc")
		if err := h.run("iZ<Esc>qe"); !errors.Is(err, ErrQuit) {
			t.Fatalf("Run = %v, want ErrQuit", err)
		}
		if got := h.readFile(h.file); got != "Zabc" {
			t.Errorf("file = %q", got)
		}
	})
	t.Run("update stays", func(t *testing.T) {
		h := newHarness(t, "abc")
		h.mustRun("iZ<Esc>qu<Right>")
		if got := h.readFile(h.file); got != "Zabc" {
			t.Errorf("file = %q", got)
		}
		if h.scr.Mode() != renderer.ModeMain {
			t.Errorf("mode = %v after update", h.scr.Mode())
		}
		if got := h.eng.Pos(); got != 2 {
			t.Errorf("Pos() = %d, want 2", got)
		}
	})
	t.Run("escape returns", func(t *testing.T) {
		h := newHarness(t, "abc")
		h.mustRun("q<Esc>")
		if !strings.HasPrefix(h.menu(), "  Again") {
			t.Errorf("menu = %q", h.menu())
		}
	})
	t.Run("write", func(t *testing.T) {
		h := newHarness(t, "abc")
		out := h.path("copy.txt")
		h.mustRun("qw" + out + "<CR><Esc>")
		if got := h.readFile(out); got != "abc" {
			t.Errorf("written = %q", got)
		}
	})
	t.Run("write ignores default", func(t *testing.T) {
		h := newHarness(t, "abc")
		h.mustRun("qw<CR><Esc>")
		if _, err := os.Stat(h.clip); err == nil {
			t.Error("write with no name wrote the clip file")
		}
	})
	t.Run("exit without a name stays", func(t *testing.T) {
		h := newHarness(t, "")
		if err := h.run("iZ<Esc>qe"); err != nil {
			t.Fatalf("Run = %v, want nil", err)
		}
		if !strings.Contains(h.status(), "no file name") {
			t.Errorf("status = %q", h.status())
		}
	})
	t.Run("init edits another file", func(t *testing.T) {
		h := newHarness(t, "abc")
		other := h.path("other.txt")
		if err := os.WriteFile(other, []byte("second\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		h.mustRun("qi" + other + "<CR>")
		if h.s.Filename() != other {
			t.Errorf("Filename() = %q", h.s.Filename())
		}
		if got := h.text(); got != "second\n" {
			t.Errorf("text = %q", got)
		}
		if got := h.grid.Line(0); got != "second" {
			t.Errorf("Line(0) = %q", got)
		}
	})
}

// ============================================================================
// Shell, Resize and Settings
// ============================================================================

type fakeTerminal struct{ suspended, resumed int }

func (f *fakeTerminal) Suspend() error { f.suspended++; return nil }
func (f *fakeTerminal) Resume() error  { f.resumed++; return nil }

func TestShellEscape(t *testing.T) {
	term := &fakeTerminal{}
	ran := 0
	h := newHarness(t, "abc",
		WithTerminal(term),
		WithShell(func(context.Context) error { ran++; return nil }),
	)
	h.mustRun("s")
	if ran != 1 || term.suspended != 1 || term.resumed != 1 {
		t.Errorf("shell ran %d, suspended %d, resumed %d", ran, term.suspended, term.resumed)
	}
	if h.grid.Clears != 2 {
		t.Errorf("Clears = %d, want 2 (open and redraw after the shell)", h.grid.Clears)
	}
	if got := h.grid.Line(0); got != "abc" {
		t.Errorf("Line(0) = %q", got)
	}
}

func TestNotifyResize(t *testing.T) {
	h := newHarness(t, "abc")
	h.grid.Resize(100, 30)
	h.s.NotifyResize()
	h.mustRun("")
	if c, r := h.scr.Size(); c != 100 || r != 30 {
		t.Errorf("Size() = %d,%d; want 100,30", c, r)
	}
	if h.eng.Mapper().Columns() != 100 {
		t.Errorf("mapper columns = %d", h.eng.Mapper().Columns())
	}
	if got := h.grid.Line(0); got != "abc" {
		t.Errorf("Line(0) = %q", got)
	}
	if !strings.HasPrefix(h.grid.Line(29), "  Again") {
		t.Errorf("menu = %q", h.grid.Line(29))
	}
}

func TestResizeEventCarriesSize(t *testing.T) {
	h := newHarness(t, "abc")
	h.keys.Append(key.Event{Special: key.Resize, Cols: 60, Rows: 20})
	h.mustRun("")
	if c, r := h.scr.Size(); c != 60 || r != 20 {
		t.Errorf("Size() = %d,%d; want 60,20", c, r)
	}
}

func TestApplySettings(t *testing.T) {
	h := newHarness(t, "\tx")
	h.s.ApplySettings(Settings{TabWidth: 8, Wrap: false, ReverseMenu: false})
	h.mustRun("<End>")
	m := h.eng.Mapper()
	if m.TabWidth() != 8 || m.Wrap() {
		t.Errorf("mapper tab %d wrap %v", m.TabWidth(), m.Wrap())
	}
	if _, c := h.scr.Cursor(); c != 9 {
		t.Errorf("cursor column = %d, want 9", c)
	}
	if strings.Contains(h.grid.ReverseMask(23), "#") {
		t.Error("menu still reversed")
	}
}

// blockingSource blocks its first read until the context is cancelled,
// then reports the end of input.
type blockingSource struct {
	reading chan struct{}
	calls   int
}

func (b *blockingSource) NextEvent(ctx context.Context) (key.Event, error) {
	b.calls++
	if b.calls == 1 {
		close(b.reading)
		<-ctx.Done()
		return key.Event{}, ctx.Err()
	}
	return key.Event{}, errEndOfScript
}

var errEndOfScript = errors.New("end of script")

func TestNotifyResizeInterruptsRead(t *testing.T) {
	h := newHarness(t, "abc")
	src := &blockingSource{reading: make(chan struct{})}
	h.s.keys = src
	h.grid.Resize(90, 25)

	go func() {
		<-src.reading
		h.s.NotifyResize()
	}()
	err := h.s.Run(context.Background())
	if !errors.Is(err, errEndOfScript) {
		t.Fatalf("Run = %v, want the source error", err)
	}
	if c, r := h.scr.Size(); c != 90 || r != 25 {
		t.Errorf("Size() = %d,%d; want 90,25", c, r)
	}
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(t, "abc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestEditingSpilledDocument(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 300; i++ {
		fmt.Fprintf(&sb, "row %03d\n", i)
	}
	content := sb.String()
	h := newHarnessWith(t, content, []engine.Option{engine.WithMemorySpill(), engine.WithCapacity(32)})
	h.mustRun("150<CR>iX<Esc>qu")

	lines := strings.Split(content, "\n")
	lines[149] = "X" + lines[149]
	want := strings.Join(lines, "\n")
	if got := h.readFile(h.file); got != want {
		t.Errorf("saved file differs (len %d, want %d)", len(got), len(want))
	}
	row, _ := h.scr.Cursor()
	if got := h.grid.Line(row); got != "Xrow 150" {
		t.Errorf("cursor row shows %q", got)
	}
}

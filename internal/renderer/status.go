package renderer

import "strconv"

// Mode selects what the menu line shows.
type Mode int

const (
	ModeMain Mode = iota
	ModeInsert
	ModeExchange
	ModeBlock
	ModeQuit
)

// SizeDisplay selects what the status line reports after the file name.
type SizeDisplay int

const (
	SizeHidden SizeDisplay = iota
	SizeBytes
	SizeSaving
)

// menuCell is the width of one menu entry.
const menuCell = 10

// Command menus.
var (
	MainMenu  = []string{"Again", "Block", "Delete", "Find", "-find", "Get", "Insert", "Jump", "Length", "Quit", "Replace", "?replace", "Shell", "View", "Xchange"}
	BlockMenu = []string{"Buffer", "Copy", "Delete", "Put"}
	QuitMenu  = []string{"Abort", "Exit", "Init", "Update", "Write"}
)

type statusState struct {
	filename   string
	mode       Mode
	size       SizeDisplay
	message    string
	menuErased bool
	menuPage   int
	menuNext   int
}

// SetFilename sets the name shown on the status line.
func (s *Screen) SetFilename(name string) { s.status.filename = name }

// SetMode sets the menu line mode.
func (s *Screen) SetMode(m Mode) { s.status.mode = m }

// Mode returns the menu line mode.
func (s *Screen) Mode() Mode { return s.status.mode }

// ShowSize makes the next ShowStatus report the document size or a saving
// notice.
func (s *Screen) ShowSize(d SizeDisplay) { s.status.size = d }

// SetMessage sets a message shown on the status line by every ShowStatus
// until it is replaced. An empty msg clears it.
func (s *Screen) SetMessage(msg string) { s.status.message = msg }

// EraseMenu marks the status and menu lines as overwritten, so the next
// repaint redraws them.
func (s *Screen) EraseMenu() { s.status.menuErased = true }

// MenuErased reports whether the status and menu lines need redrawing.
func (s *Screen) MenuErased() bool { return s.status.menuErased }

// NextMenuPage advances the main menu to the entries that did not fit.
func (s *Screen) NextMenuPage() { s.status.menuPage = s.status.menuNext }

// ShowStatus redraws the status and menu lines.
func (s *Screen) ShowStatus() {
	st := &s.status
	s.plot(s.statusRow(), 0)
	st.menuErased = false
	if st.mode != ModeInsert {
		s.putString(" ---- ")
		s.putString(st.filename)
		switch st.size {
		case SizeBytes:
			if st.filename != "" {
				s.putString(", ")
			}
			s.putString(strconv.FormatInt(s.doc.Len(), 10) + " bytes")
		case SizeSaving:
			if st.filename != "" {
				s.putString(", ")
			}
			s.putString("saving...")
		}
		st.size = SizeHidden
		if st.message != "" {
			s.putString(" -- ")
			s.putString(st.message)
		}
	}
	s.ClearLine()

	s.plot(s.menuRow(), 0)
	switch st.mode {
	case ModeInsert:
		s.putString("[insert]")
	case ModeExchange:
		s.putString("[exchange]")
	case ModeBlock:
		s.showMenu(BlockMenu, 0)
	case ModeQuit:
		s.showMenu(QuitMenu, 0)
	default:
		s.showMenu(MainMenu, st.menuPage)
	}
	s.ClearLine()
}

// showMenu lays out menu entries from index first in fixed cells, ending
// with --more-- when some did not fit.
func (s *Screen) showMenu(items []string, first int) {
	s.setReverse(s.reverseMenu)
	s.plot(s.menuRow(), 0)
	if first >= len(items) {
		first = 0
	}
	i := first
	for i < len(items) {
		if s.ttyCol+menuCell+9 > s.cols {
			break
		}
		item := items[i]
		i++
		s.putString("  ")
		s.putString(item)
		for k := menuCell - len(item) - 2; k > 0; k-- {
			s.put(' ')
		}
	}
	for s.ttyCol < s.lastCol()-9 {
		s.put(' ')
	}
	if i < len(items) {
		s.status.menuNext = i
		s.putString("--more--")
	} else {
		s.status.menuNext = 0
	}
	for s.ttyCol < s.lastCol() {
		s.put(' ')
	}
	s.setReverse(false)
}

// Prompt support: the editor writes prompts and echoes typed text on the
// status and menu lines through these.

// PlotMenu moves the terminal cursor to col on the menu line.
func (s *Screen) PlotMenu(col int) { s.plot(s.menuRow(), col) }

// PlotStatus moves the terminal cursor to col on the status line.
func (s *Screen) PlotStatus(col int) { s.plot(s.statusRow(), col) }

// Put writes one byte at the terminal cursor.
func (s *Screen) Put(c byte) {
	if s.ttyCol < s.lastCol() {
		s.put(c)
	}
}

// PutString writes str at the terminal cursor.
func (s *Screen) PutString(str string) { s.putString(str) }

// Column returns the terminal cursor column.
func (s *Screen) Column() int { return s.ttyCol }

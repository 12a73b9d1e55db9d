package key

import "fmt"

// Special identifies a key that does not produce a data byte.
type Special uint8

const (
	// None marks a plain byte event.
	None Special = iota

	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Insert
	Delete
	Escape

	// Start moves to the start of the display line.
	Start
	// Find is the terminal Find key (ESC [ 1 ~).
	Find
	// Select is the terminal Select key (ESC [ 4 ~).
	Select

	// Resize reports a change of terminal geometry or a redraw request.
	Resize
)

var specialNames = map[Special]string{
	None:     "None",
	Up:       "Up",
	Down:     "Down",
	Left:     "Left",
	Right:    "Right",
	Home:     "Home",
	End:      "End",
	PageUp:   "PageUp",
	PageDown: "PageDown",
	Insert:   "Insert",
	Delete:   "Delete",
	Escape:   "Escape",
	Start:    "Start",
	Find:     "Find",
	Select:   "Select",
	Resize:   "Resize",
}

// String returns the key name.
func (s Special) String() string {
	if name, ok := specialNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Special(%d)", uint8(s))
}

// Event is a single key press: either a data byte or a special key.
type Event struct {
	Special Special
	Byte    byte

	// Cols and Rows carry the reported terminal size on Resize events
	// when the source knows it. Zero means unknown.
	Cols, Rows int
}

// Byte returns a data byte event.
func Byte(c byte) Event {
	return Event{Byte: c}
}

// Key returns a special key event.
func Key(s Special) Event {
	return Event{Special: s}
}

// IsByte reports whether e carries a data byte.
func (e Event) IsByte() bool {
	return e.Special == None
}

// Is reports whether e is the data byte c.
func (e Event) Is(c byte) bool {
	return e.Special == None && e.Byte == c
}

// IsKey reports whether e is the special key s.
func (e Event) IsKey(s Special) bool {
	return e.Special == s && s != None
}

// String returns a readable form of the event.
func (e Event) String() string {
	if e.Special != None {
		return "<" + e.Special.String() + ">"
	}
	switch {
	case e.Byte < 0x20:
		return fmt.Sprintf("^%c", e.Byte+'@')
	case e.Byte == 0x7f:
		return "^?"
	case e.Byte > 0x7e:
		return fmt.Sprintf("\\x%02x", e.Byte)
	}
	return string(rune(e.Byte))
}

// Control returns the byte produced by Ctrl and the letter c.
func Control(c byte) byte {
	return c & 0x1f
}

// FromByte maps a raw input byte to an event. The WordStar control keys
// become cursor keys and Ctrl-Q becomes the Home prefix; every other byte
// is passed through.
func FromByte(c byte) Event {
	switch c {
	case Control('S'):
		return Key(Left)
	case Control('D'):
		return Key(Right)
	case Control('E'):
		return Key(Up)
	case Control('X'):
		return Key(Down)
	case Control('P'), Control('U'), Control('R'):
		return Key(PageUp)
	case Control('C'), Control('N'):
		return Key(PageDown)
	case Control('Q'):
		return Key(Home)
	}
	return Byte(c)
}

// AfterPrefix returns the key meant by ev when it follows the Home prefix.
func AfterPrefix(ev Event) Event {
	switch ev.Special {
	case Up:
		return Key(PageUp)
	case Down:
		return Key(PageDown)
	case Left:
		return Key(Start)
	case Right:
		return Key(End)
	case Home:
		return Key(Escape)
	}
	return ev
}

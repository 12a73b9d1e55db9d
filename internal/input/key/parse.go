package key

import (
	"fmt"
	"strings"
)

// Parse converts a key notation string into events. Plain characters stand
// for themselves; angle brackets name special keys or control bytes:
//
//	<Up> <PageDown> <Esc> <Ins> <Del> <Find> <Select> <Resize>
//	<CR> <Tab> <BS> <lt>
//	<C-w>   control byte (Ctrl-W)
func Parse(notation string) ([]Event, error) {
	var out []Event
	for i := 0; i < len(notation); i++ {
		c := notation[i]
		if c != '<' {
			out = append(out, Byte(c))
			continue
		}
		end := strings.IndexByte(notation[i:], '>')
		if end < 0 {
			return nil, fmt.Errorf("key: unterminated %q", notation[i:])
		}
		name := notation[i+1 : i+end]
		ev, err := parseName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
		i += end
	}
	return out, nil
}

// MustParse is like Parse but panics on error.
func MustParse(notation string) []Event {
	evs, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return evs
}

var aliases = map[string]Event{
	"esc":    Key(Escape),
	"escape": Key(Escape),
	"ins":    Key(Insert),
	"del":    Key(Delete),
	"pgup":   Key(PageUp),
	"pgdn":   Key(PageDown),
	"cr":     Byte('\r'),
	"enter":  Byte('\r'),
	"nl":     Byte('\n'),
	"tab":    Byte('\t'),
	"bs":     Byte(0x08),
	"lt":     Byte('<'),
}

func parseName(name string) (Event, error) {
	lower := strings.ToLower(name)
	if ev, ok := aliases[lower]; ok {
		return ev, nil
	}
	if strings.HasPrefix(lower, "c-") && len(name) == 3 {
		return Byte(Control(strings.ToUpper(name[2:])[0])), nil
	}
	for s, n := range specialNames {
		if s != None && strings.EqualFold(n, name) {
			return Key(s), nil
		}
	}
	return Event{}, fmt.Errorf("key: unknown key name %q", name)
}

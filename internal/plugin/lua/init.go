package lua

import (
	"fmt"
	"math"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/aedit/internal/config/loader"
)

// InitLoader runs an init script in a fresh sandboxed state and collects
// the settings it makes through aedit.set(name, value).
type InitLoader struct {
	allowed map[string]bool
	opts    []StateOption
}

// NewInitLoader returns a loader accepting the dotted setting names in
// allowed. An empty list accepts any name.
func NewInitLoader(allowed []string, opts ...StateOption) *InitLoader {
	l := &InitLoader{opts: opts}
	if len(allowed) > 0 {
		l.allowed = make(map[string]bool, len(allowed))
		for _, name := range allowed {
			l.allowed[name] = true
		}
	}
	return l
}

// LoadFrom runs the script at path and returns the settings as a nested
// map keyed by section. A missing script yields nil, nil.
func (l *InitLoader) LoadFrom(path string) (map[string]any, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("init script %s: %w", path, err)
	}

	state := NewState(l.opts...)
	defer state.Close()

	settings := make(map[string]any)
	values := make(map[string]any)
	var setErr error

	state.RegisterModule("aedit", map[string]lua.LGFunction{
		"set": func(L *lua.LState) int {
			name := L.CheckString(1)
			if l.allowed != nil && !l.allowed[name] {
				setErr = fmt.Errorf("%w: %s", ErrUnknownSetting, name)
				L.RaiseError("%s", setErr.Error())
				return 0
			}
			v, ok := fromLua(L.CheckAny(2))
			if !ok {
				L.ArgError(2, "boolean, number or string expected")
				return 0
			}
			values[name] = v
			loader.SetByPath(settings, name, v)
			return 0
		},
		"get": func(L *lua.LState) int {
			v, ok := values[L.CheckString(1)]
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(toLua(v))
			return 1
		},
	})

	if err := state.DoFile(path); err != nil {
		if setErr != nil {
			return nil, fmt.Errorf("init script %s: %w", path, setErr)
		}
		return nil, fmt.Errorf("init script %s: %w", path, err)
	}
	return settings, nil
}

// fromLua converts a script value to the types the config loaders
// produce: bool, int64 for integral numbers, float64, string.
func fromLua(v lua.LValue) (any, bool) {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val), true
	case lua.LNumber:
		f := float64(val)
		if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
			return int64(f), true
		}
		return f, true
	case lua.LString:
		return string(val), true
	}
	return nil, false
}

func toLua(v any) lua.LValue {
	switch val := v.(type) {
	case bool:
		return lua.LBool(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	}
	return lua.LNil
}

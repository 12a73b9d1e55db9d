package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L   *lua.LState
	log Logger
}

// NewSandbox creates a new sandbox for the Lua state. Print output goes
// to log, or nowhere when log is nil.
func NewSandbox(L *lua.LState, log Logger) *Sandbox {
	return &Sandbox{L: L, log: log}
}

// Install removes functions that load code from disk or strings and
// replaces print.
func (s *Sandbox) Install() {
	dangerousFuncs := []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"require",
		"module",
	}
	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installSafePrint()
}

// installSafePrint replaces print with a version writing to the logger.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		if s.log != nil {
			s.log.Info("lua: %s", strings.Join(parts, "\t"))
		}
		return 0
	}))
}

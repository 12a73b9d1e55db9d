package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Info(msg string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(msg, args...))
}

// ============================================================================
// State
// ============================================================================

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", v)
	}
	if state.LuaState() == nil {
		t.Error("LuaState() is nil")
	}
}

func TestStateDoStringError(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(`error("boom")`); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("DoString(error) = %v", err)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s is available (%s)", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if v := state.GetGlobal(name); v == glua.LNil {
			t.Errorf("%s missing", name)
		}
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	log := &captureLogger{}
	state := NewState(WithLogger(log))
	defer state.Close()

	if err := state.DoString(`print("tabs", 8)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if len(log.lines) != 1 || log.lines[0] != "lua: tabs\t8" {
		t.Errorf("log = %q", log.lines)
	}

	quiet := NewState()
	defer quiet.Close()
	if err := quiet.DoString(`print("nowhere")`); err != nil {
		t.Errorf("print without a logger: %v", err)
	}
}

func TestExecutionTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	start := time.Now()
	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString(loop) = %v, want ErrExecutionTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestStateClose(t *testing.T) {
	state := NewState()
	if err := state.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close = %v", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal after Close = %v", v)
	}
	if state.RegisterModule("m", nil) != nil {
		t.Error("RegisterModule after Close returned a table")
	}
}

// ============================================================================
// Init scripts
// ============================================================================

func writeScript(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

var allowed = []string{"editor.tabs", "editor.wrap", "log.level", "display.scale"}

func TestInitLoaderSettings(t *testing.T) {
	path := writeScript(t, `
aedit.set("editor.tabs", 8)
if aedit.get("editor.tabs") == 8 then
    aedit.set("editor.wrap", false)
end
aedit.set("log.level", "debug")
aedit.set("display.scale", 1.5)
`)
	got, err := NewInitLoader(allowed).LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	editor, ok := got["editor"].(map[string]any)
	if !ok {
		t.Fatalf("editor section = %v", got["editor"])
	}
	if editor["tabs"] != int64(8) {
		t.Errorf("editor.tabs = %v (%T)", editor["tabs"], editor["tabs"])
	}
	if editor["wrap"] != false {
		t.Errorf("editor.wrap = %v", editor["wrap"])
	}
	if v := got["log"].(map[string]any)["level"]; v != "debug" {
		t.Errorf("log.level = %v", v)
	}
	if v := got["display"].(map[string]any)["scale"]; v != 1.5 {
		t.Errorf("display.scale = %v", v)
	}
}

func TestInitLoaderGetUnset(t *testing.T) {
	path := writeScript(t, `
if aedit.get("editor.tabs") ~= nil then error("expected nil") end
`)
	if _, err := NewInitLoader(allowed).LoadFrom(path); err != nil {
		t.Errorf("LoadFrom: %v", err)
	}
}

func TestInitLoaderMissingScript(t *testing.T) {
	got, err := NewInitLoader(allowed).LoadFrom(filepath.Join(t.TempDir(), "init.lua"))
	if err != nil || got != nil {
		t.Errorf("LoadFrom(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestInitLoaderUnknownSetting(t *testing.T) {
	path := writeScript(t, `aedit.set("editor.colour", "red")`)
	_, err := NewInitLoader(allowed).LoadFrom(path)
	if !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("LoadFrom = %v, want ErrUnknownSetting", err)
	}

	// An empty allow list takes any name.
	got, err := NewInitLoader(nil).LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom without allow list: %v", err)
	}
	if v := got["editor"].(map[string]any)["colour"]; v != "red" {
		t.Errorf("editor.colour = %v", v)
	}
}

func TestInitLoaderBadValue(t *testing.T) {
	path := writeScript(t, `aedit.set("editor.tabs", {})`)
	_, err := NewInitLoader(allowed).LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "expected") {
		t.Errorf("LoadFrom = %v", err)
	}
	if errors.Is(err, ErrUnknownSetting) {
		t.Error("bad value reported as unknown setting")
	}
}

func TestInitLoaderScriptError(t *testing.T) {
	path := writeScript(t, `aedit.set("editor.tabs", 8`)
	_, err := NewInitLoader(allowed).LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("LoadFrom = %v", err)
	}
}

func TestInitLoaderSandboxed(t *testing.T) {
	path := writeScript(t, `os.exit(1)`)
	if _, err := NewInitLoader(allowed).LoadFrom(path); err == nil {
		t.Error("script reached os")
	}
}

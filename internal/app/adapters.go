package app

import (
	"context"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/dshills/aedit/internal/config"
	"github.com/dshills/aedit/internal/editor"
)

// defaultShell is run by the shell escape when $SHELL is unset.
const defaultShell = "/bin/sh"

// systemClipboard copies block saves to the desktop clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func systemClipboardSupported() bool { return !clipboard.Unsupported }

// shellRunner returns a ShellFunc running shell interactively on the
// process's own terminal. The session suspends the screen around it.
func shellRunner(shell string) editor.ShellFunc {
	if shell == "" {
		shell = defaultShell
	}
	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, shell)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// scriptLogger sends init script output to the application log, which may
// not exist yet when the script first runs.
type scriptLogger struct {
	app *Application
}

func (l scriptLogger) Info(msg string, args ...any) {
	l.app.Logger().WithComponent("lua").Info(msg, args...)
}

// settingsFrom extracts the settings a running session can adopt.
func settingsFrom(cfg *config.Config) editor.Settings {
	return editor.Settings{
		TabWidth:    cfg.Editor.Tabs,
		Wrap:        cfg.Editor.Wrap,
		ReverseMenu: cfg.Display.ReverseMenu,
	}
}

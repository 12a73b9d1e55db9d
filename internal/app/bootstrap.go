package app

import (
	"os"

	"github.com/google/uuid"

	"github.com/dshills/aedit/internal/config"
	"github.com/dshills/aedit/internal/editor"
	"github.com/dshills/aedit/internal/engine"
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/plugin/lua"
	"github.com/dshills/aedit/internal/renderer"
	"github.com/dshills/aedit/internal/renderer/backend"
)

// bootstrap builds the components in dependency order. On error the
// components built so far are left for release.
func (app *Application) bootstrap() error {
	// 1. Configuration
	app.loader = config.NewLoader(app.configOptions()...)
	cfg, err := app.loader.Load()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Log
	log, out, err := openLog(cfg.Log)
	if err != nil {
		return &InitError{Component: "log", Err: err}
	}
	app.id = uuid.NewString()
	app.log = log.WithField("session", app.id)
	app.logOut = out
	app.log.Info("starting, config from %v", cfg.Sources)

	// 3. Text engine
	app.eng, err = engine.New(app.engineOptions(cfg)...)
	if err != nil {
		return &InitError{Component: "engine", Err: err}
	}

	// 4. Terminal and keyboard
	if err := app.openTerminal(cfg); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	// 5. Screen
	app.screen = renderer.New(app.term, app.eng, app.eng.Mapper(),
		renderer.WithReverseMenu(cfg.Display.ReverseMenu),
		renderer.WithLogger(app.log.WithComponent("renderer")),
	)

	// 6. Editing session
	app.session = editor.New(app.eng, app.screen, app.keys, app.sessionOptions(cfg)...)
	return nil
}

func (app *Application) configOptions() []config.Option {
	var opts []config.Option
	if app.opts.ConfigDir != "" {
		opts = append(opts, config.WithDir(app.opts.ConfigDir))
	}
	if app.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(app.opts.ConfigPath))
	}
	if app.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(app.opts.Environ))
	}
	if !app.opts.NoScript {
		opts = append(opts, config.WithScriptLoader(
			lua.NewInitLoader(config.SettingNames(), lua.WithLogger(scriptLogger{app})),
		))
	}
	if len(app.opts.Overrides) > 0 {
		opts = append(opts, config.WithOverrides(app.opts.Overrides))
	}
	return opts
}

func (app *Application) engineOptions(cfg *config.Config) []engine.Option {
	opts := []engine.Option{
		engine.WithTabWidth(cfg.Editor.Tabs),
		engine.WithWrap(cfg.Editor.Wrap),
		engine.WithCapacity(int64(cfg.Editor.Capacity)),
		engine.WithSpillDir(cfg.Spill.Dir),
		engine.WithLogger(app.log.WithComponent("engine")),
	}
	if cfg.Display.Cols > 0 {
		opts = append(opts, engine.WithColumns(cfg.Display.Cols))
	}
	if cfg.Spill.Memory {
		opts = append(opts, engine.WithMemorySpill())
	}
	return opts
}

// openTerminal picks the terminal and key source. The ANSI terminal reads
// keys through a Decoder on stdin; tcell decodes its own.
func (app *Application) openTerminal(cfg *config.Config) error {
	if app.opts.Terminal != nil {
		app.term = app.opts.Terminal
		app.keys = app.opts.Keys
		if app.keys == nil {
			src, ok := app.term.(key.Source)
			if !ok {
				return errNoKeySource
			}
			app.keys = src
		}
		return nil
	}

	switch cfg.Display.Backend {
	case config.BackendTcell:
		t, err := backend.NewTcell()
		if err != nil {
			return err
		}
		app.term, app.keys = t, t
	default:
		app.term = backend.NewANSI(os.Stdin, os.Stdout,
			backend.WithSize(cfg.Display.Cols, cfg.Display.Rows))
		app.keys = key.NewDecoder(os.Stdin)
	}
	app.log.Debug("terminal backend %s", cfg.Display.Backend)
	return nil
}

func (app *Application) sessionOptions(cfg *config.Config) []editor.Option {
	opts := []editor.Option{
		editor.WithFile(app.opts.File),
		editor.WithClipFile(cfg.Clipboard.File),
		editor.WithTerminal(app.term),
		editor.WithLogger(app.log.WithComponent("editor")),
	}

	shell := app.opts.Shell
	if shell == nil {
		shell = shellRunner(os.Getenv("SHELL"))
	}
	opts = append(opts, editor.WithShell(shell))

	if cfg.Clipboard.System {
		if cb := app.clipboard(); cb != nil {
			opts = append(opts, editor.WithClipboard(cb))
		}
	}
	return opts
}

// clipboard returns the clipboard block saves are copied to, or nil when
// the system has none.
func (app *Application) clipboard() editor.Clipboard {
	if app.opts.Clipboard != nil {
		return app.opts.Clipboard
	}
	if !systemClipboardSupported() {
		app.log.Warn("clipboard.system is set but no system clipboard is available")
		return nil
	}
	return systemClipboard{}
}

// release frees whatever bootstrap built. It is used when New fails.
func (app *Application) release() {
	if app.eng != nil {
		_ = app.eng.Close()
	}
	if app.logOut != nil {
		_ = app.logOut.Close()
	}
}

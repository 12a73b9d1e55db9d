package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/dshills/aedit/internal/config"
	"github.com/dshills/aedit/internal/editor"
)

// Run initializes the terminal and edits until the user quits, the input
// ends or a fatal error occurs. Quitting returns ErrQuit; the end of input
// returns nil. The terminal is restored and every component released
// before Run returns, so an Application runs at most once.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	if app.closed.Load() {
		return ErrClosed
	}
	defer func() {
		if shutErr := app.Shutdown(); err == nil {
			err = shutErr
		}
	}()

	if err := app.term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	app.mu.Lock()
	app.initialized = true
	app.mu.Unlock()
	app.screen.Refit()

	stopResize := notifyResize(ctx, app.session.NotifyResize)
	defer stopResize()

	if !app.opts.NoWatch {
		app.watchConfig()
	}

	app.log.Info("editing %q", app.opts.File)
	err = app.runSession(ctx)
	switch {
	case errors.Is(err, editor.ErrQuit):
		app.log.Info("quit")
		return ErrQuit
	case err != nil:
		app.log.Error("session ended: %v", err)
		return NewComponentError("editor", "run", err)
	}
	app.log.Info("input closed")
	return nil
}

// runSession runs the session, turning a panic into an error so the
// terminal is still restored.
func (app *Application) runSession(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()
	return app.session.Run(ctx)
}

// watchConfig reloads the configuration when its files change and hands
// the display settings to the session. Settings that need a restart are
// ignored until then.
func (app *Application) watchConfig() {
	dir := app.opts.ConfigDir
	if dir == "" {
		dir = config.DefaultDir()
	}
	if app.opts.ConfigPath != "" {
		dir = filepath.Dir(app.opts.ConfigPath)
	}
	if _, err := os.Stat(dir); err != nil {
		app.log.Debug("not watching config: %v", err)
		return
	}

	w, err := app.loader.Watch(app.reload)
	if err != nil {
		app.log.Warn("not watching config: %v", err)
		return
	}
	app.mu.Lock()
	app.watch = w
	app.mu.Unlock()
}

// reload adopts a freshly loaded configuration. A bad configuration keeps
// the current settings.
func (app *Application) reload(cfg *config.Config, err error) {
	if err != nil {
		app.log.Warn("config reload: %v", err)
		return
	}
	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()
	app.log.Info("config reloaded from %v", cfg.Sources)
	app.session.ApplySettings(settingsFrom(cfg))
}

// Shutdown restores the terminal and releases every component. It is safe
// to call more than once; later calls return the first result.
func (app *Application) Shutdown() error {
	app.shutdown.Do(func() {
		app.closed.Store(true)
		var errs ErrorList

		app.mu.Lock()
		w, initialized := app.watch, app.initialized
		app.mu.Unlock()

		if w != nil {
			errs.Add(w.Close())
		}
		if initialized {
			app.term.Shutdown()
		}
		if app.eng != nil {
			if err := app.eng.Close(); err != nil {
				errs.Add(NewComponentError("engine", "close", err))
			}
		}
		app.Logger().Info("stopped")
		if app.logOut != nil {
			errs.Add(app.logOut.Close())
		}
		app.shutdownErr = errs.AsError()
	})
	return app.shutdownErr
}

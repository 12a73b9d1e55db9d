// Package app wires the editor together: it loads the configuration, opens
// the log, builds the text engine, terminal, screen and editing session,
// and runs the session until the user quits.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/aedit/internal/config"
	"github.com/dshills/aedit/internal/config/watcher"
	"github.com/dshills/aedit/internal/editor"
	"github.com/dshills/aedit/internal/engine"
	"github.com/dshills/aedit/internal/input/key"
	"github.com/dshills/aedit/internal/renderer"
	"github.com/dshills/aedit/internal/renderer/backend"
)

// Application owns every component of one editing session.
type Application struct {
	mu sync.Mutex

	cfg    *config.Config
	loader *config.Loader
	log    *Logger
	logOut io.Closer
	id     string

	term    backend.Terminal
	keys    key.Source
	eng     *engine.Engine
	screen  *renderer.Screen
	session *editor.Session
	watch   *watcher.Watcher

	running     atomic.Bool
	closed      atomic.Bool
	initialized bool
	shutdown    sync.Once
	shutdownErr error

	opts Options
}

// Options configures the application.
type Options struct {
	// File is the file opened on startup. Empty starts without a name.
	File string

	// ConfigDir is searched for config files and init.lua. Empty means
	// config.DefaultDir.
	ConfigDir string

	// ConfigPath names a config file explicitly. It must exist.
	ConfigPath string

	// Overrides take precedence over every other configuration layer.
	// Keys are dotted setting names such as "editor.tabs".
	Overrides map[string]any

	// Environ replaces the process environment when non-nil.
	Environ []string

	// NoScript skips init.lua.
	NoScript bool

	// NoWatch disables reloading settings when the config files change.
	NoWatch bool

	// Terminal replaces the terminal chosen by display.backend. Keys must
	// be set with it unless Terminal is itself a key.Source.
	Terminal backend.Terminal
	Keys     key.Source

	// Clipboard replaces the system clipboard used when clipboard.system
	// is set.
	Clipboard editor.Clipboard

	// Shell replaces the interactive shell run by the shell escape.
	Shell editor.ShellFunc
}

// New loads the configuration and builds every component. Nothing touches
// the terminal until Run.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.release()
		return nil, err
	}
	return app, nil
}

// Config returns the configuration the application was built with.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Session returns the editing session.
func (app *Application) Session() *editor.Session { return app.session }

// ID returns the identifier attached to every log line of this run.
func (app *Application) ID() string { return app.id }

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool { return app.running.Load() }

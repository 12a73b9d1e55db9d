package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/aedit/internal/config/loader"
	"github.com/dshills/aedit/internal/config/watcher"
)

// Display backends.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// File names looked up in the configuration directory. The first config
// file found wins.
var (
	configFiles = []string{"config.toml", "config.yaml", "config.yml"}
	initScript  = "init.lua"
)

// Config holds every setting the editor reads at startup.
type Config struct {
	Editor    Editor    `toml:"editor"`
	Display   Display   `toml:"display"`
	Clipboard Clipboard `toml:"clipboard"`
	Spill     Spill     `toml:"spill"`
	Log       Log       `toml:"log"`

	// Sources lists the files that contributed settings, lowest layer
	// first.
	Sources []string `toml:"-"`
}

// Editor settings.
type Editor struct {
	Tabs     int  `toml:"tabs"`
	Wrap     bool `toml:"wrap"`
	Capacity int  `toml:"capacity"`
}

// Display settings. Zero rows or columns means ask the terminal.
type Display struct {
	ReverseMenu bool   `toml:"reverseMenu"`
	Rows        int    `toml:"rows"`
	Cols        int    `toml:"cols"`
	Backend     string `toml:"backend"`
}

// Clipboard settings. File is the default target of block saves; System
// also copies block saves to the desktop clipboard.
type Clipboard struct {
	File   string `toml:"file"`
	System bool   `toml:"system"`
}

// Spill settings. An empty Dir means the system temporary directory.
type Spill struct {
	Dir    string `toml:"dir"`
	Memory bool   `toml:"memory"`
}

// Log settings. An empty File disables logging.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: Editor{
			Tabs:     4,
			Wrap:     true,
			Capacity: 32768,
		},
		Display: Display{
			ReverseMenu: true,
			Backend:     BackendANSI,
		},
		Clipboard: Clipboard{
			File: "~/.aedit.clp",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// SettingNames returns the dotted names of every setting, sorted.
func SettingNames() []string {
	m, err := toMap(Default())
	if err != nil {
		return nil
	}
	var names []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			if sub, ok := v.(map[string]any); ok {
				walk(prefix+k+".", sub)
				continue
			}
			names = append(names, prefix+k)
		}
	}
	walk("", m)
	sort.Strings(names)
	return names
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, path, msg string, v any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
		}
	}
	check(c.Editor.Tabs >= 1 && c.Editor.Tabs <= 32, "editor.tabs", "must be between 1 and 32", c.Editor.Tabs)
	check(c.Editor.Capacity >= 16, "editor.capacity", "must be at least 16", c.Editor.Capacity)
	check(c.Display.Rows == 0 || c.Display.Rows >= 4, "display.rows", "must be 0 or at least 4", c.Display.Rows)
	check(c.Display.Cols == 0 || c.Display.Cols >= 20, "display.cols", "must be 0 or at least 20", c.Display.Cols)
	check(c.Display.Backend == BackendANSI || c.Display.Backend == BackendTcell,
		"display.backend", `must be "ansi" or "tcell"`, c.Display.Backend)
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		check(false, "log.level", "must be debug, info, warn or error", c.Log.Level)
	}
	return errors.Join(errs...)
}

// ScriptLoader runs an init script and returns the settings it made.
// A missing script yields nil, nil.
type ScriptLoader interface {
	LoadFrom(path string) (map[string]any, error)
}

// Loader builds a Config from its layers, lowest first: built-in
// defaults, the config file, the environment, the init script and the
// overrides given by the caller (command line flags).
type Loader struct {
	mu        sync.Mutex
	dir       string
	file      string
	fs        loader.FileSystem
	env       *loader.EnvLoader
	script    ScriptLoader
	overrides map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithDir sets the directory searched for config files and init.lua.
func WithDir(dir string) Option {
	return func(l *Loader) {
		l.dir = dir
	}
}

// WithFile names the config file explicitly. Unlike files found in the
// directory, it must exist.
func WithFile(path string) Option {
	return func(l *Loader) {
		l.file = path
	}
}

// WithFileSystem reads config files through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithEnviron reads environ instead of the process environment.
func WithEnviron(environ []string) Option {
	return func(l *Loader) {
		l.env = loader.NewEnvLoader("AEDIT_").WithEnviron(environ)
	}
}

// WithScriptLoader runs init.lua from the config directory through s.
func WithScriptLoader(s ScriptLoader) Option {
	return func(l *Loader) {
		l.script = s
	}
}

// WithOverrides sets the highest layer. Keys are dotted setting names.
func WithOverrides(overrides map[string]any) Option {
	return func(l *Loader) {
		l.overrides = overrides
	}
}

// NewLoader returns a Loader. The directory defaults to DefaultDir.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader("AEDIT_"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.dir == "" {
		l.dir = DefaultDir()
	}
	return l
}

// Load is shorthand for NewLoader(opts...).Load().
func Load(opts ...Option) (*Config, error) {
	return NewLoader(opts...).Load()
}

// Load merges every layer and returns the validated result.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	var sources []string

	path, data, err := l.loadFile()
	if err != nil {
		return nil, err
	}
	if data != nil {
		merged = loader.DeepMerge(merged, data)
		sources = append(sources, path)
	}

	data, err = l.env.Load()
	if err != nil {
		return nil, &SourceError{Source: "environment", Err: err}
	}
	merged = loader.DeepMerge(merged, data)

	if l.script != nil {
		script := filepath.Join(l.dir, initScript)
		data, err := l.script.LoadFrom(script)
		if err != nil {
			return nil, &SourceError{Source: script, Err: err}
		}
		if data != nil {
			merged = loader.DeepMerge(merged, data)
			sources = append(sources, script)
		}
	}

	if len(l.overrides) > 0 {
		flags := make(map[string]any)
		for name, v := range l.overrides {
			loader.SetByPath(flags, name, v)
		}
		merged = loader.DeepMerge(merged, flags)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	cfg.expandHome()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile returns the explicit config file or the first one found in
// the directory. No file yields nil data.
func (l *Loader) loadFile() (string, map[string]any, error) {
	candidates := l.configPaths()
	for _, path := range candidates {
		fl, err := loader.ForPath(l.fs, path)
		if err != nil {
			return "", nil, &SourceError{Source: path, Err: err}
		}
		data, err := fl.LoadFrom(path)
		if err != nil {
			return "", nil, &SourceError{Source: path, Err: err}
		}
		if data != nil {
			return path, data, nil
		}
	}
	if l.file != "" {
		return "", nil, &SourceError{Source: l.file, Err: os.ErrNotExist}
	}
	return "", nil, nil
}

func (l *Loader) configPaths() []string {
	if l.file != "" {
		return []string{l.file}
	}
	paths := make([]string, len(configFiles))
	for i, name := range configFiles {
		paths[i] = filepath.Join(l.dir, name)
	}
	return paths
}

// Paths returns every file whose change can alter the loaded Config.
func (l *Loader) Paths() []string {
	paths := l.configPaths()
	if l.script != nil {
		paths = append(paths, filepath.Join(l.dir, initScript))
	}
	return paths
}

// Watch reloads the configuration whenever one of Paths changes and
// passes the result to onChange. Load errors are passed along with a nil
// Config. The returned watcher must be closed by the caller.
func (l *Loader) Watch(onChange func(*Config, error), opts ...watcher.Option) (*watcher.Watcher, error) {
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}
	for _, path := range l.Paths() {
		if err := w.Watch(path); err != nil {
			w.Close()
			return nil, fmt.Errorf("config watch %s: %w", path, err)
		}
	}
	w.OnChange(func(watcher.Event) {
		onChange(l.Load())
	})
	return w, nil
}

// DefaultDir returns the default configuration directory.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aedit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "aedit")
}

func (c *Config) expandHome() {
	for _, p := range []*string{&c.Clipboard.File, &c.Spill.Dir, &c.Log.File} {
		*p = expandHome(*p)
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// toMap converts c to the nested map form the loaders produce.
func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return m, nil
}

// fromMap decodes a merged settings map. Unknown names are ignored; a
// value of the wrong type is an ErrTypeMismatch.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
	}
	return &c, nil
}

// Package config loads the editor settings.
//
// Settings are merged from layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Command line overrides  │  ← Highest priority
//	├─────────────────────────────┤
//	│  4. init.lua                │  ← aedit.set("editor.tabs", 8)
//	├─────────────────────────────┤
//	│  3. Environment             │  ← AEDIT_*, COLUMNS, LINES
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/aedit/config.toml (.yaml, .yml)
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment loading, map merging
//   - watcher: fsnotify-based change notification
//
// # Basic Usage
//
//	cfg, err := config.Load(config.WithOverrides(map[string]any{
//	    "editor.tabs": 8,
//	}))
//	if err != nil {
//	    return err
//	}
//
// Loader.Watch reloads the settings whenever one of the source files
// changes.
package config

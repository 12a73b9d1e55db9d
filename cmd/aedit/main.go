// Package main is the entry point for the aedit editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/aedit/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags turns the command line into Options. done is set when the
// program should exit with code without editing.
func parseFlags(args []string) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("aedit", flag.ContinueOnError)

	var (
		showVersion bool
		showHelp    bool
		logLevel    string
		logFile     string
		backendName string
		tabs        int
		noWrap      bool
		plainMenu   bool
		memorySpill bool
		system      bool
	)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.ConfigDir, "config-dir", "", "Directory holding config files and init.lua")
	fs.BoolVar(&opts.NoScript, "no-script", false, "Do not run init.lua")
	fs.BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload settings when config files change")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&logFile, "log-file", "", "Write the log to this file")
	fs.StringVar(&backendName, "backend", "ansi", "Terminal backend (ansi, tcell)")
	fs.IntVar(&tabs, "tabs", 4, "Tab stop interval")
	fs.IntVar(&tabs, "t", 4, "Tab stop interval (shorthand)")
	fs.BoolVar(&noWrap, "no-wrap", false, "Truncate long lines instead of wrapping them")
	fs.BoolVar(&plainMenu, "plain-menu", false, "Show menus without reverse video")
	fs.BoolVar(&memorySpill, "memory-spill", false, "Keep text outside the window in memory instead of a spill file")
	fs.BoolVar(&system, "system-clipboard", false, "Copy saved blocks to the system clipboard")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "aedit - a small full-screen text editor\n\n")
		fmt.Fprintf(out, "Usage: aedit [options] [file]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  aedit                       Start without a file name\n")
		fmt.Fprintf(out, "  aedit notes.txt             Edit a file\n")
		fmt.Fprintf(out, "  aedit -t 8 --no-wrap a.c    Tabs every 8 columns, no wrapping\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showHelp {
		fs.Usage()
		return opts, 0, true
	}

	if showVersion {
		fmt.Printf("aedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.File = fs.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: only one file can be edited at a time\n")
		return opts, 2, true
	}

	// Flags given on the command line override every other setting.
	overrides := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			overrides["log.level"] = logLevel
		case "log-file":
			overrides["log.file"] = logFile
		case "backend":
			overrides["display.backend"] = backendName
		case "tabs", "t":
			overrides["editor.tabs"] = tabs
		case "no-wrap":
			overrides["editor.wrap"] = !noWrap
		case "plain-menu":
			overrides["display.reverseMenu"] = !plainMenu
		case "memory-spill":
			overrides["spill.memory"] = memorySpill
		case "system-clipboard":
			overrides["clipboard.system"] = system
		}
	})
	opts.Overrides = overrides

	return opts, 0, false
}

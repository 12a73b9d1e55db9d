package main

import (
	"testing"
)

func TestParseFlags_File(t *testing.T) {
	opts, _, done := parseFlags([]string{"notes.txt"})
	if done {
		t.Fatal("expected to continue")
	}
	if opts.File != "notes.txt" {
		t.Errorf("File = %q", opts.File)
	}
	if len(opts.Overrides) != 0 {
		t.Errorf("expected no overrides, got %v", opts.Overrides)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	opts, _, done := parseFlags([]string{
		"-t", "8", "--no-wrap", "--plain-menu", "--memory-spill",
		"--backend", "tcell", "--log-level", "debug", "-c", "/etc/aedit.toml", "a.c",
	})
	if done {
		t.Fatal("expected to continue")
	}
	want := map[string]any{
		"editor.tabs":         8,
		"editor.wrap":         false,
		"display.reverseMenu": false,
		"spill.memory":        true,
		"display.backend":     "tcell",
		"log.level":           "debug",
	}
	for k, v := range want {
		if got := opts.Overrides[k]; got != v {
			t.Errorf("Overrides[%q] = %v, expected %v", k, got, v)
		}
	}
	if opts.ConfigPath != "/etc/aedit.toml" {
		t.Errorf("ConfigPath = %q", opts.ConfigPath)
	}
	if opts.File != "a.c" {
		t.Errorf("File = %q", opts.File)
	}
}

func TestParseFlags_Exit(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"version", []string{"-v"}, 0},
		{"help", []string{"--help"}, 0},
		{"two files", []string{"a", "b"}, 2},
		{"unknown flag", []string{"--bogus"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, code, done := parseFlags(tt.args)
			if !done {
				t.Fatal("expected parseFlags to finish")
			}
			if code != tt.code {
				t.Errorf("code = %d, expected %d", code, tt.code)
			}
		})
	}
}

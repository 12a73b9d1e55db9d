package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "AEDIT_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "AEDIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, defaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
// COLUMNS and LINES describe the terminal and override the queried size.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"AEDIT_TABS":      "editor.tabs",
		"AEDIT_WRAP":      "editor.wrap",
		"AEDIT_CAPACITY":  "editor.capacity",
		"AEDIT_BACKEND":   "display.backend",
		"AEDIT_CLIP":      "clipboard.file",
		"AEDIT_SPILL_DIR": "spill.dir",
		"AEDIT_LOG_FILE":  "log.file",
		"AEDIT_LOG_LEVEL": "log.level",
		"COLUMNS":         "display.cols",
		"LINES":           "display.rows",
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if path, mapped := l.mapping[name]; mapped {
			SetByPath(config, path, l.parseValue(value))
			continue
		}
		if l.prefix == "" || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		// AEDIT_DISPLAY_REVERSE_MENU becomes display.reverseMenu.
		SetByPath(config, l.envToPath(name), l.parseValue(value))
	}

	return config, nil
}

// WithEnviron makes the loader read environ instead of the process
// environment. Entries have the form "NAME=value".
func (l *EnvLoader) WithEnviron(environ []string) *EnvLoader {
	l.environ = func() []string { return environ }
	return l
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts AEDIT_SECTION_SOME_NAME to section.someName.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return strings.ToLower(name)
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + setting
}

// parseValue converts s to a bool or int64 when it reads as one.
// Everything else stays a string.
func (l *EnvLoader) parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// SetByPath sets a value in a nested map using a dot-separated path,
// creating sections as needed.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// GetByPath returns the value at a dot-separated path.
func GetByPath(data map[string]any, path string) (any, bool) {
	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

package editor

import "context"

// Logger receives session traces.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Clipboard receives a copy of every block saved to the clip file.
type Clipboard interface {
	WriteAll(text string) error
}

// Terminal is the part of the terminal the session suspends around a
// shell escape.
type Terminal interface {
	Suspend() error
	Resume() error
}

// ShellFunc runs an interactive shell on the real terminal.
type ShellFunc func(ctx context.Context) error

// Option configures a Session.
type Option func(*Session)

// WithFile names the file opened when the session starts.
func WithFile(name string) Option {
	return func(s *Session) { s.filename = name }
}

// WithClipFile sets the clip file used by block saves and as the default
// answer to file name prompts.
func WithClipFile(path string) Option {
	return func(s *Session) { s.clipName = path }
}

// WithClipboard mirrors clip file saves to a system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clipboard = c }
}

// WithTerminal sets the terminal suspended around shell escapes.
func WithTerminal(t Terminal) Option {
	return func(s *Session) { s.term = t }
}

// WithShell sets how the shell escape runs a shell.
func WithShell(fn ShellFunc) Option {
	return func(s *Session) { s.shell = fn }
}

// WithLogger sets the session logger.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

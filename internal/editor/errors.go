package editor

import "errors"

// ErrQuit is returned by Run when the user leaves the editor.
var ErrQuit = errors.New("quit")

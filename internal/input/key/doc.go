// Package key defines the key events the editor consumes and the sources
// that produce them.
//
// An Event is either a data byte or a Special key. Sources:
//
//   - Decoder reads a raw terminal byte stream (escape sequences, WordStar
//     control keys, Ctrl-Q prefixed combinations).
//   - Script replays a fixed list, built by hand or with Parse.
//
// The tcell backend provides a third Source over tcell events.
package key

// Package editor runs an interactive editing session over one document.
//
// A Session reads key events, dispatches them to the command handlers and
// keeps the screen in step with the document. Commands follow the classic
// single-key menu: cursor keys move, i and x enter insert and exchange
// mode, b opens a block, f and r search and replace, q opens the quit
// menu. Digits typed before a command set a repeat count; digits followed
// by Enter jump to that line.
//
// The session runs on one goroutine. NotifyResize and ApplySettings may be
// called from any goroutine; they interrupt a pending key read and take
// effect before the next key is handled.
package editor

// Package lua runs configuration init scripts in a sandboxed gopher-lua
// state.
//
// The state opens only the base, table, string and math libraries. The
// functions that load code (dofile, loadfile, load, loadstring, require)
// are removed, print goes to the editor's log, and every call runs under
// an execution timeout.
//
// # Init scripts
//
// InitLoader exposes an aedit table to the script:
//
//	aedit.set("editor.tabs", 8)
//	if aedit.get("editor.tabs") == 8 then
//	    aedit.set("editor.wrap", false)
//	end
//
// The values set are returned as a nested map ready to merge over the
// other configuration layers.
package lua

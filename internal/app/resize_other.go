//go:build !unix

package app

import "context"

// notifyResize does nothing where there is no SIGWINCH; the tcell backend
// still reports resizes as key events.
func notifyResize(context.Context, func()) (stop func()) {
	return func() {}
}

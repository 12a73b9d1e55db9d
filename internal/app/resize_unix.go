//go:build unix

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// notifyResize calls fn on every SIGWINCH until ctx is done or the
// returned stop function is called.
func notifyResize(ctx context.Context, fn func()) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				fn()
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

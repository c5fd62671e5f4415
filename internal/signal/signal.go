// Package signal provides signal handling for long running commands.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignalCancel returns a context that is cancelled when SIGINT or SIGTERM is received.
// The returned cancel function should be called to clean up resources when done.
func WithSignalCancel(parent context.Context) (context.Context, context.CancelFunc) {
	return withSignals(parent, syscall.SIGINT, syscall.SIGTERM)
}

func withSignals(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, sigs...)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
			// Context was cancelled, clean up
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

package signalhandler

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"iconmaker/logging"
)

// SetupHandler returns a context cancelled on SIGINT or SIGTERM. The scanner
// checks it between files, so the file in flight is written before the run
// stops. A second signal exits immediately.
func SetupHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logging.LogWarning("Received %v, stopping after the current file", sig)
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			return
		}

		<-sigChan
		os.Exit(130)
	}()

	return ctx, cancel
}

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown blocks until the process receives an interrupt or
// termination signal.
func WaitForShutdown() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sc)

	sig := <-sc
	slog.Info("Shutdown signal received", "signal", sig.String())
}

package main

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func sendSignal(t *testing.T, sig os.Signal) {
	t.Helper()

	process, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to find current process: %v", err)
	}
	if err := process.Signal(sig); err != nil {
		t.Fatalf("Failed to send %v: %v", sig, err)
	}
}

func TestWaitForShutdown(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGINT, syscall.SIGTERM} {
		t.Run(sig.String(), func(t *testing.T) {
			done := make(chan bool)
			go func() {
				WaitForShutdown()
				done <- true
			}()

			time.Sleep(50 * time.Millisecond)
			sendSignal(t, sig)

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatalf("WaitForShutdown did not return after %v", sig)
			}
		})
	}
}

package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"guildwatch/internal/config"
)

func TestApp_Shutdown(t *testing.T) {
	server := &http.Server{Addr: ":0"}
	go func() {
		_ = server.ListenAndServe()
	}()
	time.Sleep(10 * time.Millisecond)

	app := &App{
		config: &config.Config{},
		server: server,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		t.Errorf("Expected server closed, got %v", err)
	}
}

func TestInitLogger(t *testing.T) {
	// both branches must install a default logger without panicking
	InitLogger("development")
	InitLogger("production")
}

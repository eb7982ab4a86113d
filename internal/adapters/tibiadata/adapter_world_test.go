package tibiadata

import (
	"context"
	"net/http"
	"testing"
)

func TestValidateWorld(t *testing.T) {
	ctx := context.Background()

	adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"worlds": {"regular_worlds": [
			{"name": "Antica", "status": "online"},
			{"name": "Secura", "status": "online"}
		]}}`))
	}))
	defer server.Close()

	t.Run("Known world", func(t *testing.T) {
		ok, err := adapter.ValidateWorld(ctx, "Antica")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !ok {
			t.Error("Expected Antica to be valid")
		}
	})

	t.Run("Case insensitive", func(t *testing.T) {
		ok, err := adapter.ValidateWorld(ctx, "secura")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !ok {
			t.Error("Expected secura to be valid")
		}
	})

	t.Run("Unknown world", func(t *testing.T) {
		ok, err := adapter.ValidateWorld(ctx, "Atlantis")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if ok {
			t.Error("Expected Atlantis to be invalid")
		}
	})
}

func TestValidateWorld_FetchError(t *testing.T) {
	adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := adapter.ValidateWorld(context.Background(), "Antica")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestFetchWorldOnline(t *testing.T) {
	adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"world": {"online_players": [
			{"name": "Alice", "level": 320, "vocation": "Elite Knight"},
			{"name": "Bob", "level": 150, "vocation": "Druid"}
		]}}`))
	}))
	defer server.Close()

	levels, err := adapter.FetchWorldOnline(context.Background(), "Antica")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(levels) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(levels))
	}
	if levels["Alice"] != 320 {
		t.Errorf("Expected Alice at 320, got %d", levels["Alice"])
	}
}

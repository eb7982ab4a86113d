package tibiadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"guildwatch/internal/adapters/tibiadata/api"
)

func newTestAdapter(handler http.Handler) (*Adapter, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewAdapter(api.NewTestClient(server.URL)), server
}

func TestFetchGuildRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"guild": {
				"name": "Red Rose",
				"world": "Antica",
				"players_online": 1,
				"players_offline": 1,
				"members": [
					{"name": "Alice", "level": 320, "vocation": "Elite Knight", "rank": "Leader", "status": "online"},
					{"name": "Bob", "level": 150, "vocation": "Elder Druid", "rank": "Member", "status": "offline"}
				]
			}}`))
		}))
		defer server.Close()

		snapshot, err := adapter.FetchGuildRoster(ctx, "Red Rose")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if snapshot == nil {
			t.Fatal("Expected snapshot, got nil")
		}

		if snapshot.World != "Antica" {
			t.Errorf("Expected world Antica, got %s", snapshot.World)
		}
		if len(snapshot.Members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(snapshot.Members))
		}
		if snapshot.Members[1].Vocation != "Druid" {
			t.Errorf("Expected normalized Druid, got %s", snapshot.Members[1].Vocation)
		}
	})

	t.Run("Not found degrades to nil", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		snapshot, err := adapter.FetchGuildRoster(ctx, "No Such Guild")
		if err != nil {
			t.Fatalf("Expected degraded nil result, got error: %v", err)
		}
		if snapshot != nil {
			t.Errorf("Expected nil snapshot, got %+v", snapshot)
		}
	})

	t.Run("Empty guild name in response degrades to nil", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"guild": {"name": ""}}`))
		}))
		defer server.Close()

		snapshot, err := adapter.FetchGuildRoster(ctx, "Ghost Guild")
		if err != nil || snapshot != nil {
			t.Errorf("Expected nil, nil; got %+v, %v", snapshot, err)
		}
	})
}

func TestSearchGuilds(t *testing.T) {
	ctx := context.Background()

	t.Run("Filters by query", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"guilds": {"world": "Antica", "active": [
				{"name": "Red Rose", "description": "pvp guild", "logo_url": "https://example.com/rose.gif"},
				{"name": "Blue Moon", "description": "", "logo_url": ""}
			]}}`))
		}))
		defer server.Close()

		results, err := adapter.SearchGuilds(ctx, "Antica", "rose")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Name != "Red Rose" {
			t.Errorf("Unexpected results: %v", results)
		}
	})

	t.Run("Empty query returns all", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"guilds": {"world": "Antica", "active": [
				{"name": "Red Rose"}, {"name": "Blue Moon"}
			]}}`))
		}))
		defer server.Close()

		results, err := adapter.SearchGuilds(ctx, "Antica", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("Expected 2 results, got %d", len(results))
		}
	})

	t.Run("Failure degrades to empty list", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		results, err := adapter.SearchGuilds(ctx, "Antica", "rose")
		if err != nil {
			t.Fatalf("Expected degraded empty result, got error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected empty list, got %v", results)
		}
	})
}

func TestFetchCharacterDeaths(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"character": {
				"character": {"name": "Alice", "level": 320, "world": "Antica"},
				"deaths": [{
					"time": "2026-08-30T21:15:00Z",
					"level": 319,
					"reason": "Slain by Evil Knight",
					"killers": [{"name": "Evil Knight", "player": true}]
				}]
			}}`))
		}))
		defer server.Close()

		deaths, err := adapter.FetchCharacterDeaths(ctx, "Alice")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(deaths) != 1 {
			t.Fatalf("Expected 1 death, got %d", len(deaths))
		}
		if !deaths[0].PVP {
			t.Error("Expected PVP death")
		}
		if len(deaths[0].Killers) != 1 || deaths[0].Killers[0] != "Evil Knight" {
			t.Errorf("Unexpected killers: %v", deaths[0].Killers)
		}
	})

	t.Run("Fetch failure degrades to nil", func(t *testing.T) {
		adapter, server := newTestAdapter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		deaths, err := adapter.FetchCharacterDeaths(ctx, "Alice")
		if err != nil || deaths != nil {
			t.Errorf("Expected nil, nil; got %v, %v", deaths, err)
		}
	})
}

package tibiadata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"guildwatch/internal/adapters/metrics"
	"guildwatch/internal/adapters/tibiadata/scraper"
)

// ValidateWorld reports whether a world exists in the TibiaData world list.
func (a *Adapter) ValidateWorld(ctx context.Context, world string) (bool, error) {
	resp, err := a.client.GetWorlds(ctx)
	if err != nil {
		slog.Error("Failed to fetch world list", "error", err)
		return false, err
	}

	for _, w := range resp.Worlds.RegularWorlds {
		if strings.EqualFold(w.Name, world) {
			return true, nil
		}
	}
	return false, nil
}

// FetchWorldOnline returns the online players of a world with their levels.
// TibiaData is tried first; tibia.com scraping is the fallback.
func (a *Adapter) FetchWorldOnline(ctx context.Context, world string) (map[string]int, error) {
	players, err := a.client.GetWorld(ctx, world)
	if err == nil {
		levels := make(map[string]int, len(players))
		for _, p := range players {
			levels[p.Name] = p.Level
		}
		slog.Info("Fetched online players", "world", world, "count", len(levels))
		return levels, nil
	}

	slog.Warn("TibiaData world fetch failed, falling back to tibia.com", "world", world, "error", err)
	return a.fetchWorldFromTibiaCom(ctx, world)
}

func (a *Adapter) fetchWorldFromTibiaCom(ctx context.Context, world string) (map[string]int, error) {
	start := time.Now()
	targetURL := fmt.Sprintf("https://www.tibia.com/community/?subtopic=worlds&world=%s", world)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	a.addBrowserHeaders(req)

	resp, err := a.tibiaComClient.Do(req)

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	duration := time.Since(start).Seconds()

	metrics.TibiaComRequestDuration.WithLabelValues(status).Observe(duration)
	metrics.TibiaComRequests.WithLabelValues(status).Inc()

	if err != nil {
		slog.Error("Failed to fetch tibia.com world page", "world", world, "error", err)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Unexpected status from tibia.com", "world", world, "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	players, err := scraper.ParseWorldOnline(resp.Body)
	if err != nil {
		slog.Error("Failed to parse tibia.com HTML", "world", world, "error", err)
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	slog.Info("Fetched online players from tibia.com", "world", world, "count", len(players))
	return players, nil
}

func (a *Adapter) addBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

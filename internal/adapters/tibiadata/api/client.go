package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guildwatch/internal/adapters/metrics"
)

const DefaultBaseURL = "https://api.tibiadata.com/v4"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: NewMetricsRoundTripper(http.DefaultTransport),
		},
		baseURL: baseURL,
	}
}

// NewTestClient creates a client with a custom base URL and no metrics
// transport, for tests against httptest servers.
func NewTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

func (c *Client) GetGuild(ctx context.Context, name string) (*GuildResponse, error) {
	// TibiaData rejects percent-encoded single quotes in guild names.
	safeName := strings.ReplaceAll(url.PathEscape(name), "%27", "'")
	u := fmt.Sprintf("%s/guild/%s", c.baseURL, safeName)

	var data GuildResponse
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch guild: %w", err)
	}

	return &data, nil
}

func (c *Client) GetWorlds(ctx context.Context) (*WorldsResponse, error) {
	u := fmt.Sprintf("%s/worlds", c.baseURL)

	var data WorldsResponse
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch worlds: %w", err)
	}

	return &data, nil
}

func (c *Client) GetWorld(ctx context.Context, worldName string) ([]OnlinePlayer, error) {
	u := fmt.Sprintf("%s/world/%s", c.baseURL, url.PathEscape(worldName))

	var data WorldResponse
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch world: %w", err)
	}

	for i := range data.World.OnlinePlayers {
		if decoded, err := url.QueryUnescape(data.World.OnlinePlayers[i].Name); err == nil {
			data.World.OnlinePlayers[i].Name = decoded
		}
	}

	return data.World.OnlinePlayers, nil
}

func (c *Client) GetGuildList(ctx context.Context, worldName string) (*GuildListResponse, error) {
	u := fmt.Sprintf("%s/guilds/%s", c.baseURL, url.PathEscape(worldName))

	var data GuildListResponse
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch guild list: %w", err)
	}

	return &data, nil
}

func (c *Client) GetCharacter(ctx context.Context, name string) (*CharacterResponse, error) {
	safeName := strings.ReplaceAll(url.PathEscape(name), "%27", "'")
	u := fmt.Sprintf("%s/character/%s", c.baseURL, safeName)

	var data CharacterResponse
	if err := c.getAndDecode(ctx, u, &data); err != nil {
		return nil, fmt.Errorf("fetch character: %w", err)
	}

	return &data, nil
}

func (c *Client) getAndDecode(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// -- Middleware --

type MetricsRoundTripper struct {
	Proxied http.RoundTripper
}

func NewMetricsRoundTripper(proxied http.RoundTripper) *MetricsRoundTripper {
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	return &MetricsRoundTripper{Proxied: proxied}
}

func (mrt *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := mrt.Proxied.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}

	endpoint := "unknown"
	path := req.URL.Path
	switch {
	case strings.Contains(path, "/guilds/"):
		endpoint = "guild_list"
	case strings.Contains(path, "/guild/"):
		endpoint = "guild"
	case strings.Contains(path, "/worlds"):
		endpoint = "worlds"
	case strings.Contains(path, "/world/"):
		endpoint = "world"
	case strings.Contains(path, "/character/"):
		endpoint = "character"
	}

	metrics.TibiaDataRequestDuration.WithLabelValues(endpoint, status).Observe(duration)
	metrics.TibiaDataRequests.WithLabelValues(endpoint, status).Inc()

	return resp, err
}

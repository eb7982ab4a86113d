package tibiadata

import (
	"context"
	"log/slog"
	"strings"

	"guildwatch/internal/core/domain"
)

// FetchGuildRoster returns a point-in-time snapshot of a guild's members.
// Fetch or parse failures surface as a nil snapshot: callers treat absence
// as a valid, non-fatal outcome.
func (a *Adapter) FetchGuildRoster(ctx context.Context, guildName string) (*domain.RosterSnapshot, error) {
	resp, err := a.client.GetGuild(ctx, guildName)
	if err != nil {
		slog.Warn("Failed to fetch guild roster", "guild", guildName, "error", err)
		return nil, nil
	}

	if resp.Guild.Name == "" {
		return nil, nil
	}

	snapshot := a.mapRoster(&resp.Guild)
	slog.Info("Fetched guild roster", "guild", guildName, "world", snapshot.World, "members", len(snapshot.Members))
	return snapshot, nil
}

// SearchGuilds lists guilds on a world whose name matches the query
// case-insensitively. An empty query lists every active guild. Failures
// degrade to an empty list.
func (a *Adapter) SearchGuilds(ctx context.Context, world, query string) ([]domain.GuildSummary, error) {
	resp, err := a.client.GetGuildList(ctx, world)
	if err != nil {
		slog.Warn("Failed to fetch guild list", "world", world, "error", err)
		return []domain.GuildSummary{}, nil
	}

	query = strings.ToLower(query)
	results := make([]domain.GuildSummary, 0, len(resp.Guilds.Active))
	for _, g := range resp.Guilds.Active {
		if query != "" && !strings.Contains(strings.ToLower(g.Name), query) {
			continue
		}
		results = append(results, domain.GuildSummary{
			Name:        g.Name,
			Description: g.Description,
			LogoURL:     g.LogoURL,
		})
	}

	return results, nil
}

// FetchCharacterDeaths returns a character's recent deaths. Failures degrade
// to nil.
func (a *Adapter) FetchCharacterDeaths(ctx context.Context, name string) ([]domain.MemberDeath, error) {
	resp, err := a.client.GetCharacter(ctx, name)
	if err != nil {
		slog.Warn("Failed to fetch character", "name", name, "error", err)
		return nil, nil
	}

	if resp.Character.Character.Name == "" {
		return nil, nil
	}

	return mapDeaths(resp.Character.Deaths), nil
}

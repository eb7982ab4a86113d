package threat

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

const killWindow = 24 * time.Hour

// Repository is the slice of the persistence surface the classifier reads.
type Repository interface {
	ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
	ListGuildPlayers(ctx context.Context, guildID int64) ([]domain.Player, error)
	CountKillsByKiller(ctx context.Context, killerName string, victimGuildIDs []int64, since time.Time) (int, error)
}

// EnemyThreat is a tracked enemy player joined with their computed tier.
type EnemyThreat struct {
	Player   domain.Player `json:"player"`
	Kills24h int           `json:"kills_24h"`
	Tier     Tier          `json:"tier"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnemyReport lists every player of the user's configured enemy guilds with
// their threat tier. Kills are counted against the user's monitored
// (MAIN/ALLY) guilds within the last 24 hours, in UTC.
func (s *Service) EnemyReport(ctx context.Context, userID uuid.UUID) ([]EnemyThreat, error) {
	configs, err := s.repo.ListConfigurations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}

	var monitoredIDs, enemyIDs []int64
	for _, cfg := range configs {
		switch cfg.Role {
		case domain.GuildTypeMain, domain.GuildTypeAlly:
			monitoredIDs = append(monitoredIDs, cfg.GuildID)
		case domain.GuildTypeEnemy:
			enemyIDs = append(enemyIDs, cfg.GuildID)
		}
	}

	since := time.Now().UTC().Add(-killWindow)
	var report []EnemyThreat

	for _, guildID := range enemyIDs {
		players, err := s.repo.ListGuildPlayers(ctx, guildID)
		if err != nil {
			slog.Error("Failed to list enemy players", "guild_id", guildID, "error", err)
			continue
		}

		for _, p := range players {
			kills, err := s.repo.CountKillsByKiller(ctx, p.Name, monitoredIDs, since)
			if err != nil {
				slog.Error("Failed to count kills", "name", p.Name, "error", err)
				continue
			}

			report = append(report, EnemyThreat{
				Player:   p,
				Kills24h: kills,
				Tier:     Classify(kills, p.Level, p.Online),
			})
		}
	}

	sort.SliceStable(report, func(i, j int) bool {
		if report[i].Kills24h != report[j].Kills24h {
			return report[i].Kills24h > report[j].Kills24h
		}
		return report[i].Player.Level > report[j].Player.Level
	})

	return report, nil
}

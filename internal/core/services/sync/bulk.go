package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type GuildSyncResult struct {
	GuildID   int64       `json:"guild_id"`
	GuildName string      `json:"guild_name"`
	Report    *SyncReport `json:"report,omitempty"`
	Error     string      `json:"error,omitempty"`
}

type BulkSyncReport struct {
	Results   []GuildSyncResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// SyncAll reconciles every guild the user has configured, one at a time with
// a fixed delay between guilds. One guild's failure does not stop the run.
func (s *Service) SyncAll(ctx context.Context, userID uuid.UUID) (*BulkSyncReport, error) {
	configs, err := s.repo.ListConfigurations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}

	report := &BulkSyncReport{Results: make([]GuildSyncResult, 0, len(configs))}
	seen := make(map[int64]bool, len(configs))

	for _, cfg := range configs {
		if seen[cfg.GuildID] {
			continue
		}
		seen[cfg.GuildID] = true

		if err := s.limiter.Wait(ctx); err != nil {
			return report, err
		}

		result := GuildSyncResult{GuildID: cfg.GuildID}
		if cfg.Guild != nil {
			result.GuildName = cfg.Guild.Name
		}

		guildReport, err := s.SyncGuild(ctx, cfg.GuildID)
		if err != nil {
			slog.Warn("Bulk sync: guild failed", "guild_id", cfg.GuildID, "error", err)
			result.Error = err.Error()
			report.Failed++
		} else {
			result.Report = guildReport
			result.GuildName = guildReport.GuildName
			report.Succeeded++
		}

		report.Results = append(report.Results, result)
	}

	return report, nil
}

package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"guildwatch/internal/adapters/metrics"
	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/services/threat"
)

// staleOffset is the sentinel age for players first seen while offline.
const staleOffset = 24 * time.Hour

// deathWindow bounds how far back fetched deaths are recorded.
const deathWindow = 24 * time.Hour

type SyncReport struct {
	GuildID     int64  `json:"guild_id"`
	GuildName   string `json:"guild_name"`
	World       string `json:"world"`
	Created     int    `json:"created"`
	Updated     int    `json:"updated"`
	Skipped     int    `json:"skipped"`
	DeathsAdded int    `json:"deaths_added"`
}

// SyncGuild fetches the guild's roster and reconciles it into the player
// table. Per-member failures are logged and skipped; the pass continues with
// the remaining members.
func (s *Service) SyncGuild(ctx context.Context, guildID int64) (*SyncReport, error) {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	guild, err := s.repo.GetGuild(ctx, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrGuildNotFound
		}
		return nil, fmt.Errorf("get guild: %w", err)
	}

	snapshot, err := s.fetcher.FetchGuildRoster(ctx, guild.Name)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	if snapshot == nil {
		metrics.SyncRuns.WithLabelValues("roster_missing").Inc()
		return nil, ErrRosterNotFound
	}

	if snapshot.World != guild.World {
		metrics.SyncRuns.WithLabelValues("world_mismatch").Inc()
		return nil, fmt.Errorf("%w: configured %s, roster %s", ErrWorldMismatch, guild.World, snapshot.World)
	}

	report := &SyncReport{
		GuildID:   guild.ID,
		GuildName: guild.Name,
		World:     guild.World,
	}

	now := time.Now().UTC()

	for _, member := range snapshot.Members {
		player, created, err := s.reconcileMember(ctx, guild, member, now)
		if err != nil {
			slog.Error("Failed to reconcile member", "guild", guild.Name, "member", member.Name, "error", err)
			report.Skipped++
			metrics.PlayersReconciled.WithLabelValues("skipped").Inc()
			continue
		}

		if created {
			report.Created++
			metrics.PlayersReconciled.WithLabelValues("created").Inc()
		} else {
			report.Updated++
			metrics.PlayersReconciled.WithLabelValues("updated").Inc()
		}

		if guild.Type == domain.GuildTypeEnemy && member.Online {
			report.DeathsAdded += s.recordDeaths(ctx, player, now)
		}
	}

	if err := s.repo.SetGuildLastSync(ctx, guild.ID, now); err != nil {
		slog.Error("Failed to update guild last sync", "guild", guild.Name, "error", err)
	}

	metrics.SyncRuns.WithLabelValues("success").Inc()
	slog.Info("Guild roster reconciled",
		"guild", guild.Name, "world", guild.World,
		"created", report.Created, "updated", report.Updated, "skipped", report.Skipped)

	if s.notifier != nil {
		if err := s.notifier.SendSyncReport(guild.World, guild.Name, report.Created, report.Updated); err != nil {
			slog.Error("Failed to send sync report", "guild", guild.Name, "error", err)
		}
	}

	return report, nil
}

func (s *Service) reconcileMember(ctx context.Context, guild *domain.Guild, member domain.RosterMember, now time.Time) (*domain.Player, bool, error) {
	playerType := domain.PlayerTypeGuildMember
	if guild.Type == domain.GuildTypeEnemy {
		playerType = domain.PlayerTypeExternalEnemy
	}

	player, err := s.repo.GetPlayerByNameWorld(ctx, member.Name, guild.World)
	switch {
	case err == nil:
		player.Level = member.Level
		player.Vocation = member.Vocation
		player.Online = member.Online
		player.GuildID = &guild.ID
		player.Type = playerType
		// an offline sighting says nothing new about when the player was
		// last seen
		if member.Online {
			player.LastSeenAt = now
		}

		if err := s.repo.UpdatePlayer(ctx, player); err != nil {
			return nil, false, err
		}
		return player, false, nil

	case errors.Is(err, domain.ErrNotFound):
		lastSeen := now
		if !member.Online {
			lastSeen = now.Add(-staleOffset)
		}

		player = &domain.Player{
			Name:       member.Name,
			World:      guild.World,
			Level:      member.Level,
			Vocation:   member.Vocation,
			Online:     member.Online,
			LastSeenAt: lastSeen,
			Type:       playerType,
			GuildID:    &guild.ID,
		}

		if err := s.repo.CreatePlayer(ctx, player); err != nil {
			return nil, false, err
		}
		return player, true, nil

	default:
		return nil, false, err
	}
}

// recordDeaths appends any new deaths for a tracked enemy player. Failures
// are logged and do not fail the sync pass. Alert tiers here classify on
// level and online state only; kill counts are scoped to a monitoring
// user's guilds and are computed by the read-side threat report.
func (s *Service) recordDeaths(ctx context.Context, player *domain.Player, now time.Time) int {
	deaths, err := s.fetcher.FetchCharacterDeaths(ctx, player.Name)
	if err != nil || len(deaths) == 0 {
		return 0
	}

	added := 0
	for _, d := range deaths {
		if d.Time.Before(now.Add(-deathWindow)) {
			continue
		}

		exists, err := s.repo.HasDeath(ctx, player.ID, d.Time)
		if err != nil {
			slog.Error("Failed to check death", "player", player.Name, "error", err)
			continue
		}
		if exists {
			continue
		}

		deathType := domain.DeathTypePVE
		if d.PVP {
			deathType = domain.DeathTypePVP
		}

		death := &domain.Death{
			PlayerID:    player.ID,
			OccurredAt:  d.Time,
			Level:       d.Level,
			Killers:     d.Killers,
			Description: d.Reason,
			Type:        deathType,
		}

		if err := s.repo.AppendDeath(ctx, death); err != nil {
			slog.Error("Failed to append death", "player", player.Name, "error", err)
			continue
		}

		added++
		metrics.DeathsRecorded.Inc()

		if s.notifier != nil {
			tier := threat.Classify(0, player.Level, player.Online)
			if err := s.notifier.SendDeathAlert(player.Name, player.World, *death, string(tier)); err != nil {
				slog.Error("Failed to send death alert", "player", player.Name, "error", err)
			}
		}
	}

	return added
}

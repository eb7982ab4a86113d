package dashboard

import (
	"context"
	"fmt"
	"time"

	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/services/threat"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// deathFeedWindow bounds the recent-death feed.
const deathFeedWindow = 7 * 24 * time.Hour

const defaultDeathLimit = 50

// topThreatCount caps how many enemies the overview lists individually.
const topThreatCount = 5

// Repository is the slice of the persistence surface the dashboard reads.
type Repository interface {
	ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
	CountGuildPlayers(ctx context.Context, guildIDs []int64) (total, online int, err error)
	ListOnlinePlayers(ctx context.Context, guildIDs []int64) ([]domain.Player, error)
	RecentDeaths(ctx context.Context, guildIDs []int64, since time.Time, limit int) ([]domain.Death, error)
}

// ThreatReporter produces the enemy threat report the overview summarizes.
type ThreatReporter interface {
	EnemyReport(ctx context.Context, userID uuid.UUID) ([]threat.EnemyThreat, error)
}

type GuildStats struct {
	GuildID    int64            `json:"guild_id"`
	Name       string           `json:"name"`
	World      string           `json:"world"`
	Role       domain.GuildType `json:"role"`
	Members    int              `json:"members"`
	Online     int              `json:"online"`
	LastSyncAt *time.Time       `json:"last_sync_at,omitempty"`
}

type ThreatSummary struct {
	High   int                  `json:"high"`
	Medium int                  `json:"medium"`
	Low    int                  `json:"low"`
	Top    []threat.EnemyThreat `json:"top"`
}

type Overview struct {
	Guilds        []GuildStats    `json:"guilds"`
	TotalMembers  int             `json:"total_members"`
	OnlineMembers int             `json:"online_members"`
	OnlinePlayers []domain.Player `json:"online_players"`
	RecentDeaths  []domain.Death  `json:"recent_deaths"`
	Threats       ThreatSummary   `json:"threats"`
}

type Service struct {
	repo    Repository
	threats ThreatReporter
}

func NewService(repo Repository, threats ThreatReporter) *Service {
	return &Service{repo: repo, threats: threats}
}

// Overview composes the dashboard in one call. The four reads are
// independent and run concurrently.
func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	configs, err := s.repo.ListConfigurations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}

	var monitoredIDs []int64
	for _, cfg := range configs {
		if cfg.Role == domain.GuildTypeMain || cfg.Role == domain.GuildTypeAlly {
			monitoredIDs = append(monitoredIDs, cfg.GuildID)
		}
	}

	overview := &Overview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, total, online, err := s.guildStats(gctx, configs)
		if err != nil {
			return err
		}
		overview.Guilds = stats
		overview.TotalMembers = total
		overview.OnlineMembers = online
		return nil
	})

	g.Go(func() error {
		players, err := s.repo.ListOnlinePlayers(gctx, monitoredIDs)
		if err != nil {
			return fmt.Errorf("list online players: %w", err)
		}
		overview.OnlinePlayers = players
		return nil
	})

	g.Go(func() error {
		since := time.Now().UTC().Add(-deathFeedWindow)
		deaths, err := s.repo.RecentDeaths(gctx, monitoredIDs, since, defaultDeathLimit)
		if err != nil {
			return fmt.Errorf("recent deaths: %w", err)
		}
		overview.RecentDeaths = deaths
		return nil
	})

	g.Go(func() error {
		enemies, err := s.threats.EnemyReport(gctx, userID)
		if err != nil {
			return fmt.Errorf("enemy report: %w", err)
		}
		overview.Threats = summarize(enemies)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (s *Service) guildStats(ctx context.Context, configs []domain.GuildConfiguration) ([]GuildStats, int, int, error) {
	stats := make([]GuildStats, 0, len(configs))
	var totalMembers, onlineMembers int

	for _, cfg := range configs {
		total, online, err := s.repo.CountGuildPlayers(ctx, []int64{cfg.GuildID})
		if err != nil {
			return nil, 0, 0, fmt.Errorf("count guild players: %w", err)
		}

		entry := GuildStats{GuildID: cfg.GuildID, Role: cfg.Role, Members: total, Online: online}
		if cfg.Guild != nil {
			entry.Name = cfg.Guild.Name
			entry.World = cfg.Guild.World
			entry.LastSyncAt = cfg.Guild.LastSyncAt
		}
		stats = append(stats, entry)

		// enemy rosters do not count toward the member totals
		if cfg.Role == domain.GuildTypeMain || cfg.Role == domain.GuildTypeAlly {
			totalMembers += total
			onlineMembers += online
		}
	}

	return stats, totalMembers, onlineMembers, nil
}

func summarize(enemies []threat.EnemyThreat) ThreatSummary {
	summary := ThreatSummary{}
	for _, e := range enemies {
		switch e.Tier {
		case threat.TierHigh:
			summary.High++
		case threat.TierMedium:
			summary.Medium++
		default:
			summary.Low++
		}
	}

	// EnemyReport is already sorted most dangerous first
	top := topThreatCount
	if top > len(enemies) {
		top = len(enemies)
	}
	summary.Top = enemies[:top]
	return summary
}

// RecentDeaths returns the append-only death feed for the user's monitored
// guilds, newest first.
func (s *Service) RecentDeaths(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Death, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultDeathLimit
	}

	configs, err := s.repo.ListConfigurations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}

	var monitoredIDs []int64
	for _, cfg := range configs {
		if cfg.Role == domain.GuildTypeMain || cfg.Role == domain.GuildTypeAlly {
			monitoredIDs = append(monitoredIDs, cfg.GuildID)
		}
	}

	since := time.Now().UTC().Add(-deathFeedWindow)
	return s.repo.RecentDeaths(ctx, monitoredIDs, since, limit)
}

package threat

import (
	"context"
	"errors"
	"testing"
	"time"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

type mockRepo struct {
	ListConfigurationsFunc func(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
	ListGuildPlayersFunc   func(ctx context.Context, guildID int64) ([]domain.Player, error)
	CountKillsFunc         func(ctx context.Context, killerName string, victimGuildIDs []int64, since time.Time) (int, error)
}

func (m *mockRepo) ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error) {
	return m.ListConfigurationsFunc(ctx, userID)
}

func (m *mockRepo) ListGuildPlayers(ctx context.Context, guildID int64) ([]domain.Player, error) {
	return m.ListGuildPlayersFunc(ctx, guildID)
}

func (m *mockRepo) CountKillsByKiller(ctx context.Context, killerName string, victimGuildIDs []int64, since time.Time) (int, error) {
	return m.CountKillsFunc(ctx, killerName, victimGuildIDs, since)
}

func TestEnemyReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	configs := []domain.GuildConfiguration{
		{GuildID: 1, Role: domain.GuildTypeMain},
		{GuildID: 2, Role: domain.GuildTypeAlly},
		{GuildID: 3, Role: domain.GuildTypeEnemy},
	}

	t.Run("Joins enemies with kill counts and tier", func(t *testing.T) {
		kills := map[string]int{"Evil Knight": 3, "Weak Mage": 0}

		repo := &mockRepo{
			ListConfigurationsFunc: func(ctx context.Context, id uuid.UUID) ([]domain.GuildConfiguration, error) {
				return configs, nil
			},
			ListGuildPlayersFunc: func(ctx context.Context, guildID int64) ([]domain.Player, error) {
				if guildID != 3 {
					t.Errorf("Expected only enemy guild 3 queried, got %d", guildID)
				}
				return []domain.Player{
					{Name: "Evil Knight", Level: 250, Online: true},
					{Name: "Weak Mage", Level: 80, Online: false},
				}, nil
			},
			CountKillsFunc: func(ctx context.Context, killer string, victimIDs []int64, since time.Time) (int, error) {
				if len(victimIDs) != 2 {
					t.Errorf("Expected 2 monitored guilds, got %v", victimIDs)
				}
				return kills[killer], nil
			},
		}

		report, err := NewService(repo).EnemyReport(ctx, userID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if len(report) != 2 {
			t.Fatalf("Expected 2 enemies, got %d", len(report))
		}

		// sorted by kills desc
		if report[0].Player.Name != "Evil Knight" || report[0].Tier != TierHigh {
			t.Errorf("Unexpected first entry: %+v", report[0])
		}
		if report[1].Player.Name != "Weak Mage" || report[1].Tier != TierLow {
			t.Errorf("Unexpected second entry: %+v", report[1])
		}
	})

	t.Run("Per-enemy count failure is skipped", func(t *testing.T) {
		repo := &mockRepo{
			ListConfigurationsFunc: func(ctx context.Context, id uuid.UUID) ([]domain.GuildConfiguration, error) {
				return configs, nil
			},
			ListGuildPlayersFunc: func(ctx context.Context, guildID int64) ([]domain.Player, error) {
				return []domain.Player{
					{Name: "Evil Knight", Level: 250},
					{Name: "Weak Mage", Level: 80},
				}, nil
			},
			CountKillsFunc: func(ctx context.Context, killer string, victimIDs []int64, since time.Time) (int, error) {
				if killer == "Evil Knight" {
					return 0, errors.New("db error")
				}
				return 0, nil
			},
		}

		report, err := NewService(repo).EnemyReport(ctx, userID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(report) != 1 || report[0].Player.Name != "Weak Mage" {
			t.Errorf("Expected failing enemy skipped, got %+v", report)
		}
	})

	t.Run("Configuration failure is fatal", func(t *testing.T) {
		repo := &mockRepo{
			ListConfigurationsFunc: func(ctx context.Context, id uuid.UUID) ([]domain.GuildConfiguration, error) {
				return nil, errors.New("db error")
			},
		}

		if _, err := NewService(repo).EnemyReport(ctx, userID); err == nil {
			t.Fatal("Expected error, got nil")
		}
	})
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"guildwatch/internal/core/domain"

	"github.com/uptrace/bun"
)

func (s *Store) AppendDeath(ctx context.Context, death *domain.Death) error {
	if _, err := s.db.NewInsert().Model(death).Exec(ctx); err != nil {
		return fmt.Errorf("append death: %w", convertError(err))
	}
	return nil
}

func (s *Store) HasDeath(ctx context.Context, playerID int64, occurredAt time.Time) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*domain.Death)(nil)).
		Where("d.player_id = ?", playerID).
		Where("d.occurred_at = ?", occurredAt).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check death: %w", err)
	}
	return exists, nil
}

func (s *Store) RecentDeaths(ctx context.Context, guildIDs []int64, since time.Time, limit int) ([]domain.Death, error) {
	if len(guildIDs) == 0 {
		return nil, nil
	}

	var deaths []domain.Death
	err := s.db.NewSelect().Model(&deaths).
		Relation("Player").
		Where("player.guild_id IN (?)", bun.In(guildIDs)).
		Where("d.occurred_at >= ?", since).
		Order("d.occurred_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recent deaths: %w", err)
	}
	return deaths, nil
}

// CountKillsByKiller counts deaths of members of the given guilds where the
// killer list names the given character.
func (s *Store) CountKillsByKiller(ctx context.Context, killerName string, victimGuildIDs []int64, since time.Time) (int, error) {
	if len(victimGuildIDs) == 0 {
		return 0, nil
	}

	count, err := s.db.NewSelect().
		Model((*domain.Death)(nil)).
		Join("JOIN players AS victim ON victim.id = d.player_id").
		Where("victim.guild_id IN (?)", bun.In(victimGuildIDs)).
		Where("d.occurred_at >= ?", since).
		Where("? = ANY(d.killers)", killerName).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count kills by killer: %w", err)
	}
	return count, nil
}

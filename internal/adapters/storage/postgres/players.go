package postgres

import (
	"context"
	"fmt"

	"guildwatch/internal/core/domain"

	"github.com/uptrace/bun"
)

func (s *Store) CreatePlayer(ctx context.Context, player *domain.Player) error {
	if _, err := s.db.NewInsert().Model(player).Exec(ctx); err != nil {
		return fmt.Errorf("create player: %w", convertError(err))
	}
	return nil
}

func (s *Store) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	res, err := s.db.NewUpdate().Model(player).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("update player: %w", convertError(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetPlayerByNameWorld(ctx context.Context, name, world string) (*domain.Player, error) {
	player := &domain.Player{}
	err := s.db.NewSelect().Model(player).
		Where("p.name = ?", name).
		Where("p.world = ?", world).
		Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return player, nil
}

func (s *Store) ListGuildPlayers(ctx context.Context, guildID int64) ([]domain.Player, error) {
	var players []domain.Player
	err := s.db.NewSelect().Model(&players).
		Where("p.guild_id = ?", guildID).
		Order("p.level DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guild players: %w", err)
	}
	return players, nil
}

func (s *Store) ListOnlinePlayers(ctx context.Context, guildIDs []int64) ([]domain.Player, error) {
	if len(guildIDs) == 0 {
		return nil, nil
	}

	var players []domain.Player
	err := s.db.NewSelect().Model(&players).
		Where("p.guild_id IN (?)", bun.In(guildIDs)).
		Where("p.online").
		Order("p.level DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list online players: %w", err)
	}
	return players, nil
}

func (s *Store) CountGuildPlayers(ctx context.Context, guildIDs []int64) (total, online int, err error) {
	if len(guildIDs) == 0 {
		return 0, 0, nil
	}

	total, err = s.db.NewSelect().
		Model((*domain.Player)(nil)).
		Where("p.guild_id IN (?)", bun.In(guildIDs)).
		Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count players: %w", err)
	}

	online, err = s.db.NewSelect().
		Model((*domain.Player)(nil)).
		Where("p.guild_id IN (?)", bun.In(guildIDs)).
		Where("p.online").
		Count(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count online players: %w", err)
	}

	return total, online, nil
}

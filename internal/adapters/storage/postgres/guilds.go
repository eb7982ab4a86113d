package postgres

import (
	"context"
	"fmt"
	"time"

	"guildwatch/internal/core/domain"
)

func (s *Store) CreateGuild(ctx context.Context, guild *domain.Guild) error {
	if _, err := s.db.NewInsert().Model(guild).Exec(ctx); err != nil {
		return fmt.Errorf("create guild: %w", convertError(err))
	}
	return nil
}

func (s *Store) GetGuild(ctx context.Context, id int64) (*domain.Guild, error) {
	guild := &domain.Guild{}
	err := s.db.NewSelect().Model(guild).Where("g.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return guild, nil
}

func (s *Store) GetGuildByNameWorld(ctx context.Context, name, world string) (*domain.Guild, error) {
	guild := &domain.Guild{}
	err := s.db.NewSelect().Model(guild).
		Where("g.name = ?", name).
		Where("g.world = ?", world).
		Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return guild, nil
}

func (s *Store) SetGuildLastSync(ctx context.Context, guildID int64, at time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*domain.Guild)(nil)).
		Set("last_sync_at = ?", at).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set guild last sync: %w", err)
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

func (s *Store) DeleteGuild(ctx context.Context, id int64) error {
	if _, err := s.db.NewDelete().Model((*domain.Guild)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete guild: %w", err)
	}
	return nil
}

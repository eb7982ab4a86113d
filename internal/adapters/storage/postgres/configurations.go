package postgres

import (
	"context"
	"fmt"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

func (s *Store) CreateWorldSubscription(ctx context.Context, sub *domain.WorldSubscription) error {
	if _, err := s.db.NewInsert().Model(sub).Exec(ctx); err != nil {
		return fmt.Errorf("create world subscription: %w", convertError(err))
	}
	return nil
}

func (s *Store) GetWorldSubscription(ctx context.Context, userID uuid.UUID) (*domain.WorldSubscription, error) {
	sub := &domain.WorldSubscription{}
	err := s.db.NewSelect().Model(sub).
		Relation("Configurations").
		Where("ws.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return sub, nil
}

func (s *Store) AttachGuild(ctx context.Context, cfg *domain.GuildConfiguration) error {
	if _, err := s.db.NewInsert().Model(cfg).Exec(ctx); err != nil {
		return fmt.Errorf("attach guild: %w", convertError(err))
	}
	return nil
}

func (s *Store) DetachGuild(ctx context.Context, subscriptionID, guildID int64) error {
	res, err := s.db.NewDelete().
		Model((*domain.GuildConfiguration)(nil)).
		Where("world_subscription_id = ?", subscriptionID).
		Where("guild_id = ?", guildID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("detach guild: %w", err)
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

func (s *Store) CountConfigurations(ctx context.Context, subscriptionID int64) (int, error) {
	count, err := s.db.NewSelect().
		Model((*domain.GuildConfiguration)(nil)).
		Where("gc.world_subscription_id = ?", subscriptionID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count configurations: %w", err)
	}
	return count, nil
}

// CountGuildReferences counts configurations across all subscriptions that
// still reference a guild. Zero means the guild row is orphaned.
func (s *Store) CountGuildReferences(ctx context.Context, guildID int64) (int, error) {
	count, err := s.db.NewSelect().
		Model((*domain.GuildConfiguration)(nil)).
		Where("gc.guild_id = ?", guildID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count guild references: %w", err)
	}
	return count, nil
}

func (s *Store) ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error) {
	var configs []domain.GuildConfiguration
	err := s.db.NewSelect().Model(&configs).
		Relation("Guild").
		Join("JOIN world_subscriptions AS ws ON ws.id = gc.world_subscription_id").
		Where("ws.user_id = ?", userID).
		Order("gc.priority ASC", "gc.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	return configs, nil
}

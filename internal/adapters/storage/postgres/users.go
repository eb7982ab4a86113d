package postgres

import (
	"context"
	"fmt"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return fmt.Errorf("create user: %w", convertError(err))
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	err := s.db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return user, nil
}

func (s *Store) GetUserByCharacter(ctx context.Context, characterName, world string) (*domain.User, error) {
	user := &domain.User{}
	err := s.db.NewSelect().Model(user).
		Where("u.character_name = ?", characterName).
		Where("u.world = ?", world).
		Scan(ctx)
	if err != nil {
		return nil, convertError(err)
	}
	return user, nil
}

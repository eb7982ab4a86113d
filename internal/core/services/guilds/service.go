package guilds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/ports"

	"github.com/google/uuid"
)

var (
	ErrNoSubscription = errors.New("no world subscription for user")
	// ErrMaxGuilds is a conflict sentinel so the store gives up on the attach
	// transaction instead of retrying a full subscription.
	ErrMaxGuilds     = domain.Conflict("guild limit reached for this subscription")
	ErrInvalidRole   = errors.New("role must be MAIN, ALLY or ENEMY")
	ErrWorldMismatch = errors.New("guild world does not match the subscription")
)

// Store is the slice of the persistence surface guild configuration needs.
type Store interface {
	GetWorldSubscription(ctx context.Context, userID uuid.UUID) (*domain.WorldSubscription, error)
	ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
	RunInTx(ctx context.Context, fn func(ctx context.Context, r ports.Repository) error) error
}

// GuildSearcher queries the game-data source for world-scoped reads.
type GuildSearcher interface {
	SearchGuilds(ctx context.Context, world, query string) ([]domain.GuildSummary, error)
	FetchWorldOnline(ctx context.Context, world string) (map[string]int, error)
}

type Service struct {
	store    Store
	searcher GuildSearcher
}

func NewService(store Store, searcher GuildSearcher) *Service {
	return &Service{store: store, searcher: searcher}
}

// Attach links a guild to the user's world subscription with a monitoring
// role. The guild row is created on first reference. The subscription's
// MaxGuilds bound is enforced inside the transaction.
func (s *Service) Attach(ctx context.Context, userID uuid.UUID, guildName string, role domain.GuildType, priority int) (*domain.GuildConfiguration, error) {
	if role != domain.GuildTypeMain && role != domain.GuildTypeAlly && role != domain.GuildTypeEnemy {
		return nil, ErrInvalidRole
	}

	sub, err := s.store.GetWorldSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNoSubscription
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	var cfg *domain.GuildConfiguration
	err = s.store.RunInTx(ctx, func(ctx context.Context, r ports.Repository) error {
		count, err := r.CountConfigurations(ctx, sub.ID)
		if err != nil {
			return fmt.Errorf("count configurations: %w", err)
		}
		if count >= sub.MaxGuilds {
			return ErrMaxGuilds
		}

		guild, err := r.GetGuildByNameWorld(ctx, guildName, sub.World)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			guild = &domain.Guild{Name: guildName, World: sub.World, Type: role}
			if err := r.CreateGuild(ctx, guild); err != nil {
				return fmt.Errorf("create guild: %w", err)
			}
		case err != nil:
			return fmt.Errorf("get guild: %w", err)
		}

		cfg = &domain.GuildConfiguration{
			WorldSubscriptionID: sub.ID,
			GuildID:             guild.ID,
			Role:                role,
			Priority:            priority,
		}
		cfg.Guild = guild
		return r.AttachGuild(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Guild configuration attached", "user", userID, "guild", guildName, "role", role)
	return cfg, nil
}

// Detach removes a guild from the user's subscription. When the removed
// configuration was the last one referencing the guild, the guild row is
// deleted in the same transaction.
func (s *Service) Detach(ctx context.Context, userID uuid.UUID, guildID int64) error {
	sub, err := s.store.GetWorldSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNoSubscription
		}
		return fmt.Errorf("get subscription: %w", err)
	}

	return s.store.RunInTx(ctx, func(ctx context.Context, r ports.Repository) error {
		if err := r.DetachGuild(ctx, sub.ID, guildID); err != nil {
			return fmt.Errorf("detach guild: %w", err)
		}

		refs, err := r.CountGuildReferences(ctx, guildID)
		if err != nil {
			return fmt.Errorf("count references: %w", err)
		}
		if refs == 0 {
			if err := r.DeleteGuild(ctx, guildID); err != nil {
				return fmt.Errorf("delete orphan guild: %w", err)
			}
			slog.Info("Orphan guild deleted", "guild_id", guildID)
		}
		return nil
	})
}

// List returns the user's guild configurations ordered by priority.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error) {
	return s.store.ListConfigurations(ctx, userID)
}

// Search looks up guilds on the user's subscribed world by name fragment.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, query string) ([]domain.GuildSummary, error) {
	sub, err := s.store.GetWorldSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNoSubscription
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s.searcher.SearchGuilds(ctx, sub.World, query)
}

// WorldOnline returns the levels of every player currently online on the
// user's subscribed world, keyed by name.
func (s *Service) WorldOnline(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	sub, err := s.store.GetWorldSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNoSubscription
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s.searcher.FetchWorldOnline(ctx, sub.World)
}

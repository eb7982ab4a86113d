package ports

import (
	"context"
	"time"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

type GuildRepository interface {
	CreateGuild(ctx context.Context, guild *domain.Guild) error
	GetGuild(ctx context.Context, id int64) (*domain.Guild, error)
	GetGuildByNameWorld(ctx context.Context, name, world string) (*domain.Guild, error)
	SetGuildLastSync(ctx context.Context, guildID int64, at time.Time) error
	DeleteGuild(ctx context.Context, id int64) error
}

type PlayerRepository interface {
	CreatePlayer(ctx context.Context, player *domain.Player) error
	UpdatePlayer(ctx context.Context, player *domain.Player) error
	GetPlayerByNameWorld(ctx context.Context, name, world string) (*domain.Player, error)
	ListGuildPlayers(ctx context.Context, guildID int64) ([]domain.Player, error)
	ListOnlinePlayers(ctx context.Context, guildIDs []int64) ([]domain.Player, error)
	CountGuildPlayers(ctx context.Context, guildIDs []int64) (total, online int, err error)
}

type DeathRepository interface {
	AppendDeath(ctx context.Context, death *domain.Death) error
	HasDeath(ctx context.Context, playerID int64, occurredAt time.Time) (bool, error)
	RecentDeaths(ctx context.Context, guildIDs []int64, since time.Time, limit int) ([]domain.Death, error)
	CountKillsByKiller(ctx context.Context, killerName string, victimGuildIDs []int64, since time.Time) (int, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByCharacter(ctx context.Context, characterName, world string) (*domain.User, error)
}

type ConfigurationRepository interface {
	CreateWorldSubscription(ctx context.Context, sub *domain.WorldSubscription) error
	GetWorldSubscription(ctx context.Context, userID uuid.UUID) (*domain.WorldSubscription, error)
	AttachGuild(ctx context.Context, cfg *domain.GuildConfiguration) error
	DetachGuild(ctx context.Context, subscriptionID, guildID int64) error
	CountConfigurations(ctx context.Context, subscriptionID int64) (int, error)
	CountGuildReferences(ctx context.Context, guildID int64) (int, error)
	ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
}

type BillingRepository interface {
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error
	UpdateSubscription(ctx context.Context, sub *domain.Subscription) error
	GetSubscriptionByUser(ctx context.Context, userID uuid.UUID) (*domain.Subscription, error)
	CreateVerification(ctx context.Context, v *domain.PaymentVerification) error
	UpdateVerification(ctx context.Context, v *domain.PaymentVerification) error
	GetVerification(ctx context.Context, id uuid.UUID) (*domain.PaymentVerification, error)
	ListPendingVerifications(ctx context.Context) ([]domain.PaymentVerification, error)
	CreatePayment(ctx context.Context, p *domain.Payment) error
	SumPayments(ctx context.Context, from, to time.Time) (float64, error)
	CountSubscriptionsByStatus(ctx context.Context) (map[domain.SubscriptionStatus]int, error)
}

// Repository is the full persistence surface. The postgres store implements
// it both for the shared pool and for an open transaction.
type Repository interface {
	GuildRepository
	PlayerRepository
	DeathRepository
	UserRepository
	ConfigurationRepository
	BillingRepository
}

type Store interface {
	Repository
	// RunInTx runs fn inside a transaction, retrying transient failures.
	// Unique-constraint violations are surfaced immediately.
	RunInTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
	Close() error
}

// GuildDataFetcher is the external game-data source. Fetch failures for a
// single guild surface as a nil snapshot, not an error: callers must treat
// absence as a valid outcome.
type GuildDataFetcher interface {
	FetchGuildRoster(ctx context.Context, guildName string) (*domain.RosterSnapshot, error)
	ValidateWorld(ctx context.Context, world string) (bool, error)
	SearchGuilds(ctx context.Context, world, query string) ([]domain.GuildSummary, error)
	FetchWorldOnline(ctx context.Context, world string) (map[string]int, error)
	FetchCharacterDeaths(ctx context.Context, name string) ([]domain.MemberDeath, error)
}

type NotificationService interface {
	SendDeathAlert(playerName, world string, death domain.Death, tier string) error
	SendSyncReport(world, guildName string, created, updated int) error
}

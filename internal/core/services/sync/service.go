package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/ports"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var (
	ErrGuildNotFound  = errors.New("guild not found")
	ErrRosterNotFound = errors.New("guild roster not available")
	ErrWorldMismatch  = errors.New("roster world does not match configured guild")
)

// Repository is the slice of the persistence surface reconciliation writes.
type Repository interface {
	GetGuild(ctx context.Context, id int64) (*domain.Guild, error)
	SetGuildLastSync(ctx context.Context, guildID int64, at time.Time) error
	GetPlayerByNameWorld(ctx context.Context, name, world string) (*domain.Player, error)
	CreatePlayer(ctx context.Context, player *domain.Player) error
	UpdatePlayer(ctx context.Context, player *domain.Player) error
	AppendDeath(ctx context.Context, death *domain.Death) error
	HasDeath(ctx context.Context, playerID int64, occurredAt time.Time) (bool, error)
	ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
}

// Fetcher is the slice of the game-data source reconciliation reads.
type Fetcher interface {
	FetchGuildRoster(ctx context.Context, guildName string) (*domain.RosterSnapshot, error)
	FetchCharacterDeaths(ctx context.Context, name string) ([]domain.MemberDeath, error)
}

type Dependencies struct {
	Repo     Repository
	Fetcher  Fetcher
	Notifier ports.NotificationService // optional
	// GuildDelay is the pause between guilds in a bulk run, protecting the
	// external API from bursts.
	GuildDelay time.Duration
}

type Service struct {
	repo     Repository
	fetcher  Fetcher
	notifier ports.NotificationService
	limiter  *rate.Limiter

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(deps Dependencies) *Service {
	delay := deps.GuildDelay
	if delay <= 0 {
		delay = time.Second
	}

	return &Service{
		repo:     deps.Repo,
		fetcher:  deps.Fetcher,
		notifier: deps.Notifier,
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// guildLock serializes concurrent syncs of the same guild so two
// reconciliation passes cannot interleave writes.
func (s *Service) guildLock(guildID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[guildID] = lock
	}
	return lock
}

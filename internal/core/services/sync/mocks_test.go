package sync

import (
	"context"
	"fmt"
	"time"

	"guildwatch/internal/core/domain"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository with per-method error hooks.
type fakeRepo struct {
	guilds  map[int64]*domain.Guild
	players map[string]*domain.Player // key: name|world
	deaths  []domain.Death
	configs []domain.GuildConfiguration

	lastSync map[int64]time.Time
	nextID   int64

	createErr func(name string) error
	updateErr func(name string) error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		guilds:   make(map[int64]*domain.Guild),
		players:  make(map[string]*domain.Player),
		lastSync: make(map[int64]time.Time),
	}
}

func playerKey(name, world string) string { return name + "|" + world }

func (f *fakeRepo) GetGuild(ctx context.Context, id int64) (*domain.Guild, error) {
	g, ok := f.guilds[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (f *fakeRepo) SetGuildLastSync(ctx context.Context, guildID int64, at time.Time) error {
	f.lastSync[guildID] = at
	return nil
}

func (f *fakeRepo) GetPlayerByNameWorld(ctx context.Context, name, world string) (*domain.Player, error) {
	p, ok := f.players[playerKey(name, world)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepo) CreatePlayer(ctx context.Context, player *domain.Player) error {
	if f.createErr != nil {
		if err := f.createErr(player.Name); err != nil {
			return err
		}
	}
	key := playerKey(player.Name, player.World)
	if _, exists := f.players[key]; exists {
		return fmt.Errorf("create player: %w", domain.ErrDuplicate)
	}
	f.nextID++
	player.ID = f.nextID
	copied := *player
	f.players[key] = &copied
	return nil
}

func (f *fakeRepo) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	if f.updateErr != nil {
		if err := f.updateErr(player.Name); err != nil {
			return err
		}
	}
	key := playerKey(player.Name, player.World)
	if _, exists := f.players[key]; !exists {
		return domain.ErrNotFound
	}
	copied := *player
	f.players[key] = &copied
	return nil
}

func (f *fakeRepo) AppendDeath(ctx context.Context, death *domain.Death) error {
	f.deaths = append(f.deaths, *death)
	return nil
}

func (f *fakeRepo) HasDeath(ctx context.Context, playerID int64, occurredAt time.Time) (bool, error) {
	for _, d := range f.deaths {
		if d.PlayerID == playerID && d.OccurredAt.Equal(occurredAt) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) ListConfigurations(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error) {
	return f.configs, nil
}

// fakeNotifier records sent alerts and reports.
type fakeNotifier struct {
	alerts  []string
	reports []string
	sendErr error
}

func (f *fakeNotifier) SendDeathAlert(playerName, world string, death domain.Death, tier string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.alerts = append(f.alerts, fmt.Sprintf("%s|%s|%s", playerName, world, tier))
	return nil
}

func (f *fakeNotifier) SendSyncReport(world, guildName string, created, updated int) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.reports = append(f.reports, fmt.Sprintf("%s|%s|%d/%d", world, guildName, created, updated))
	return nil
}

// fakeFetcher returns canned snapshots per guild name.
type fakeFetcher struct {
	rosters map[string]*domain.RosterSnapshot
	deaths  map[string][]domain.MemberDeath
}

func (f *fakeFetcher) FetchGuildRoster(ctx context.Context, guildName string) (*domain.RosterSnapshot, error) {
	return f.rosters[guildName], nil
}

func (f *fakeFetcher) FetchCharacterDeaths(ctx context.Context, name string) ([]domain.MemberDeath, error) {
	return f.deaths[name], nil
}

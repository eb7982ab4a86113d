package handlers

import (
	"context"
	"time"

	authjwt "guildwatch/internal/auth"
	"guildwatch/internal/core/domain"
	authsvc "guildwatch/internal/core/services/auth"
	"guildwatch/internal/core/services/billing"
	"guildwatch/internal/core/services/dashboard"
	syncsvc "guildwatch/internal/core/services/sync"
	"guildwatch/internal/core/services/threat"

	"github.com/google/uuid"
)

const testSecret = "handler-test-secret-32-chars-long!!!"

type mockAccounts struct {
	register func(ctx context.Context, characterName, world, guildName, password string) (*authsvc.Session, error)
	login    func(ctx context.Context, characterName, world, password string) (*authsvc.Session, error)
}

func (m *mockAccounts) Register(ctx context.Context, characterName, world, guildName, password string) (*authsvc.Session, error) {
	return m.register(ctx, characterName, world, guildName, password)
}

func (m *mockAccounts) Login(ctx context.Context, characterName, world, password string) (*authsvc.Session, error) {
	return m.login(ctx, characterName, world, password)
}

type mockSync struct {
	syncGuild func(ctx context.Context, guildID int64) (*syncsvc.SyncReport, error)
	syncAll   func(ctx context.Context, userID uuid.UUID) (*syncsvc.BulkSyncReport, error)
}

func (m *mockSync) SyncGuild(ctx context.Context, guildID int64) (*syncsvc.SyncReport, error) {
	return m.syncGuild(ctx, guildID)
}

func (m *mockSync) SyncAll(ctx context.Context, userID uuid.UUID) (*syncsvc.BulkSyncReport, error) {
	return m.syncAll(ctx, userID)
}

type mockThreats struct {
	enemyReport func(ctx context.Context, userID uuid.UUID) ([]threat.EnemyThreat, error)
}

func (m *mockThreats) EnemyReport(ctx context.Context, userID uuid.UUID) ([]threat.EnemyThreat, error) {
	return m.enemyReport(ctx, userID)
}

type mockBilling struct {
	submitPayment        func(ctx context.Context, userID uuid.UUID, planID string, amount float64, transferDetails string) (*domain.PaymentVerification, error)
	approvePayment       func(ctx context.Context, verificationID, adminID uuid.UUID) error
	rejectPayment        func(ctx context.Context, verificationID, adminID uuid.UUID, reason string) error
	pendingVerifications func(ctx context.Context) ([]domain.PaymentVerification, error)
	businessMetrics      func(ctx context.Context) (*billing.BusinessReport, error)
}

func (m *mockBilling) SubmitPayment(ctx context.Context, userID uuid.UUID, planID string, amount float64, transferDetails string) (*domain.PaymentVerification, error) {
	return m.submitPayment(ctx, userID, planID, amount, transferDetails)
}

func (m *mockBilling) ApprovePayment(ctx context.Context, verificationID, adminID uuid.UUID) error {
	return m.approvePayment(ctx, verificationID, adminID)
}

func (m *mockBilling) RejectPayment(ctx context.Context, verificationID, adminID uuid.UUID, reason string) error {
	return m.rejectPayment(ctx, verificationID, adminID, reason)
}

func (m *mockBilling) PendingVerifications(ctx context.Context) ([]domain.PaymentVerification, error) {
	return m.pendingVerifications(ctx)
}

func (m *mockBilling) BusinessMetrics(ctx context.Context) (*billing.BusinessReport, error) {
	return m.businessMetrics(ctx)
}

type mockDashboard struct {
	overview     func(ctx context.Context, userID uuid.UUID) (*dashboard.Overview, error)
	recentDeaths func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Death, error)
}

func (m *mockDashboard) Overview(ctx context.Context, userID uuid.UUID) (*dashboard.Overview, error) {
	return m.overview(ctx, userID)
}

func (m *mockDashboard) RecentDeaths(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Death, error) {
	return m.recentDeaths(ctx, userID, limit)
}

type mockGuilds struct {
	attach      func(ctx context.Context, userID uuid.UUID, guildName string, role domain.GuildType, priority int) (*domain.GuildConfiguration, error)
	detach      func(ctx context.Context, userID uuid.UUID, guildID int64) error
	list        func(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
	search      func(ctx context.Context, userID uuid.UUID, query string) ([]domain.GuildSummary, error)
	worldOnline func(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

func (m *mockGuilds) Attach(ctx context.Context, userID uuid.UUID, guildName string, role domain.GuildType, priority int) (*domain.GuildConfiguration, error) {
	return m.attach(ctx, userID, guildName, role, priority)
}

func (m *mockGuilds) Detach(ctx context.Context, userID uuid.UUID, guildID int64) error {
	return m.detach(ctx, userID, guildID)
}

func (m *mockGuilds) List(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error) {
	return m.list(ctx, userID)
}

func (m *mockGuilds) Search(ctx context.Context, userID uuid.UUID, query string) ([]domain.GuildSummary, error) {
	return m.search(ctx, userID, query)
}

func (m *mockGuilds) WorldOnline(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	return m.worldOnline(ctx, userID)
}

type testEnv struct {
	handlers  *Handlers
	tokens    *authjwt.TokenService
	accounts  *mockAccounts
	sync      *mockSync
	threats   *mockThreats
	billing   *mockBilling
	dashboard *mockDashboard
	guilds    *mockGuilds
}

func newTestEnv() *testEnv {
	env := &testEnv{
		tokens:    authjwt.NewTokenService(testSecret, time.Hour),
		accounts:  &mockAccounts{},
		sync:      &mockSync{},
		threats:   &mockThreats{},
		billing:   &mockBilling{},
		dashboard: &mockDashboard{},
		guilds:    &mockGuilds{},
	}
	env.handlers = New(Dependencies{
		Tokens:    env.tokens,
		Accounts:  env.accounts,
		Sync:      env.sync,
		Threats:   env.threats,
		Billing:   env.billing,
		Dashboard: env.dashboard,
		Guilds:    env.guilds,
	})
	return env
}

func (e *testEnv) tokenFor(role domain.Role) string {
	token, err := e.tokens.GenerateToken(&domain.User{
		ID:            uuid.New(),
		CharacterName: "Alice",
		World:         "Antica",
		Role:          role,
	})
	if err != nil {
		panic(err)
	}
	return token
}

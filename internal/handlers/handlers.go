package handlers

import (
	"context"

	authjwt "guildwatch/internal/auth"
	"guildwatch/internal/core/domain"
	authsvc "guildwatch/internal/core/services/auth"
	"guildwatch/internal/core/services/billing"
	"guildwatch/internal/core/services/dashboard"
	syncsvc "guildwatch/internal/core/services/sync"
	"guildwatch/internal/core/services/threat"

	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, characterName, world, guildName, password string) (*authsvc.Session, error)
	Login(ctx context.Context, characterName, world, password string) (*authsvc.Session, error)
}

type SyncService interface {
	SyncGuild(ctx context.Context, guildID int64) (*syncsvc.SyncReport, error)
	SyncAll(ctx context.Context, userID uuid.UUID) (*syncsvc.BulkSyncReport, error)
}

type ThreatService interface {
	EnemyReport(ctx context.Context, userID uuid.UUID) ([]threat.EnemyThreat, error)
}

type BillingService interface {
	SubmitPayment(ctx context.Context, userID uuid.UUID, planID string, amount float64, transferDetails string) (*domain.PaymentVerification, error)
	ApprovePayment(ctx context.Context, verificationID, adminID uuid.UUID) error
	RejectPayment(ctx context.Context, verificationID, adminID uuid.UUID, reason string) error
	PendingVerifications(ctx context.Context) ([]domain.PaymentVerification, error)
	BusinessMetrics(ctx context.Context) (*billing.BusinessReport, error)
}

type DashboardService interface {
	Overview(ctx context.Context, userID uuid.UUID) (*dashboard.Overview, error)
	RecentDeaths(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Death, error)
}

type GuildService interface {
	Attach(ctx context.Context, userID uuid.UUID, guildName string, role domain.GuildType, priority int) (*domain.GuildConfiguration, error)
	Detach(ctx context.Context, userID uuid.UUID, guildID int64) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.GuildConfiguration, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]domain.GuildSummary, error)
	WorldOnline(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

// Handlers holds every HTTP endpoint of the API.
type Handlers struct {
	tokens    *authjwt.TokenService
	accounts  AuthService
	sync      SyncService
	threats   ThreatService
	billing   BillingService
	dashboard DashboardService
	guilds    GuildService
}

type Dependencies struct {
	Tokens    *authjwt.TokenService
	Accounts  AuthService
	Sync      SyncService
	Threats   ThreatService
	Billing   BillingService
	Dashboard DashboardService
	Guilds    GuildService
}

func New(deps Dependencies) *Handlers {
	return &Handlers{
		tokens:    deps.Tokens,
		accounts:  deps.Accounts,
		sync:      deps.Sync,
		threats:   deps.Threats,
		billing:   deps.Billing,
		dashboard: deps.Dashboard,
		guilds:    deps.Guilds,
	}
}

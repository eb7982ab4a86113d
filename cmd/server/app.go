package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"guildwatch/internal/adapters/discord"
	"guildwatch/internal/adapters/storage/postgres"
	"guildwatch/internal/adapters/tibiadata"
	"guildwatch/internal/adapters/tibiadata/api"
	authjwt "guildwatch/internal/auth"
	"guildwatch/internal/config"
	"guildwatch/internal/core/ports"
	authsvc "guildwatch/internal/core/services/auth"
	"guildwatch/internal/core/services/billing"
	"guildwatch/internal/core/services/dashboard"
	"guildwatch/internal/core/services/guilds"
	syncsvc "guildwatch/internal/core/services/sync"
	"guildwatch/internal/core/services/threat"
	"guildwatch/internal/handlers"

	"github.com/bwmarrin/discordgo"
)

func InitLogger(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

type App struct {
	config  *config.Config
	store   *postgres.Store
	discord *discordgo.Session
	server  *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, err
	}

	fetcher := tibiadata.NewAdapter(api.NewClient(cfg.TibiaDataBaseURL))

	var session *discordgo.Session
	var notifier ports.NotificationService
	if cfg.DiscordEnabled() {
		session, err = discord.NewSession(cfg)
		if err != nil {
			return nil, err
		}
		notifier = discord.NewNotifier(session, cfg)
	}

	tokens := authjwt.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)

	syncService := syncsvc.NewService(syncsvc.Dependencies{
		Repo:       store,
		Fetcher:    fetcher,
		Notifier:   notifier,
		GuildDelay: cfg.SyncGuildDelay,
	})
	threatService := threat.NewService(store)
	billingService := billing.NewService(store)
	dashboardService := dashboard.NewService(store, threatService)
	accountService := authsvc.NewService(store, fetcher, tokens, cfg.BcryptCost)
	guildService := guilds.NewService(store, fetcher)

	h := handlers.New(handlers.Dependencies{
		Tokens:    tokens,
		Accounts:  accountService,
		Sync:      syncService,
		Threats:   threatService,
		Billing:   billingService,
		Dashboard: dashboardService,
		Guilds:    guildService,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		config:  cfg,
		store:   store,
		discord: session,
		server:  server,
	}, nil
}

func (a *App) Run() error {
	if a.discord != nil {
		if err := a.discord.Open(); err != nil {
			slog.Error("Failed to open discord session", "error", err)
			return err
		}
	}

	go func() {
		slog.Info("HTTP server listening", "addr", a.config.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("Guildwatch is online!")
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guildwatch_sync_runs_total",
		Help: "The total number of guild roster sync runs",
	}, []string{"status"})

	PlayersReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guildwatch_players_reconciled_total",
		Help: "Roster members processed by the reconciliation routine",
	}, []string{"action"})

	DeathsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "guildwatch_deaths_recorded_total",
		Help: "The total number of deaths appended during sync",
	})

	TibiaDataRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tibiadata_request_duration_seconds",
		Help:    "Duration of TibiaData API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	TibiaDataRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tibiadata_requests_total",
		Help: "Total number of TibiaData API requests",
	}, []string{"endpoint", "status"})

	TibiaComRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tibiacom_request_duration_seconds",
		Help:    "Duration of Tibia.com HTML scraping requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	TibiaComRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tibiacom_requests_total",
		Help: "Total number of Tibia.com HTML scraping requests",
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "guildwatch_http_request_duration_seconds",
		Help:    "Duration of HTTP API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	PaymentReviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guildwatch_payment_reviews_total",
		Help: "Payment verifications reviewed by an admin",
	}, []string{"outcome"})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord messages sent",
	}, []string{"channel_type", "status"})
)

package handlers

import (
	"net/http"

	"guildwatch/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router assembles the full API route tree.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// public
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Get("/plans", h.ListPlans)

		// authenticated
		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)

			r.Route("/guild", func(r chi.Router) {
				r.Get("/enemies", h.Enemies)
				r.Get("/deaths", h.GuildDeaths)
				r.Get("/search", h.SearchGuilds)
				r.Post("/sync-players", h.SyncPlayers)
				r.Post("/sync-all", h.SyncAll)
				r.Get("/configurations", h.ListConfigurations)
				r.Post("/configurations", h.AttachGuild)
				r.Delete("/configurations/{guildID}", h.DetachGuild)
			})

			r.Get("/world/online", h.WorldOnline)
			r.Get("/dashboard/overview", h.Overview)
			r.Post("/subscription/submit-payment", h.SubmitPayment)

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireRole(domain.RoleSuperAdmin))
				r.Post("/approve-payment", h.ApprovePayment)
				r.Post("/reject-payment", h.RejectPayment)
				r.Get("/pending-verifications", h.PendingVerifications)
				r.Get("/business-metrics", h.BusinessMetrics)
			})
		})
	})

	return r
}

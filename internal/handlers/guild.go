package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"guildwatch/internal/core/domain"
	"guildwatch/internal/core/services/guilds"
	syncsvc "guildwatch/internal/core/services/sync"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) Enemies(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	report, err := h.threats.EnemyReport(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build enemy report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type syncPlayersRequest struct {
	GuildID int64 `json:"guildId"`
}

func (h *Handlers) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	var req syncPlayersRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GuildID <= 0 {
		writeFieldErrors(w, "validation failed", map[string]string{"guildId": "required"})
		return
	}

	report, err := h.sync.SyncGuild(r.Context(), req.GuildID)
	if err != nil {
		switch {
		case errors.Is(err, syncsvc.ErrGuildNotFound), errors.Is(err, syncsvc.ErrRosterNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, syncsvc.ErrWorldMismatch):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "sync failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) SyncAll(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	report, err := h.sync.SyncAll(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "bulk sync failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) GuildDeaths(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	deaths, err := h.dashboard.RecentDeaths(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load deaths")
		return
	}
	writeJSON(w, http.StatusOK, deaths)
}

func (h *Handlers) SearchGuilds(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeFieldErrors(w, "validation failed", map[string]string{"q": "required"})
		return
	}

	results, err := h.guilds.Search(r.Context(), userID, query)
	if err != nil {
		if errors.Is(err, guilds.ErrNoSubscription) {
			writeError(w, http.StatusNotFound, "no world subscription")
			return
		}
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handlers) WorldOnline(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	online, err := h.guilds.WorldOnline(r.Context(), userID)
	if err != nil {
		if errors.Is(err, guilds.ErrNoSubscription) {
			writeError(w, http.StatusNotFound, "no world subscription")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load online players")
		return
	}
	writeJSON(w, http.StatusOK, online)
}

func (h *Handlers) ListConfigurations(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	configs, err := h.guilds.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list configurations")
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

type attachGuildRequest struct {
	GuildName string `json:"guildName"`
	Role      string `json:"role"`
	Priority  int    `json:"priority"`
}

func (h *Handlers) AttachGuild(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req attachGuildRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GuildName == "" {
		writeFieldErrors(w, "validation failed", map[string]string{"guildName": "required"})
		return
	}

	cfg, err := h.guilds.Attach(r.Context(), userID, req.GuildName, domain.GuildType(req.Role), req.Priority)
	if err != nil {
		switch {
		case errors.Is(err, guilds.ErrInvalidRole):
			writeFieldErrors(w, "validation failed", map[string]string{"role": "must be MAIN, ALLY or ENEMY"})
		case errors.Is(err, guilds.ErrMaxGuilds):
			writeError(w, http.StatusBadRequest, "guild limit reached")
		case errors.Is(err, guilds.ErrNoSubscription):
			writeError(w, http.StatusNotFound, "no world subscription")
		case errors.Is(err, domain.ErrDuplicate):
			writeError(w, http.StatusBadRequest, "guild already configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed to attach guild")
		}
		return
	}
	writeJSON(w, http.StatusCreated, cfg)
}

func (h *Handlers) DetachGuild(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
	if err != nil || guildID <= 0 {
		writeFieldErrors(w, "validation failed", map[string]string{"guildID": "must be a positive integer"})
		return
	}

	if err := h.guilds.Detach(r.Context(), userID, guildID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "configuration not found")
		case errors.Is(err, guilds.ErrNoSubscription):
			writeError(w, http.StatusNotFound, "no world subscription")
		default:
			writeError(w, http.StatusInternalServerError, "failed to detach guild")
		}
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

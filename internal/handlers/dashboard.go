package handlers

import "net/http"

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	userID, err := claims.UserID()
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	overview, err := h.dashboard.Overview(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build overview")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

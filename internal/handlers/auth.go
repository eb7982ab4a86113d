package handlers

import (
	"errors"
	"net/http"

	authsvc "guildwatch/internal/core/services/auth"
)

type registerRequest struct {
	CharacterName string `json:"characterName"`
	World         string `json:"world"`
	GuildName     string `json:"guildName"`
	Password      string `json:"password"`
}

func (r registerRequest) validate() map[string]string {
	fields := make(map[string]string)
	if r.CharacterName == "" {
		fields["characterName"] = "required"
	}
	if r.World == "" {
		fields["world"] = "required"
	}
	if r.GuildName == "" {
		fields["guildName"] = "required"
	}
	if len(r.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if fields := req.validate(); fields != nil {
		writeFieldErrors(w, "validation failed", fields)
		return
	}

	session, err := h.accounts.Register(r.Context(), req.CharacterName, req.World, req.GuildName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidWorld):
			writeFieldErrors(w, "validation failed", map[string]string{"world": "unknown world"})
		case errors.Is(err, authsvc.ErrCharacterTaken):
			writeError(w, http.StatusBadRequest, "character already registered on this world")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

type loginRequest struct {
	CharacterName string `json:"characterName"`
	World         string `json:"world"`
	Password      string `json:"password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CharacterName == "" || req.World == "" || req.Password == "" {
		writeFieldErrors(w, "validation failed", map[string]string{"credentials": "characterName, world and password are required"})
		return
	}

	session, err := h.accounts.Login(r.Context(), req.CharacterName, req.World, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid character name or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

package http

import (
	"encoding/json"
	"net/http"
	"strings"
)

type AuthHandler struct {
	api APIFactory
}

func NewAuthHandler(api APIFactory) *AuthHandler {
	return &AuthHandler{api: api}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	api := h.api(getSessionID(r.Context()))
	if err := api.Login(r.Context(), req.Email, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "login_failed", "invalid credentials")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "logged in"})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	api := h.api(getSessionID(r.Context()))
	if err := api.Logout(r.Context()); err != nil {
		handleFlowError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

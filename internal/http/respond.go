package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rentfront/gateway/internal/authclient"
	"github.com/rentfront/gateway/internal/checkout"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleFlowError maps checkout and auth errors onto HTTP statuses.
// Guard refusals come back as 422 with the guard's own message, shown
// inline next to the stage that refused; they are not server faults.
func handleFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrValidationBlocked):
		respondError(w, http.StatusUnprocessableEntity, "validation_blocked", err.Error())
	case errors.Is(err, checkout.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, checkout.ErrWrongStage), errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, checkout.ErrOrderFailed):
		respondError(w, http.StatusBadGateway, "order_failed", err.Error())
	case errors.Is(err, authclient.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no active session, log in first")
	default:
		log.Printf("unexpected handler error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

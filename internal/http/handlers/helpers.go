package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/tournament"
	"github.com/charmbracelet/log"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to status codes and logs the rest.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, club.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, tournament.ErrNotEnoughPlayers),
		errors.Is(err, availability.ErrNotEnoughPlayers),
		errors.Is(err, availability.ErrPollClosed):
		status = http.StatusUnprocessableEntity
	default:
		log.Error(msg, "error", err)
	}
	http.Error(w, msg+": "+err.Error(), status)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

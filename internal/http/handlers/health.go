package handlers

import (
	"fmt"
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/charmbracelet/log"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the persisted activity counters.
func StatsHandler(counters metrics.MetricsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := counters.GetAll()
		if err != nil {
			writeError(w, "Failed to get stats", err)
			return
		}
		writeJSON(w, http.StatusOK, all)
	}
}

package handlers

import (
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/charmbracelet/log"
)

// ImportHandler runs a Playtomic import, e.g. from Cloud Scheduler.
func ImportHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := proc.ImportPlaytomic(r.Context(), IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to import matches", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// SendRecapHandler queues the recap of ?date= (latest evening when empty).
func SendRecapHandler(pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		evt := pubsub.RecapRequested{Date: r.URL.Query().Get("date"), DryRun: IsDryRunFromContext(r)}
		if err := pubsubClient.SendMessage(pubsub.EventRecapRequested, evt); err != nil {
			writeError(w, "Failed to queue recap", err)
			return
		}
		log.Info("Recap queued", "date", evt.Date, "dry_run", evt.DryRun)
		w.WriteHeader(http.StatusAccepted)
	}
}

// SendLeaderboardHandler posts the leaderboard to the club channel.
func SendLeaderboardHandler(rankings *ranking.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := rankings.Leaderboard()
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		if err := n.SendLeaderboard(players, IsDryRunFromContext(r)); err != nil {
			writeError(w, "Failed to send leaderboard", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

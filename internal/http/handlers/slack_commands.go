package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
)

// respondWithSlackMsg writes a formatted Slack message as the command response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	writeJSON(w, http.StatusOK, msg)
}

func LeaderboardCommandHandler(rankings *ranking.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := rankings.Leaderboard()
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		msg, err := n.FormatLeaderboardResponse(players)
		if err != nil {
			writeError(w, "Failed to format leaderboard", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

func PlayerCommandHandler(rankings *ranking.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received player command", "query", query)
		var msg any
		id, err := FindPlayer(rankings, query)
		if err == nil {
			var profile *ranking.PlayerProfile
			if profile, err = rankings.Player(id); err == nil {
				msg, err = n.FormatPlayerResponse(profile)
			}
		}
		if err != nil {
			log.Warn("Could not find player", "query", query, "error", err)
			msg, err = n.FormatPlayerNotFoundResponse(query)
		}
		if err != nil {
			writeError(w, "Failed to format player", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// RecapCommandHandler answers "/recap", "/recap yesterday" or "/recap 2024-05-10".
func RecapCommandHandler(rankings *ranking.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		date, err := timeutil.ParseDayInput(r.FormValue("text"), time.Now(), rankings.Location())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		recap, err := rankings.Recap(date)
		if err != nil {
			writeError(w, "Failed to build recap", err)
			return
		}
		highlight, err := rankings.Highlight()
		if err != nil {
			writeError(w, "Failed to find highlight", err)
			return
		}
		msg, err := n.FormatRecapResponse(recap, highlight)
		if err != nil {
			writeError(w, "Failed to format recap", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// FindPlayer resolves a query to a rated player: an id, an exact name, then the
// best-ranked active player whose name contains the query.
func FindPlayer(rankings *ranking.Service, query string) (string, error) {
	snap, err := rankings.Snapshot()
	if err != nil {
		return "", err
	}
	if _, ok := snap.Ledger.Player(query); ok {
		return query, nil
	}
	ids := club.NewNameIndex(snap.Profiles).Resolve(club.NameRoster(query))
	if len(ids) == 1 && ids[0] != club.GuestID {
		if _, ok := snap.Ledger.Player(ids[0]); ok {
			return ids[0], nil
		}
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for _, p := range snap.Ledger.Players {
		if !p.IsDeleted && strings.Contains(fold.String(p.Name), needle) {
			return p.ID, nil
		}
	}
	return "", club.ErrNotFound
}


package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/charmbracelet/log"
)

func LeaderboardHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := rankings.Leaderboard()
		if err != nil {
			writeError(w, "Failed to build leaderboard", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func PlayerHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := rankings.Player(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get player", err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func RecapHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		recap, err := rankings.Recap(date)
		if err != nil {
			writeError(w, "Failed to build recap", err)
			return
		}
		if recap == nil {
			http.Error(w, "No rated matches for that evening", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, recap)
	}
}

func MatchDatesHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dates, err := rankings.MatchDates()
		if err != nil {
			writeError(w, "Failed to list match dates", err)
			return
		}
		writeJSON(w, http.StatusOK, dates)
	}
}

func HighlightHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		highlight, err := rankings.Highlight()
		if err != nil {
			writeError(w, "Failed to find highlight", err)
			return
		}
		if highlight == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, highlight)
	}
}

func MonthlyMVPHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		winner, err := rankings.MonthlyMVP()
		if err != nil {
			writeError(w, "Failed to score MVP", err)
			return
		}
		if winner == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, winner)
	}
}

// RotationHandler schedules ?players=a,b,c over current ratings.
func RotationHandler(rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pool []string
		for _, id := range strings.Split(r.URL.Query().Get("players"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				pool = append(pool, id)
			}
		}
		if len(pool) < 4 {
			http.Error(w, "At least four players are required", http.StatusBadRequest)
			return
		}
		schedule, err := rankings.Rotation(pool)
		if err != nil {
			writeError(w, "Failed to build rotation", err)
			return
		}
		writeJSON(w, http.StatusOK, schedule)
	}
}

func ListProfilesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := store.ListProfiles()
		if err != nil {
			writeError(w, "Failed to get profiles", err)
			return
		}
		writeJSON(w, http.StatusOK, profiles)
	}
}

func UpsertProfileHandler(store club.ClubStore, rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile club.Profile
		if !decodeJSON(w, r, &profile) {
			return
		}
		profile.ID = r.PathValue("id")
		if strings.TrimSpace(profile.Name) == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		if err := store.UpsertProfile(profile); err != nil {
			writeError(w, "Failed to save profile", err)
			return
		}
		rankings.Invalidate()
		writeJSON(w, http.StatusOK, profile)
	}
}

// RenameProfileHandler changes only the display name. Legacy name rosters keep resolving
// through the previous name until the next import rewrites them.
func RenameProfileHandler(store club.ClubStore, rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		if err := store.RenameProfile(r.PathValue("id"), name); err != nil {
			writeError(w, "Failed to rename profile", err)
			return
		}
		rankings.Invalidate()
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeactivateProfileHandler(store club.ClubStore, rankings *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeactivateProfile(r.PathValue("id")); err != nil {
			writeError(w, "Failed to deactivate profile", err)
			return
		}
		rankings.Invalidate()
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListMatchesHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := store.ListMatches()
		if err != nil {
			writeError(w, "Failed to get matches", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func CreateMatchHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var match club.Match
		if !decodeJSON(w, r, &match) {
			return
		}
		if !match.Valid() {
			http.Error(w, "A match needs a score and at least one player per side", http.StatusBadRequest)
			return
		}
		if match.CreatedAt.IsZero() {
			match.CreatedAt = time.Now()
		}
		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would record match", "team1", match.Team1.Values(), "team2", match.Team2.Values())
			writeJSON(w, http.StatusOK, match)
			return
		}
		if err := store.CreateMatch(&match); err != nil {
			writeError(w, "Failed to record match", err)
			return
		}
		proc.PublishMatchRecorded(pubsub.ActionCreated, match.ID)
		writeJSON(w, http.StatusCreated, match)
	}
}

func UpdateMatchHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var match club.Match
		if !decodeJSON(w, r, &match) {
			return
		}
		match.ID = r.PathValue("id")
		if !match.Valid() {
			http.Error(w, "A match needs a score and at least one player per side", http.StatusBadRequest)
			return
		}
		existing, err := store.GetMatch(match.ID)
		if err != nil {
			writeError(w, "Failed to get match", err)
			return
		}
		if match.CreatedAt.IsZero() {
			match.CreatedAt = existing.CreatedAt
		}
		if match.ScoreType == "" {
			match.ScoreType = existing.ScoreType
		}
		if err := store.UpdateMatch(match); err != nil {
			writeError(w, "Failed to update match", err)
			return
		}
		proc.PublishMatchRecorded(pubsub.ActionUpdated, match.ID)
		writeJSON(w, http.StatusOK, match)
	}
}

func DeleteMatchHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.DeleteMatch(id); err != nil {
			writeError(w, "Failed to delete match", err)
			return
		}
		proc.PublishMatchRecorded(pubsub.ActionDeleted, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

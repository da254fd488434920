package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/tournament"
	"github.com/charmbracelet/log"
)

type createTournamentRequest struct {
	Name         string                `json:"name"`
	Format       club.TournamentFormat `json:"format"`
	Participants []string              `json:"participants"`
}

type tournamentView struct {
	Tournament *club.Tournament       `json:"tournament"`
	Rounds     []club.TournamentRound `json:"rounds"`
	Standings  []tournament.Standing  `json:"standings"`
}

type scoreRequest struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}

func CreateTournamentHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		if req.Format != club.FormatAmericano && req.Format != club.FormatMexicano {
			http.Error(w, fmt.Sprintf("Unknown format %q", req.Format), http.StatusBadRequest)
			return
		}
		if len(req.Participants) < tournament.CourtSize {
			http.Error(w, "At least four participants are required", http.StatusBadRequest)
			return
		}
		t := club.Tournament{Name: req.Name, Format: req.Format, Participants: req.Participants}
		if err := store.CreateTournament(&t); err != nil {
			writeError(w, "Failed to create tournament", err)
			return
		}
		log.Info("Tournament created", "tournament_id", t.ID, "slug", t.Slug, "format", t.Format)
		writeJSON(w, http.StatusCreated, t)
	}
}

func ListTournamentsHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := store.ListTournaments()
		if err != nil {
			writeError(w, "Failed to list tournaments", err)
			return
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}

func GetTournamentHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTournament(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get tournament", err)
			return
		}
		rounds, err := store.ListRounds(t.ID)
		if err != nil {
			writeError(w, "Failed to list rounds", err)
			return
		}
		st := tournament.GetTournamentState(rounds, t.Participants)
		writeJSON(w, http.StatusOK, tournamentView{Tournament: t, Rounds: rounds, Standings: tournament.Standings(st)})
	}
}

// NextRoundHandler generates, stores and announces the next round.
func NextRoundHandler(proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := proc.AnnounceNextRound(r.PathValue("id"), IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to create next round", err)
			return
		}
		writeJSON(w, http.StatusOK, round)
	}
}

// PlanHandler previews a full Americano schedule without storing it. ?rounds=N
// overrides the default length.
func PlanHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTournament(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get tournament", err)
			return
		}
		rounds := 0
		if v := r.URL.Query().Get("rounds"); v != "" {
			if rounds, err = strconv.Atoi(v); err != nil {
				http.Error(w, "rounds must be a number", http.StatusBadRequest)
				return
			}
		}
		plan, err := tournament.GenerateAmericanoRounds(t.Participants, rounds)
		if err != nil {
			writeError(w, "Failed to plan tournament", err)
			return
		}
		for i := range plan {
			plan[i].TournamentID = t.ID
		}
		writeJSON(w, http.StatusOK, plan)
	}
}

func ScoreRoundHandler(store club.ClubStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Team1Score == nil || req.Team2Score == nil || *req.Team1Score < 0 || *req.Team2Score < 0 {
			http.Error(w, "Both scores are required and must not be negative", http.StatusBadRequest)
			return
		}
		t, err := store.GetTournament(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get tournament", err)
			return
		}
		if t.Status == club.TournamentCompleted {
			http.Error(w, "Tournament is already completed", http.StatusConflict)
			return
		}
		if err := store.ScoreRound(t.ID, r.PathValue("round"), *req.Team1Score, *req.Team2Score); err != nil {
			writeError(w, "Failed to score round", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// CompleteTournamentHandler stores the final placements and records every scored
// round as a point-scored match of the tournament.
func CompleteTournamentHandler(store club.ClubStore, proc *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTournament(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get tournament", err)
			return
		}
		if t.Status == club.TournamentCompleted {
			http.Error(w, "Tournament is already completed", http.StatusConflict)
			return
		}
		rounds, err := store.ListRounds(t.ID)
		if err != nil {
			writeError(w, "Failed to list rounds", err)
			return
		}
		results := tournament.Results(t.ID, t.Format, tournament.GetTournamentState(rounds, t.Participants))
		matches := RoundMatches(*t, rounds)

		if IsDryRunFromContext(r) {
			log.Info("[Dry Run] Would complete tournament", "tournament_id", t.ID, "matches", len(matches))
			writeJSON(w, http.StatusOK, results)
			return
		}
		if len(matches) > 0 {
			if err := store.UpsertMatches(matches); err != nil {
				writeError(w, "Failed to record tournament matches", err)
				return
			}
		}
		if err := store.CompleteTournament(t.ID, results); err != nil {
			writeError(w, "Failed to complete tournament", err)
			return
		}
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		proc.PublishMatchRecorded(pubsub.ActionCreated, ids...)
		writeJSON(w, http.StatusOK, results)
	}
}

// RoundMatches converts the scored rounds of t into matches keyed by round id.
func RoundMatches(t club.Tournament, rounds []club.TournamentRound) []club.Match {
	var matches []club.Match
	for i, round := range rounds {
		if !round.Scored() {
			continue
		}
		matches = append(matches, club.Match{
			ID:                   round.ID,
			CreatedAt:            t.CreatedAt.Add(time.Duration(i) * time.Minute),
			Team1:                club.IDRoster(round.Team1IDs...),
			Team2:                club.IDRoster(round.Team2IDs...),
			Team1Score:           round.Team1Score,
			Team2Score:           round.Team2Score,
			ScoreType:            club.ScoreTypePoints,
			SourceTournamentID:   t.ID,
			SourceTournamentType: t.Format,
		})
	}
	return matches
}

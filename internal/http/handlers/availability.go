package handlers

import (
	"net/http"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/charmbracelet/log"
)

type createPollRequest struct {
	Title     string   `json:"title"`
	CreatedBy string   `json:"created_by"`
	Days      []string `json:"days"`
}

type voteRequest struct {
	Day      string `json:"day"`
	PlayerID string `json:"player_id"`
}

type pollView struct {
	Poll    *availability.Poll        `json:"poll"`
	Summary []availability.DaySummary `json:"summary"`
}

func CreatePollHandler(polls availability.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPollRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.Days) == 0 {
			http.Error(w, "At least one day is required", http.StatusBadRequest)
			return
		}
		for _, d := range req.Days {
			if _, err := timeutil.ParseDay(d, nil); err != nil {
				http.Error(w, "Days must be YYYY-MM-DD: "+d, http.StatusBadRequest)
				return
			}
		}
		poll, err := polls.CreatePoll(req.Title, req.CreatedBy, req.Days)
		if err != nil {
			writeError(w, "Failed to create poll", err)
			return
		}
		writeJSON(w, http.StatusCreated, poll)
	}
}

func ListPollsHandler(polls availability.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := polls.ListPolls()
		if err != nil {
			writeError(w, "Failed to list polls", err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GetPollHandler returns the poll with its days ranked by turnout.
func GetPollHandler(polls availability.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poll, err := polls.GetPoll(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get poll", err)
			return
		}
		votes, err := polls.ListVotes(poll.ID)
		if err != nil {
			writeError(w, "Failed to list votes", err)
			return
		}
		writeJSON(w, http.StatusOK, pollView{Poll: poll, Summary: availability.EvaluatePoll(*poll, votes)})
	}
}

func VoteHandler(polls availability.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req voteRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Day == "" || req.PlayerID == "" {
			http.Error(w, "day and player_id are required", http.StatusBadRequest)
			return
		}
		var err error
		if r.Method == http.MethodDelete {
			err = polls.RetractVote(r.PathValue("id"), req.Day, req.PlayerID)
		} else {
			err = polls.CastVote(r.PathValue("id"), req.Day, req.PlayerID)
		}
		if err != nil {
			writeError(w, "Failed to record vote", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClosePollHandler(polls availability.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := polls.ClosePoll(r.PathValue("id")); err != nil {
			writeError(w, "Failed to close poll", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ProposeHandler balances games for the best-attended day and posts them.
func ProposeHandler(polls availability.Store, rankings *ranking.Service, n notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poll, err := polls.GetPoll(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get poll", err)
			return
		}
		votes, err := polls.ListVotes(poll.ID)
		if err != nil {
			writeError(w, "Failed to list votes", err)
			return
		}
		snap, err := rankings.Snapshot()
		if err != nil {
			writeError(w, "Failed to load ratings", err)
			return
		}
		proposal, err := availability.ProposeMatch(*poll, votes, snap.Ledger.EloMap())
		if err != nil {
			writeError(w, "Failed to propose games", err)
			return
		}
		names, err := rankings.Names()
		if err != nil {
			log.Error("Failed to load names for proposal", "error", err)
		}
		if err := n.SendMatchProposal(proposal, names, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to post proposal", "error", err, "poll_id", poll.ID)
		}
		writeJSON(w, http.StatusOK, proposal)
	}
}

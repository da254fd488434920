// Package tournament keeps Americano and Mexicano standings and proposes the next round.
package tournament

import (
	"errors"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
)

// ErrNotEnoughPlayers is returned when a round cannot be formed.
var ErrNotEnoughPlayers = errors.New("at least four participants are required")

// PlayerState is one participant's running totals.
type PlayerState struct {
	ID            string                        `json:"id"`
	TotalPoints   int                           `json:"total_points"`
	GamesPlayed   int                           `json:"games_played"`
	Rests         int                           `json:"rests"`
	RestsByMode   map[club.TournamentFormat]int `json:"rests_by_mode"`
	Wins          int                           `json:"wins"`
	Ties          int                           `json:"ties"`
	Losses        int                           `json:"losses"`
	PointsFor     int                           `json:"points_for"`
	PointsAgainst int                           `json:"points_against"`
}

// PointDiff is points for minus points against.
func (p *PlayerState) PointDiff() int {
	return p.PointsFor - p.PointsAgainst
}

type pairKey struct{ a, b string }

func key(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

// State is the standings derived from the full round list.
type State struct {
	Participants []string
	Players      map[string]*PlayerState
	teammates    map[pairKey]int
	opponents    map[pairKey]int
}

// Teammates is how often a and b shared a side, unscored rounds included.
func (s State) Teammates(a, b string) int { return s.teammates[key(a, b)] }

// Opponents is how often a and b faced each other, unscored rounds included.
func (s State) Opponents(a, b string) int { return s.opponents[key(a, b)] }

// GetTournamentState replays rounds into standings. Games, rests and pairing
// counters include unscored rounds; points and results only count scored ones.
// Ids outside participants are ignored.
func GetTournamentState(rounds []club.TournamentRound, participants []string) State {
	st := State{
		Participants: dedupe(participants),
		Players:      make(map[string]*PlayerState, len(participants)),
		teammates:    make(map[pairKey]int),
		opponents:    make(map[pairKey]int),
	}
	for _, id := range st.Participants {
		st.Players[id] = &PlayerState{ID: id, RestsByMode: make(map[club.TournamentFormat]int)}
	}

	for _, r := range rounds {
		for _, id := range r.RestingIDs {
			if p, ok := st.Players[id]; ok {
				p.Rests++
				p.RestsByMode[r.Mode]++
			}
		}
		team1 := st.known(r.Team1IDs)
		team2 := st.known(r.Team2IDs)
		for _, team := range [][]string{team1, team2} {
			for i, a := range team {
				st.Players[a].GamesPlayed++
				for _, b := range team[i+1:] {
					st.teammates[key(a, b)]++
				}
			}
		}
		for _, a := range team1 {
			for _, b := range team2 {
				st.opponents[key(a, b)]++
			}
		}

		if !r.Scored() {
			continue
		}
		s1, s2 := *r.Team1Score, *r.Team2Score
		st.score(team1, s1, s2)
		st.score(team2, s2, s1)
	}
	return st
}

func (s State) score(team []string, own, opp int) {
	for _, id := range team {
		p := s.Players[id]
		p.TotalPoints += own
		p.PointsFor += own
		p.PointsAgainst += opp
		switch {
		case own > opp:
			p.Wins++
		case own < opp:
			p.Losses++
		default:
			p.Ties++
		}
	}
}

func (s State) known(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.Players[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// GetRestCycle marks the participants who already rested in the current cycle for
// mode: their rest count in that mode is above the current minimum.
func GetRestCycle(rounds []club.TournamentRound, participants []string, mode club.TournamentFormat) map[string]bool {
	return restCycle(GetTournamentState(rounds, participants), mode)
}

func restCycle(st State, mode club.TournamentFormat) map[string]bool {
	cycle := make(map[string]bool, len(st.Participants))
	if len(st.Participants) == 0 {
		return cycle
	}
	minRests := -1
	for _, id := range st.Participants {
		r := st.Players[id].RestsByMode[mode]
		if minRests < 0 || r < minRests {
			minRests = r
		}
	}
	for _, id := range st.Participants {
		cycle[id] = st.Players[id].RestsByMode[mode] > minRests
	}
	return cycle
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

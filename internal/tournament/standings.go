package tournament

import (
	"cmp"
	"slices"
	"strings"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
)

// Standing is one row of the tournament table.
type Standing struct {
	Rank int `json:"rank"`
	PlayerState
}

func compareStanding(a, b *PlayerState) int {
	if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
		return c
	}
	return cmp.Compare(b.PointDiff(), a.PointDiff())
}

// Standings ranks participants by points, then wins, then point difference.
// Players equal on all three share a rank and are listed by id.
func Standings(st State) []Standing {
	players := make([]*PlayerState, 0, len(st.Participants))
	for _, id := range st.Participants {
		players = append(players, st.Players[id])
	}
	slices.SortFunc(players, func(a, b *PlayerState) int {
		if c := compareStanding(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	out := make([]Standing, len(players))
	for i, p := range players {
		rank := i + 1
		if i > 0 && compareStanding(players[i-1], p) == 0 {
			rank = out[i-1].Rank
		}
		out[i] = Standing{Rank: rank, PlayerState: *p}
	}
	return out
}

// Results converts final standings into stored tournament results.
func Results(tournamentID string, mode club.TournamentFormat, st State) []club.TournamentResult {
	standings := Standings(st)
	out := make([]club.TournamentResult, len(standings))
	for i, s := range standings {
		out[i] = club.TournamentResult{
			TournamentID: tournamentID,
			Format:       mode,
			PlayerID:     s.ID,
			Rank:         s.Rank,
		}
	}
	return out
}

package tournament

import (
	"cmp"
	"slices"
	"strings"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
)

// CourtSize is the number of players on court per round.
const CourtSize = 4

// Suggestion is the proposed next round.
type Suggestion struct {
	RoundNumber int                   `json:"round_number"`
	Mode        club.TournamentFormat `json:"mode"`
	Team1IDs    []string              `json:"team1_ids"`
	Team2IDs    []string              `json:"team2_ids"`
	RestingIDs  []string              `json:"resting_ids"`
}

// Round converts the suggestion into an unscored round.
func (s Suggestion) Round(tournamentID string) club.TournamentRound {
	return club.TournamentRound{
		TournamentID: tournamentID,
		RoundNumber:  s.RoundNumber,
		Mode:         s.Mode,
		Team1IDs:     s.Team1IDs,
		Team2IDs:     s.Team2IDs,
		RestingIDs:   s.RestingIDs,
	}
}

// PickAmericanoRestingPlayers rests players outside the current rest cycle first,
// then those with the fewest games, then by id.
func PickAmericanoRestingPlayers(st State, restCount int, cycle map[string]bool) []string {
	return pickResting(st, restCount, cycle, func(a, b *PlayerState) int {
		if c := cmp.Compare(a.GamesPlayed, b.GamesPlayed); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// PickMexicanoRestingPlayers rests players outside the current rest cycle first,
// then the lowest points, then the most games, then by id.
func PickMexicanoRestingPlayers(st State, restCount int, cycle map[string]bool) []string {
	return pickResting(st, restCount, cycle, func(a, b *PlayerState) int {
		if c := cmp.Compare(a.TotalPoints, b.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(b.GamesPlayed, a.GamesPlayed); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func pickResting(st State, restCount int, cycle map[string]bool, tieBreak func(a, b *PlayerState) int) []string {
	if restCount <= 0 {
		return []string{}
	}
	order := slices.Clone(st.Participants)
	slices.SortStableFunc(order, func(a, b string) int {
		if ca, cb := cycle[a], cycle[b]; ca != cb {
			if ca {
				return 1
			}
			return -1
		}
		return tieBreak(st.Players[a], st.Players[b])
	})
	return order[:min(restCount, len(order))]
}

// splits enumerates the three ways to divide four players into two pairs.
func splits(p [4]string) [3][2][]string {
	return [3][2][]string{
		{{p[0], p[1]}, {p[2], p[3]}},
		{{p[0], p[2]}, {p[1], p[3]}},
		{{p[0], p[3]}, {p[1], p[2]}},
	}
}

func (st State) teamPoints(team []string) int {
	sum := 0
	for _, id := range team {
		if p, ok := st.Players[id]; ok {
			sum += p.TotalPoints
		}
	}
	return sum
}

func (st State) imbalance(team1, team2 []string) int {
	d := st.teamPoints(team1) - st.teamPoints(team2)
	if d < 0 {
		return -d
	}
	return d
}

type splitCost struct {
	teammate, opponent, imbalance int
}

// PickAmericanoTeams minimizes teammate repeats, then opponent repeats, then the
// point imbalance. Equal splits keep the first.
func PickAmericanoTeams(st State, active [4]string) ([]string, []string) {
	return pickSplit(active, func(team1, team2 []string) splitCost {
		c := splitCost{
			teammate:  st.Teammates(team1[0], team1[1]) + st.Teammates(team2[0], team2[1]),
			imbalance: st.imbalance(team1, team2),
		}
		for _, a := range team1 {
			for _, b := range team2 {
				c.opponent += st.Opponents(a, b)
			}
		}
		return c
	})
}

// PickMexicanoTeams minimizes the point imbalance only.
func PickMexicanoTeams(st State, active [4]string) ([]string, []string) {
	return pickSplit(active, func(team1, team2 []string) splitCost {
		return splitCost{imbalance: st.imbalance(team1, team2)}
	})
}

func pickSplit(active [4]string, cost func(team1, team2 []string) splitCost) ([]string, []string) {
	var best [2][]string
	var bestCost splitCost
	for i, split := range splits(active) {
		c := cost(split[0], split[1])
		if i == 0 || compareCost(c, bestCost) < 0 {
			best, bestCost = split, c
		}
	}
	return best[0], best[1]
}

func compareCost(a, b splitCost) int {
	if c := cmp.Compare(a.teammate, b.teammate); c != 0 {
		return c
	}
	if c := cmp.Compare(a.opponent, b.opponent); c != 0 {
		return c
	}
	return cmp.Compare(a.imbalance, b.imbalance)
}

// GetNextSuggestion proposes the next single-court round, or nil with fewer than four participants.
func GetNextSuggestion(rounds []club.TournamentRound, participants []string, mode club.TournamentFormat) *Suggestion {
	st := GetTournamentState(rounds, participants)
	if len(st.Participants) < CourtSize {
		return nil
	}
	cycle := restCycle(st, mode)
	restCount := len(st.Participants) - CourtSize

	var resting []string
	if mode == club.FormatMexicano {
		resting = PickMexicanoRestingPlayers(st, restCount, cycle)
	} else {
		resting = PickAmericanoRestingPlayers(st, restCount, cycle)
	}

	var active [4]string
	n := 0
	for _, id := range st.Participants {
		if !slices.Contains(resting, id) {
			active[n] = id
			n++
		}
	}

	var team1, team2 []string
	if mode == club.FormatMexicano {
		team1, team2 = PickMexicanoTeams(st, active)
	} else {
		team1, team2 = PickAmericanoTeams(st, active)
	}

	next := 1
	for _, r := range rounds {
		next = max(next, r.RoundNumber+1)
	}
	return &Suggestion{
		RoundNumber: next,
		Mode:        mode,
		Team1IDs:    team1,
		Team2IDs:    team2,
		RestingIDs:  resting,
	}
}

// DefaultAmericanoRounds is three rounds for four players, otherwise one per participant.
func DefaultAmericanoRounds(participants int) int {
	if participants == CourtSize {
		return 3
	}
	return participants
}

// GenerateAmericanoRounds plans a whole Americano up front. A non-positive rounds
// value uses DefaultAmericanoRounds.
func GenerateAmericanoRounds(participants []string, rounds int) ([]club.TournamentRound, error) {
	players := dedupe(participants)
	if len(players) < CourtSize {
		return nil, ErrNotEnoughPlayers
	}
	if rounds <= 0 {
		rounds = DefaultAmericanoRounds(len(players))
	}
	plan := make([]club.TournamentRound, 0, rounds)
	for i := 0; i < rounds; i++ {
		s := GetNextSuggestion(plan, players, club.FormatAmericano)
		plan = append(plan, s.Round(""))
	}
	return plan, nil
}

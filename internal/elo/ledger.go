package elo

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/charmbracelet/log"
)

// Match results recorded in a player's history.
const (
	ResultWin  = "W"
	ResultLoss = "L"
)

// HistoryEntry is one rated match in a player's trajectory.
type HistoryEntry struct {
	MatchID   string    `json:"match_id"`
	Result    string    `json:"result"`
	Delta     int       `json:"delta"`
	Elo       int       `json:"elo"`
	Timestamp time.Time `json:"timestamp"`
}

// PlayerStats is one player's rating trajectory, rebuilt on every recompute.
type PlayerStats struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	IsDeleted bool           `json:"is_deleted"`
	Elo       int            `json:"elo"`
	StartElo  int            `json:"start_elo"`
	Games     int            `json:"games"`
	Wins      int            `json:"wins"`
	Losses    int            `json:"losses"`
	History   []HistoryEntry `json:"history"`
	// Partners counts rated matches played on the same side, keyed by partner id.
	Partners map[string]int `json:"partners"`
}

// WinRate is wins over games, zero without games.
func (p PlayerStats) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// Result is the output of a full ledger replay.
type Result struct {
	Players []PlayerStats
	// EloDeltaByMatch and EloRatingByMatch are keyed by match id, then player id.
	// Ratings are post-match.
	EloDeltaByMatch  map[string]map[string]int
	EloRatingByMatch map[string]map[string]int
	// Rated holds the matches that moved ratings, in chronological order.
	Rated []club.ResolvedMatch

	index   *club.NameIndex
	byID    map[string]int
	skipped int
}

// CalculateEloWithStats replays the full match history and returns every player's rating state.
// Input order does not matter; matches are rated in (CreatedAt, ID) order.
func CalculateEloWithStats(matches []club.Match, profiles []club.Profile) *Result {
	res := &Result{
		Players:          make([]PlayerStats, 0, len(profiles)),
		EloDeltaByMatch:  make(map[string]map[string]int),
		EloRatingByMatch: make(map[string]map[string]int),
		index:            club.NewNameIndex(profiles),
	}

	players := make(map[string]*PlayerStats, len(profiles))
	for _, p := range profiles {
		if _, dup := players[p.ID]; dup {
			continue
		}
		players[p.ID] = &PlayerStats{
			ID:        p.ID,
			Name:      p.Name,
			IsDeleted: p.IsDeleted,
			Elo:       EloBaseline,
			StartElo:  EloBaseline,
			Partners:  make(map[string]int),
		}
	}

	for _, m := range SortMatches(matches) {
		rm := res.index.ResolveMatch(m)
		if reason := skipReason(rm); reason != "" {
			log.Debug("Skipping match in rating replay", "match_id", m.ID, "reason", reason)
			res.skipped++
			continue
		}
		applyMatch(res, players, rm)
		res.Rated = append(res.Rated, rm)
	}

	for _, p := range players {
		res.Players = append(res.Players, *p)
	}
	slices.SortFunc(res.Players, compareLeaderboard)
	res.byID = make(map[string]int, len(res.Players))
	for i, p := range res.Players {
		res.byID[p.ID] = i
	}
	return res
}

func skipReason(rm club.ResolvedMatch) string {
	if rm.Rateable() {
		return ""
	}
	switch {
	case rm.Team1Score == nil || rm.Team2Score == nil:
		return "missing score"
	case len(rm.Team1IDs) == 0 || len(rm.Team2IDs) == 0:
		return "empty team"
	case rm.RepeatsPlayer():
		return "player listed twice"
	}
	return "tied score"
}

func applyMatch(res *Result, players map[string]*PlayerStats, rm club.ResolvedMatch) {
	avg1 := teamAverage(players, rm.Team1IDs)
	avg2 := teamAverage(players, rm.Team2IDs)
	exp1 := GetExpectedScore(avg1, avg2)
	s1, s2 := rm.Scores()
	margin := GetMarginMultiplier(s1, s2)
	weight := GetSinglesAdjustedMatchWeight(rm.Match)
	team1Won := rm.Outcome() == 1

	deltas := make(map[string]int, len(rm.Team1IDs)+len(rm.Team2IDs))
	ratings := make(map[string]int, len(rm.Team1IDs)+len(rm.Team2IDs))

	rate := func(ids []string, teamAvg, expected float64, won bool) {
		// Deltas within a match are computed from pre-match ratings.
		for _, id := range ids {
			p := players[id]
			deltas[id] = BuildPlayerDelta(PlayerDeltaInput{
				PlayerElo:        float64(p.Elo),
				PlayerGames:      p.Games,
				TeamAverageElo:   teamAvg,
				ExpectedScore:    expected,
				DidWin:           won,
				MarginMultiplier: margin,
				MatchWeight:      weight,
			})
		}
	}
	rate(rm.Team1IDs, avg1, exp1, team1Won)
	rate(rm.Team2IDs, avg2, 1-exp1, !team1Won)

	apply := func(ids []string, won bool) {
		result := ResultLoss
		if won {
			result = ResultWin
		}
		for _, id := range ids {
			p := players[id]
			p.Elo += deltas[id]
			p.Games++
			if won {
				p.Wins++
			} else {
				p.Losses++
			}
			p.History = append(p.History, HistoryEntry{
				MatchID:   rm.ID,
				Result:    result,
				Delta:     deltas[id],
				Elo:       p.Elo,
				Timestamp: rm.CreatedAt,
			})
			for _, partner := range ids {
				if partner != id {
					p.Partners[partner]++
				}
			}
			ratings[id] = p.Elo
		}
	}
	apply(rm.Team1IDs, team1Won)
	apply(rm.Team2IDs, !team1Won)

	res.EloDeltaByMatch[rm.ID] = deltas
	res.EloRatingByMatch[rm.ID] = ratings
}

func teamAverage(players map[string]*PlayerStats, ids []string) float64 {
	if len(ids) == 0 {
		return EloBaseline
	}
	sum := 0
	for _, id := range ids {
		sum += players[id].Elo
	}
	return float64(sum) / float64(len(ids))
}

// compareLeaderboard orders by rating descending, then name, then id.
func compareLeaderboard(a, b PlayerStats) int {
	if c := cmp.Compare(b.Elo, a.Elo); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareMatches(a, b club.Match) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// SortMatches returns a chronologically ordered copy of matches.
// Already ascending input is returned as is and strictly descending input is reversed.
func SortMatches(matches []club.Match) []club.Match {
	out := slices.Clone(matches)
	ascending, descending := true, true
	for i := 1; i < len(out) && (ascending || descending); i++ {
		c := compareMatches(out[i-1], out[i])
		if c > 0 {
			ascending = false
		}
		if c <= 0 {
			descending = false
		}
	}
	switch {
	case ascending:
	case descending:
		slices.Reverse(out)
	default:
		slices.SortStableFunc(out, compareMatches)
	}
	return out
}

// Player looks up a player's final stats.
func (r *Result) Player(id string) (PlayerStats, bool) {
	i, ok := r.byID[id]
	if !ok {
		return PlayerStats{}, false
	}
	return r.Players[i], true
}

// EloMap returns the current rating of every player.
func (r *Result) EloMap() map[string]int {
	out := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		out[p.ID] = p.Elo
	}
	return out
}

// PreMatchRating is the rating a player carried into a rated match.
func (r *Result) PreMatchRating(matchID, playerID string) (int, bool) {
	post, ok := r.EloRatingByMatch[matchID][playerID]
	if !ok {
		return 0, false
	}
	return post - r.EloDeltaByMatch[matchID][playerID], true
}

// PreMatchAverages returns both sides' average pre-match ratings.
func (r *Result) PreMatchAverages(rm club.ResolvedMatch) (float64, float64) {
	avg := func(ids []string) float64 {
		if len(ids) == 0 {
			return EloBaseline
		}
		sum := 0
		for _, id := range ids {
			pre, _ := r.PreMatchRating(rm.ID, id)
			sum += pre
		}
		return float64(sum) / float64(len(ids))
	}
	return avg(rm.Team1IDs), avg(rm.Team2IDs)
}

// Resolve maps a match's rosters to profile ids with the ledger's name index.
func (r *Result) Resolve(m club.Match) club.ResolvedMatch {
	return r.index.ResolveMatch(m)
}

// IsRated reports whether the match moved ratings.
func (r *Result) IsRated(matchID string) bool {
	_, ok := r.EloDeltaByMatch[matchID]
	return ok
}

// Skipped is the number of matches left out of the replay.
func (r *Result) Skipped() int {
	return r.skipped
}

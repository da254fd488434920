// Package mvp scores players over a bounded set of matches.
package mvp

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
)

// Minimum games to be eligible.
const (
	EveningMinGames = 3
	MonthlyMinGames = 6
)

// MonthlyWindowLength is the rolling window for the monthly MVP.
const MonthlyWindowLength = 30 * 24 * time.Hour

const scoreEpsilon = 0.001

// Result is one player's MVP standing for a period.
type Result struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Games         int     `json:"games"`
	WinRate       float64 `json:"win_rate"`
	PeriodEloGain int     `json:"period_elo_gain"`
	EloNet        int     `json:"elo_net"`
	Score         float64 `json:"score"`
	IsEligible    bool    `json:"is_eligible"`
}

// CalculateMvpScore combines net rating gain, consistency and volume.
func CalculateMvpScore(wins, games int, eloGain float64) float64 {
	winRate := 0.0
	if games > 0 {
		winRate = float64(wins) / float64(games)
	}
	return eloGain + winRate*15 + float64(games)*0.5
}

// ScorePlayersForMvp scores every player over the given matches. Deltas come from
// eloDeltaByMatch, or from each player's history when the map is nil.
func ScorePlayersForMvp(matches []club.ResolvedMatch, players []elo.PlayerStats, minGames int, eloDeltaByMatch map[string]map[string]int) []Result {
	type tally struct{ games, wins, gain int }
	tallies := make(map[string]*tally, len(players))
	historyDelta := make(map[string]map[string]int)
	for _, p := range players {
		tallies[p.ID] = &tally{}
		if eloDeltaByMatch == nil {
			byMatch := make(map[string]int, len(p.History))
			for _, h := range p.History {
				byMatch[h.MatchID] = h.Delta
			}
			historyDelta[p.ID] = byMatch
		}
	}

	for _, m := range matches {
		outcome := m.Outcome()
		if outcome == 0 {
			continue
		}
		count := func(ids []string, won bool) {
			for _, id := range ids {
				t, ok := tallies[id]
				if !ok {
					continue
				}
				t.games++
				if won {
					t.wins++
				}
				if eloDeltaByMatch != nil {
					t.gain += eloDeltaByMatch[m.ID][id]
				} else {
					t.gain += historyDelta[id][m.ID]
				}
			}
		}
		count(m.Team1IDs, outcome == 1)
		count(m.Team2IDs, outcome == 2)
	}

	results := make([]Result, 0, len(players))
	for _, p := range players {
		t := tallies[p.ID]
		r := Result{
			PlayerID:      p.ID,
			Name:          p.Name,
			Wins:          t.wins,
			Games:         t.games,
			PeriodEloGain: t.gain,
			EloNet:        p.Elo,
			Score:         CalculateMvpScore(t.wins, t.games, float64(t.gain)),
			IsEligible:    t.games >= minGames,
		}
		if t.games > 0 {
			r.WinRate = float64(t.wins) / float64(t.games)
		}
		results = append(results, r)
	}
	return results
}

// compareResults orders the best candidate first: score, period gain, current
// rating, wins, then name ascending.
func compareResults(a, b Result) int {
	if math.Abs(a.Score-b.Score) > scoreEpsilon {
		return cmp.Compare(b.Score, a.Score)
	}
	if c := cmp.Compare(b.PeriodEloGain, a.PeriodEloGain); c != 0 {
		return c
	}
	if c := cmp.Compare(b.EloNet, a.EloNet); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

// Rank returns the eligible results, best first.
func Rank(results []Result) []Result {
	eligible := make([]Result, 0, len(results))
	for _, r := range results {
		if r.IsEligible {
			eligible = append(eligible, r)
		}
	}
	slices.SortStableFunc(eligible, compareResults)
	return eligible
}

// GetMvpWinner returns the best eligible player, or nil when nobody is eligible.
func GetMvpWinner(results []Result) *Result {
	ranked := Rank(results)
	if len(ranked) == 0 {
		return nil
	}
	return &ranked[0]
}

// MonthlyWindow is the rolling 30-day window ending at now.
func MonthlyWindow(now time.Time) (time.Time, time.Time) {
	return now.Add(-MonthlyWindowLength), now
}

// MatchesInWindow keeps the matches created in [from, to].
func MatchesInWindow(matches []club.ResolvedMatch, from, to time.Time) []club.ResolvedMatch {
	var out []club.ResolvedMatch
	for _, m := range matches {
		if !m.CreatedAt.Before(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	return out
}

// Monthly computes the monthly MVP from a ledger.
func Monthly(ledger *elo.Result, now time.Time) *Result {
	from, to := MonthlyWindow(now)
	window := MatchesInWindow(ledger.Rated, from, to)
	return GetMvpWinner(ScorePlayersForMvp(window, ledger.Players, MonthlyMinGames, ledger.EloDeltaByMatch))
}

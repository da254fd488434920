// Package rotation builds fair "everyone rotates" doubles schedules from a player pool.
package rotation

import (
	"math"

	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
)

// Candidate scoring weights.
const (
	fairnessWeight       = 2
	teammateRepeatWeight = 15
	opponentRepeatWeight = 6
	gamesPlayedWeight    = 4
	restBacklogWeight    = 2
)

var roundsByPoolSize = map[int]int{5: 5, 6: 6, 7: 7, 8: 6}

// GetRotationRounds is the number of rounds for a pool of n players.
func GetRotationRounds(n int) int {
	if r, ok := roundsByPoolSize[n]; ok {
		return r
	}
	return (n + 1) / 2
}

// Fairness maps a win probability to 0-100, where 100 is a perfect coin flip.
func Fairness(winProbability float64) int {
	return int(math.Floor((1-math.Abs(0.5-winProbability)*2)*100 + 0.5))
}

// Round is one matchup of a schedule.
type Round struct {
	Number         int      `json:"number"`
	Team1          []string `json:"team1"`
	Team2          []string `json:"team2"`
	Resting        []string `json:"resting"`
	Team1Average   float64  `json:"team1_average"`
	Team2Average   float64  `json:"team2_average"`
	WinProbability float64  `json:"win_probability"`
	Fairness       int      `json:"fairness"`
}

// Schedule is a full rotation.
type Schedule struct {
	Rounds          []Round `json:"rounds"`
	AverageFairness float64 `json:"average_fairness"`
	TargetGames     float64 `json:"target_games"`
}

// state is carried across rounds.
type state struct {
	games     map[string]int
	teammates map[pairKey]int
	opponents map[pairKey]int
}

type pairKey struct{ a, b string }

func key(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

type candidate struct {
	team1, team2 [2]string
	avg1, avg2   float64
	prob         float64
	fairness     int
	score        float64
}

// BuildRotationSchedule generates GetRotationRounds(len(pool)) rounds of 2v2 matchups.
// Missing ratings count as the baseline. Pools under four players yield no rounds.
func BuildRotationSchedule(pool []string, eloMap map[string]int) Schedule {
	players := dedupe(pool)
	n := len(players)
	if n < 4 {
		return Schedule{Rounds: []Round{}}
	}
	rounds := GetRotationRounds(n)
	target := 4 * float64(rounds) / float64(n)
	rating := func(id string) float64 {
		if r, ok := eloMap[id]; ok {
			return float64(r)
		}
		return elo.EloBaseline
	}

	st := state{
		games:     make(map[string]int, n),
		teammates: make(map[pairKey]int),
		opponents: make(map[pairKey]int),
	}
	combos := combinations(n, 4)

	sched := Schedule{Rounds: make([]Round, 0, rounds), TargetGames: target}
	fairnessSum := 0
	for r := 1; r <= rounds; r++ {
		best, ok := pick(players, combos, st, rating, func(c candidate) bool {
			for _, id := range append(c.team1[:], c.team2[:]...) {
				if float64(st.games[id]) >= target {
					return false
				}
			}
			return true
		})
		if !ok {
			best, _ = pick(players, combos, st, rating, func(candidate) bool { return true })
		}

		selected := map[string]bool{best.team1[0]: true, best.team1[1]: true, best.team2[0]: true, best.team2[1]: true}
		resting := make([]string, 0, n-4)
		for _, id := range players {
			if !selected[id] {
				resting = append(resting, id)
			}
		}
		for id := range selected {
			st.games[id]++
		}
		st.teammates[key(best.team1[0], best.team1[1])]++
		st.teammates[key(best.team2[0], best.team2[1])]++
		for _, a := range best.team1 {
			for _, b := range best.team2 {
				st.opponents[key(a, b)]++
			}
		}

		sched.Rounds = append(sched.Rounds, Round{
			Number:         r,
			Team1:          []string{best.team1[0], best.team1[1]},
			Team2:          []string{best.team2[0], best.team2[1]},
			Resting:        resting,
			Team1Average:   best.avg1,
			Team2Average:   best.avg2,
			WinProbability: best.prob,
			Fairness:       best.fairness,
		})
		fairnessSum += best.fairness
	}
	sched.AverageFairness = float64(fairnessSum) / float64(len(sched.Rounds))
	return sched
}

// pick returns the best-scoring allowed candidate. Equal scores keep the first found.
func pick(players []string, combos [][4]int, st state, rating func(string) float64, allowed func(candidate) bool) (candidate, bool) {
	var best candidate
	found := false
	for _, combo := range combos {
		a, b, c, d := players[combo[0]], players[combo[1]], players[combo[2]], players[combo[3]]
		for _, split := range [3][2][2]string{
			{{a, b}, {c, d}},
			{{a, c}, {b, d}},
			{{a, d}, {b, c}},
		} {
			cand := evaluate(split[0], split[1], players, st, rating)
			if !allowed(cand) {
				continue
			}
			if !found || cand.score > best.score {
				best = cand
				found = true
			}
		}
	}
	return best, found
}

func evaluate(team1, team2 [2]string, players []string, st state, rating func(string) float64) candidate {
	avg1 := (rating(team1[0]) + rating(team1[1])) / 2
	avg2 := (rating(team2[0]) + rating(team2[1])) / 2
	prob := elo.GetExpectedScore(avg1, avg2)
	fairness := Fairness(prob)

	teammateRepeat := st.teammates[key(team1[0], team1[1])] + st.teammates[key(team2[0], team2[1])]
	opponentRepeat := 0
	for _, x := range team1 {
		for _, y := range team2 {
			opponentRepeat += st.opponents[key(x, y)]
		}
	}

	selected := [4]string{team1[0], team1[1], team2[0], team2[1]}
	minGames := math.MaxInt
	for _, id := range players {
		minGames = min(minGames, st.games[id])
	}
	gamesSum, maxSelected := 0, 0
	for _, id := range selected {
		gamesSum += st.games[id]
		maxSelected = max(maxSelected, st.games[id])
	}
	gamesPenalty := gamesSum - 4*minGames

	restBacklog := 0
	for _, id := range players {
		if id == selected[0] || id == selected[1] || id == selected[2] || id == selected[3] {
			continue
		}
		restBacklog += max(0, maxSelected-st.games[id])
	}

	score := float64(fairness*fairnessWeight -
		teammateRepeat*teammateRepeatWeight -
		opponentRepeat*opponentRepeatWeight -
		gamesPenalty*gamesPlayedWeight -
		restBacklog*restBacklogWeight)

	return candidate{team1: team1, team2: team2, avg1: avg1, avg2: avg2, prob: prob, fairness: fairness, score: score}
}

// combinations lists every k-subset of [0, n) in lexicographic order.
func combinations(n, k int) [][4]int {
	var out [][4]int
	idx := [4]int{}
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			out = append(out, idx)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}

func dedupe(pool []string) []string {
	seen := make(map[string]bool, len(pool))
	out := make([]string, 0, len(pool))
	for _, id := range pool {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Package elo implements the club's rating formulas and replays match history into ratings.
package elo

import (
	"math"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
)

// EloBaseline is the rating every player starts from.
const EloBaseline = 1000

// GetKFactor returns the rating-change scale for a player with the given number of rated games.
func GetKFactor(gamesPlayed int) float64 {
	switch {
	case gamesPlayed < 10:
		return 40
	case gamesPlayed < 30:
		return 30
	default:
		return 20
	}
}

// GetExpectedScore is the logistic win probability of a rating against b rating.
func GetExpectedScore(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/400))
}

// GetMarginMultiplier adds 0.1 per set of margin, capped at three sets.
func GetMarginMultiplier(setsA, setsB int) float64 {
	margin := setsA - setsB
	if margin < 0 {
		margin = -margin
	}
	return 1 + 0.1*float64(min(margin, 3))
}

// GetPlayerWeight dampens the share of players above their team average and amplifies those below it.
func GetPlayerWeight(playerElo, teamAverageElo float64) float64 {
	return clamp(1+(teamAverageElo-playerElo)/800, 0.75, 1.25)
}

// GetMatchWeight weighs longer set matches higher. Point-scored matches count half.
func GetMatchWeight(m club.Match) float64 {
	if m.ScoreType == club.ScoreTypePoints {
		return 0.5
	}
	s1, s2 := m.Scores()
	return clamp(0.8+0.1*float64(s1+s2), 0.9, 1.2)
}

// GetSinglesAdjustedMatchWeight halves the weight when either side fielded a single player.
func GetSinglesAdjustedMatchWeight(m club.Match) float64 {
	w := GetMatchWeight(m)
	if m.Team1.Len() == 1 || m.Team2.Len() == 1 {
		return w * 0.5
	}
	return w
}

// PlayerDeltaInput carries everything needed to rate one player in one match.
type PlayerDeltaInput struct {
	PlayerElo        float64
	PlayerGames      int
	TeamAverageElo   float64
	ExpectedScore    float64
	DidWin           bool
	MarginMultiplier float64
	MatchWeight      float64
}

// BuildPlayerDelta is the single formula every rating change flows through.
func BuildPlayerDelta(in PlayerDeltaInput) int {
	actual := 0.0
	if in.DidWin {
		actual = 1
	}
	raw := GetKFactor(in.PlayerGames) *
		in.MarginMultiplier *
		in.MatchWeight *
		GetPlayerWeight(in.PlayerElo, in.TeamAverageElo) *
		(actual - in.ExpectedScore)
	return roundHalfUp(raw)
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

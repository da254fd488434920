package mvp

import (
	"testing"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMvpScore(t *testing.T) {
	assert.InDelta(t, 20+0.75*15+4*0.5, CalculateMvpScore(3, 4, 20), 1e-9)
	assert.Equal(t, 0.0, CalculateMvpScore(0, 0, 0))
	assert.InDelta(t, -10+0+1, CalculateMvpScore(0, 2, -10), 1e-9)
}

func TestGetMvpWinner_TieBreakChain(t *testing.T) {
	t.Run("current rating breaks equal score and gain", func(t *testing.T) {
		results := []Result{
			{PlayerID: "a", Name: "A", Score: 30, PeriodEloGain: 20, EloNet: 1100, Wins: 3, IsEligible: true},
			{PlayerID: "b", Name: "B", Score: 30, PeriodEloGain: 20, EloNet: 1200, Wins: 3, IsEligible: true},
		}
		winner := GetMvpWinner(results)
		require.NotNil(t, winner)
		assert.Equal(t, "B", winner.Name)
	})

	t.Run("scores within epsilon are equal", func(t *testing.T) {
		results := []Result{
			{Name: "A", Score: 30.0005, PeriodEloGain: 10, IsEligible: true},
			{Name: "B", Score: 30, PeriodEloGain: 12, IsEligible: true},
		}
		assert.Equal(t, "B", GetMvpWinner(results).Name)
	})

	t.Run("score beats everything else", func(t *testing.T) {
		results := []Result{
			{Name: "A", Score: 31, PeriodEloGain: 1, EloNet: 900, IsEligible: true},
			{Name: "B", Score: 30, PeriodEloGain: 50, EloNet: 1500, IsEligible: true},
		}
		assert.Equal(t, "A", GetMvpWinner(results).Name)
	})

	t.Run("wins then name", func(t *testing.T) {
		results := []Result{
			{Name: "Cleo", Score: 5, Wins: 2, IsEligible: true},
			{Name: "Bea", Score: 5, Wins: 2, IsEligible: true},
			{Name: "Ada", Score: 5, Wins: 1, IsEligible: true},
		}
		assert.Equal(t, "Bea", GetMvpWinner(results).Name)
	})

	t.Run("nobody eligible", func(t *testing.T) {
		assert.Nil(t, GetMvpWinner([]Result{{Name: "A", Score: 99}}))
		assert.Nil(t, GetMvpWinner(nil))
	})
}

func TestScorePlayersForMvp(t *testing.T) {
	base := time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC)
	var matches []club.Match
	for i, winner := range []int{1, 1, 2} {
		s1, s2 := 2, 0
		if winner == 2 {
			s1, s2 = 0, 2
		}
		matches = append(matches, club.Match{
			ID:         string(rune('a' + i)),
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			Team1:      club.IDRoster("p1", "p2"),
			Team2:      club.IDRoster("p3", "p4"),
			Team1Score: club.IntPtr(s1),
			Team2Score: club.IntPtr(s2),
		})
	}
	profiles := []club.Profile{{ID: "p1", Name: "Ann"}, {ID: "p2", Name: "Bo"}, {ID: "p3", Name: "Cy"}, {ID: "p4", Name: "Di"}}
	ledger := elo.CalculateEloWithStats(matches, profiles)

	withMap := ScorePlayersForMvp(ledger.Rated, ledger.Players, EveningMinGames, ledger.EloDeltaByMatch)
	fromHistory := ScorePlayersForMvp(ledger.Rated, ledger.Players, EveningMinGames, nil)
	assert.ElementsMatch(t, withMap, fromHistory)

	byID := make(map[string]Result)
	for _, r := range withMap {
		byID[r.PlayerID] = r
	}
	p1 := byID["p1"]
	assert.Equal(t, 3, p1.Games)
	assert.Equal(t, 2, p1.Wins)
	assert.True(t, p1.IsEligible)
	self, _ := ledger.Player("p1")
	assert.Equal(t, self.Elo-elo.EloBaseline, p1.PeriodEloGain)
	assert.InDelta(t, CalculateMvpScore(2, 3, float64(p1.PeriodEloGain)), p1.Score, 1e-9)

	t.Run("restricted to the given matches", func(t *testing.T) {
		results := ScorePlayersForMvp(ledger.Rated[:1], ledger.Players, EveningMinGames, ledger.EloDeltaByMatch)
		for _, r := range results {
			assert.Equal(t, 1, r.Games)
			assert.False(t, r.IsEligible)
		}
	})

	t.Run("monthly window", func(t *testing.T) {
		from, to := MonthlyWindow(base.Add(24 * time.Hour))
		assert.Len(t, MatchesInWindow(ledger.Rated, from, to), 3)
		assert.Empty(t, MatchesInWindow(ledger.Rated, to.Add(time.Hour), to.Add(2*time.Hour)))
		assert.Nil(t, Monthly(ledger, base.Add(24*time.Hour)), "three games are below the monthly minimum")
	})
}

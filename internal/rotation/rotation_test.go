package rotation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRotationRounds(t *testing.T) {
	tests := map[int]int{4: 2, 5: 5, 6: 6, 7: 7, 8: 6, 9: 5, 10: 5, 12: 6}
	for n, want := range tests {
		assert.Equal(t, want, GetRotationRounds(n), "n=%d", n)
	}
}

func TestFairness(t *testing.T) {
	assert.Equal(t, 100, Fairness(0.5))
	assert.Equal(t, 0, Fairness(1))
	assert.Equal(t, 0, Fairness(0))
	assert.Equal(t, 80, Fairness(0.6))
	assert.Equal(t, 80, Fairness(0.4))
}

func TestBuildRotationSchedule_EqualRatingsAreFair(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	elo := map[string]int{"a": 1000, "b": 1000, "c": 1000, "d": 1000}

	sched := BuildRotationSchedule(pool, elo)
	require.Len(t, sched.Rounds, 2)
	assert.Equal(t, 2.0, sched.TargetGames)
	assert.Equal(t, 100.0, sched.AverageFairness)
	for _, r := range sched.Rounds {
		assert.Equal(t, r.Team1Average, r.Team2Average)
		assert.Equal(t, 100, r.Fairness)
		assert.Empty(t, r.Resting)
	}

	t.Run("second round changes partners", func(t *testing.T) {
		first, second := sched.Rounds[0], sched.Rounds[1]
		assert.Equal(t, []string{"a", "b"}, first.Team1)
		assert.NotEqual(t, first.Team1, second.Team1)
		assert.Equal(t, []string{"a", "c"}, second.Team1)
	})
}

func TestBuildRotationSchedule_BalancesSkill(t *testing.T) {
	pool := []string{"strong1", "strong2", "weak1", "weak2"}
	elo := map[string]int{"strong1": 1300, "strong2": 1300, "weak1": 900, "weak2": 900}

	sched := BuildRotationSchedule(pool, elo)
	first := sched.Rounds[0]
	assert.Equal(t, 100, first.Fairness, "strong players are split across teams")
	assert.ElementsMatch(t, []string{"strong1", "weak1"}, first.Team1)
}

func TestBuildRotationSchedule_Pools(t *testing.T) {
	t.Run("too small", func(t *testing.T) {
		sched := BuildRotationSchedule([]string{"a", "b", "c"}, nil)
		assert.Empty(t, sched.Rounds)
		sched = BuildRotationSchedule([]string{"a", "b", "c", "c"}, nil)
		assert.Empty(t, sched.Rounds, "duplicates do not count")
	})

	for _, n := range []int{5, 6, 7, 8, 10} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			pool := make([]string, n)
			for i := range pool {
				pool[i] = fmt.Sprintf("p%02d", i)
			}
			sched := BuildRotationSchedule(pool, nil)
			require.Len(t, sched.Rounds, GetRotationRounds(n))

			played := make(map[string]int)
			for _, r := range sched.Rounds {
				seen := make(map[string]bool)
				for _, id := range append(append(append([]string{}, r.Team1...), r.Team2...), r.Resting...) {
					assert.False(t, seen[id], "player %s appears twice in round %d", id, r.Number)
					seen[id] = true
				}
				assert.Len(t, seen, n)
				for _, id := range append(r.Team1, r.Team2...) {
					played[id]++
				}
			}
			assert.Len(t, played, n, "everyone gets at least one game")
		})
	}
}

func TestCombinations(t *testing.T) {
	combos := combinations(6, 4)
	assert.Len(t, combos, 15)
	assert.Equal(t, [4]int{0, 1, 2, 3}, combos[0])
	assert.Equal(t, [4]int{2, 3, 4, 5}, combos[14])
}

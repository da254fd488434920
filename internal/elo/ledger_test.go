package elo

import (
	"fmt"
	"testing"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 4, 5, 18, 0, 0, 0, time.UTC)

func profiles(ids ...string) []club.Profile {
	out := make([]club.Profile, len(ids))
	for i, id := range ids {
		out[i] = club.Profile{ID: id, Name: "Player " + id}
	}
	return out
}

func doubles(id string, at time.Time, team1, team2 []string, s1, s2 int) club.Match {
	return club.Match{
		ID:         id,
		CreatedAt:  at,
		Team1:      club.IDRoster(team1...),
		Team2:      club.IDRoster(team2...),
		Team1Score: club.IntPtr(s1),
		Team2Score: club.IntPtr(s2),
		ScoreType:  club.ScoreTypeSets,
	}
}

// generateHistory builds a reproducible history of doubles matches with distinct timestamps.
func generateHistory(seed uint64, players []string, n int) []club.Match {
	f := gofakeit.New(seed)
	matches := make([]club.Match, 0, n)
	for i := 0; i < n; i++ {
		picked := pick(f, players, 4)
		s1, s2 := 2, f.IntRange(0, 1)
		if f.Bool() {
			s1, s2 = s2, s1
		}
		matches = append(matches, doubles(
			fmt.Sprintf("m%03d", i),
			base.Add(time.Duration(i)*time.Hour),
			picked[:2], picked[2:], s1, s2,
		))
	}
	return matches
}

func pick(f *gofakeit.Faker, players []string, n int) []string {
	pool := append([]string(nil), players...)
	shuffle(f, pool)
	return pool[:n]
}

func shuffle[T any](f *gofakeit.Faker, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := f.IntRange(0, i)
		s[i], s[j] = s[j], s[i]
	}
}

var resultOpts = cmp.Options{
	cmpopts.IgnoreUnexported(Result{}),
	cmp.AllowUnexported(club.TeamRoster{}),
}

func TestCalculateEloWithStats_ConcreteExample(t *testing.T) {
	res := CalculateEloWithStats(
		[]club.Match{doubles("m1", base, []string{"p1", "p2"}, []string{"p3", "p4"}, 2, 0)},
		profiles("p1", "p2", "p3", "p4"),
	)

	// round(40 * 1.2 * 1.0 * 1 * (1 - 0.5))
	const delta = 24
	for _, id := range []string{"p1", "p2"} {
		p, ok := res.Player(id)
		require.True(t, ok)
		assert.Equal(t, 1000+delta, p.Elo)
		assert.Equal(t, 1, p.Wins)
		assert.Equal(t, delta, res.EloDeltaByMatch["m1"][id])
	}
	for _, id := range []string{"p3", "p4"} {
		p, _ := res.Player(id)
		assert.Equal(t, 1000-delta, p.Elo)
		assert.Equal(t, 1, p.Losses)
		assert.Equal(t, 1000-delta, res.EloRatingByMatch["m1"][id])
	}

	pre, ok := res.PreMatchRating("m1", "p3")
	require.True(t, ok)
	assert.Equal(t, 1000, pre)

	p1, _ := res.Player("p1")
	assert.Equal(t, map[string]int{"p2": 1}, p1.Partners)
	require.Len(t, p1.History, 1)
	assert.Equal(t, HistoryEntry{MatchID: "m1", Result: ResultWin, Delta: delta, Elo: 1024, Timestamp: base}, p1.History[0])
}

func TestCalculateEloWithStats_DeltaSymmetry(t *testing.T) {
	res := CalculateEloWithStats(
		[]club.Match{doubles("m1", base, []string{"a", "b"}, []string{"c", "d"}, 2, 1)},
		profiles("a", "b", "c", "d"),
	)
	won := res.EloDeltaByMatch["m1"]["a"] + res.EloDeltaByMatch["m1"]["b"]
	lost := res.EloDeltaByMatch["m1"]["c"] + res.EloDeltaByMatch["m1"]["d"]
	assert.Positive(t, won)
	assert.InDelta(t, won, -lost, 2)
}

func TestCalculateEloWithStats_Determinism(t *testing.T) {
	players := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8"}
	matches := generateHistory(42, players, 120)

	first := CalculateEloWithStats(matches, profiles(players...))
	second := CalculateEloWithStats(matches, profiles(players...))

	if diff := cmp.Diff(first, second, resultOpts); diff != "" {
		t.Fatalf("ledger is not deterministic (-first +second):\n%s", diff)
	}
}

func TestCalculateEloWithStats_InputOrderIndependence(t *testing.T) {
	players := []string{"p1", "p2", "p3", "p4", "p5", "p6"}
	matches := generateHistory(7, players, 80)
	want := CalculateEloWithStats(matches, profiles(players...))

	f := gofakeit.New(99)
	for i := 0; i < 5; i++ {
		shuffled := append([]club.Match(nil), matches...)
		shuffle(f, shuffled)
		got := CalculateEloWithStats(shuffled, profiles(players...))
		if diff := cmp.Diff(want, got, resultOpts); diff != "" {
			t.Fatalf("shuffle %d changed the ratings (-want +got):\n%s", i, diff)
		}
	}

	t.Run("descending input", func(t *testing.T) {
		reversed := append([]club.Match(nil), matches...)
		for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
			reversed[i], reversed[j] = reversed[j], reversed[i]
		}
		got := CalculateEloWithStats(reversed, profiles(players...))
		assert.Empty(t, cmp.Diff(want.Players, got.Players))
	})
}

func TestSortMatches(t *testing.T) {
	a := doubles("a", base, nil, nil, 1, 0)
	b := doubles("b", base, nil, nil, 1, 0)
	c := doubles("c", base.Add(time.Minute), nil, nil, 1, 0)

	ids := func(ms []club.Match) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.ID
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(SortMatches([]club.Match{a, b, c})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortMatches([]club.Match{c, b, a})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortMatches([]club.Match{b, c, a})))

	input := []club.Match{c, a}
	SortMatches(input)
	assert.Equal(t, "c", input[0].ID, "input must not be reordered")
}

func TestCalculateEloWithStats_SkipsInvalidMatches(t *testing.T) {
	missing := doubles("missing", base, []string{"p1"}, []string{"p2"}, 2, 0)
	missing.Team2Score = nil
	tied := doubles("tied", base.Add(time.Minute), []string{"p1"}, []string{"p2"}, 1, 1)
	guestsOnly := doubles("guests", base.Add(2*time.Minute), []string{"p1"}, nil, 2, 0)
	guestsOnly.Team2 = club.NameRoster("Gäst", "guest player")
	twice := doubles("twice", base.Add(3*time.Minute), []string{"p1", "p2"}, []string{"p1", "p3"}, 2, 0)

	res := CalculateEloWithStats([]club.Match{missing, tied, guestsOnly, twice}, profiles("p1", "p2", "p3"))

	assert.Empty(t, res.EloDeltaByMatch)
	assert.Empty(t, res.Rated)
	assert.Equal(t, 4, res.Skipped())
	for _, p := range res.Players {
		assert.Equal(t, EloBaseline, p.Elo)
		assert.Zero(t, p.Games)
	}
}

func TestCalculateEloWithStats_LegacyNamesAndGuests(t *testing.T) {
	m := doubles("legacy", base, nil, nil, 2, 0)
	m.Team1 = club.ParseNameRoster("player a, Gäst")
	m.Team2 = club.NameRoster("PLAYER B", "Player C")

	res := CalculateEloWithStats([]club.Match{m}, profiles("a", "b", "c"))

	require.True(t, res.IsRated("legacy"))
	assert.Len(t, res.EloDeltaByMatch["legacy"], 3)
	assert.NotContains(t, res.EloDeltaByMatch["legacy"], club.GuestID)

	a, _ := res.Player("a")
	assert.Equal(t, 1, a.Wins)
	assert.Empty(t, a.Partners, "guests are not partners")

	// A side with a single rated player and a guest is still a two-entry roster.
	assert.Equal(t, 1.0, GetSinglesAdjustedMatchWeight(m))
}

func TestCalculateEloWithStats_LeaderboardOrder(t *testing.T) {
	res := CalculateEloWithStats(
		[]club.Match{doubles("m1", base, []string{"z"}, []string{"y"}, 2, 0)},
		[]club.Profile{{ID: "x", Name: "Bo"}, {ID: "w", Name: "Al"}, {ID: "y", Name: "Cy"}, {ID: "z", Name: "Di"}},
	)
	var order []string
	for _, p := range res.Players {
		order = append(order, p.ID)
	}
	assert.Equal(t, []string{"z", "w", "x", "y"}, order)
}

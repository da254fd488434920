package badges

import (
	"fmt"
	"testing"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 3, 19, 0, 0, 0, time.UTC)

func match(id string, at time.Time, team1, team2 []string, s1, s2 int) club.Match {
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

func profiles(ids ...string) []club.Profile {
	out := make([]club.Profile, len(ids))
	for i, id := range ids {
		out[i] = club.Profile{ID: id, Name: id}
	}
	return out
}

func TestThresholdBoundary(t *testing.T) {
	tests := []struct {
		wins     int
		earned5  bool
		earned10 bool
	}{
		{4, false, false},
		{5, true, false},
		{10, true, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d wins", tt.wins), func(t *testing.T) {
			stats := &PlayerBadgeStats{PlayerID: "p1", Matches: tt.wins, Wins: tt.wins}
			pb := BuildPlayerBadges(stats, map[string]*PlayerBadgeStats{"p1": stats}, "p1")

			b5, ok := pb.FindBadge("wins-5")
			require.True(t, ok)
			assert.Equal(t, tt.earned5, b5.Earned)
			assert.Equal(t, "I", b5.Tier)
			assert.Equal(t, Progress{Current: tt.wins, Target: 5}, *b5.Progress)

			b10, ok := pb.FindBadge("wins-10")
			require.True(t, ok)
			assert.Equal(t, tt.earned10, b10.Earned)
			assert.Equal(t, "II", b10.Tier)
		})
	}
}

func TestBuildPlayerBadges_Totals(t *testing.T) {
	expected := len(uniqueDefinitions)
	for _, def := range thresholdDefinitions {
		expected += len(def.thresholds)
	}
	assert.Len(t, uniqueDefinitions, 15)

	pb := BuildPlayerBadges(nil, nil, "nobody")
	assert.Equal(t, expected, pb.TotalBadges)
	assert.Zero(t, pb.TotalEarned)
	assert.Len(t, pb.LockedBadges, expected)
}

func TestUniqueBadgeSingleHolder(t *testing.T) {
	players := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}
	f := gofakeit.New(2024)
	var matches []club.Match
	for i := 0; i < 150; i++ {
		pool := append([]string(nil), players...)
		for j := len(pool) - 1; j > 0; j-- {
			k := f.IntRange(0, j)
			pool[j], pool[k] = pool[k], pool[j]
		}
		s1, s2 := 2, f.IntRange(0, 1)
		if f.Bool() {
			s1, s2 = s2, s1
		}
		at := base.Add(time.Duration(i*5) * time.Hour)
		matches = append(matches, match(fmt.Sprintf("m%d", i), at, pool[:2], pool[2:4], s1, s2))
	}
	ledger := elo.CalculateEloWithStats(matches, profiles(players...))
	all := BuildAllPlayersBadgeStats(Input{Ledger: ledger, Now: base.Add(800 * time.Hour), Location: time.UTC})

	views := make(map[string]PlayerBadges, len(players))
	for _, id := range players {
		views[id] = BuildPlayerBadges(all[id], all, id)
	}

	for _, def := range uniqueDefinitions {
		t.Run(def.id, func(t *testing.T) {
			var holders []string
			for _, id := range players {
				if b, ok := views[id].FindBadge(def.id); ok && b.Earned {
					holders = append(holders, id)
				}
			}
			require.LessOrEqual(t, len(holders), 1)
			if len(holders) == 0 {
				return
			}
			for _, id := range players {
				if id == holders[0] || def.value(all[id]) <= 0 {
					continue
				}
				var found bool
				for _, b := range views[id].OtherUniqueBadges {
					if b.ID == def.id {
						found = true
						assert.Equal(t, holders[0], b.HolderID)
						assert.False(t, b.Earned)
					}
				}
				assert.True(t, found, "player %s should see %s as held by someone else", id, def.id)
			}
		})
	}
}

func TestUniqueHolders_TieBreak(t *testing.T) {
	all := map[string]*PlayerBadgeStats{
		"b": {PlayerID: "b", Matches: 12, Wins: 12},
		"a": {PlayerID: "a", Matches: 12, Wins: 6},
		"c": {PlayerID: "c", Matches: 3},
	}
	holders := UniqueHolders(all)

	assert.Equal(t, Holder{PlayerID: "a", Value: 12}, holders["most-active"], "equal values go to the lowest id")
	_, ok := holders["win-machine"]
	assert.False(t, ok, "win machine needs 20 matches")
	_, ok = holders["night-owl"]
	assert.False(t, ok, "zero never qualifies")

	all["b"].Matches = WinMachineMinMatches
	all["b"].Wins = 15
	holders = UniqueHolders(all)
	assert.Equal(t, "b", holders["win-machine"].PlayerID)
	assert.Equal(t, "b", holders["most-active"].PlayerID)
}

func TestUniqueHolders_SkipsDeactivated(t *testing.T) {
	all := map[string]*PlayerBadgeStats{
		"gone":   {PlayerID: "gone", IsDeleted: true, Matches: 40, CurrentElo: 1400},
		"active": {PlayerID: "active", Matches: 5, CurrentElo: 1050},
	}
	holders := UniqueHolders(all)
	assert.Equal(t, Holder{PlayerID: "active", Value: 1050}, holders["king-of-elo"])
	assert.Equal(t, "active", holders["most-active"].PlayerID)

	pb := BuildPlayerBadges(all["gone"], all, "gone")
	king, ok := pb.FindBadge("king-of-elo")
	require.True(t, ok)
	assert.False(t, king.Earned)
	assert.Equal(t, "active", king.HolderID)
}

func TestBuildAllPlayersBadgeStats(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	// Elevated rating for p3/p4 first, then an upset by p1/p2.
	matches := []club.Match{
		match("m1", base, []string{"p3", "p4"}, []string{"p5", "p6"}, 6, 0),
		match("m2", base.Add(time.Hour), []string{"p1", "p2"}, []string{"p3", "p4"}, 2, 1),
		match("m3", base.Add(2*time.Hour), []string{"p1", "p5"}, []string{"p3", "p6"}, 2, 0),
		match("m4", base.Add(3*time.Hour), []string{"p1", "p2"}, []string{"p4", "p5"}, 0, 2),
	}
	guest := match("m5", base.Add(4*time.Hour), []string{"p2"}, []string{"p6"}, 2, 0)
	guest.Team1 = club.NameRoster("p2", "Gäst")
	matches = append(matches, guest)

	ledger := elo.CalculateEloWithStats(matches, profiles("p1", "p2", "p3", "p4", "p5", "p6"))
	all := BuildAllPlayersBadgeStats(Input{
		Ledger: ledger,
		TournamentResults: []club.TournamentResult{
			{TournamentID: "t1", Format: club.FormatAmericano, PlayerID: "p1", Rank: 1},
			{TournamentID: "t2", Format: club.FormatMexicano, PlayerID: "p1", Rank: 3},
			{TournamentID: "t2", Format: club.FormatMexicano, PlayerID: "ghost", Rank: 1},
		},
		Now:      base.Add(24 * time.Hour),
		Location: loc,
	})

	p1 := all["p1"]
	require.NotNil(t, p1)
	assert.Equal(t, 3, p1.Matches)
	assert.Equal(t, 2, p1.Wins)
	assert.Equal(t, 2, p1.BestWinStreak)
	assert.Equal(t, 0, p1.CurrentWinStreak)
	assert.Equal(t, 1, p1.CurrentLossStreak)
	assert.Equal(t, "m2", p1.FirstUpsetMatchID)
	assert.Positive(t, p1.BiggestUpset)
	assert.Equal(t, 1, p1.NailbiterWins)
	assert.Equal(t, 1, p1.CleanSheets)
	assert.Equal(t, 2, p1.QuickWins)
	assert.Equal(t, 4, p1.SetsWon)
	assert.Equal(t, 3, p1.SetsLost)
	assert.Equal(t, 2, p1.UniquePartners)
	assert.Equal(t, 4, p1.UniqueOpponents)
	assert.Equal(t, 3, p1.MatchesLast30Days)
	assert.Positive(t, p1.BiggestEloLoss)
	assert.Equal(t, TournamentStats{Played: 2, Wins: 1, Podiums: 2}, p1.TournamentTotals())

	// The first match starts at 20:00 local and the last one crosses midnight.
	assert.Equal(t, 2, all["p3"].NightOwlMatches)
	assert.Equal(t, 3, p1.NightOwlMatches)
	assert.Equal(t, 1, all["p6"].EarlyBirdMatches)
	assert.Equal(t, 0, p1.EarlyBirdMatches)

	assert.Equal(t, 1, all["p3"].MarathonMatches)
	assert.Equal(t, 1, all["p2"].GuestPartnerGames)
	assert.Equal(t, 0, all["p1"].GuestPartnerGames)
	assert.NotContains(t, all, "ghost")
}

func TestToRoman(t *testing.T) {
	assert.Equal(t, "I", ToRoman(1))
	assert.Equal(t, "IV", ToRoman(4))
	assert.Equal(t, "IX", ToRoman(9))
	assert.Equal(t, "XIV", ToRoman(14))
	assert.Equal(t, "", ToRoman(0))
}

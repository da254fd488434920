package ranking

import (
	"errors"
	"testing"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evening = time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)

func seed() *club.MockStore {
	store := club.NewMock()
	store.Profiles = []club.Profile{
		{ID: "p1", Name: "Anna"},
		{ID: "p2", Name: "Bo"},
		{ID: "p3", Name: "Cecilia"},
		{ID: "p4", Name: "David"},
		{ID: "p5", Name: "Erik", IsDeleted: true},
	}
	store.Matches = []club.Match{
		{
			ID: "m1", CreatedAt: evening,
			Team1: club.IDRoster("p1", "p2"), Team2: club.IDRoster("p3", "p4"),
			Team1Score: club.IntPtr(2), Team2Score: club.IntPtr(0), ScoreType: club.ScoreTypeSets,
		},
		{
			ID: "m2", CreatedAt: evening.Add(time.Hour),
			Team1: club.IDRoster("p1", "p3"), Team2: club.IDRoster("p2", "p5"),
			Team1Score: club.IntPtr(2), Team2Score: club.IntPtr(1), ScoreType: club.ScoreTypeSets,
		},
	}
	return store
}

func newService(store *club.MockStore, m metrics.Metrics) *Service {
	return New(store, m, time.UTC, WithClock(func() time.Time { return evening.Add(4 * time.Hour) }))
}

func TestSnapshotIsMemoizedUntilInvalidated(t *testing.T) {
	store := seed()
	m := metrics.NewMock()
	s := newService(store, m)

	_, err := s.Snapshot()
	require.NoError(t, err)
	_, err = s.Leaderboard()
	require.NoError(t, err)
	assert.Equal(t, 1, store.ListMatchesCalls)
	assert.Equal(t, 1, m.RatingRecomputes())
	assert.Equal(t, 2, m.MatchesRated())

	s.Invalidate()
	_, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, store.ListMatchesCalls)
	assert.Equal(t, 2, m.RatingRecomputes())
}

func TestSnapshotPropagatesStoreErrors(t *testing.T) {
	store := seed()
	store.ListMatchesFunc = func() ([]club.Match, error) { return nil, errors.New("db down") }
	s := newService(store, metrics.NewMock())

	_, err := s.Snapshot()
	assert.ErrorContains(t, err, "db down")
}

func TestLeaderboardHidesDeactivatedPlayers(t *testing.T) {
	s := newService(seed(), metrics.NewMock())

	board, err := s.Leaderboard()
	require.NoError(t, err)
	require.Len(t, board, 4)
	assert.Equal(t, "p1", board[0].ID, "two wins puts Anna first")
	for _, p := range board {
		assert.NotEqual(t, "p5", p.ID)
	}
}

func TestPlayer(t *testing.T) {
	s := newService(seed(), metrics.NewMock())

	profile, err := s.Player("p1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Rank)
	assert.Equal(t, 2, profile.Stats.Wins)
	require.NotNil(t, profile.BadgeStats)
	assert.Equal(t, profile.Badges.TotalBadges, len(profile.Badges.EarnedBadges)+len(profile.Badges.OtherUniqueBadges)+len(profile.Badges.LockedBadges))

	_, err = s.Player("nobody")
	assert.ErrorIs(t, err, club.ErrNotFound)
}

func TestRecapDefaultsToLatestEvening(t *testing.T) {
	s := newService(seed(), metrics.NewMock())

	recap, err := s.Recap("")
	require.NoError(t, err)
	require.NotNil(t, recap)
	assert.Equal(t, "2026-03-10", recap.Date)
	assert.Equal(t, 2, recap.Matches)

	none, err := s.Recap("2026-01-01")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRecapWithoutMatches(t *testing.T) {
	s := newService(club.NewMock(), metrics.NewMock())

	recap, err := s.Recap("")
	require.NoError(t, err)
	assert.Nil(t, recap)

	highlight, err := s.Highlight()
	require.NoError(t, err)
	assert.Nil(t, highlight)
}

func TestRotation(t *testing.T) {
	s := newService(seed(), metrics.NewMock())

	schedule, err := s.Rotation([]string{"p1", "p2", "p3", "p4"})
	require.NoError(t, err)
	assert.NotEmpty(t, schedule.Rounds)
}

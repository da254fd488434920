package availability_test

import (
	"testing"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) availability.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return availability.NewStore(db)
}

func TestPollLifecycle(t *testing.T) {
	store := setupTestDB(t)

	poll, err := store.CreatePoll("Week 12", "p1", []string{"2026-03-19", "2026-03-17", "2026-03-19"})
	require.NoError(t, err)
	require.Len(t, poll.Days, 2, "duplicate days are collapsed")
	assert.Equal(t, "2026-03-17", poll.Days[0].Day)
	assert.Equal(t, availability.PollOpen, poll.Status)

	for _, p := range []string{"p1", "p2", "p3", "p4"} {
		require.NoError(t, store.CastVote(poll.ID, "2026-03-19", p))
	}
	require.NoError(t, store.CastVote(poll.ID, "2026-03-19", "p1"), "casting twice is a no-op")
	require.NoError(t, store.CastVote(poll.ID, "2026-03-17", "p5"))
	require.NoError(t, store.RetractVote(poll.ID, "2026-03-17", "p5"))

	votes, err := store.ListVotes(poll.ID)
	require.NoError(t, err)
	assert.Len(t, votes, 4)

	err = store.CastVote(poll.ID, "2026-04-01", "p1")
	assert.ErrorIs(t, err, club.ErrNotFound)

	require.NoError(t, store.ClosePoll(poll.ID))
	err = store.CastVote(poll.ID, "2026-03-19", "p6")
	assert.ErrorIs(t, err, availability.ErrPollClosed)

	got, err := store.GetPoll(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, availability.PollClosed, got.Status)

	polls, err := store.ListPolls()
	require.NoError(t, err)
	assert.Len(t, polls, 1)
}

func TestPollErrors(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.CreatePoll("bad", "p1", []string{"19/03/2026"})
	assert.Error(t, err)

	_, err = store.CreatePoll("empty", "p1", nil)
	assert.Error(t, err)

	_, err = store.GetPoll("missing")
	assert.ErrorIs(t, err, club.ErrNotFound)

	assert.ErrorIs(t, store.ClosePoll("missing"), club.ErrNotFound)
}

func poll() availability.Poll {
	return availability.Poll{
		ID: "poll",
		Days: []availability.Day{
			{ID: "d1", PollID: "poll", Day: "2026-03-17"},
			{ID: "d2", PollID: "poll", Day: "2026-03-18"},
			{ID: "d3", PollID: "poll", Day: "2026-03-19"},
		},
	}
}

func votes(dayID string, players ...string) []availability.Vote {
	out := make([]availability.Vote, 0, len(players))
	for _, p := range players {
		out = append(out, availability.Vote{DayID: dayID, PlayerID: p, CreatedAt: time.Now()})
	}
	return out
}

func TestEvaluatePoll(t *testing.T) {
	var all []availability.Vote
	all = append(all, votes("d1", "p1", "p2")...)
	all = append(all, votes("d2", "p3", "p1", "p3")...)
	all = append(all, votes("d3", "p4", "p5", "p6")...)
	all = append(all, votes("other", "p7", "p8", "p9", "p10")...)

	summaries := availability.EvaluatePoll(poll(), all)
	require.Len(t, summaries, 3)
	assert.Equal(t, "2026-03-19", summaries[0].Day)
	assert.Equal(t, 3, summaries[0].Count)
	assert.Equal(t, "2026-03-17", summaries[1].Day, "equal counts order by date")
	assert.Equal(t, []string{"p1", "p3"}, summaries[2].Voters, "duplicates count once")
}

func TestProposeMatch(t *testing.T) {
	t.Run("not enough players", func(t *testing.T) {
		_, err := availability.ProposeMatch(poll(), votes("d1", "p1", "p2", "p3"), nil)
		assert.ErrorIs(t, err, availability.ErrNotEnoughPlayers)
	})

	t.Run("balanced schedule for the best day", func(t *testing.T) {
		all := append(votes("d2", "p1", "p2", "p3", "p4", "p5"), votes("d1", "p1", "p2", "p3", "p4")...)
		elo := map[string]int{"p1": 1200, "p2": 1100, "p3": 1000, "p4": 900, "p5": 1000}

		proposal, err := availability.ProposeMatch(poll(), all, elo)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-18", proposal.Day)
		assert.Len(t, proposal.Voters, 5)
		assert.NotEmpty(t, proposal.Schedule.Rounds)
	})
}

package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/playtomic"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
	"github.com/SoMedNinja/padel-app-sub001/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRanking struct {
	invalidations int
	recap         *report.EveningRecap
	recapErr      error
	recapDates    []string
	highlight     *highlights.MatchHighlight
	names         map[string]string
}

func (s *stubRanking) Invalidate() { s.invalidations++ }

func (s *stubRanking) Recap(date string) (*report.EveningRecap, error) {
	s.recapDates = append(s.recapDates, date)
	return s.recap, s.recapErr
}

func (s *stubRanking) Highlight() (*highlights.MatchHighlight, error) { return s.highlight, nil }

func (s *stubRanking) Names() (map[string]string, error) { return s.names, nil }

type fixture struct {
	store     *club.MockStore
	ranking   *stubRanking
	notifier  *notifier.Mock
	metrics   *metrics.Mock
	counters  *metrics.MockStore
	pubsub    *pubsub.MockPubSubClient
	playtomic *playtomic.MockClient
	proc      *Processor
}

var fixedNow = time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:     club.NewMock(),
		ranking:   &stubRanking{names: map[string]string{"p1": "Anna"}},
		notifier:  notifier.NewMock(),
		metrics:   metrics.NewMock(),
		counters:  metrics.NewMockStore(),
		pubsub:    pubsub.NewMock(),
		playtomic: playtomic.NewMockClient(),
	}
	f.proc = New(Deps{
		Store:     f.store,
		Ranking:   f.ranking,
		Notifier:  f.notifier,
		Metrics:   f.metrics,
		Counters:  f.counters,
		PubSub:    f.pubsub,
		Playtomic: f.playtomic,
		TenantID:  "tenant-1",
		Now:       func() time.Time { return fixedNow },
	})
	return f
}

func TestHandleMatchRecorded(t *testing.T) {
	f := setup(t)

	f.proc.HandleMatchRecorded(pubsub.MatchRecorded{MatchIDs: []string{"m1", "m2"}, Action: pubsub.ActionCreated})
	f.proc.HandleMatchRecorded(pubsub.MatchRecorded{MatchIDs: []string{"m1"}, Action: pubsub.ActionDeleted})

	assert.Equal(t, 2, f.ranking.invalidations)
	assert.Equal(t, 2, f.counters.Get(metrics.KeyMatchesRecorded))
}

func TestPublishMatchRecorded(t *testing.T) {
	t.Run("publishes the event", func(t *testing.T) {
		f := setup(t)
		f.proc.PublishMatchRecorded(pubsub.ActionUpdated, "m1")

		require.Len(t, f.pubsub.Published, 1)
		call := f.pubsub.Published[0]
		assert.Equal(t, pubsub.EventMatchRecorded, call.Topic)
		evt, ok := call.Data.(pubsub.MatchRecorded)
		require.True(t, ok)
		assert.Equal(t, []string{"m1"}, evt.MatchIDs)
		assert.Equal(t, pubsub.ActionUpdated, evt.Action)
		assert.Equal(t, fixedNow, evt.At)
		assert.Zero(t, f.ranking.invalidations)
	})

	t.Run("invalidates directly when publishing fails", func(t *testing.T) {
		f := setup(t)
		f.pubsub.Err = errors.New("down")
		f.proc.PublishMatchRecorded(pubsub.ActionDeleted, "m1")
		assert.Equal(t, 1, f.ranking.invalidations)
	})
}

func TestHandleEvent(t *testing.T) {
	f := setup(t)
	data, err := pubsub.Encode(pubsub.MatchRecorded{MatchIDs: []string{"m1"}, Action: pubsub.ActionImported})
	require.NoError(t, err)

	require.NoError(t, f.proc.HandleEvent(context.Background(), pubsub.EventMatchRecorded, data))
	assert.Equal(t, 1, f.ranking.invalidations)
	assert.Zero(t, f.counters.Get(metrics.KeyMatchesRecorded))

	data, err = pubsub.Encode(pubsub.RecapRequested{Date: "2024-05-09", DryRun: true})
	require.NoError(t, err)
	require.NoError(t, f.proc.HandleEvent(context.Background(), pubsub.EventRecapRequested, data))
	assert.Equal(t, []string{"2024-05-09"}, f.ranking.recapDates)

	assert.Error(t, f.proc.HandleEvent(context.Background(), pubsub.EventMatchRecorded, []byte{0xc1}))
	assert.NoError(t, f.proc.HandleEvent(context.Background(), "unknown", nil))
}

func playedMatch(id string, players ...string) playtomic.PadelMatch {
	team := func(teamID string, ids ...string) playtomic.Team {
		t := playtomic.Team{ID: teamID}
		for _, id := range ids {
			t.Players = append(t.Players, playtomic.Player{UserID: id, Name: id})
		}
		return t
	}
	return playtomic.PadelMatch{
		MatchID:       id,
		Start:         fixedNow.Add(-26 * time.Hour).Unix(),
		End:           fixedNow.Add(-24 * time.Hour).Unix(),
		GameStatus:    playtomic.GameStatusPlayed,
		ResultsStatus: playtomic.ResultsStatusConfirmed,
		Teams:         []playtomic.Team{team("t1", players[0], players[1]), team("t2", players[2], players[3])},
		Results: []playtomic.SetResult{
			{Name: "Set-1", Scores: map[string]int{"t1": 6, "t2": 3}},
			{Name: "Set-2", Scores: map[string]int{"t1": 6, "t2": 4}},
		},
	}
}

func TestImportPlaytomic(t *testing.T) {
	f := setup(t)
	f.store.Profiles = []club.Profile{{ID: "p1", Name: "Anna"}, {ID: "p2", Name: "Ben"}, {ID: "p3", Name: "Cleo"}, {ID: "p4", Name: "Dan"}}
	f.playtomic.Add(
		playedMatch("pm1", "p1", "p2", "p3", "p4"),
		playedMatch("pm2", "p1", "p2", "p3", "stranger"),
	)
	// pm3 is listed but cannot be fetched.
	f.playtomic.Listed = []string{"pm1", "pm2", "pm3"}

	summary, err := f.proc.ImportPlaytomic(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, ImportSummary{Fetched: 3, Imported: 1, Skipped: 2, MatchIDs: []string{"pm1"}}, summary)
	assert.Equal(t, 1, f.metrics.ImportRuns())

	require.Len(t, f.playtomic.Searches, 1)
	params := f.playtomic.Searches[0]
	assert.Equal(t, "PADEL", params.SportID)
	assert.Equal(t, []string{"tenant-1"}, params.TenantIDs)
	assert.Equal(t, "2024-05-03T20:00:00", params.FromStartDate)

	require.Len(t, f.store.UpsertMatchesCalls, 1)
	stored := f.store.UpsertMatchesCalls[0]
	require.Len(t, stored, 1)
	assert.Equal(t, "pm1", stored[0].ID)
	assert.Equal(t, 2, *stored[0].Team1Score)
	assert.Equal(t, 0, *stored[0].Team2Score)

	assert.Equal(t, 1, f.counters.Get(metrics.KeyMatchesImported))
	assert.Equal(t, []pubsub.EventType{pubsub.EventMatchRecorded}, f.pubsub.Topics())
	assert.Equal(t, pubsub.ActionImported, f.pubsub.Published[0].Data.(pubsub.MatchRecorded).Action)
}

func TestImportPlaytomic_DryRun(t *testing.T) {
	f := setup(t)
	f.store.Profiles = []club.Profile{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"}}
	f.playtomic.Add(playedMatch("pm1", "p1", "p2", "p3", "p4"))

	summary, err := f.proc.ImportPlaytomic(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.Imported)
	assert.Empty(t, f.store.UpsertMatchesCalls)
	assert.Empty(t, f.pubsub.Published)
}

func TestImportPlaytomic_SearchError(t *testing.T) {
	f := setup(t)
	f.playtomic.SearchErr = errors.New("unavailable")

	_, err := f.proc.ImportPlaytomic(context.Background(), false)
	assert.ErrorContains(t, err, "unavailable")
	assert.Equal(t, 1, f.metrics.ImportRuns())
}

func TestSendRecap(t *testing.T) {
	t.Run("sends the recap", func(t *testing.T) {
		f := setup(t)
		f.ranking.recap = &report.EveningRecap{Date: "2024-05-09", Matches: 3}
		f.ranking.highlight = &highlights.MatchHighlight{MatchID: "m1"}

		require.NoError(t, f.proc.SendRecap("", false))
		require.Len(t, f.notifier.SendRecapCalls, 1)
		assert.Equal(t, "2024-05-09", f.notifier.SendRecapCalls[0].Recap.Date)
		assert.Equal(t, "m1", f.notifier.SendRecapCalls[0].Highlight.MatchID)
		assert.Equal(t, 1, f.counters.Get(metrics.KeyRecapsSent))
	})

	t.Run("nothing played", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, f.proc.SendRecap("2024-05-09", false))
		assert.Empty(t, f.notifier.SendRecapCalls)
	})

	t.Run("dry run is not counted", func(t *testing.T) {
		f := setup(t)
		f.ranking.recap = &report.EveningRecap{Date: "2024-05-09"}
		require.NoError(t, f.proc.SendRecap("2024-05-09", true))
		assert.True(t, f.notifier.SendRecapCalls[0].DryRun)
		assert.Zero(t, f.counters.Get(metrics.KeyRecapsSent))
	})

	t.Run("notifier error", func(t *testing.T) {
		f := setup(t)
		f.ranking.recap = &report.EveningRecap{Date: "2024-05-09"}
		f.notifier.SendRecapFunc = func(*report.EveningRecap, *highlights.MatchHighlight, bool) error {
			return errors.New("slack down")
		}
		assert.ErrorContains(t, f.proc.SendRecap("", false), "slack down")
	})
}

func TestAnnounceNextRound(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.store.CreateTournament(&club.Tournament{
		ID:           "t1",
		Name:         "Friday Americano",
		Format:       club.FormatAmericano,
		Participants: []string{"p1", "p2", "p3", "p4", "p5"},
	}))

	round, err := f.proc.AnnounceNextRound("t1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, round.RoundNumber)
	assert.Len(t, round.Team1IDs, 2)
	assert.Len(t, round.Team2IDs, 2)
	assert.Len(t, round.RestingIDs, 1)

	require.Len(t, f.store.AddRoundCalls, 1)
	require.Len(t, f.notifier.SendRoundAnnouncementCalls, 1)
	assert.Equal(t, "Friday Americano", f.notifier.SendRoundAnnouncementCalls[0].Tournament.Name)
	assert.Equal(t, 1, f.counters.Get(metrics.KeyRoundsAnnounced))

	round, err = f.proc.AnnounceNextRound("t1", false)
	require.NoError(t, err)
	assert.Equal(t, 2, round.RoundNumber)
}

func TestAnnounceNextRound_Errors(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.store.CreateTournament(&club.Tournament{ID: "small", Format: club.FormatMexicano, Participants: []string{"p1", "p2", "p3"}}))
	require.NoError(t, f.store.CreateTournament(&club.Tournament{ID: "done", Format: club.FormatAmericano, Status: club.TournamentCompleted, Participants: []string{"p1", "p2", "p3", "p4"}}))

	_, err := f.proc.AnnounceNextRound("missing", false)
	assert.ErrorIs(t, err, club.ErrNotFound)

	_, err = f.proc.AnnounceNextRound("small", false)
	assert.ErrorIs(t, err, tournament.ErrNotEnoughPlayers)

	_, err = f.proc.AnnounceNextRound("done", false)
	assert.Error(t, err)

	assert.Empty(t, f.store.AddRoundCalls)
}

func TestAnnounceNextRound_DryRun(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.store.CreateTournament(&club.Tournament{ID: "t1", Format: club.FormatAmericano, Participants: []string{"p1", "p2", "p3", "p4"}}))

	round, err := f.proc.AnnounceNextRound("t1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, round.RoundNumber)
	assert.Empty(t, f.store.AddRoundCalls)
	assert.Zero(t, f.counters.Get(metrics.KeyRoundsAnnounced))
}

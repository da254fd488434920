package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/mvp"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
	"github.com/SoMedNinja/padel-app-sub001/internal/rotation"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// The api is never called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(section("plain_text", "hello")), false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled)
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, _, err := notifier.sendMessage(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendRecap_NilRecapIsNoop(t *testing.T) {
	called := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(context.Context, string, ...slackapi.MsgOption) (string, string, error) {
			called = true
			return "", "", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	require.NoError(t, notifier.SendRecap(nil, nil, false))
	assert.False(t, called)
}

func TestFormatRecap(t *testing.T) {
	recap := &report.EveningRecap{
		Date:    "2026-03-10",
		Matches: 3,
		Leaders: []report.PlayerLine{
			{PlayerID: "p1", Name: "Anna", Wins: 3, Games: 3, EloChange: 41},
			{PlayerID: "p2", Name: "Bo", Wins: 1, Losses: 2, Games: 3, EloChange: -12},
		},
		MVP:      &mvp.Result{PlayerID: "p1", Name: "Anna", Wins: 3, Games: 3, PeriodEloGain: 41},
		FunFacts: []report.FunFact{{Kind: report.FactMarathon, PlayerID: "p1", Name: "Anna", Value: 7}},
	}
	highlight := &highlights.MatchHighlight{Date: "2026-03-10", Title: "Upset of the night", Description: "Bo & Cecilia beat the favourites"}

	client := &Notifier{channelID: "C123"}
	msg := client.formatRecap(recap, highlight)
	require.Len(t, msg.Blocks.BlockSet, 7, "header, summary, leaders, mvp, divider, highlight, facts")

	h, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, ":tennis: Evening recap 2026-03-10", h.Text.Text)

	leaders, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "1. :first_place_medal: *Anna* 3-0 (+41 Elo)\n2. :second_place_medal: *Bo* 1-2 (-12 Elo)", leaders.Text.Text)

	mvpBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, mvpBlock.Text.Text, "*MVP:* Anna")

	facts, ok := msg.Blocks.BlockSet[6].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, facts.ContextElements.Elements, 1)
	fact, ok := facts.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, ":runner: Anna played 7 sets", fact.Text)
}

func TestFormatRecap_HighlightFromAnotherDayIsDropped(t *testing.T) {
	recap := &report.EveningRecap{Date: "2026-03-10", Matches: 1}
	highlight := &highlights.MatchHighlight{Date: "2026-03-09", Title: "old"}

	client := &Notifier{channelID: "C123"}
	msg := client.formatRecap(recap, highlight)
	assert.Len(t, msg.Blocks.BlockSet, 2)
}

func TestFormatLeaderboard(t *testing.T) {
	t.Run("displays leaderboard with ratings", func(t *testing.T) {
		players := []elo.PlayerStats{
			{ID: "a", Name: "Player A", Elo: 1100, Games: 10, Wins: 8},
			{ID: "b", Name: "Player B", Elo: 1050, Games: 10, Wins: 6},
			{ID: "c", Name: "Player C", Elo: 990, Games: 10, Wins: 4},
		}

		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(players)
		require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks (header + 3 players)")

		first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "1. :first_place_medal: *Player A* 1100\n> Win %: 80% (8/10)", first.Text.Text)

		third, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, third.Text.Text, "3. :third_place_medal: *Player C*")
	})

	t.Run("displays message when nobody is rated", func(t *testing.T) {
		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(nil)
		require.Len(t, msg.Blocks.BlockSet, 2)
	})

	t.Run("caps the list", func(t *testing.T) {
		players := make([]elo.PlayerStats, 15)
		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(players)
		assert.Len(t, msg.Blocks.BlockSet, 1+leaderboardSize)
	})
}

func TestFormatRoundAnnouncement(t *testing.T) {
	tournament := club.Tournament{ID: "t1", Name: "Friday Americano"}
	round := club.TournamentRound{
		RoundNumber: 3,
		Team1IDs:    []string{"p1", "p2"},
		Team2IDs:    []string{"p3", "p4"},
		RestingIDs:  []string{"p5", "p6"},
	}
	names := map[string]string{"p1": "Anna", "p2": "Bo", "p3": "Cecilia", "p4": "David", "p5": "Erik"}

	client := &Notifier{channelID: "C123"}
	msg := client.formatRoundAnnouncement(tournament, round, names)
	require.Len(t, msg.Blocks.BlockSet, 3)

	h, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "Friday Americano: round 3", h.Text.Text)

	teams, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Anna & Bo*\nvs\n*Cecilia & David*", teams.Text.Text)

	resting, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	el, ok := resting.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, ":zzz: Resting: Erik, p6", el.Text, "unknown ids fall back to the id")
}

func TestFormatMatchProposal(t *testing.T) {
	proposal := &availability.Proposal{
		Day:    "2026-03-19",
		Voters: []string{"p1", "p2", "p3", "p4"},
		Schedule: rotation.Schedule{Rounds: []rotation.Round{
			{Number: 1, Team1: []string{"p1", "p4"}, Team2: []string{"p2", "p3"}, Fairness: 97},
		}},
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatMatchProposal(proposal, map[string]string{"p1": "Anna"})
	require.Len(t, msg.Blocks.BlockSet, 3)

	game, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Game 1*: Anna & p4 vs p2 & p3 (fairness 97)", game.Text.Text)
}

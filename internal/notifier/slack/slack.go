package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// leaderboardSize caps the number of rows posted to the channel.
const leaderboardSize = 10

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendRecap(recap *report.EveningRecap, highlight *highlights.MatchHighlight, dryRun bool) error {
	if recap == nil {
		log.Info("No recap to send")
		return nil
	}
	_, _, err := s.sendMessage(s.formatRecap(recap, highlight), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(players []elo.PlayerStats, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatLeaderboard(players), dryRun)
	return err
}

func (s *Notifier) SendRoundAnnouncement(tournament club.Tournament, round club.TournamentRound, names map[string]string, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRoundAnnouncement(tournament, round, names), dryRun)
	return err
}

func (s *Notifier) SendMatchProposal(proposal *availability.Proposal, names map[string]string, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchProposal(proposal, names), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(players []elo.PlayerStats) (any, error) {
	return s.formatLeaderboard(players), nil
}

// FormatPlayerResponse formats a player page for a slash command response.
func (s *Notifier) FormatPlayerResponse(profile *ranking.PlayerProfile) (any, error) {
	return s.formatPlayer(profile), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// FormatRecapResponse formats an evening recap for a slash command response.
func (s *Notifier) FormatRecapResponse(recap *report.EveningRecap, highlight *highlights.MatchHighlight) (any, error) {
	if recap == nil {
		return slack.NewBlockMessage(section("plain_text", "No rated matches were played that evening.")), nil
	}
	return s.formatRecap(recap, highlight), nil
}

func header(text string) slack.Block {
	return slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", text, true, false))
}

func section(kind, text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject(kind, text, kind == "plain_text", false), nil, nil)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return ":first_place_medal: "
	case 2:
		return ":second_place_medal: "
	case 3:
		return ":third_place_medal: "
	}
	return ""
}

func signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

// formatRecap creates the nightly recap using Block Kit.
func (s *Notifier) formatRecap(recap *report.EveningRecap, highlight *highlights.MatchHighlight) slack.Message {
	blocks := []slack.Block{
		header(fmt.Sprintf(":tennis: Evening recap %s", recap.Date)),
		section("mrkdwn", fmt.Sprintf("*%d* rated matches, *%d* players", recap.Matches, len(recap.Leaders))),
	}

	var lines []string
	for i, l := range recap.Leaders {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s*%s* %d-%d (%s Elo)", i+1, medal(i+1), l.Name, l.Wins, l.Losses, signed(l.EloChange)))
	}
	if len(lines) > 0 {
		blocks = append(blocks, section("mrkdwn", strings.Join(lines, "\n")))
	}

	if recap.MVP != nil {
		blocks = append(blocks, section("mrkdwn", fmt.Sprintf(":star: *MVP:* %s (%d/%d wins, %s Elo)",
			recap.MVP.Name, recap.MVP.Wins, recap.MVP.Games, signed(recap.MVP.PeriodEloGain))))
	}

	if highlight != nil && highlight.Date == recap.Date {
		blocks = append(blocks, slack.NewDividerBlock(), section("mrkdwn", fmt.Sprintf("*%s*\n%s", highlight.Title, highlight.Description)))
	}

	var facts []slack.MixedElement
	for _, f := range recap.FunFacts {
		facts = append(facts, slack.NewTextBlockObject("mrkdwn", funFactText(f), false, false))
	}
	if len(facts) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", facts...))
	}
	return slack.NewBlockMessage(blocks...)
}

func funFactText(f report.FunFact) string {
	switch f.Kind {
	case report.FactSocial:
		return fmt.Sprintf(":handshake: %s played with %.0f different partners", f.Name, f.Value)
	case report.FactWinRate:
		return fmt.Sprintf(":dart: %s won %.0f%% of their games", f.Name, f.Value*100)
	case report.FactMarathon:
		return fmt.Sprintf(":runner: %s played %.0f sets", f.Name, f.Value)
	}
	return fmt.Sprintf("%s: %s %.2f", f.Kind, f.Name, f.Value)
}

// formatLeaderboard creates a Slack message to display the rating leaderboard.
func (s *Notifier) formatLeaderboard(players []elo.PlayerStats) slack.Message {
	blocks := []slack.Block{header(":trophy: Elo Leaderboard :trophy:")}

	if len(players) == 0 {
		blocks = append(blocks, section("plain_text", "No ratings yet. Go play some matches!"))
		return slack.NewBlockMessage(blocks...)
	}

	for i, p := range players {
		if i == leaderboardSize {
			break
		}
		text := fmt.Sprintf("%d. %s*%s* %d\n> Win %%: %.0f%% (%d/%d)",
			i+1, medal(i+1), p.Name, p.Elo, p.WinRate()*100, p.Wins, p.Games)
		blocks = append(blocks, section("mrkdwn", text))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayer(profile *ranking.PlayerProfile) slack.Message {
	st := profile.Stats
	text := fmt.Sprintf("*%s* is ranked #%d with *%d* Elo\n> Matches: %d | Wins: %d | Losses: %d | Win %%: %.0f%%",
		st.Name, profile.Rank, st.Elo, st.Games, st.Wins, st.Losses, st.WinRate()*100)
	blocks := []slack.Block{
		header(fmt.Sprintf("Stats for %s", st.Name)),
		section("mrkdwn", text),
	}
	var earned []string
	for _, b := range profile.Badges.EarnedBadges {
		name := b.Title
		if b.Tier != "" {
			name += " " + b.Tier
		}
		earned = append(earned, b.Icon+" "+name)
	}
	if len(earned) > 0 {
		blocks = append(blocks, section("mrkdwn", fmt.Sprintf("*Badges (%d/%d)*\n%s",
			profile.Badges.TotalEarned, profile.Badges.TotalBadges, strings.Join(earned, ", "))))
	}
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	return slack.NewBlockMessage(section("mrkdwn", fmt.Sprintf("Sorry, I couldn't find a player matching `%s`.", query)))
}

func displayNames(ids []string, names map[string]string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := names[id]; ok && n != "" {
			out = append(out, n)
		} else {
			out = append(out, id)
		}
	}
	return strings.Join(out, " & ")
}

// formatRoundAnnouncement announces the next tournament round.
func (s *Notifier) formatRoundAnnouncement(t club.Tournament, round club.TournamentRound, names map[string]string) slack.Message {
	blocks := []slack.Block{
		header(fmt.Sprintf("%s: round %d", t.Name, round.RoundNumber)),
		section("mrkdwn", fmt.Sprintf("*%s*\nvs\n*%s*", displayNames(round.Team1IDs, names), displayNames(round.Team2IDs, names))),
	}
	if len(round.RestingIDs) > 0 {
		resting := strings.ReplaceAll(displayNames(round.RestingIDs, names), " & ", ", ")
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", ":zzz: Resting: "+resting, false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatMatchProposal posts the balanced games for the best poll day.
func (s *Notifier) formatMatchProposal(p *availability.Proposal, names map[string]string) slack.Message {
	blocks := []slack.Block{
		header(fmt.Sprintf(":calendar: Padel on %s", p.Day)),
		section("mrkdwn", fmt.Sprintf("%d players available: %s", len(p.Voters), strings.ReplaceAll(displayNames(p.Voters, names), " & ", ", "))),
	}
	for _, r := range p.Schedule.Rounds {
		text := fmt.Sprintf("*Game %d*: %s vs %s (fairness %d)",
			r.Number, displayNames(r.Team1, names), displayNames(r.Team2, names), r.Fairness)
		blocks = append(blocks, section("mrkdwn", text))
	}
	return slack.NewBlockMessage(blocks...)
}

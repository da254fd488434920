package notifier

import (
	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
)

// Notifier defines a high-level interface for sending notifications about club events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Posted to the club channel
	SendRecap(recap *report.EveningRecap, highlight *highlights.MatchHighlight, dryRun bool) error
	SendLeaderboard(players []elo.PlayerStats, dryRun bool) error
	SendRoundAnnouncement(tournament club.Tournament, round club.TournamentRound, names map[string]string, dryRun bool) error
	SendMatchProposal(proposal *availability.Proposal, names map[string]string, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(players []elo.PlayerStats) (any, error)
	FormatPlayerResponse(profile *ranking.PlayerProfile) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
	FormatRecapResponse(recap *report.EveningRecap, highlight *highlights.MatchHighlight) (any, error)
}

package notifier

import (
	"sync"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendRecapFunc func(recap *report.EveningRecap, highlight *highlights.MatchHighlight, dryRun bool) error

	// Call records
	SendRecapCalls []struct {
		Recap     *report.EveningRecap
		Highlight *highlights.MatchHighlight
		DryRun    bool
	}
	SendLeaderboardCalls       [][]elo.PlayerStats
	SendRoundAnnouncementCalls []struct {
		Tournament club.Tournament
		Round      club.TournamentRound
	}
	SendMatchProposalCalls []*availability.Proposal
	PlayerNotFoundQueries  []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRecapCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendRoundAnnouncementCalls = nil
	m.SendMatchProposalCalls = nil
	m.PlayerNotFoundQueries = nil
}

func (m *Mock) SendRecap(recap *report.EveningRecap, highlight *highlights.MatchHighlight, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRecapCalls = append(m.SendRecapCalls, struct {
		Recap     *report.EveningRecap
		Highlight *highlights.MatchHighlight
		DryRun    bool
	}{recap, highlight, dryRun})
	if m.SendRecapFunc != nil {
		return m.SendRecapFunc(recap, highlight, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(players []elo.PlayerStats, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, players)
	return nil
}

func (m *Mock) SendRoundAnnouncement(tournament club.Tournament, round club.TournamentRound, names map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundAnnouncementCalls = append(m.SendRoundAnnouncementCalls, struct {
		Tournament club.Tournament
		Round      club.TournamentRound
	}{tournament, round})
	return nil
}

func (m *Mock) SendMatchProposal(proposal *availability.Proposal, names map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchProposalCalls = append(m.SendMatchProposalCalls, proposal)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(players []elo.PlayerStats) (any, error) {
	return map[string]any{"text": "leaderboard", "players": len(players)}, nil
}

func (m *Mock) FormatPlayerResponse(profile *ranking.PlayerProfile) (any, error) {
	return map[string]any{"text": "player", "player_id": profile.Stats.ID}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerNotFoundQueries = append(m.PlayerNotFoundQueries, query)
	return map[string]any{"text": "not found"}, nil
}

func (m *Mock) FormatRecapResponse(recap *report.EveningRecap, highlight *highlights.MatchHighlight) (any, error) {
	if recap == nil {
		return map[string]any{"text": "no matches"}, nil
	}
	return map[string]any{"text": "recap", "date": recap.Date}, nil
}

package processor

import (
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
)

// Store defines the database operations required by the processor.
type Store interface {
	ListProfiles() ([]club.Profile, error)
	UpsertMatches(matches []club.Match) error
	GetTournament(id string) (*club.Tournament, error)
	ListRounds(tournamentID string) ([]club.TournamentRound, error)
	AddRound(round *club.TournamentRound) error
}

// Ranking is the part of the ranking service the processor reads and invalidates.
type Ranking interface {
	Invalidate()
	Recap(date string) (*report.EveningRecap, error)
	Highlight() (*highlights.MatchHighlight, error)
	Names() (map[string]string, error)
}

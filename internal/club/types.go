package club

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by the store when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ScoreType defines how a match was scored.
type ScoreType string

const (
	ScoreTypeSets   ScoreType = "sets"
	ScoreTypePoints ScoreType = "points"
)

// TournamentFormat identifies the tournament a match or round belongs to.
type TournamentFormat string

const (
	FormatAmericano TournamentFormat = "americano"
	FormatMexicano  TournamentFormat = "mexicano"
)

// Profile represents a registered player.
type Profile struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AvatarURL       string  `json:"avatar_url,omitempty"`
	IsAdmin         bool    `json:"is_admin"`
	IsRegular       bool    `json:"is_regular"`
	IsApproved      bool    `json:"is_approved"`
	IsDeleted       bool    `json:"is_deleted"`
	FeaturedBadgeID *string `json:"featured_badge_id,omitempty"`
}

// Match is one recorded contest between two sides of one or two players.
type Match struct {
	ID                   string           `json:"id"`
	CreatedAt            time.Time        `json:"created_at"`
	Team1                TeamRoster       `json:"team1"`
	Team2                TeamRoster       `json:"team2"`
	Team1Score           *int             `json:"team1_sets"`
	Team2Score           *int             `json:"team2_sets"`
	ScoreType            ScoreType        `json:"score_type"`
	SourceTournamentID   string           `json:"source_tournament_id,omitempty"`
	SourceTournamentType TournamentFormat `json:"source_tournament_type,omitempty"`
}

// TournamentResult is the final placement of one player in a completed tournament.
type TournamentResult struct {
	TournamentID string           `json:"tournament_id"`
	Format       TournamentFormat `json:"format"`
	PlayerID     string           `json:"player_id"`
	Rank         int              `json:"rank"`
}

// TournamentStatus tracks the lifecycle of a tournament.
type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentStarted   TournamentStatus = "started"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament is a stored Americano or Mexicano event.
type Tournament struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Format       TournamentFormat `json:"format"`
	Status       TournamentStatus `json:"status"`
	Participants []string         `json:"participants"`
	CreatedAt    time.Time        `json:"created_at"`
}

// TournamentRound is one played or proposed round of a tournament.
type TournamentRound struct {
	ID           string           `json:"id"`
	TournamentID string           `json:"tournament_id"`
	RoundNumber  int              `json:"round_number"`
	Mode         TournamentFormat `json:"mode"`
	Team1IDs     []string         `json:"team1_ids"`
	Team2IDs     []string         `json:"team2_ids"`
	RestingIDs   []string         `json:"resting_ids"`
	Team1Score   *int             `json:"team1_score"`
	Team2Score   *int             `json:"team2_score"`
}

// Scored reports whether both sides of the round have a score.
func (r TournamentRound) Scored() bool {
	return r.Team1Score != nil && r.Team2Score != nil
}

// Valid reports whether the match carries a score and at least one entry per side.
func (m Match) Valid() bool {
	return m.Team1Score != nil && m.Team2Score != nil && !m.Team1.Empty() && !m.Team2.Empty()
}

// Outcome returns 1 or 2 for the winning side, or 0 for a tie or a missing score.
func (m Match) Outcome() int {
	if m.Team1Score == nil || m.Team2Score == nil {
		return 0
	}
	switch {
	case *m.Team1Score > *m.Team2Score:
		return 1
	case *m.Team2Score > *m.Team1Score:
		return 2
	default:
		return 0
	}
}

// Scores returns both scores, zero when missing.
func (m Match) Scores() (int, int) {
	var s1, s2 int
	if m.Team1Score != nil {
		s1 = *m.Team1Score
	}
	if m.Team2Score != nil {
		s2 = *m.Team2Score
	}
	return s1, s2
}

// Margin is the absolute score difference.
func (m Match) Margin() int {
	s1, s2 := m.Scores()
	if s1 > s2 {
		return s1 - s2
	}
	return s2 - s1
}

// IntPtr is a small helper for building scores.
func IntPtr(v int) *int {
	return &v
}

// ActiveProfiles filters out deactivated profiles.
func ActiveProfiles(profiles []Profile) []Profile {
	active := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if !p.IsDeleted {
			active = append(active, p)
		}
	}
	return active
}

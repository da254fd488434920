// Package ranking runs the rating pipeline over the stored club history and
// memoizes the result until it is invalidated by a write.
package ranking

import (
	"fmt"
	"sync"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/badges"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/highlights"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/mvp"
	"github.com/SoMedNinja/padel-app-sub001/internal/report"
	"github.com/SoMedNinja/padel-app-sub001/internal/rotation"
	"github.com/charmbracelet/log"
)

// Source is the read side of the club store the pipeline needs.
type Source interface {
	ListProfiles() ([]club.Profile, error)
	ListMatches() ([]club.Match, error)
	ListTournamentResults() ([]club.TournamentResult, error)
}

// Snapshot is one full pipeline run.
type Snapshot struct {
	Profiles   []club.Profile
	Matches    []club.Match
	Ledger     *elo.Result
	BadgeStats map[string]*badges.PlayerBadgeStats
	BuiltAt    time.Time
}

// PlayerProfile is everything shown on a player page.
type PlayerProfile struct {
	Rank       int                      `json:"rank"`
	Stats      elo.PlayerStats          `json:"stats"`
	BadgeStats *badges.PlayerBadgeStats `json:"badge_stats,omitempty"`
	Badges     badges.PlayerBadges      `json:"badges"`
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service serves read views from a lazily rebuilt snapshot.
type Service struct {
	source  Source
	metrics metrics.Metrics
	loc     *time.Location
	now     func() time.Time

	mu   sync.RWMutex
	snap *Snapshot
}

// New creates a ranking service. A nil location means UTC.
func New(source Source, m metrics.Metrics, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.UTC
	}
	s := &Service{
		source:  source,
		metrics: m,
		loc:     loc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is the club's calendar time zone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Invalidate drops the memoized snapshot; the next read rebuilds it.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
	log.Debug("Ranking snapshot invalidated")
}

// Snapshot returns the current snapshot, building it when needed.
func (s *Service) Snapshot() (*Snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil {
		return s.snap, nil
	}
	snap, err := s.build()
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return snap, nil
}

func (s *Service) build() (*Snapshot, error) {
	start := time.Now()
	profiles, err := s.source.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	matches, err := s.source.ListMatches()
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	results, err := s.source.ListTournamentResults()
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament results: %w", err)
	}

	ledger := elo.CalculateEloWithStats(matches, profiles)
	now := s.now()
	snap := &Snapshot{
		Profiles: profiles,
		Matches:  matches,
		Ledger:   ledger,
		BadgeStats: badges.BuildAllPlayersBadgeStats(badges.Input{
			Ledger:            ledger,
			TournamentResults: results,
			Now:               now,
			Location:          s.loc,
		}),
		BuiltAt: now,
	}

	s.metrics.IncRatingRecomputes()
	s.metrics.AddMatchesRated(len(ledger.Rated))
	s.metrics.AddMatchesSkipped(ledger.Skipped())
	s.metrics.ObserveRecomputeDuration(time.Since(start).Seconds())
	log.Info("Ranking snapshot rebuilt", "matches", len(matches), "rated", len(ledger.Rated), "skipped", ledger.Skipped(), "players", len(ledger.Players))
	return snap, nil
}

// Leaderboard lists active players by rating.
func (s *Service) Leaderboard() ([]elo.PlayerStats, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return activePlayers(snap), nil
}

// activePlayers keeps the ledger order and drops deactivated profiles.
func activePlayers(snap *Snapshot) []elo.PlayerStats {
	active := make(map[string]bool, len(snap.Profiles))
	for _, p := range club.ActiveProfiles(snap.Profiles) {
		active[p.ID] = true
	}
	out := make([]elo.PlayerStats, 0, len(active))
	for _, p := range snap.Ledger.Players {
		if active[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Player returns one player's page, or club.ErrNotFound.
func (s *Service) Player(id string) (*PlayerProfile, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	stats, ok := snap.Ledger.Player(id)
	if !ok {
		return nil, club.ErrNotFound
	}
	rank := 0
	for i, p := range activePlayers(snap) {
		if p.ID == id {
			rank = i + 1
			break
		}
	}
	return &PlayerProfile{
		Rank:       rank,
		Stats:      stats,
		BadgeStats: snap.BadgeStats[id],
		Badges:     badges.BuildPlayerBadges(snap.BadgeStats[id], snap.BadgeStats, id),
	}, nil
}

// MatchDates lists the days with rated matches, newest first.
func (s *Service) MatchDates() ([]string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return report.ListMatchDates(snap.Matches, snap.Ledger, s.loc), nil
}

// Recap builds the evening recap for date. An empty date picks the latest evening.
// It returns nil when nothing was played.
func (s *Service) Recap(date string) (*report.EveningRecap, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	if date == "" {
		dates := report.ListMatchDates(snap.Matches, snap.Ledger, s.loc)
		if len(dates) == 0 {
			return nil, nil
		}
		date = dates[0]
	}
	return report.CalculateEveningStats(snap.Matches, snap.Ledger, date, s.loc), nil
}

// Highlight returns the highlight of the latest evening, or nil.
func (s *Service) Highlight() (*highlights.MatchHighlight, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return highlights.FindMatchHighlight(snap.Matches, snap.Ledger, s.loc), nil
}

// MonthlyMVP returns the MVP of the trailing window, or nil.
func (s *Service) MonthlyMVP() (*mvp.Result, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return mvp.Monthly(snap.Ledger, s.now()), nil
}

// Rotation balances a schedule for pool over current ratings.
func (s *Service) Rotation(pool []string) (rotation.Schedule, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return rotation.Schedule{}, err
	}
	return rotation.BuildRotationSchedule(pool, snap.Ledger.EloMap()), nil
}

// Names maps player ids to display names.
func (s *Service) Names() (map[string]string, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(snap.Profiles))
	for _, p := range snap.Profiles {
		names[p.ID] = p.Name
	}
	return names, nil
}

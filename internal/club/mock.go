package club

import (
	"strconv"
	"sync"
)

// MockStore is an in-memory implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Profiles    []Profile
	Matches     []Match
	Tournaments []Tournament
	Rounds      []TournamentRound
	Results     []TournamentResult

	// Overrides
	ListMatchesFunc   func() ([]Match, error)
	ListProfilesFunc  func() ([]Profile, error)
	UpsertMatchesFunc func(matches []Match) error

	// Call records
	CreateMatchCalls        []Match
	UpsertMatchesCalls      [][]Match
	UpdateMatchCalls        []Match
	DeleteMatchCalls        []string
	ListMatchesCalls        int
	AddRoundCalls           []TournamentRound
	CompleteTournamentCalls []struct {
		ID      string
		Results []TournamentResult
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = nil
	m.UpsertMatchesCalls = nil
	m.UpdateMatchCalls = nil
	m.DeleteMatchCalls = nil
	m.ListMatchesCalls = 0
	m.AddRoundCalls = nil
	m.CompleteTournamentCalls = nil
}

func (m *MockStore) UpsertProfile(profile Profile) error {
	return m.UpsertProfiles([]Profile{profile})
}

func (m *MockStore) UpsertProfiles(profiles []Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range profiles {
		replaced := false
		for i := range m.Profiles {
			if m.Profiles[i].ID == p.ID {
				m.Profiles[i] = p
				replaced = true
			}
		}
		if !replaced {
			m.Profiles = append(m.Profiles, p)
		}
	}
	return nil
}

func (m *MockStore) GetProfile(id string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Profiles {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListProfiles() ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListProfilesFunc != nil {
		return m.ListProfilesFunc()
	}
	return append([]Profile(nil), m.Profiles...), nil
}

func (m *MockStore) RenameProfile(id, name string) error {
	return m.updateProfile(id, func(p *Profile) { p.Name = name })
}

func (m *MockStore) DeactivateProfile(id string) error {
	return m.updateProfile(id, func(p *Profile) { p.IsDeleted = true })
}

func (m *MockStore) updateProfile(id string, fn func(*Profile)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Profiles {
		if m.Profiles[i].ID == id {
			fn(&m.Profiles[i])
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) CreateMatch(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if match.ID == "" {
		match.ID = "match-" + itoa(len(m.Matches)+1)
	}
	if match.ScoreType == "" {
		match.ScoreType = ScoreTypeSets
	}
	m.CreateMatchCalls = append(m.CreateMatchCalls, *match)
	m.Matches = append(m.Matches, *match)
	return nil
}

func (m *MockStore) UpsertMatches(matches []Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchesCalls = append(m.UpsertMatchesCalls, matches)
	if m.UpsertMatchesFunc != nil {
		return m.UpsertMatchesFunc(matches)
	}
	for _, match := range matches {
		replaced := false
		for i := range m.Matches {
			if m.Matches[i].ID == match.ID {
				m.Matches[i] = match
				replaced = true
			}
		}
		if !replaced {
			m.Matches = append(m.Matches, match)
		}
	}
	return nil
}

func (m *MockStore) UpdateMatch(match Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateMatchCalls = append(m.UpdateMatchCalls, match)
	for i := range m.Matches {
		if m.Matches[i].ID == match.ID {
			m.Matches[i] = match
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) DeleteMatch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, id)
	for i := range m.Matches {
		if m.Matches[i].ID == id {
			m.Matches = append(m.Matches[:i], m.Matches[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) GetMatch(id string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, match := range m.Matches {
		if match.ID == id {
			match := match
			return &match, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListMatches() ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListMatchesCalls++
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc()
	}
	return append([]Match(nil), m.Matches...), nil
}

func (m *MockStore) CreateTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = "tournament-" + itoa(len(m.Tournaments)+1)
	}
	if t.Status == "" {
		t.Status = TournamentDraft
	}
	m.Tournaments = append(m.Tournaments, *t)
	return nil
}

func (m *MockStore) GetTournament(id string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tournaments {
		if t.ID == id || t.Slug == id {
			t := t
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListTournaments() ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Tournament(nil), m.Tournaments...), nil
}

func (m *MockStore) AddRound(r *TournamentRound) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = "round-" + itoa(len(m.Rounds)+1)
	}
	if r.RoundNumber == 0 {
		for _, existing := range m.Rounds {
			if existing.TournamentID == r.TournamentID && existing.RoundNumber > r.RoundNumber {
				r.RoundNumber = existing.RoundNumber
			}
		}
		r.RoundNumber++
	}
	m.AddRoundCalls = append(m.AddRoundCalls, *r)
	m.Rounds = append(m.Rounds, *r)
	return nil
}

func (m *MockStore) ScoreRound(tournamentID, roundID string, team1Score, team2Score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Rounds {
		if m.Rounds[i].ID == roundID && m.Rounds[i].TournamentID == tournamentID {
			m.Rounds[i].Team1Score = IntPtr(team1Score)
			m.Rounds[i].Team2Score = IntPtr(team2Score)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) ListRounds(tournamentID string) ([]TournamentRound, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rounds []TournamentRound
	for _, r := range m.Rounds {
		if r.TournamentID == tournamentID {
			rounds = append(rounds, r)
		}
	}
	return rounds, nil
}

func (m *MockStore) CompleteTournament(id string, results []TournamentResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteTournamentCalls = append(m.CompleteTournamentCalls, struct {
		ID      string
		Results []TournamentResult
	}{id, results})
	for i := range m.Tournaments {
		if m.Tournaments[i].ID == id {
			m.Tournaments[i].Status = TournamentCompleted
		}
	}
	m.Results = append(m.Results, results...)
	return nil
}

func (m *MockStore) ListTournamentResults() ([]TournamentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TournamentResult(nil), m.Results...), nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	ratingRecomputes   int
	matchesRated       int
	matchesSkipped     int
	recomputeDurations []float64
	importRuns         int
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recomputeDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRatingRecomputes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratingRecomputes++
}

func (m *Mock) AddMatchesRated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRated += n
}

func (m *Mock) AddMatchesSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesSkipped += n
}

func (m *Mock) ObserveRecomputeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputeDurations = append(m.recomputeDurations, duration)
}

func (m *Mock) IncImportRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.importRuns++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RatingRecomputes returns the number of times IncRatingRecomputes was called.
func (m *Mock) RatingRecomputes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratingRecomputes
}

// MatchesRated returns the sum passed to AddMatchesRated.
func (m *Mock) MatchesRated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRated
}

// MatchesSkipped returns the sum passed to AddMatchesSkipped.
func (m *Mock) MatchesSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesSkipped
}

// ImportRuns returns the number of times IncImportRuns was called.
func (m *Mock) ImportRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.importRuns
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockStore is an in-memory MetricsStore.
type MockStore struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMockStore creates an empty counter store.
func NewMockStore() *MockStore {
	return &MockStore{values: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// Get returns one counter.
func (m *MockStore) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

package playtomic

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MockClient serves matches from memory. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Matches are returned by GetSpecificMatch. Ids missing here fail with an error.
	Matches map[string]PadelMatch
	// Listed overrides the search result order. When nil the sorted Matches keys are listed.
	Listed    []string
	SearchErr error

	Searches []*SearchMatchesParams
	Fetched  []string
}

func NewMockClient() *MockClient {
	return &MockClient{Matches: make(map[string]PadelMatch)}
}

// Add registers played matches under their ids.
func (m *MockClient) Add(matches ...PadelMatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pm := range matches {
		m.Matches[pm.MatchID] = pm
	}
}

func (m *MockClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Searches = append(m.Searches, params)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	ids := m.Listed
	if ids == nil {
		for id := range m.Matches {
			ids = append(ids, id)
		}
		slices.Sort(ids)
	}
	out := make([]MatchSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, MatchSummary{MatchID: id})
	}
	return out, nil
}

func (m *MockClient) GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetched = append(m.Fetched, matchID)
	pm, ok := m.Matches[matchID]
	if !ok {
		return PadelMatch{}, fmt.Errorf("playtomic match %s not found", matchID)
	}
	return pm, nil
}

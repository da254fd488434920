package playtomic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/rafa-garcia/go-playtomic-api/models"
	"golang.org/x/time/rate"
)

// APIClient is a custom Playtomic API client that implements the PlaytomicClient interface.
type APIClient struct {
	httpClient *http.Client
	apiClient  *client.Client
	limiter    *rate.Limiter
	BaseURL    string
}

// NewClient creates a Playtomic client allowing at most rps requests per second.
// A non-positive rps disables limiting.
func NewClient(rps float64) PlaytomicClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiClient: client.NewClient(
			client.WithTimeout(10*time.Second),
			client.WithRetries(3),
		),
		limiter: newLimiter(rps),
		BaseURL: "https://api.playtomic.io",
	}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Ensure APIClient implements the PlaytomicClient interface.
var _ PlaytomicClient = (*APIClient)(nil)

// GetMatches fetches every page of matches for the search parameters.
func (c *APIClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	const pageSize = 300
	var (
		allMatches []MatchSummary
		page       = 0
	)

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		externalParams := &models.SearchMatchesParams{
			SportID:       params.SportID,
			HasPlayers:    params.HasPlayers,
			Sort:          params.Sort,
			TenantIDs:     params.TenantIDs,
			FromStartDate: params.FromStartDate,
			Size:          pageSize,
			Page:          page,
		}

		log.Debug("Fetching matches from Playtomic API", "params", externalParams)
		matches, err := c.apiClient.GetMatches(ctx, externalParams)
		if err != nil {
			return nil, fmt.Errorf("error fetching matches from playtomic api: %w", err)
		}

		for _, m := range matches {
			allMatches = append(allMatches, MatchSummary{
				MatchID: m.MatchID,
				OwnerID: m.OwnerID,
			})
		}

		if len(matches) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched all matches", "count", len(allMatches), "pages", page+1)
	return allMatches, nil
}

// GetSpecificMatch fetches a specific match by its ID.
func (c *APIClient) GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return PadelMatch{}, fmt.Errorf("rate limiter: %w", err)
	}
	url := fmt.Sprintf("%s/v1/matches/%s", c.BaseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "PadelClubGoClient/1.0")
	log.Debug("Requesting specific match from Playtomic API", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Playtomic API", "status", resp.StatusCode, "body", string(body))
		return PadelMatch{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var matchResponse playtomicMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResponse); err != nil {
		return PadelMatch{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return toPadelMatch(matchID, matchResponse)
}

// Playtomic timestamps carry no zone and are UTC.
const timestampLayout = "2006-01-02T15:04:05"

func parseTimestamp(field, value string) (int64, error) {
	t, err := time.Parse(timestampLayout, value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t.Unix(), nil
}

func toPadelMatch(matchID string, r playtomicMatchResponse) (PadelMatch, error) {
	start, err := parseTimestamp("start time", r.StartDate)
	if err != nil {
		return PadelMatch{}, err
	}
	end, err := parseTimestamp("end time", r.EndDate)
	if err != nil {
		return PadelMatch{}, err
	}
	created, err := parseTimestamp("created at time", r.CreatedAt)
	if err != nil {
		return PadelMatch{}, err
	}

	var teams []Team
	for _, rt := range r.Teams {
		t := Team{ID: rt.TeamID}
		if rt.TeamResult != nil {
			t.TeamResult = *rt.TeamResult
		}
		for _, rp := range rt.Players {
			p := Player{UserID: rp.UserID, Name: rp.Name}
			if rp.LevelValue != nil {
				p.Level = *rp.LevelValue
			}
			t.Players = append(t.Players, p)
		}
		teams = append(teams, t)
	}

	var results []SetResult
	for _, rr := range r.Results {
		set := SetResult{Name: rr.Name, Scores: make(map[string]int, len(rr.Scores))}
		for _, score := range rr.Scores {
			set.Scores[score.TeamID] = score.Score
		}
		results = append(results, set)
	}

	match := PadelMatch{
		MatchID:         matchID,
		OwnerID:         r.OwnerID,
		Start:           start,
		End:             end,
		CreatedAt:       created,
		Status:          r.Status,
		GameStatus:      GameStatus(r.GameStatus),
		Teams:           teams,
		Results:         results,
		ResultsStatus:   ResultsStatus(r.ResultsStatus),
		ResourceName:    r.ResourceName,
		Tenant:          Tenant{ID: r.Tenant.ID, Name: r.Tenant.Name},
		CompetitionType: CompetitionType(r.CompetitionType),
	}
	log.Debug("Match", "match_id", matchID, "game_status", match.GameStatus, "results_status", match.ResultsStatus)
	return match, nil
}

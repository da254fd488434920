package playtomic

import "context"

// PlaytomicClient reads matches from Playtomic. Calls are rate limited.
type PlaytomicClient interface {
	GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error)
	GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error)
}

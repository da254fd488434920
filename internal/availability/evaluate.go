package availability

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/SoMedNinja/padel-app-sub001/internal/rotation"
)

// EvaluatePoll derives per-day turnout from the raw votes. Days are ordered by
// voter count descending, then by date. Votes for days outside the poll are ignored
// and a player counts once per day.
func EvaluatePoll(poll Poll, votes []Vote) []DaySummary {
	byDay := make(map[string]*DaySummary, len(poll.Days))
	out := make([]*DaySummary, 0, len(poll.Days))
	for _, d := range poll.Days {
		s := &DaySummary{DayID: d.ID, Day: d.Day, Voters: []string{}}
		byDay[d.ID] = s
		out = append(out, s)
	}
	for _, v := range votes {
		s, ok := byDay[v.DayID]
		if !ok || slices.Contains(s.Voters, v.PlayerID) {
			continue
		}
		s.Voters = append(s.Voters, v.PlayerID)
	}

	summaries := make([]DaySummary, 0, len(out))
	for _, s := range out {
		slices.Sort(s.Voters)
		s.Count = len(s.Voters)
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b DaySummary) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Day, b.Day)
	})
	return summaries
}

// ProposeMatch picks the best day with a full court and balances games between
// its voters over the given ratings.
func ProposeMatch(poll Poll, votes []Vote, eloMap map[string]int) (*Proposal, error) {
	summaries := EvaluatePoll(poll, votes)
	if len(summaries) == 0 || summaries[0].Count < MinPlayers {
		best := 0
		if len(summaries) > 0 {
			best = summaries[0].Count
		}
		return nil, fmt.Errorf("best day has %d of %d players: %w", best, MinPlayers, ErrNotEnoughPlayers)
	}
	top := summaries[0]
	return &Proposal{
		PollID:   poll.ID,
		Day:      top.Day,
		Voters:   top.Voters,
		Schedule: rotation.BuildRotationSchedule(top.Voters, eloMap),
	}, nil
}

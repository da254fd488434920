package playtomic

import (
	"fmt"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
)

// ToClubMatch converts a played Playtomic match into a club match. The Playtomic
// match id is reused so repeated imports upsert the same row. Each side's score is
// its number of won sets; halved sets count for nobody.
//
// Players are matched to profiles by id first and then by display name. The match is
// rejected unless it is played, confirmed and all four players are known.
func ToClubMatch(pm PadelMatch, idx *club.NameIndex) (club.Match, error) {
	if pm.GameStatus != GameStatusPlayed {
		return club.Match{}, fmt.Errorf("match %s is not played (%s)", pm.MatchID, pm.GameStatus)
	}
	if pm.ResultsStatus != ResultsStatusConfirmed {
		return club.Match{}, fmt.Errorf("match %s results are not confirmed (%s)", pm.MatchID, pm.ResultsStatus)
	}
	if len(pm.Teams) != 2 {
		return club.Match{}, fmt.Errorf("match %s has %d teams", pm.MatchID, len(pm.Teams))
	}

	var rosters [2][]string
	for i, team := range pm.Teams {
		if len(team.Players) != 2 {
			return club.Match{}, fmt.Errorf("match %s team %s has %d players", pm.MatchID, team.ID, len(team.Players))
		}
		for _, p := range team.Players {
			id, ok := resolvePlayer(p, idx)
			if !ok {
				return club.Match{}, fmt.Errorf("match %s has unknown player %q", pm.MatchID, p.Name)
			}
			rosters[i] = append(rosters[i], id)
		}
	}

	var sets [2]int
	for _, set := range pm.Results {
		s1, ok1 := set.Scores[pm.Teams[0].ID]
		s2, ok2 := set.Scores[pm.Teams[1].ID]
		if !ok1 || !ok2 {
			continue
		}
		switch {
		case s1 > s2:
			sets[0]++
		case s2 > s1:
			sets[1]++
		}
	}
	if sets[0] == 0 && sets[1] == 0 {
		return club.Match{}, fmt.Errorf("match %s has no decided sets", pm.MatchID)
	}

	playedAt := pm.End
	if playedAt == 0 {
		playedAt = pm.Start
	}
	return club.Match{
		ID:         pm.MatchID,
		CreatedAt:  time.Unix(playedAt, 0).UTC(),
		Team1:      club.IDRoster(rosters[0]...),
		Team2:      club.IDRoster(rosters[1]...),
		Team1Score: club.IntPtr(sets[0]),
		Team2Score: club.IntPtr(sets[1]),
		ScoreType:  club.ScoreTypeSets,
	}, nil
}

func resolvePlayer(p Player, idx *club.NameIndex) (string, bool) {
	if p.UserID != "" && idx.Known(p.UserID) {
		return p.UserID, true
	}
	if p.Name == "" {
		return "", false
	}
	ids := idx.Resolve(club.NameRoster(p.Name))
	if len(ids) != 1 || ids[0] == club.GuestID {
		return "", false
	}
	return ids[0], true
}

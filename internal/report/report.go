// Package report builds the evening recap from one calendar day of matches.
package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/mvp"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
)

// FunFactMinGames is the minimum sample for the win-rate fun fact.
const FunFactMinGames = 2

// Fun fact kinds.
const (
	FactSocial   = "most_partners"
	FactWinRate  = "best_win_rate"
	FactMarathon = "marathon"
)

// PlayerLine is one player's evening.
type PlayerLine struct {
	PlayerID       string  `json:"player_id"`
	Name           string  `json:"name"`
	Games          int     `json:"games"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	SetsFor        int     `json:"sets_for"`
	SetsAgainst    int     `json:"sets_against"`
	PointsFor      int     `json:"points_for"`
	PointsAgainst  int     `json:"points_against"`
	Partners       int     `json:"partners"`
	AvgOpponentElo float64 `json:"avg_opponent_elo"`
	WinRate        float64 `json:"win_rate"`
	EloChange      int     `json:"elo_change"`
}

// FunFact is a lighter statistic for the recap.
type FunFact struct {
	Kind     string  `json:"kind"`
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
}

// EveningRecap aggregates one evening.
type EveningRecap struct {
	Date     string       `json:"date"`
	Matches  int          `json:"matches"`
	MatchIDs []string     `json:"match_ids"`
	Leaders  []PlayerLine `json:"leaders"`
	MVP      *mvp.Result  `json:"mvp,omitempty"`
	FunFacts []FunFact    `json:"fun_facts"`
}

type lineState struct {
	line        PlayerLine
	partners    map[string]bool
	opponentSum float64
	opponentN   int
}

// CalculateEveningStats builds the recap for date (YYYY-MM-DD in loc).
// It returns nil when no rated match falls on that day.
func CalculateEveningStats(matches []club.Match, ledger *elo.Result, date string, loc *time.Location) *EveningRecap {
	if ledger == nil {
		return nil
	}
	var evening []club.ResolvedMatch
	for _, m := range elo.SortMatches(matches) {
		if ledger.IsRated(m.ID) && timeutil.DayKey(m.CreatedAt, loc) == date {
			evening = append(evening, ledger.Resolve(m))
		}
	}
	if len(evening) == 0 {
		return nil
	}

	lines := make(map[string]*lineState)
	line := func(id string) *lineState {
		if ls, ok := lines[id]; ok {
			return ls
		}
		name := id
		if p, ok := ledger.Player(id); ok {
			name = p.Name
		}
		ls := &lineState{line: PlayerLine{PlayerID: id, Name: name}, partners: make(map[string]bool)}
		lines[id] = ls
		return ls
	}

	recap := &EveningRecap{Date: date, Matches: len(evening)}
	for _, rm := range evening {
		recap.MatchIDs = append(recap.MatchIDs, rm.ID)
		s1, s2 := rm.Scores()
		outcome := rm.Outcome()
		points := rm.ScoreType == club.ScoreTypePoints
		tally := func(own, opp []string, scored, conceded int, won bool) {
			oppAvg := 0.0
			for _, o := range opp {
				pre, _ := ledger.PreMatchRating(rm.ID, o)
				oppAvg += float64(pre)
			}
			oppAvg /= float64(len(opp))
			for _, id := range own {
				ls := line(id)
				ls.line.Games++
				if won {
					ls.line.Wins++
				} else {
					ls.line.Losses++
				}
				if points {
					ls.line.PointsFor += scored
					ls.line.PointsAgainst += conceded
				} else {
					ls.line.SetsFor += scored
					ls.line.SetsAgainst += conceded
				}
				ls.line.EloChange += ledger.EloDeltaByMatch[rm.ID][id]
				ls.opponentSum += oppAvg
				ls.opponentN++
				for _, p := range own {
					if p != id {
						ls.partners[p] = true
					}
				}
			}
		}
		tally(rm.Team1IDs, rm.Team2IDs, s1, s2, outcome == 1)
		tally(rm.Team2IDs, rm.Team1IDs, s2, s1, outcome == 2)
	}

	for _, ls := range lines {
		ls.line.Partners = len(ls.partners)
		ls.line.WinRate = float64(ls.line.Wins) / float64(ls.line.Games)
		ls.line.AvgOpponentElo = ls.opponentSum / float64(ls.opponentN)
		recap.Leaders = append(recap.Leaders, ls.line)
	}
	slices.SortFunc(recap.Leaders, compareLines)

	recap.MVP = mvp.GetMvpWinner(mvp.ScorePlayersForMvp(evening, ledger.Players, mvp.EveningMinGames, ledger.EloDeltaByMatch))
	recap.FunFacts = funFacts(recap.Leaders)
	return recap
}

func compareLines(a, b PlayerLine) int {
	if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
		return c
	}
	if c := cmp.Compare(b.WinRate, a.WinRate); c != 0 {
		return c
	}
	if c := cmp.Compare(b.EloChange, a.EloChange); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.PlayerID, b.PlayerID)
}

// funFacts picks the leader of each fact. The marathon counts sets only. Leaders are already in a stable order,
// so the first strictly greater value wins.
func funFacts(leaders []PlayerLine) []FunFact {
	facts := []FunFact{}
	best := func(kind string, value func(PlayerLine) (float64, bool)) {
		var fact *FunFact
		for _, l := range leaders {
			v, ok := value(l)
			if !ok || v <= 0 {
				continue
			}
			if fact == nil || v > fact.Value {
				fact = &FunFact{Kind: kind, PlayerID: l.PlayerID, Name: l.Name, Value: v}
			}
		}
		if fact != nil {
			facts = append(facts, *fact)
		}
	}
	best(FactSocial, func(l PlayerLine) (float64, bool) { return float64(l.Partners), true })
	best(FactWinRate, func(l PlayerLine) (float64, bool) { return l.WinRate, l.Games >= FunFactMinGames })
	best(FactMarathon, func(l PlayerLine) (float64, bool) { return float64(l.SetsFor + l.SetsAgainst), true })
	return facts
}

// ListMatchDates returns the distinct days with rated matches, newest first.
func ListMatchDates(matches []club.Match, ledger *elo.Result, loc *time.Location) []string {
	seen := make(map[string]bool)
	var days []string
	for _, m := range matches {
		if ledger != nil && !ledger.IsRated(m.ID) {
			continue
		}
		day := timeutil.DayKey(m.CreatedAt, loc)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	slices.Sort(days)
	slices.Reverse(days)
	return days
}

// Package highlights picks the most interesting match of the latest playing day.
package highlights

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
)

// Type classifies a highlight.
type Type string

const (
	TypeUpset    Type = "upset"
	TypeThriller Type = "thriller"
	TypeCrush    Type = "crush"
	TypeTitans   Type = "titans"
)

var priority = map[Type]int{
	TypeUpset:    4,
	TypeThriller: 3,
	TypeCrush:    2,
	TypeTitans:   1,
}

// Classification thresholds.
const (
	UpsetMaxExpected  = 0.45
	ThrillerMaxMargin = 1
	CrushMinMargin    = 3
)

// MatchHighlight is the single highlight of a day.
type MatchHighlight struct {
	MatchID        string   `json:"match_id"`
	Date           string   `json:"date"`
	Type           Type     `json:"type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Score          float64  `json:"score"`
	WinnerExpected float64  `json:"winner_expected"`
	Team1Average   float64  `json:"team1_average"`
	Team2Average   float64  `json:"team2_average"`
	Margin         int      `json:"margin"`
	Winners        []string `json:"winners"`
	Losers         []string `json:"losers"`
}

type candidate struct {
	typ   Type
	score float64
	seq   int
}

// Classify returns every highlight type a rated match qualifies for with its score.
// The margin is in sets; point-scored matches pass setScored false and only qualify
// for upset and titans.
func Classify(winnerExp float64, margin int, avg1, avg2 float64, setScored bool) map[Type]float64 {
	out := map[Type]float64{
		TypeTitans: (avg1 + avg2 - 2*elo.EloBaseline) / 10,
	}
	if winnerExp < UpsetMaxExpected {
		out[TypeUpset] = (0.5 - winnerExp) * 100
	}
	if !setScored {
		return out
	}
	if margin <= ThrillerMaxMargin {
		out[TypeThriller] = 50 - math.Abs(0.5-winnerExp)*100
	}
	if margin >= CrushMinMargin {
		out[TypeCrush] = float64(margin) * 10
	}
	return out
}

// FindMatchHighlight scans the latest calendar day (in loc) with rated matches and
// returns its best highlight, or nil when no match was rated.
func FindMatchHighlight(matches []club.Match, ledger *elo.Result, loc *time.Location) *MatchHighlight {
	if ledger == nil {
		return nil
	}
	var rated []club.ResolvedMatch
	latest := ""
	for _, m := range elo.SortMatches(matches) {
		if !ledger.IsRated(m.ID) {
			continue
		}
		rated = append(rated, ledger.Resolve(m))
		if day := timeutil.DayKey(m.CreatedAt, loc); day > latest {
			latest = day
		}
	}
	if latest == "" {
		return nil
	}

	type scored struct {
		candidate
		match club.ResolvedMatch
		exp   float64
		avg1  float64
		avg2  float64
	}
	var all []scored
	for _, rm := range rated {
		if timeutil.DayKey(rm.CreatedAt, loc) != latest {
			continue
		}
		avg1, avg2 := ledger.PreMatchAverages(rm)
		exp1 := elo.GetExpectedScore(avg1, avg2)
		winnerExp := exp1
		if rm.Outcome() == 2 {
			winnerExp = 1 - exp1
		}
		for typ, score := range Classify(winnerExp, rm.Margin(), avg1, avg2, rm.ScoreType != club.ScoreTypePoints) {
			all = append(all, scored{
				candidate: candidate{typ: typ, score: score, seq: len(all)},
				match:     rm,
				exp:       winnerExp,
				avg1:      avg1,
				avg2:      avg2,
			})
		}
	}

	best := slices.MinFunc(all, func(a, b scored) int {
		return compareCandidates(a.candidate, b.candidate)
	})
	return describe(best.match, best.typ, best.score, best.exp, best.avg1, best.avg2, latest, ledger)
}

// compareCandidates puts higher priority first, then higher score, then earlier matches.
func compareCandidates(a, b candidate) int {
	if c := cmp.Compare(priority[b.typ], priority[a.typ]); c != 0 {
		return c
	}
	if c := cmp.Compare(b.score, a.score); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

func describe(rm club.ResolvedMatch, typ Type, score, winnerExp, avg1, avg2 float64, day string, ledger *elo.Result) *MatchHighlight {
	winners, losers := rm.Team1IDs, rm.Team2IDs
	if rm.Outcome() == 2 {
		winners, losers = losers, winners
	}
	s1, s2 := rm.Scores()
	hi, lo := max(s1, s2), min(s1, s2)
	w, l := names(ledger, winners), names(ledger, losers)

	h := &MatchHighlight{
		MatchID:        rm.ID,
		Date:           day,
		Type:           typ,
		Score:          score,
		WinnerExpected: winnerExp,
		Team1Average:   avg1,
		Team2Average:   avg2,
		Margin:         rm.Margin(),
		Winners:        winners,
		Losers:         losers,
	}
	switch typ {
	case TypeUpset:
		h.Title = "Upset of the day"
		h.Description = fmt.Sprintf("%s beat %s %d-%d with only a %.0f%% chance to win", w, l, hi, lo, winnerExp*100)
	case TypeThriller:
		h.Title = "Thriller"
		h.Description = fmt.Sprintf("%s edged %s %d-%d", w, l, hi, lo)
	case TypeCrush:
		h.Title = "Crushing win"
		h.Description = fmt.Sprintf("%s dominated %s %d-%d", w, l, hi, lo)
	default:
		h.Title = "Clash of titans"
		h.Description = fmt.Sprintf("%s beat %s %d-%d in a match averaging %.0f rating", w, l, hi, lo, (avg1+avg2)/2)
	}
	return h
}

func names(ledger *elo.Result, ids []string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if p, ok := ledger.Player(id); ok && p.Name != "" {
			out = append(out, p.Name)
		} else {
			out = append(out, id)
		}
	}
	return strings.Join(out, " & ")
}

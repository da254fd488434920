// Package badges derives achievement state from the rated match history.
package badges

import (
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/elo"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
)

// Time-of-day and window boundaries.
const (
	NightOwlHour    = 21
	EarlyBirdHour   = 9
	RecentWindow    = 30 * 24 * time.Hour
	MarathonSets    = 6
	QuickWinMaxSets = 3
)

// Input is everything the stats pass reads.
type Input struct {
	Ledger            *elo.Result
	TournamentResults []club.TournamentResult
	Now               time.Time
	Location          *time.Location
}

// TournamentStats counts one format's tournament placements.
type TournamentStats struct {
	Played  int `json:"played"`
	Wins    int `json:"wins"`
	Podiums int `json:"podiums"`
}

// PlayerBadgeStats aggregates everything badges are computed from for one player.
type PlayerBadgeStats struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	// Deactivated players keep their stats but never hold a unique badge.
	IsDeleted bool   `json:"is_deleted"`

	Matches int `json:"matches"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`

	CurrentWinStreak  int `json:"current_win_streak"`
	BestWinStreak     int `json:"best_win_streak"`
	CurrentLossStreak int `json:"current_loss_streak"`
	BestLossStreak    int `json:"best_loss_streak"`

	UpsetWins         int    `json:"upset_wins"`
	FirstUpsetMatchID string `json:"first_upset_match_id,omitempty"`
	BiggestUpset      int    `json:"biggest_upset"`
	BiggestUpsetMatch string `json:"biggest_upset_match_id,omitempty"`

	MatchesLast30Days int `json:"matches_last_30_days"`
	MarathonMatches   int `json:"marathon_matches"`
	QuickWins         int `json:"quick_wins"`
	NailbiterWins     int `json:"nailbiter_wins"`
	CleanSheets       int `json:"clean_sheets"`
	NightOwlMatches   int `json:"night_owl_matches"`
	EarlyBirdMatches  int `json:"early_bird_matches"`
	SetsWon           int `json:"sets_won"`
	SetsLost          int `json:"sets_lost"`

	UniquePartners  int `json:"unique_partners"`
	UniqueOpponents int `json:"unique_opponents"`

	Tournaments       map[club.TournamentFormat]*TournamentStats `json:"tournaments"`
	GuestPartnerGames int                                         `json:"guest_partner_games"`

	BiggestEloLoss int `json:"biggest_elo_loss"`
	CurrentElo     int `json:"current_elo"`
	PeakElo        int `json:"peak_elo"`

	partners  map[string]bool
	opponents map[string]bool
}

// WinRate is wins over matches, zero without matches.
func (s *PlayerBadgeStats) WinRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Matches)
}

// TournamentTotals sums placements across formats.
func (s *PlayerBadgeStats) TournamentTotals() TournamentStats {
	var total TournamentStats
	for _, t := range s.Tournaments {
		total.Played += t.Played
		total.Wins += t.Wins
		total.Podiums += t.Podiums
	}
	return total
}

func (s *PlayerBadgeStats) format(f club.TournamentFormat) *TournamentStats {
	if t, ok := s.Tournaments[f]; ok {
		return t
	}
	t := &TournamentStats{}
	s.Tournaments[f] = t
	return t
}

// BuildAllPlayersBadgeStats computes every player's badge stats in one pass over the rated history.
func BuildAllPlayersBadgeStats(in Input) map[string]*PlayerBadgeStats {
	all := make(map[string]*PlayerBadgeStats)
	if in.Ledger == nil {
		return all
	}
	for _, p := range in.Ledger.Players {
		all[p.ID] = &PlayerBadgeStats{
			PlayerID:    p.ID,
			Name:        p.Name,
			IsDeleted:   p.IsDeleted,
			CurrentElo:  p.Elo,
			PeakElo:     p.StartElo,
			Tournaments: make(map[club.TournamentFormat]*TournamentStats),
			partners:    make(map[string]bool),
			opponents:   make(map[string]bool),
		}
	}

	recentFrom := in.Now.Add(-RecentWindow)
	for _, rm := range in.Ledger.Rated {
		s1, s2 := rm.Scores()
		pre1, pre2 := in.Ledger.PreMatchAverages(rm)
		hour := timeutil.LocalHour(rm.CreatedAt, in.Location)
		sets := rm.ScoreType != club.ScoreTypePoints

		sides := []struct {
			own, opp         []string
			ownSets, oppSets int
			oppAvg           float64
			won              bool
			guestsOnOwnSide  int
		}{
			{rm.Team1IDs, rm.Team2IDs, s1, s2, pre2, rm.Outcome() == 1, rm.Team1Guests},
			{rm.Team2IDs, rm.Team1IDs, s2, s1, pre1, rm.Outcome() == 2, rm.Team2Guests},
		}
		for _, side := range sides {
			for _, id := range side.own {
				st := all[id]
				if st == nil {
					continue
				}
				st.Matches++
				delta := in.Ledger.EloDeltaByMatch[rm.ID][id]
				post := in.Ledger.EloRatingByMatch[rm.ID][id]
				pre := post - delta
				st.PeakElo = max(st.PeakElo, post)

				if side.won {
					st.Wins++
					st.CurrentWinStreak++
					st.CurrentLossStreak = 0
					st.BestWinStreak = max(st.BestWinStreak, st.CurrentWinStreak)
					if float64(pre) < side.oppAvg {
						gap := int(side.oppAvg - float64(pre) + 0.5)
						st.UpsetWins++
						if st.FirstUpsetMatchID == "" {
							st.FirstUpsetMatchID = rm.ID
						}
						if gap > st.BiggestUpset {
							st.BiggestUpset = gap
							st.BiggestUpsetMatch = rm.ID
						}
					}
					if side.oppSets == 0 {
						st.CleanSheets++
					}
				} else {
					st.Losses++
					st.CurrentLossStreak++
					st.CurrentWinStreak = 0
					st.BestLossStreak = max(st.BestLossStreak, st.CurrentLossStreak)
				}
				if delta < 0 && -delta > st.BiggestEloLoss {
					st.BiggestEloLoss = -delta
				}

				if sets {
					st.SetsWon += side.ownSets
					st.SetsLost += side.oppSets
					if max(side.ownSets, side.oppSets) >= MarathonSets {
						st.MarathonMatches++
					}
					if side.won && side.ownSets+side.oppSets <= QuickWinMaxSets {
						st.QuickWins++
					}
					if side.won && side.ownSets-side.oppSets == 1 {
						st.NailbiterWins++
					}
				}

				if !rm.CreatedAt.Before(recentFrom) && !rm.CreatedAt.After(in.Now) {
					st.MatchesLast30Days++
				}
				if hour >= NightOwlHour {
					st.NightOwlMatches++
				}
				if hour < EarlyBirdHour {
					st.EarlyBirdMatches++
				}
				if side.guestsOnOwnSide > 0 {
					st.GuestPartnerGames++
				}
				for _, partner := range side.own {
					if partner != id {
						st.partners[partner] = true
					}
				}
				for _, opponent := range side.opp {
					st.opponents[opponent] = true
				}
			}
		}
	}

	for _, r := range in.TournamentResults {
		st := all[r.PlayerID]
		if st == nil {
			continue
		}
		t := st.format(r.Format)
		t.Played++
		if r.Rank == 1 {
			t.Wins++
		}
		if r.Rank >= 1 && r.Rank <= 3 {
			t.Podiums++
		}
	}

	for _, st := range all {
		st.UniquePartners = len(st.partners)
		st.UniqueOpponents = len(st.opponents)
	}
	return all
}

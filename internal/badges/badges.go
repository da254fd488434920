package badges

import (
	"fmt"
	"slices"
)

// Progress is how far a player is toward a badge target.
type Progress struct {
	Current int `json:"current"`
	Target  int `json:"target"`
}

// Badge is a derived unlock record. It is never persisted.
type Badge struct {
	ID          string    `json:"id"`
	Icon        string    `json:"icon"`
	Tier        string    `json:"tier,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Earned      bool      `json:"earned"`
	Progress    *Progress `json:"progress,omitempty"`
	Unique      bool      `json:"unique"`
	HolderID    string    `json:"holder_id,omitempty"`
	HolderValue float64   `json:"holder_value,omitempty"`
}

// PlayerBadges is the badge view of one player.
type PlayerBadges struct {
	EarnedBadges      []Badge `json:"earned_badges"`
	OtherUniqueBadges []Badge `json:"other_unique_badges"`
	LockedBadges      []Badge `json:"locked_badges"`
	TotalBadges       int     `json:"total_badges"`
	TotalEarned       int     `json:"total_earned"`
}

// Holder is the current owner of a unique badge.
type Holder struct {
	PlayerID string
	Value    float64
}

// UniqueHolders finds the holder of every unique badge. The highest value wins and
// equal values go to the lowest player id. Deactivated players are not considered.
// Badges nobody qualifies for are absent.
func UniqueHolders(allStats map[string]*PlayerBadgeStats) map[string]Holder {
	ids := make([]string, 0, len(allStats))
	for id := range allStats {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	holders := make(map[string]Holder, len(uniqueDefinitions))
	for _, def := range uniqueDefinitions {
		for _, id := range ids {
			st := allStats[id]
			if st == nil || st.IsDeleted || st.Matches < def.minMatches {
				continue
			}
			v := def.value(st)
			if v <= 0 {
				continue
			}
			// ids are ascending, so only a strictly greater value takes over.
			if h, ok := holders[def.id]; !ok || v > h.Value {
				holders[def.id] = Holder{PlayerID: id, Value: v}
			}
		}
	}
	return holders
}

// BuildPlayerBadges materializes threshold and unique badges for playerID.
// A nil stats value renders every badge locked at zero progress.
func BuildPlayerBadges(stats *PlayerBadgeStats, allStats map[string]*PlayerBadgeStats, playerID string) PlayerBadges {
	out := PlayerBadges{
		EarnedBadges:      []Badge{},
		OtherUniqueBadges: []Badge{},
		LockedBadges:      []Badge{},
	}
	if stats == nil {
		stats = &PlayerBadgeStats{PlayerID: playerID}
	}

	for _, def := range thresholdDefinitions {
		current := def.value(stats)
		for i, target := range def.thresholds {
			b := Badge{
				ID:          fmt.Sprintf("%s-%d", def.idPrefix, target),
				Icon:        def.icon,
				Tier:        ToRoman(i + 1),
				Title:       def.title,
				Description: def.description(target),
				Earned:      current >= target,
				Progress:    &Progress{Current: current, Target: target},
			}
			out.TotalBadges++
			if b.Earned {
				out.EarnedBadges = append(out.EarnedBadges, b)
			} else {
				out.LockedBadges = append(out.LockedBadges, b)
			}
		}
	}

	holders := UniqueHolders(allStats)
	for _, def := range uniqueDefinitions {
		b := Badge{
			ID:          def.id,
			Icon:        def.icon,
			Title:       def.title,
			Description: def.description,
			Unique:      true,
		}
		out.TotalBadges++
		h, held := holders[def.id]
		switch {
		case held && h.PlayerID == playerID:
			b.Earned = true
			b.HolderID = h.PlayerID
			b.HolderValue = h.Value
			out.EarnedBadges = append(out.EarnedBadges, b)
		case held:
			b.HolderID = h.PlayerID
			b.HolderValue = h.Value
			out.OtherUniqueBadges = append(out.OtherUniqueBadges, b)
		default:
			out.LockedBadges = append(out.LockedBadges, b)
		}
	}

	out.TotalEarned = len(out.EarnedBadges)
	return out
}

// FindBadge returns the badge with id from any of the lists.
func (pb PlayerBadges) FindBadge(id string) (Badge, bool) {
	for _, list := range [][]Badge{pb.EarnedBadges, pb.OtherUniqueBadges, pb.LockedBadges} {
		for _, b := range list {
			if b.ID == id {
				return b, true
			}
		}
	}
	return Badge{}, false
}

package badges

import "fmt"

// thresholdDefinition yields one badge per threshold.
type thresholdDefinition struct {
	idPrefix    string
	icon        string
	title       string
	description func(target int) string
	thresholds  []int
	value       func(*PlayerBadgeStats) int
}

var thresholdDefinitions = []thresholdDefinition{
	{
		idPrefix: "matches", icon: "🎾", title: "Matches played",
		description: func(n int) string { return fmt.Sprintf("Play %d rated matches", n) },
		thresholds:  []int{10, 25, 50, 100, 250},
		value:       func(s *PlayerBadgeStats) int { return s.Matches },
	},
	{
		idPrefix: "wins", icon: "🏆", title: "Winner",
		description: func(n int) string { return fmt.Sprintf("Win %d matches", n) },
		thresholds:  []int{5, 10, 25, 50, 100},
		value:       func(s *PlayerBadgeStats) int { return s.Wins },
	},
	{
		idPrefix: "win-streak", icon: "🔥", title: "On fire",
		description: func(n int) string { return fmt.Sprintf("Win %d matches in a row", n) },
		thresholds:  []int{3, 5, 8, 12},
		value:       func(s *PlayerBadgeStats) int { return s.BestWinStreak },
	},
	{
		idPrefix: "elo", icon: "📈", title: "Rating climber",
		description: func(n int) string { return fmt.Sprintf("Reach a rating of %d", n) },
		thresholds:  []int{1100, 1200, 1300, 1400},
		value:       func(s *PlayerBadgeStats) int { return s.PeakElo },
	},
	{
		idPrefix: "upsets", icon: "⚡", title: "Underdog",
		description: func(n int) string { return fmt.Sprintf("Beat higher-rated opponents %d times", n) },
		thresholds:  []int{1, 5, 10},
		value:       func(s *PlayerBadgeStats) int { return s.UpsetWins },
	},
	{
		idPrefix: "partners", icon: "🤝", title: "Team player",
		description: func(n int) string { return fmt.Sprintf("Play alongside %d different partners", n) },
		thresholds:  []int{3, 5, 10, 15},
		value:       func(s *PlayerBadgeStats) int { return s.UniquePartners },
	},
	{
		idPrefix: "opponents", icon: "🌍", title: "Well travelled",
		description: func(n int) string { return fmt.Sprintf("Face %d different opponents", n) },
		thresholds:  []int{5, 10, 20},
		value:       func(s *PlayerBadgeStats) int { return s.UniqueOpponents },
	},
	{
		idPrefix: "marathon", icon: "⏳", title: "Marathon",
		description: func(n int) string { return fmt.Sprintf("Play %d matches where a side took %d sets", n, MarathonSets) },
		thresholds:  []int{1, 5, 10},
		value:       func(s *PlayerBadgeStats) int { return s.MarathonMatches },
	},
	{
		idPrefix: "quick-wins", icon: "⏱️", title: "Quick finish",
		description: func(n int) string { return fmt.Sprintf("Win %d matches in at most %d sets", n, QuickWinMaxSets) },
		thresholds:  []int{5, 15, 30},
		value:       func(s *PlayerBadgeStats) int { return s.QuickWins },
	},
	{
		idPrefix: "clean-sheets", icon: "🧹", title: "Clean sheet",
		description: func(n int) string { return fmt.Sprintf("Win %d matches without dropping a set", n) },
		thresholds:  []int{1, 5, 10},
		value:       func(s *PlayerBadgeStats) int { return s.CleanSheets },
	},
	{
		idPrefix: "nailbiters", icon: "😬", title: "Nerves of steel",
		description: func(n int) string { return fmt.Sprintf("Win %d matches by a single set", n) },
		thresholds:  []int{3, 10, 25},
		value:       func(s *PlayerBadgeStats) int { return s.NailbiterWins },
	},
	{
		idPrefix: "night-owl", icon: "🦉", title: "Night owl",
		description: func(n int) string { return fmt.Sprintf("Play %d matches after %d:00", n, NightOwlHour) },
		thresholds:  []int{5, 20},
		value:       func(s *PlayerBadgeStats) int { return s.NightOwlMatches },
	},
	{
		idPrefix: "early-bird", icon: "🐦", title: "Early bird",
		description: func(n int) string { return fmt.Sprintf("Play %d matches before %d:00", n, EarlyBirdHour) },
		thresholds:  []int{5, 20},
		value:       func(s *PlayerBadgeStats) int { return s.EarlyBirdMatches },
	},
	{
		idPrefix: "sets-won", icon: "🎯", title: "Set collector",
		description: func(n int) string { return fmt.Sprintf("Win %d sets", n) },
		thresholds:  []int{10, 50, 100, 250},
		value:       func(s *PlayerBadgeStats) int { return s.SetsWon },
	},
	{
		idPrefix: "recent", icon: "📅", title: "Regular",
		description: func(n int) string { return fmt.Sprintf("Play %d matches in the last 30 days", n) },
		thresholds:  []int{4, 8, 12},
		value:       func(s *PlayerBadgeStats) int { return s.MatchesLast30Days },
	},
	{
		idPrefix: "tournaments", icon: "🏟️", title: "Tournament regular",
		description: func(n int) string { return fmt.Sprintf("Finish %d tournaments", n) },
		thresholds:  []int{1, 5, 10},
		value:       func(s *PlayerBadgeStats) int { return s.TournamentTotals().Played },
	},
	{
		idPrefix: "podiums", icon: "🥉", title: "Podium finisher",
		description: func(n int) string { return fmt.Sprintf("Finish top three in %d tournaments", n) },
		thresholds:  []int{1, 3, 10},
		value:       func(s *PlayerBadgeStats) int { return s.TournamentTotals().Podiums },
	},
	{
		idPrefix: "guest-games", icon: "👋", title: "Host",
		description: func(n int) string { return fmt.Sprintf("Partner a guest in %d matches", n) },
		thresholds:  []int{1, 5},
		value:       func(s *PlayerBadgeStats) int { return s.GuestPartnerGames },
	},
}

// uniqueDefinition is a badge with a single holder across the club.
type uniqueDefinition struct {
	id          string
	icon        string
	title       string
	description string
	minMatches  int
	value       func(*PlayerBadgeStats) float64
}

// WinMachineMinMatches is the minimum sample for the win-rate leader.
const WinMachineMinMatches = 20

var uniqueDefinitions = []uniqueDefinition{
	{id: "king-of-elo", icon: "👑", title: "King of Elo", description: "Highest current rating", minMatches: 1,
		value: func(s *PlayerBadgeStats) float64 { return float64(s.CurrentElo) }},
	{id: "most-active", icon: "🏃", title: "Most active", description: "Most rated matches",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.Matches) }},
	{id: "win-machine", icon: "🤖", title: "Win machine", description: "Best win rate over at least 20 matches", minMatches: WinMachineMinMatches,
		value: func(s *PlayerBadgeStats) float64 { return s.WinRate() * 100 }},
	{id: "streak-king", icon: "🔥", title: "Streak king", description: "Longest winning streak",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.BestWinStreak) }},
	{id: "giant-slayer", icon: "🗡️", title: "Giant slayer", description: "Biggest rating gap overcome in a win",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.BiggestUpset) }},
	{id: "marathon-master", icon: "⏳", title: "Marathon master", description: "Most marathon matches",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.MarathonMatches) }},
	{id: "social-butterfly", icon: "🦋", title: "Social butterfly", description: "Most different partners",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.UniquePartners) }},
	{id: "set-collector", icon: "🎯", title: "Set collector", description: "Most sets won",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.SetsWon) }},
	{id: "night-owl", icon: "🦉", title: "Night owl", description: "Most late-evening matches",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.NightOwlMatches) }},
	{id: "early-bird", icon: "🐦", title: "Early bird", description: "Most morning matches",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.EarlyBirdMatches) }},
	{id: "clean-sheet", icon: "🧹", title: "Clean sheet", description: "Most wins without dropping a set",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.CleanSheets) }},
	{id: "nailbiter", icon: "😬", title: "Nailbiter", description: "Most one-set wins",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.NailbiterWins) }},
	{id: "tournament-champion", icon: "🥇", title: "Tournament champion", description: "Most tournament wins",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.TournamentTotals().Wins) }},
	{id: "monthly-grinder", icon: "📅", title: "Monthly grinder", description: "Most matches in the last 30 days",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.MatchesLast30Days) }},
	{id: "guest-host", icon: "👋", title: "Guest host", description: "Most matches partnering a guest",
		value: func(s *PlayerBadgeStats) float64 { return float64(s.GuestPartnerGames) }},
}

// Package achievements holds the achievement catalog and the predicate
// checks that decide when a player has earned one.
package achievements

import "github.com/trixieverse/coach-backend/internal/store"

type Definition struct {
	Type        string
	Title       string
	Description string
	Rarity      string // common | rare | epic | legendary
	Icon        string
	Earned      func(store.PlayerStats) bool
}

var Catalog = []Definition{
	{
		Type:        "first_win",
		Title:       "First Victory",
		Description: "Win your first match",
		Rarity:      "common",
		Icon:        "/achievements/first-win.png",
		Earned:      func(s store.PlayerStats) bool { return s.Wins >= 1 },
	},
	{
		Type:        "win_streak_3",
		Title:       "3-Win Streak",
		Description: "Win 3 matches in a row",
		Rarity:      "common",
		Icon:        "/achievements/win-streak-3.png",
		Earned:      func(s store.PlayerStats) bool { return s.CurrentStreak >= 3 },
	},
	{
		Type:        "win_streak_5",
		Title:       "On Fire",
		Description: "Win 5 matches in a row",
		Rarity:      "rare",
		Icon:        "/achievements/win-streak-5.png",
		Earned:      func(s store.PlayerStats) bool { return s.CurrentStreak >= 5 },
	},
	{
		Type:        "win_streak_10",
		Title:       "Unstoppable",
		Description: "Win 10 matches in a row",
		Rarity:      "epic",
		Icon:        "/achievements/win-streak-10.png",
		Earned:      func(s store.PlayerStats) bool { return s.CurrentStreak >= 10 },
	},
	{
		Type:        "perfect_kda",
		Title:       "Flawless",
		Description: "Finish a match with kills and no deaths",
		Rarity:      "rare",
		Icon:        "/achievements/perfect-kda.png",
		Earned: func(s store.PlayerStats) bool {
			return s.LastMatchDeaths == 0 && s.LastMatchKills > 0
		},
	},
	{
		Type:        "total_wins_10",
		Title:       "Rookie",
		Description: "Reach 10 total wins",
		Rarity:      "common",
		Icon:        "/achievements/10-wins.png",
		Earned:      func(s store.PlayerStats) bool { return s.Wins >= 10 },
	},
	{
		Type:        "total_wins_50",
		Title:       "Veteran",
		Description: "Reach 50 total wins",
		Rarity:      "rare",
		Icon:        "/achievements/50-wins.png",
		Earned:      func(s store.PlayerStats) bool { return s.Wins >= 50 },
	},
	{
		Type:        "total_wins_100",
		Title:       "Legend",
		Description: "Reach 100 total wins",
		Rarity:      "epic",
		Icon:        "/achievements/100-wins.png",
		Earned:      func(s store.PlayerStats) bool { return s.Wins >= 100 },
	},
	{
		Type:        "high_win_rate",
		Title:       "Consistent Winner",
		Description: "Maintain a 60% win rate over 20 matches",
		Rarity:      "epic",
		Icon:        "/achievements/high-win-rate.png",
		Earned: func(s store.PlayerStats) bool {
			return s.WinRate >= 60 && s.MatchesPlayed >= 20
		},
	},
}

// Earned returns every catalog entry whose condition holds for stats.
// Whether an entry is a *new* unlock is the store's call, not ours.
func Earned(stats store.PlayerStats) []Definition {
	var out []Definition
	for _, def := range Catalog {
		if def.Earned(stats) {
			out = append(out, def)
		}
	}
	return out
}

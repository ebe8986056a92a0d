package store

import "sort"

// PlayerStats is the app-side roll-up of a player's match rows.
type PlayerStats struct {
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"` // percent
	AvgKDA        float64 `json:"avg_kda"`
	AvgScore      float64 `json:"avg_performance"`
	CurrentStreak int     `json:"current_streak"`

	// From the most recent match, for achievement checks.
	LastMatchKills  int `json:"last_match_kills"`
	LastMatchDeaths int `json:"last_match_deaths"`
}

// Aggregate rolls up match rows, most recent first. Pure so the roll-up
// logic is testable without a database.
func Aggregate(matches []Match) PlayerStats {
	var st PlayerStats
	st.MatchesPlayed = len(matches)
	if len(matches) == 0 {
		return st
	}

	var kdaSum, scoreSum float64
	for _, m := range matches {
		switch m.Result {
		case "win":
			st.Wins++
		case "loss":
			st.Losses++
		}
		kdaSum += kda(m.Kills, m.Deaths, m.Assists)
		scoreSum += float64(m.PerformanceScore)
	}

	decided := st.Wins + st.Losses
	if decided > 0 {
		st.WinRate = float64(st.Wins) / float64(decided) * 100
	}
	st.AvgKDA = kdaSum / float64(len(matches))
	st.AvgScore = scoreSum / float64(len(matches))
	st.CurrentStreak = WinStreak(matches)
	st.LastMatchKills = matches[0].Kills
	st.LastMatchDeaths = matches[0].Deaths
	return st
}

// WinStreak counts consecutive wins from the most recent match backwards,
// stopping at the first match that was not a win.
func WinStreak(matches []Match) int {
	streak := 0
	for _, m := range matches {
		if m.Result != "win" {
			break
		}
		streak++
	}
	return streak
}

// kda uses max(deaths, 1) so a deathless game doesn't divide by zero.
func kda(kills, deaths, assists int) float64 {
	d := deaths
	if d < 1 {
		d = 1
	}
	return float64(kills+assists) / float64(d)
}

// RankUsers groups match rows by user and orders them by average
// performance score, highest first.
func RankUsers(matches []Match, limit int) []LeaderboardEntry {
	byUser := make(map[string][]Match)
	for _, m := range matches {
		byUser[m.UserID] = append(byUser[m.UserID], m)
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for userID, ms := range byUser {
		st := Aggregate(ms)
		entries = append(entries, LeaderboardEntry{
			UserID:        userID,
			MatchesPlayed: st.MatchesPlayed,
			WinRate:       st.WinRate,
			AvgScore:      st.AvgScore,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgScore != entries[j].AvgScore {
			return entries[i].AvgScore > entries[j].AvgScore
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

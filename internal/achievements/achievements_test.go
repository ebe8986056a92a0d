package achievements

import (
	"testing"

	"github.com/trixieverse/coach-backend/internal/store"
)

func earnedTypes(stats store.PlayerStats) map[string]bool {
	out := map[string]bool{}
	for _, def := range Earned(stats) {
		out[def.Type] = true
	}
	return out
}

func TestNoAchievementsForWinlessPlayer(t *testing.T) {
	got := Earned(store.PlayerStats{MatchesPlayed: 5, Losses: 5})
	if len(got) != 0 {
		t.Fatalf("winless player should earn nothing, got %d", len(got))
	}
}

func TestFirstWin(t *testing.T) {
	got := earnedTypes(store.PlayerStats{MatchesPlayed: 1, Wins: 1, LastMatchDeaths: 3})
	if !got["first_win"] {
		t.Fatalf("expected first_win, got %v", got)
	}
	if got["win_streak_3"] || got["total_wins_10"] {
		t.Fatalf("single win should not unlock streak or milestone badges: %v", got)
	}
}

func TestStreakBadgesStack(t *testing.T) {
	got := earnedTypes(store.PlayerStats{
		MatchesPlayed: 6, Wins: 5, CurrentStreak: 5, LastMatchDeaths: 1,
	})
	if !got["win_streak_3"] || !got["win_streak_5"] {
		t.Fatalf("streak of 5 should earn both streak badges: %v", got)
	}
	if got["win_streak_10"] {
		t.Fatalf("streak of 5 should not earn win_streak_10")
	}
}

func TestFlawlessNeedsAKill(t *testing.T) {
	// no deaths but also no kills: an AFK game is not flawless
	got := earnedTypes(store.PlayerStats{MatchesPlayed: 1, Wins: 1})
	if got["perfect_kda"] {
		t.Fatalf("zero-kill game should not earn perfect_kda")
	}

	got = earnedTypes(store.PlayerStats{
		MatchesPlayed: 1, Wins: 1, LastMatchKills: 4, LastMatchDeaths: 0,
	})
	if !got["perfect_kda"] {
		t.Fatalf("deathless game with kills should earn perfect_kda")
	}
}

func TestHighWinRateNeedsSampleSize(t *testing.T) {
	got := earnedTypes(store.PlayerStats{MatchesPlayed: 10, Wins: 9, WinRate: 90, LastMatchDeaths: 2})
	if got["high_win_rate"] {
		t.Fatalf("10 matches is below the 20-match floor")
	}

	got = earnedTypes(store.PlayerStats{MatchesPlayed: 25, Wins: 16, WinRate: 64, LastMatchDeaths: 2})
	if !got["high_win_rate"] {
		t.Fatalf("64%% over 25 matches should qualify")
	}
}

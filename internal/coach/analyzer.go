package coach

import "github.com/trixieverse/coach-backend/internal/session"

// Score weights and tier boundaries. The boundaries are lower-inclusive:
// 82 is top tier, 80 is top tier, 79 is not.
const (
	baselineScore   = 50
	killWeight      = 5
	deathWeight     = 3
	objectiveWeight = 10

	tierTop     = 80
	tierStrong  = 60
	tierNeutral = 40
)

const (
	reactionTop       = "THAT WAS INSANE! You absolutely dominated! 🏆"
	reactionStrong    = "Great performance! You're improving! 💪"
	reactionNeutral   = "Good effort! Let's analyze what we can improve."
	reactionEncourage = "Don't worry, every match teaches us something!"
)

// MatchContext is the externally supplied match summary (from the client's
// match:end payload or a summary provider). The zero value is a valid
// "nothing known" context.
type MatchContext struct {
	Result          string `json:"result,omitempty"` // "win" | "loss"
	ChampionName    string `json:"champion_name,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// Analysis is the terminal summary of one match session.
type Analysis struct {
	PerformanceScore int    `json:"performance_score"`
	Kills            int    `json:"kills"`
	Deaths           int    `json:"deaths"`
	Assists          int    `json:"assists"`
	Objectives       int    `json:"objectives"`
	Result           string `json:"result,omitempty"`
	ChampionName     string `json:"champion_name,omitempty"`
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	CoachReaction    string `json:"coach_reaction"`
}

// Analyze reduces a session's event log plus external match context into an
// Analysis. It never fails: a nil session or empty log scores the baseline
// 50 with the neutral reaction, and a missing context just leaves the
// result fields empty.
func Analyze(s *session.MatchSession, mc MatchContext) Analysis {
	var kills, deaths, assists, objectives int
	if s != nil {
		for _, e := range s.Events {
			switch e.Kind {
			case session.KindKill:
				kills++
			case session.KindDeath:
				deaths++
			case session.KindAssist:
				assists++
			case session.KindObjective:
				objectives++
			}
		}
	}

	score := baselineScore + kills*killWeight - deaths*deathWeight + objectives*objectiveWeight
	score = clamp(score, 0, 100)

	return Analysis{
		PerformanceScore: score,
		Kills:            kills,
		Deaths:           deaths,
		Assists:          assists,
		Objectives:       objectives,
		Result:           mc.Result,
		ChampionName:     mc.ChampionName,
		DurationSeconds:  mc.DurationSeconds,
		CoachReaction:    reactionForScore(score),
	}
}

func reactionForScore(score int) string {
	switch {
	case score >= tierTop:
		return reactionTop
	case score >= tierStrong:
		return reactionStrong
	case score >= tierNeutral:
		return reactionNeutral
	default:
		return reactionEncourage
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

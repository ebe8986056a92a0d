package coach

import "github.com/trixieverse/coach-backend/internal/session"

// Greeting is sent when match tracking starts.
const Greeting = "Good luck out there! Let's get this win! 💪"

var eventReactions = map[session.EventKind]string{
	session.KindKill:      "NICE KILL! 🔥",
	session.KindDeath:     "Stay focused, we'll bounce back!",
	session.KindAssist:    "Great teamwork!",
	session.KindObjective: "Excellent objective focus!",
	session.KindGank:      "Watch out for ganks!",
	session.KindTeamfight: "Let's go! Team fight!",
}

const fallbackReaction = "Keep it up!"

// ReactionFor picks the instant coach line for an in-game event. Reactions
// have to go out the same tick the event arrives, so this is a static
// table; anything that actually weighs the session happens at match end.
func ReactionFor(kind session.EventKind) string {
	if r, ok := eventReactions[kind]; ok {
		return r
	}
	return fallbackReaction
}

package types

import (
	"encoding/json"

	"github.com/trixieverse/coach-backend/internal/coach"
)

// Client -> server signals.
const (
	SigAuthenticate = "authenticate"
	SigMatchStart   = "match:start"
	SigMatchEvent   = "match:event"
	SigMatchEnd     = "match:end"
)

// Server -> client message types.
const (
	MsgAuthenticated = "authenticated"
	MsgCoach         = "coach:message"
	MsgNotification  = "notification"
	MsgError         = "error"
)

// Coach message kinds (the Kind field on MsgCoach payloads).
const (
	CoachMatchStart = "match_start"
	CoachMatchEvent = "match_event"
	CoachMatchEnd   = "match_end"
)

type ClientMessage struct {
	Type            string              `json:"type"`
	UserID          string              `json:"user_id,omitempty"`
	PlayerAccountID string              `json:"player_account_id,omitempty"`
	EventType       string              `json:"event_type,omitempty"`
	EventData       json.RawMessage     `json:"event_data,omitempty"`
	MatchData       *coach.MatchContext `json:"match_data,omitempty"`
}

type ServerMessage struct {
	Type      string          `json:"type"`
	Success   bool            `json:"success,omitempty"`
	Kind      string          `json:"kind,omitempty"`
	EventType string          `json:"event_type,omitempty"`
	Message   string          `json:"message,omitempty"`
	Analysis  *coach.Analysis `json:"analysis,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Error     string          `json:"error,omitempty"`
}

package session

import (
	"encoding/json"
	"time"
)

// EventKind is the type tag on a recorded in-game event. The wire sends
// these as plain strings, so unknown kinds pass through untouched and get
// the fallback treatment downstream.
type EventKind string

const (
	KindKill      EventKind = "kill"
	KindDeath     EventKind = "death"
	KindAssist    EventKind = "assist"
	KindObjective EventKind = "objective"
	KindGank      EventKind = "gank"
	KindTeamfight EventKind = "teamfight"
)

// EventRecord is one immutable entry in a session's event log.
type EventRecord struct {
	Kind      EventKind
	Timestamp time.Time
	Payload   json.RawMessage
}

// MatchSession is the per-user state for one in-progress match.
type MatchSession struct {
	UserID          string
	PlayerAccountID string
	StartedAt       time.Time
	LastActivity    time.Time
	Events          []EventRecord
}

// Tracker owns the userID -> session map. It does no locking: the hub
// goroutine is the only caller (same ownership model as the connection
// registry).
type Tracker struct {
	sessions map[string]*MatchSession
	now      func() time.Time // swappable for tests
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]*MatchSession),
		now:      time.Now,
	}
}

// Start creates a fresh session for userID. An existing session for the
// same user is discarded outright, not merged. A second match:start means
// the client thinks a new match began, so we believe it.
func (t *Tracker) Start(userID, playerAccountID string) {
	now := t.now()
	t.sessions[userID] = &MatchSession{
		UserID:          userID,
		PlayerAccountID: playerAccountID,
		StartedAt:       now,
		LastActivity:    now,
		Events:          []EventRecord{},
	}
}

// Record appends an event to userID's session. Returns false when there is
// no active session; the event is dropped and no session is created.
func (t *Tracker) Record(userID string, kind EventKind, payload json.RawMessage) bool {
	s := t.sessions[userID]
	if s == nil {
		return false
	}
	now := t.now()
	s.LastActivity = now
	s.Events = append(s.Events, EventRecord{
		Kind:      kind,
		Timestamp: now,
		Payload:   payload,
	})
	return true
}

// End removes and returns userID's session, or nil if none exists.
func (t *Tracker) End(userID string) *MatchSession {
	s := t.sessions[userID]
	if s == nil {
		return nil
	}
	delete(t.sessions, userID)
	return s
}

func (t *Tracker) Has(userID string) bool {
	return t.sessions[userID] != nil
}

func (t *Tracker) Len() int { return len(t.sessions) }

// Sweep discards sessions with no activity for more than ttl and reports
// how many were removed. Activity, not age: a long match still streaming
// events must never be swept mid-game. Abandoned sessions otherwise live
// forever, since a disconnect does not end the match (the client may
// reconnect mid-game).
func (t *Tracker) Sweep(ttl time.Duration) int {
	cutoff := t.now().Add(-ttl)
	removed := 0
	for id, s := range t.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(t.sessions, id)
			removed++
		}
	}
	return removed
}

package session

import (
	"testing"
	"time"
)

func TestStartOverwritesExistingSession(t *testing.T) {
	tr := NewTracker()

	tr.Start("u1", "acc1")
	tr.Record("u1", KindKill, nil)
	tr.Record("u1", KindKill, nil)

	// second start discards the first session entirely
	tr.Start("u1", "acc2")

	s := tr.End("u1")
	if s == nil {
		t.Fatalf("expected a session after restart")
	}
	if len(s.Events) != 0 {
		t.Fatalf("restart should reset the event log, got %d events", len(s.Events))
	}
	if s.PlayerAccountID != "acc2" {
		t.Fatalf("expected new account ref acc2, got %q", s.PlayerAccountID)
	}
}

func TestRecordWithoutSessionIsNoOp(t *testing.T) {
	tr := NewTracker()

	if ok := tr.Record("ghost", KindDeath, nil); ok {
		t.Fatalf("record without a session should report false")
	}
	if tr.Has("ghost") {
		t.Fatalf("record must not create a session")
	}
	if tr.Len() != 0 {
		t.Fatalf("expected empty tracker, got %d sessions", tr.Len())
	}
}

func TestEndWithoutSessionReturnsNil(t *testing.T) {
	tr := NewTracker()
	if s := tr.End("nobody"); s != nil {
		t.Fatalf("expected nil, got %+v", s)
	}
}

func TestRecordAppendsInOrder(t *testing.T) {
	tr := NewTracker()
	tr.Start("u1", "acc1")

	kinds := []EventKind{KindKill, KindDeath, KindAssist, KindObjective}
	for _, k := range kinds {
		if ok := tr.Record("u1", k, nil); !ok {
			t.Fatalf("record %s failed", k)
		}
	}

	s := tr.End("u1")
	if len(s.Events) != len(kinds) {
		t.Fatalf("want %d events, got %d", len(kinds), len(s.Events))
	}
	for i, k := range kinds {
		if s.Events[i].Kind != k {
			t.Fatalf("event %d: want %s, got %s", i, k, s.Events[i].Kind)
		}
	}
	if tr.Has("u1") {
		t.Fatalf("end should remove the session")
	}
}

func TestSweepRemovesOnlyExpiredSessions(t *testing.T) {
	tr := NewTracker()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	tr.Start("old", "acc1")
	clock = clock.Add(2 * time.Hour)
	tr.Start("fresh", "acc2")

	removed := tr.Sweep(time.Hour)
	if removed != 1 {
		t.Fatalf("want 1 removed, got %d", removed)
	}
	if tr.Has("old") {
		t.Fatalf("expired session should be gone")
	}
	if !tr.Has("fresh") {
		t.Fatalf("fresh session should survive the sweep")
	}
}

func TestSweepSparesActivelyPlayedSession(t *testing.T) {
	tr := NewTracker()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	tr.Start("u1", "acc1")

	// a long match: events keep trickling in well past the TTL from start
	for i := 0; i < 3; i++ {
		clock = clock.Add(50 * time.Minute)
		if ok := tr.Record("u1", KindKill, nil); !ok {
			t.Fatalf("record %d failed", i)
		}
		if removed := tr.Sweep(time.Hour); removed != 0 {
			t.Fatalf("session with recent activity must not be swept (step %d)", i)
		}
	}

	// once the events stop, the idle clock runs out
	clock = clock.Add(2 * time.Hour)
	if removed := tr.Sweep(time.Hour); removed != 1 {
		t.Fatalf("idle session should be swept, removed=%d", removed)
	}
	if tr.Has("u1") {
		t.Fatalf("idle session still present after sweep")
	}
}

package dispatch

import (
	"testing"

	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/registry"
	"github.com/trixieverse/coach-backend/internal/types"
)

func TestSendToOfflineUserReturnsFalse(t *testing.T) {
	reg := registry.New()
	d := New(reg, zap.NewNop())

	if d.SendToUser("nobody", types.ServerMessage{Type: types.MsgNotification}) {
		t.Fatalf("send to offline user should return false")
	}
}

func TestSendToUserDelivers(t *testing.T) {
	reg := registry.New()
	d := New(reg, zap.NewNop())

	out := make(chan types.ServerMessage, 1)
	reg.Register("u1", registry.Client{ConnID: "c1", Outbox: out})

	if !d.SendToUser("u1", types.ServerMessage{Type: types.MsgCoach, Message: "hi"}) {
		t.Fatalf("send to online user should succeed")
	}
	got := <-out
	if got.Message != "hi" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestSendToUserFullOutboxReturnsFalse(t *testing.T) {
	reg := registry.New()
	d := New(reg, zap.NewNop())

	// unbuffered with no reader: the non-blocking send must fail
	out := make(chan types.ServerMessage)
	reg.Register("u1", registry.Client{ConnID: "c1", Outbox: out})

	if d.SendToUser("u1", types.ServerMessage{Type: types.MsgCoach}) {
		t.Fatalf("send into a full outbox should report false")
	}
}

func TestBroadcastSurvivesFailingConnection(t *testing.T) {
	reg := registry.New()
	d := New(reg, zap.NewNop())

	good1 := make(chan types.ServerMessage, 1)
	good2 := make(chan types.ServerMessage, 1)
	stuck := make(chan types.ServerMessage) // never drained

	reg.Register("u1", registry.Client{ConnID: "c1", Outbox: good1})
	reg.Register("u2", registry.Client{ConnID: "c2", Outbox: stuck})
	reg.Register("u3", registry.Client{ConnID: "c3", Outbox: good2})

	d.Broadcast(types.ServerMessage{Type: types.MsgNotification, Message: "maintenance"})

	for i, ch := range []chan types.ServerMessage{good1, good2} {
		select {
		case msg := <-ch:
			if msg.Message != "maintenance" {
				t.Fatalf("client %d got wrong message: %+v", i, msg)
			}
		default:
			t.Fatalf("client %d did not receive the broadcast", i)
		}
	}
}

func TestBroadcastSurvivesClosedOutbox(t *testing.T) {
	reg := registry.New()
	d := New(reg, zap.NewNop())

	closed := make(chan types.ServerMessage, 1)
	close(closed)
	live := make(chan types.ServerMessage, 1)

	reg.Register("u1", registry.Client{ConnID: "c1", Outbox: closed})
	reg.Register("u2", registry.Client{ConnID: "c2", Outbox: live})

	d.Broadcast(types.ServerMessage{Type: types.MsgNotification})

	select {
	case <-live:
	default:
		t.Fatalf("live client should still receive the broadcast")
	}
}

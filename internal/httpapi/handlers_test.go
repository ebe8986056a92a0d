package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/hub"
	"github.com/trixieverse/coach-backend/internal/types"
	"github.com/trixieverse/coach-backend/internal/ws"
)

func newTestServer(t *testing.T) (*httptest.Server, *hub.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := hub.New(ctx, hub.Options{})
	srv := httptest.NewServer(SetupRoutes(h, nil, ws.Config{}, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, h
}

func connect(t *testing.T, h *hub.Hub, userID, connID string) chan types.ServerMessage {
	t.Helper()
	out := make(chan types.ServerMessage, 16)
	h.Inbox() <- hub.Authenticate{UserID: userID, ConnID: connID, Outbox: out}
	select {
	case <-out: // authenticated ack
	case <-time.After(time.Second):
		t.Fatalf("no authenticated ack")
	}
	return out
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOnlineCount(t *testing.T) {
	srv, h := newTestServer(t)
	connect(t, h, "p1", "c1")
	connect(t, h, "p2", "c2")

	resp, err := http.Get(srv.URL + "/online")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	require.NoError(t, decode(resp, &body))
	assert.Equal(t, 2, body["online"])
	assert.Equal(t, 0, body["active_sessions"])
}

func TestOnlineStatus(t *testing.T) {
	srv, h := newTestServer(t)
	connect(t, h, "p1", "c1")

	resp, err := http.Get(srv.URL + "/online/p1")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, decode(resp, &body))
	assert.Equal(t, true, body["online"])

	resp, err = http.Get(srv.URL + "/online/ghost")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, decode(resp, &body))
	assert.Equal(t, false, body["online"])
}

func TestNotifyOfflineUserReturns404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/notifications", "application/json",
		strings.NewReader(`{"user_id":"ghost","payload":{"msg":"hi"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotifyOnlineUser(t *testing.T) {
	srv, h := newTestServer(t)
	out := connect(t, h, "p1", "c1")

	resp, err := http.Post(srv.URL+"/notifications", "application/json",
		strings.NewReader(`{"user_id":"p1","payload":{"msg":"gg"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case msg := <-out:
		assert.Equal(t, types.MsgNotification, msg.Type)
	case <-time.After(time.Second):
		t.Fatalf("notification never reached the connection")
	}
}

func TestNotifyRejectsBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/notifications", "application/json",
		strings.NewReader(`{"payload":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsRoutesWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/players/p1/stats", "/players/p1/achievements", "/leaderboard"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, path)
	}
}

func decode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

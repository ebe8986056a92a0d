package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/hub"
	"github.com/trixieverse/coach-backend/internal/metrics"
	"github.com/trixieverse/coach-backend/internal/session"
	"github.com/trixieverse/coach-backend/internal/types"
)

const (
	writeTimeout = 3 * time.Second
	// Long read deadline: a player sitting in the lobby between matches
	// can legitimately go quiet for a while.
	readTimeout = 10 * time.Minute

	outboxSize = 16
)

type Config struct {
	// OriginPatterns for the websocket accept check, e.g. the web client's
	// host. Empty means same-origin only.
	OriginPatterns []string
}

func Handler(h *hub.Hub, cfg Config, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: cfg.OriginPatterns,
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := uuid.NewString()
		out := make(chan types.ServerMessage, outboxSize)
		metrics.ConnectionsTotal.Inc()
		log.Info("client connected", zap.String("conn_id", connID))

		defer func() { h.Inbox() <- hub.Disconnect{ConnID: connID} }()

		// Writer goroutine drains the outbox the hub delivers into.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case msg := <-out:
					payload, err := json.Marshal(msg)
					if err != nil {
						continue
					}
					ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
					_ = conn.Write(ctx, websocket.MessageText, payload)
					cancel()
				}
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}
			metrics.MessagesReceived.Inc()

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				sendError(out, "bad json")
				continue
			}

			msg, ok := toHubMsg(cm, connID, out)
			if !ok {
				sendError(out, "unknown type")
				continue
			}
			h.Inbox() <- msg
		}
	}
}

func toHubMsg(m types.ClientMessage, connID string, out chan types.ServerMessage) (hub.HubMsg, bool) {
	// Every signal is keyed by user; an empty ID would silently create
	// registry and session entries under "".
	if m.UserID == "" {
		return nil, false
	}
	switch m.Type {
	case types.SigAuthenticate:
		return hub.Authenticate{UserID: m.UserID, ConnID: connID, Outbox: out}, true
	case types.SigMatchStart:
		return hub.MatchStart{UserID: m.UserID, PlayerAccountID: m.PlayerAccountID}, true
	case types.SigMatchEvent:
		return hub.MatchEvent{
			UserID:  m.UserID,
			Kind:    session.EventKind(m.EventType),
			Payload: m.EventData,
		}, true
	case types.SigMatchEnd:
		return hub.MatchEnd{UserID: m.UserID, MatchData: m.MatchData}, true
	default:
		return nil, false
	}
}

func sendError(out chan types.ServerMessage, reason string) {
	select {
	case out <- types.ServerMessage{Type: types.MsgError, Error: reason}:
	default:
	}
}

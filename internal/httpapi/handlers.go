package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/hub"
	"github.com/trixieverse/coach-backend/internal/store"
)

type api struct {
	hub   *hub.Hub
	store *store.Store
	log   *zap.Logger
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (a *api) OnlineCount(w http.ResponseWriter, r *http.Request) {
	reply := make(chan hub.Stats, 1)
	a.hub.Inbox() <- hub.GetStats{Reply: reply}
	st := <-reply

	writeJSON(w, http.StatusOK, map[string]int{
		"online":          st.Online,
		"active_sessions": st.ActiveSessions,
	})
}

func (a *api) OnlineStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	reply := make(chan bool, 1)
	a.hub.Inbox() <- hub.IsOnline{UserID: userID, Reply: reply}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"online":  <-reply,
	})
}

// Notify pushes an ad hoc notification to one user. 404 means the user is
// not connected and the message was dropped, which is the expected answer
// for an offline target, not a server fault.
func (a *api) Notify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string          `json:"user_id"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "user_id and payload required", http.StatusBadRequest)
		return
	}

	delivered := make(chan bool, 1)
	a.hub.Inbox() <- hub.Notify{UserID: req.UserID, Payload: req.Payload, Delivered: delivered}

	if !<-delivered {
		writeJSON(w, http.StatusNotFound, map[string]bool{"delivered": false})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"delivered": true})
}

func (a *api) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Payload) == 0 {
		http.Error(w, "payload required", http.StatusBadRequest)
		return
	}

	a.hub.Inbox() <- hub.BroadcastNotice{Payload: req.Payload}
	w.WriteHeader(http.StatusAccepted)
}

func (a *api) PlayerStats(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "match history not configured", http.StatusServiceUnavailable)
		return
	}
	userID := chi.URLParam(r, "userID")

	stats, err := a.store.PlayerStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNoMatches) {
			http.Error(w, "no matches recorded", http.StatusNotFound)
			return
		}
		a.log.Error("player stats query failed", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (a *api) Achievements(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "match history not configured", http.StatusServiceUnavailable)
		return
	}
	userID := chi.URLParam(r, "userID")

	unlocked, err := a.store.Achievements(r.Context(), userID)
	if err != nil {
		a.log.Error("achievements query failed", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, unlocked)
}

func (a *api) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		http.Error(w, "match history not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := a.store.Leaderboard(r.Context(), limit)
	if err != nil {
		a.log.Error("leaderboard query failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

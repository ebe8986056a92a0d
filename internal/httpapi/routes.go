package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/trixieverse/coach-backend/internal/hub"
	"github.com/trixieverse/coach-backend/internal/metrics"
	"github.com/trixieverse/coach-backend/internal/store"
	"github.com/trixieverse/coach-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, st *store.Store, wsCfg ws.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	api := &api{hub: h, store: st, log: log}

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, wsCfg, log.Named("ws")))
	r.Handle("/metrics", metrics.Handler())

	r.Get("/online", api.OnlineCount)
	r.Get("/online/{userID}", api.OnlineStatus)
	r.Post("/notifications", api.Notify)
	r.Post("/broadcasts", api.Broadcast)

	r.Get("/players/{userID}/stats", api.PlayerStats)
	r.Get("/players/{userID}/achievements", api.Achievements)
	r.Get("/leaderboard", api.Leaderboard)

	return r
}

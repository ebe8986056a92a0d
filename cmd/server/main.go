package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trixieverse/coach-backend/internal/config"
	"github.com/trixieverse/coach-backend/internal/httpapi"
	"github.com/trixieverse/coach-backend/internal/hub"
	"github.com/trixieverse/coach-backend/internal/store"
	"github.com/trixieverse/coach-backend/internal/summary"
	"github.com/trixieverse/coach-backend/internal/ws"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Match history is optional: without a database the realtime layer
	// still runs, analyses just stay ephemeral.
	var st *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		st, err = store.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to open match store", zap.Error(err))
		}
		log.Info("match store connected")
	} else {
		log.Warn("DATABASE_URL not set, running without match history")
	}

	h := hub.New(ctx, hub.Options{
		Log:           log.Named("hub"),
		Store:         st,
		Summary:       summary.NewMockProvider(cfg.SummarySeed),
		SessionTTL:    cfg.SessionTTL,
		SweepInterval: cfg.SweepInterval,
	})

	handler := httpapi.SetupRoutes(h, st, ws.Config{
		OriginPatterns: []string{originPattern(cfg.FrontendURL)},
	}, log)

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		h.Inbox() <- hub.Shutdown{}
		_ = srv.Shutdown(context.Background())
	}()

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", zap.Error(err))
	}
}

// originPattern reduces the configured frontend URL to the host pattern
// the websocket origin check expects.
func originPattern(frontendURL string) string {
	if u, err := url.Parse(frontendURL); err == nil && u.Host != "" {
		return u.Host
	}
	return frontendURL
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string // empty disables persistence
	FrontendURL string // websocket origin allowed for the web client
	LogLevel    string // debug | info | warn | error

	// SessionTTL > 0 enables the abandoned-session sweep.
	SessionTTL    time.Duration
	SweepInterval time.Duration

	SummarySeed int64 // seed for the mock match-summary provider
}

// Load reads .env if present, then the environment. Missing values fall
// back to the same defaults the node backend used.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SessionTTL:    getDuration("SESSION_TTL", 0),
		SweepInterval: getDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		SummarySeed:   getInt64("SUMMARY_SEED", time.Now().UnixNano()),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// Package summary abstracts the external match-summary provider consulted
// at match end. The real deployment would call the op.gg-backed stats API;
// the mock returns demo data in the same shape.
package summary

import (
	"context"
	"math/rand"
	"sync"

	"github.com/trixieverse/coach-backend/internal/coach"
)

// Provider fetches the post-game summary for a player's latest match. A
// failed fetch is not fatal to analysis: the caller falls back to the
// internally recorded event log.
type Provider interface {
	LatestMatch(ctx context.Context, playerAccountID string) (coach.MatchContext, error)
}

var demoChampions = []string{"Ahri", "Lux", "Akali", "Seraphine", "Twisted Fate"}

// MockProvider returns plausible demo summaries, the same role the mock
// op.gg service plays when no API key is configured.
type MockProvider struct {
	mu  sync.Mutex // fetches can overlap across match ends
	rng *rand.Rand
}

func NewMockProvider(seed int64) *MockProvider {
	return &MockProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *MockProvider) LatestMatch(_ context.Context, _ string) (coach.MatchContext, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := "win"
	if p.rng.Intn(100) >= 58 { // demo-account win rate
		result = "loss"
	}
	return coach.MatchContext{
		Result:          result,
		ChampionName:    demoChampions[p.rng.Intn(len(demoChampions))],
		DurationSeconds: 900 + p.rng.Intn(900),
	}, nil
}

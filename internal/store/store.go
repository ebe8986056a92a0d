package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

var ErrNoMatches = errors.New("no matches recorded for player")

// Match is one completed-match row, written after session analysis.
type Match struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           string    `gorm:"index"`
	PlayerAccountID  string    `gorm:"index"`
	Result           string // "win" | "loss" | "" when unknown
	ChampionName     string
	Kills            int
	Deaths           int
	Assists          int
	Objectives       int
	PerformanceScore int
	DurationSeconds  int
	MatchTimestamp   time.Time `gorm:"index"`
	CreatedAt        time.Time
}

// Achievement is one unlocked achievement. The (user, type) pair is unique
// so an achievement can only ever be awarded once.
type Achievement struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          string    `gorm:"uniqueIndex:idx_user_achievement"`
	AchievementType string    `gorm:"uniqueIndex:idx_user_achievement"`
	Title           string
	Description     string
	Rarity          string
	IconURL         string
	UnlockedAt      time.Time
}

// Store persists match history and achievements in Postgres. The realtime
// layer works without one; a nil *Store just means analyses stay ephemeral.
type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&Match{}, &Achievement{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveMatch(ctx context.Context, m *Match) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MatchTimestamp.IsZero() {
		m.MatchTimestamp = time.Now()
	}
	return s.db.WithContext(ctx).Create(m).Error
}

// RecentMatches returns userID's matches, most recent first.
func (s *Store) RecentMatches(ctx context.Context, userID string, limit int) ([]Match, error) {
	var matches []Match
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("match_timestamp DESC").
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// PlayerStats loads userID's match rows and rolls them up in application
// code (win rate, average KDA, current streak). The row counts involved
// are small enough that pulling them up beats pushing the aggregation into
// SQL.
func (s *Store) PlayerStats(ctx context.Context, userID string) (PlayerStats, error) {
	matches, err := s.RecentMatches(ctx, userID, 500)
	if err != nil {
		return PlayerStats{}, err
	}
	if len(matches) == 0 {
		return PlayerStats{}, ErrNoMatches
	}
	return Aggregate(matches), nil
}

// AwardAchievement records an unlock if the user does not already have it.
// Returns true only on first unlock.
func (s *Store) AwardAchievement(ctx context.Context, a *Achievement) (bool, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.UnlockedAt.IsZero() {
		a.UnlockedAt = time.Now()
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) Achievements(ctx context.Context, userID string) ([]Achievement, error) {
	var out []Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&out).Error
	return out, err
}

// LeaderboardEntry is one row of the performance leaderboard.
type LeaderboardEntry struct {
	UserID        string  `json:"user_id"`
	MatchesPlayed int     `json:"matches_played"`
	WinRate       float64 `json:"win_rate"`
	AvgScore      float64 `json:"avg_performance"`
}

// Leaderboard ranks users by average performance score over their recorded
// matches. Grouping happens in application code, same as the per-player
// roll-ups.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var matches []Match
	if err := s.db.WithContext(ctx).Find(&matches).Error; err != nil {
		return nil, err
	}
	return RankUsers(matches, limit), nil
}

package store

import (
	"context"
	"fmt"

	"github.com/lucasmeira/pirata-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresLeaderboard keeps scores in the score_entries table. Increments go
// through an upsert so concurrent guesses from different sessions never lose
// updates.
type PostgresLeaderboard struct {
	db *gorm.DB
}

func NewPostgresLeaderboard(db *gorm.DB) *PostgresLeaderboard {
	return &PostgresLeaderboard{db: db}
}

func (l *PostgresLeaderboard) Reset(ctx context.Context) error {
	err := l.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.ScoreEntry{}).Error
	if err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

func (l *PostgresLeaderboard) Increment(ctx context.Context, sessionID, nickname string, delta int) (int64, error) {
	entry := models.ScoreEntry{
		SessionID: sessionID,
		Nickname:  nickname,
		Score:     int64(delta),
	}

	// The RETURNING clause hands the post-upsert total back in the same
	// statement, so concurrent increments never read a stale score.
	err := l.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "nickname"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score": gorm.Expr("score_entries.score + ?", delta),
			}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "score"}}},
	).Create(&entry).Error
	if err != nil {
		return 0, fmt.Errorf("increment %s:%s: %w", sessionID, nickname, err)
	}
	return entry.Score, nil
}

func (l *PostgresLeaderboard) TopN(ctx context.Context, n int) ([]models.ScoreEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	var entries []models.ScoreEntry
	err := l.db.WithContext(ctx).
		Order("score DESC").
		Limit(n).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("top %d: %w", n, err)
	}
	return entries, nil
}

func (l *PostgresLeaderboard) Ping(ctx context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

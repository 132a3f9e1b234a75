package models

import "time"

// ScoreEntry is one leaderboard row, keyed by (session_id, nickname).
// On the wire only nickname and score are exposed; the rest is storage
// detail for the postgres backend.
type ScoreEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"uniqueIndex:idx_session_nickname" json:"-"`
	Nickname  string    `gorm:"uniqueIndex:idx_session_nickname" json:"nickname"`
	Score     int64     `json:"score"`
	UpdatedAt time.Time `json:"-"`
}

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/lucasmeira/pirata-backend/models"
)

type memoryEntry struct {
	sessionID string
	nickname  string
	score     int64
}

// MemoryLeaderboard is a process-local score store keyed by
// (sessionID, nickname), same as the redis member encoding. Used for local
// development, tests, and as the fallback when the configured backend is
// unreachable at startup. Scores do not survive a restart.
type MemoryLeaderboard struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry // "sessionID:nickname" -> entry
}

func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{entries: make(map[string]*memoryEntry)}
}

func (l *MemoryLeaderboard) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*memoryEntry)
	return nil
}

func (l *MemoryLeaderboard) Increment(ctx context.Context, sessionID, nickname string, delta int) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := sessionID + ":" + nickname
	e, ok := l.entries[key]
	if !ok {
		e = &memoryEntry{sessionID: sessionID, nickname: nickname}
		l.entries[key] = e
	}
	e.score += int64(delta)
	return e.score, nil
}

func (l *MemoryLeaderboard) TopN(ctx context.Context, n int) ([]models.ScoreEntry, error) {
	l.mu.Lock()
	entries := make([]models.ScoreEntry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, models.ScoreEntry{
			SessionID: e.sessionID,
			Nickname:  e.nickname,
			Score:     e.score,
		})
	}
	l.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (l *MemoryLeaderboard) Ping(ctx context.Context) error {
	return nil
}

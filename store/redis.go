package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucasmeira/pirata-backend/models"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard"

// RedisLeaderboard keeps scores in a sorted set keyed by
// "sessionID:nickname", so ranking and atomic increments come from redis
// itself (ZINCRBY / ZREVRANGE).
type RedisLeaderboard struct {
	rdb *redis.Client
}

func NewRedisLeaderboard(addr string) *RedisLeaderboard {
	return &RedisLeaderboard{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (l *RedisLeaderboard) Reset(ctx context.Context) error {
	if err := l.rdb.Del(ctx, leaderboardKey).Err(); err != nil {
		return fmt.Errorf("reset leaderboard: %w", err)
	}
	return nil
}

func (l *RedisLeaderboard) Increment(ctx context.Context, sessionID, nickname string, delta int) (int64, error) {
	member := sessionID + ":" + nickname
	total, err := l.rdb.ZIncrBy(ctx, leaderboardKey, float64(delta), member).Result()
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", member, err)
	}
	return int64(total), nil
}

func (l *RedisLeaderboard) TopN(ctx context.Context, n int) ([]models.ScoreEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top %d: %w", n, err)
	}

	entries := make([]models.ScoreEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		sessionID, nickname := splitMember(member)
		entries = append(entries, models.ScoreEntry{
			SessionID: sessionID,
			Nickname:  nickname,
			Score:     int64(z.Score),
		})
	}
	return entries, nil
}

func (l *RedisLeaderboard) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

// splitMember undoes the "sessionID:nickname" member encoding. Nicknames may
// contain ':' themselves; session ids never do.
func splitMember(member string) (sessionID, nickname string) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return member, member
	}
	return parts[0], parts[1]
}

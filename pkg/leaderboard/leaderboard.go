package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("leaderboard",
	fx.Provide(New),
)

const trendingKey = "trending:clips"

// Board is a redis-backed hot-view counter. It is a best-effort fast path:
// the clips table keeps the authoritative view counts and callers fall back
// to it when redis is unavailable.
type Board struct {
	rdb *redis.Client
}

type Params struct {
	fx.In

	Redis *redis.Client
}

// New returns nil when redis is disabled so consumers skip the fast path.
func New(p Params) *Board {
	if p.Redis == nil {
		return nil
	}
	return &Board{rdb: p.Redis}
}

// Bump increments the hot counter for a clip.
func (b *Board) Bump(ctx context.Context, clipID string) error {
	return b.rdb.ZIncrBy(ctx, trendingKey, 1, clipID).Err()
}

// Top returns the n hottest clip ids, most viewed first.
func (b *Board) Top(ctx context.Context, n int64) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	return b.rdb.ZRevRange(ctx, trendingKey, 0, n-1).Result()
}

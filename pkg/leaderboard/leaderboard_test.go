package leaderboard

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutRedisReturnsNil(t *testing.T) {
	board := New(Params{Redis: nil})
	require.Nil(t, board)
}

func TestNewWithRedis(t *testing.T) {
	board := New(Params{Redis: redis.NewClient(&redis.Options{Addr: "localhost:6379"})})
	require.NotNil(t, board)
}

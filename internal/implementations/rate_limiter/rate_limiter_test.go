package ratelimiter

import (
	"context"
	"fmt"
	"os"
	"remindme/internal/core/domain/logging"
	ratelimiter "remindme/internal/core/domain/rate_limiter"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2022, 12, 31, 23, 45, 0, 0, time.UTC)

func TestWindowKey(t *testing.T) {
	cases := []struct {
		interval ratelimiter.Interval
		key      string
		duration time.Duration
	}{
		{interval: ratelimiter.Minute, key: "test::m45", duration: time.Minute},
		{interval: ratelimiter.Hour, key: "test::h23", duration: time.Hour},
		{interval: ratelimiter.Day, key: "test::d365", duration: 24 * time.Hour},
	}
	for _, testcase := range cases {
		t.Run(testcase.key, func(t *testing.T) {
			key, duration := windowKey("test", testcase.interval, NOW)
			require.Equal(t, testcase.key, key)
			require.Equal(t, testcase.duration, duration)
		})
	}
}

func TestLimitExceeded(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}
	opts, err := redis.ParseURL(redisURL)
	require.Nil(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	key := fmt.Sprintf("test-rate-limiter::%d", time.Now().UnixNano())
	limiter := NewRedis(client, logging.NewFakeLogger(), func() time.Time { return NOW })
	limit := ratelimiter.Limit{Interval: ratelimiter.Hour, Value: 3}

	for i := 0; i < 3; i++ {
		require.True(t, limiter.CheckLimit(ctx, key, limit).IsAllowed)
	}
	require.False(t, limiter.CheckLimit(ctx, key, limit).IsAllowed)
}

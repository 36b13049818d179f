package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLimiter_BurstThenDeny(t *testing.T) {
	l := NewLocalLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "user_1", 3, time.Minute), "request %d", i)
	}
	assert.False(t, l.Allow(ctx, "user_1", 3, time.Minute))
	assert.True(t, l.Allow(ctx, "user_2", 3, time.Minute), "keys are independent")

	now = now.Add(20 * time.Second)
	assert.True(t, l.Allow(ctx, "user_1", 3, time.Minute), "one token refilled")
}

func TestLocalLimiter_Disabled(t *testing.T) {
	l := NewLocalLimiter()
	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow(context.Background(), "k", 0, time.Minute))
	}
	assert.True(t, l.Allow(context.Background(), "", 1, time.Minute))
}

func TestLocalLimiter_SweepsIdleKeys(t *testing.T) {
	l := NewLocalLimiter()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow(context.Background(), "old", 1, time.Minute)
	now = now.Add(30 * time.Minute)
	l.Allow(context.Background(), "new", 1, time.Minute)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.visitors, "old")
	assert.Contains(t, l.visitors, "new")
}

func TestRedisLimiter(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	client, err := NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	defer client.Close()

	l := NewRedisLimiter(client)
	key := "test:" + uuid.NewString()
	assert.True(t, l.Allow(context.Background(), key, 2, time.Minute))
	assert.True(t, l.Allow(context.Background(), key, 2, time.Minute))
	assert.False(t, l.Allow(context.Background(), key, 2, time.Minute))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewService(client), mr
}

func TestGetSetRoundtrip(t *testing.T) {
	svc, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, svc.Set(ctx, "k", &payload{Name: "ana", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, "ana", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestGetMissingKey(t *testing.T) {
	svc, _ := newTestCache(t)

	var got map[string]string
	assert.Error(t, svc.Get(context.Background(), "missing", &got))
}

func TestStatsCache(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	stats := map[string]int64{"total_conversations": 3}
	require.NoError(t, svc.SetStats(ctx, 1, stats))
	assert.True(t, mr.Exists("chat:stats:1"))

	var got map[string]int64
	require.NoError(t, svc.GetStats(ctx, 1, &got))
	assert.Equal(t, int64(3), got["total_conversations"])

	require.NoError(t, svc.InvalidateStats(ctx, 1))
	assert.False(t, mr.Exists("chat:stats:1"))
}

func TestStatsTTL(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.SetStats(ctx, 1, map[string]int64{"n": 1}))

	mr.FastForward(TTLStats + time.Second)

	var got map[string]int64
	assert.Error(t, svc.GetStats(ctx, 1, &got))
}

func TestUnreadCountCache(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := svc.GetUnreadCount(ctx, 10, 1)
	assert.False(t, ok)

	require.NoError(t, svc.SetUnreadCount(ctx, 10, 1, 5))
	require.NoError(t, svc.SetUnreadCount(ctx, 10, 2, 0))

	n, ok := svc.GetUnreadCount(ctx, 10, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(5), n)

	// Invalidation clears the counters of both participants
	require.NoError(t, svc.InvalidateUnread(ctx, 10))
	assert.False(t, mr.Exists("chat:unread:10:1"))
	assert.False(t, mr.Exists("chat:unread:10:2"))
}

func TestInvalidateUnread_LeavesOtherConversationsAlone(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, svc.SetUnreadCount(ctx, 10, 1, 5))
	require.NoError(t, svc.SetUnreadCount(ctx, 11, 1, 2))

	require.NoError(t, svc.InvalidateUnread(ctx, 10))

	assert.False(t, mr.Exists("chat:unread:10:1"))
	assert.True(t, mr.Exists("chat:unread:11:1"))
}

func TestUserCache(t *testing.T) {
	svc, mr := newTestCache(t)
	ctx := context.Background()

	type user struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	require.NoError(t, svc.SetUser(ctx, 42, &user{ID: 42, Name: "Ana"}))
	assert.True(t, mr.Exists("user:42"))

	var got user
	require.NoError(t, svc.GetUser(ctx, 42, &got))
	assert.Equal(t, "Ana", got.Name)
}

func TestNilClientIsTolerated(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	assert.False(t, svc.IsAvailable())
	assert.Error(t, svc.Ping(ctx))

	assert.NoError(t, svc.Set(ctx, "k", "v", time.Minute))
	assert.Error(t, svc.Get(ctx, "k", new(string)))
	assert.NoError(t, svc.Delete(ctx, "k"))

	_, ok := svc.GetUnreadCount(ctx, 10, 1)
	assert.False(t, ok)
	assert.NoError(t, svc.SetUnreadCount(ctx, 10, 1, 5))
	assert.NoError(t, svc.InvalidateUnread(ctx, 10))
	assert.NoError(t, svc.InvalidateStats(ctx, 1))
}

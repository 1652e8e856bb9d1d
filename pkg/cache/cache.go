package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLStats   = 1 * time.Minute  // chat stats (cheap to rebuild, must stay fresh)
	TTLUnread  = 30 * time.Second // unread counters
	TTLUser    = 5 * time.Minute  // user directory lookups
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixStats  = "chat:stats:"
	PrefixUnread = "chat:unread:"
	PrefixUser   = "user:"
)

// Service Redis cache service interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Chat stats cache
	GetStats(ctx context.Context, userID int64, dest interface{}) error
	SetStats(ctx context.Context, userID int64, data interface{}) error
	InvalidateStats(ctx context.Context, userIDs ...int64) error

	// Unread counter cache
	GetUnreadCount(ctx context.Context, conversationID, userID int64) (int64, bool)
	SetUnreadCount(ctx context.Context, conversationID, userID int64, count int64) error
	InvalidateUnread(ctx context.Context, conversationID int64) error

	// User directory cache
	GetUser(ctx context.Context, userID int64, dest interface{}) error
	SetUser(ctx context.Context, userID int64, data interface{}) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis-backed cache implementation.
// Every method tolerates a nil client so the API can run without Redis.
type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a JSON value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a JSON value in the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Exists checks whether a key is cached
func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// ========================================
// Chat stats cache
// ========================================

func (c *redisCache) statsKey(userID int64) string {
	return fmt.Sprintf("%s%d", PrefixStats, userID)
}

func (c *redisCache) GetStats(ctx context.Context, userID int64, dest interface{}) error {
	return c.Get(ctx, c.statsKey(userID), dest)
}

func (c *redisCache) SetStats(ctx context.Context, userID int64, data interface{}) error {
	return c.Set(ctx, c.statsKey(userID), data, TTLStats)
}

func (c *redisCache) InvalidateStats(ctx context.Context, userIDs ...int64) error {
	if c.client == nil || len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.statsKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}

// ========================================
// Unread counter cache
// ========================================

func (c *redisCache) unreadKey(conversationID, userID int64) string {
	return fmt.Sprintf("%s%d:%d", PrefixUnread, conversationID, userID)
}

func (c *redisCache) GetUnreadCount(ctx context.Context, conversationID, userID int64) (int64, bool) {
	if c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, c.unreadKey(conversationID, userID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *redisCache) SetUnreadCount(ctx context.Context, conversationID, userID int64, count int64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.unreadKey(conversationID, userID), count, TTLUnread).Err()
}

func (c *redisCache) InvalidateUnread(ctx context.Context, conversationID int64) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, fmt.Sprintf("%s%d:*", PrefixUnread, conversationID))
}

// ========================================
// User directory cache
// ========================================

func (c *redisCache) userKey(userID int64) string {
	return fmt.Sprintf("%s%d", PrefixUser, userID)
}

func (c *redisCache) GetUser(ctx context.Context, userID int64, dest interface{}) error {
	return c.Get(ctx, c.userKey(userID), dest)
}

func (c *redisCache) SetUser(ctx context.Context, userID int64, data interface{}) error {
	return c.Set(ctx, c.userKey(userID), data, TTLUser)
}

// ========================================
// Internal utilities
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pictor/pictor/internal/model"
)

const (
	// userCachePrefix is the Redis key prefix for user record cache.
	userCachePrefix = "user:rec:"
	// userCacheTTL is the time-to-live for cached user records.
	userCacheTTL = 5 * time.Minute
)

// cachedUser represents a user record stored in Redis.
type cachedUser struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetUser retrieves a cached user record by username.
// Returns nil on a cache miss; a corrupted entry is treated as a miss.
func (c *Cache) GetUser(ctx context.Context, username string) (*model.User, error) {
	key := userCachePrefix + username

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		Username:     cached.Username,
		PasswordHash: cached.PasswordHash,
		CreatedAt:    cached.CreatedAt,
	}, nil
}

// SetUser caches a user record.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userCachePrefix + user.Username

	data, err := json.Marshal(cachedUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal user record: %w", err)
	}

	return c.client.Set(ctx, key, data, userCacheTTL).Err()
}

// DeleteUser removes a cached user record.
func (c *Cache) DeleteUser(ctx context.Context, username string) error {
	key := userCachePrefix + username
	return c.client.Del(ctx, key).Err()
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/pkg/database"
	"github.com/redis/go-redis/v9"
)

// UserCache holds JSON-serialized copies of user records keyed by email.
// It is an optimization layer, not a source of truth: entries expire on a
// fixed TTL and are overwritten on every mutation of the underlying record.
type UserCache struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewUserCache creates a new user cache
func NewUserCache(redis *database.Redis, ttl time.Duration) *UserCache {
	return &UserCache{redis: redis, ttl: ttl}
}

func userKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}

// Put stores a copy of the user under its email with the configured expiry.
func (c *UserCache) Put(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	if err := c.redis.Client.Set(ctx, userKey(user.Email), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// Get returns the cached copy of a user, or nil if there is no unexpired
// entry. Expiry is delegated to Redis; absence is the only miss signal.
func (c *UserCache) Get(ctx context.Context, email string) (*domain.User, error) {
	data, err := c.redis.Client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached user: %w", err)
	}

	user := &domain.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("failed to deserialize cached user: %w", err)
	}

	return user, nil
}

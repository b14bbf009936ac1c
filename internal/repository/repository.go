package repository

import (
	"time"

	"github.com/prperemyshlev/contacts-api/pkg/database"
	"go.uber.org/zap"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Contact ContactRepository
}

// NewRepositories creates all repositories sharing one store connection and
// one cache client, both injected at construction time.
func NewRepositories(db *database.Postgres, redis *database.Redis, userCacheTTL time.Duration, logger *zap.Logger) *Repositories {
	cache := NewUserCache(redis, userCacheTTL)

	return &Repositories{
		User:    NewUserRepository(db, cache, logger),
		Contact: NewContactRepository(db),
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/utils"
	"github.com/prperemyshlev/contacts-api/pkg/database"
	"go.uber.org/zap"
)

const userColumns = "id, username, email, password_hash, avatar, refresh_token, is_email_confirmed, is_password_valid, created_at, updated_at"

// userRepository implements UserRepository backed by PostgreSQL, with a
// write-through Redis cache. Cache failures are logged and swallowed; the
// store write is the durable source of truth.
type userRepository struct {
	db     *database.Postgres
	cache  *UserCache
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres, cache *UserCache, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, cache: cache, logger: logger}
}

// Create inserts a new user. The avatar URL is resolved from Gravatar on a
// best-effort basis when none is set.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, avatar, is_email_confirmed, is_password_valid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	if user.Avatar == nil {
		avatar := utils.GravatarURL(user.Email)
		user.Avatar = &avatar
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Avatar,
		user.IsEmailConfirmed,
		user.IsPasswordValid,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", errors.Join(ErrStoreUnavailable, err))
	}

	r.cachePut(ctx, user)
	return nil
}

// GetByEmail retrieves a user by email, consulting the cache first and
// populating it on a store hit.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if cached, err := r.cache.Get(ctx, email); err != nil {
		r.logger.Warn("User cache read failed", zap.String("email", email), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", errors.Join(ErrStoreUnavailable, err))
	}

	r.cachePut(ctx, user)
	return user, nil
}

// SetRefreshToken rewrites the stored refresh token; nil clears it.
func (r *userRepository) SetRefreshToken(ctx context.Context, user *domain.User, token *string) error {
	updated, err := r.updateUser(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = $3 WHERE email = $1`,
		user.Email, token, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	*user = *updated
	return nil
}

// ConfirmEmail flips is_email_confirmed. Calling it twice is harmless.
func (r *userRepository) ConfirmEmail(ctx context.Context, email string) error {
	_, err := r.updateUser(ctx,
		`UPDATE users SET is_email_confirmed = TRUE, updated_at = $2 WHERE email = $1`,
		email, time.Now().UTC(),
	)
	return err
}

// InvalidatePassword marks the current password as unusable pending a reset.
func (r *userRepository) InvalidatePassword(ctx context.Context, email string) error {
	_, err := r.updateUser(ctx,
		`UPDATE users SET is_password_valid = FALSE, updated_at = $2 WHERE email = $1`,
		email, time.Now().UTC(),
	)
	return err
}

// SetPassword stores a new password hash and restores password validity.
func (r *userRepository) SetPassword(ctx context.Context, email, passwordHash string) error {
	_, err := r.updateUser(ctx,
		`UPDATE users SET password_hash = $2, is_password_valid = TRUE, updated_at = $3 WHERE email = $1`,
		email, passwordHash, time.Now().UTC(),
	)
	return err
}

// SetAvatar updates the avatar URL and returns the updated record.
func (r *userRepository) SetAvatar(ctx context.Context, email, url string) (*domain.User, error) {
	return r.updateUser(ctx,
		`UPDATE users SET avatar = $2, updated_at = $3 WHERE email = $1`,
		email, url, time.Now().UTC(),
	)
}

// updateUser runs an UPDATE ... WHERE email = $1 statement extended with a
// RETURNING clause, re-caches the updated record and returns it.
func (r *userRepository) updateUser(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	query = fmt.Sprintf("%s RETURNING %s", query, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user: %w", errors.Join(ErrStoreUnavailable, err))
	}

	r.cachePut(ctx, user)
	return user, nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var avatar, refreshToken sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&avatar,
		&refreshToken,
		&user.IsEmailConfirmed,
		&user.IsPasswordValid,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatar.Valid {
		user.Avatar = &avatar.String
	}
	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}

	return user, nil
}

// cachePut re-caches a user after a committed mutation. A cache failure
// must not fail the operation.
func (r *userRepository) cachePut(ctx context.Context, user *domain.User) {
	if err := r.cache.Put(ctx, user); err != nil {
		r.logger.Warn("User cache write failed", zap.String("email", user.Email), zap.Error(err))
	}
}

package domain

import "time"

// User represents an account in the system. The cached copy stored in Redis
// is serialized from this struct; PasswordHash and RefreshToken are kept out
// of JSON responses by the dto layer, not here, because the cache blob must
// carry every field needed to answer reads without a store round-trip.
type User struct {
	ID               string    `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"password_hash" db:"password_hash"`
	Avatar           *string   `json:"avatar" db:"avatar"`
	RefreshToken     *string   `json:"refresh_token" db:"refresh_token"`
	IsEmailConfirmed bool      `json:"is_email_confirmed" db:"is_email_confirmed"`
	IsPasswordValid  bool      `json:"is_password_valid" db:"is_password_valid"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

package service

import (
	"context"
	"io"

	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/dto"
)

// AuthService defines authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, error)
	ConfirmEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// UserService defines operations on the authenticated user's own profile
type UserService interface {
	UpdateAvatar(ctx context.Context, user *domain.User, file io.Reader, size int64, contentType string) (*domain.User, error)
}

// ContactService defines owner-scoped contact operations
type ContactService interface {
	Create(ctx context.Context, ownerID string, req *dto.ContactRequest) (*domain.Contact, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	List(ctx context.Context, ownerID string) ([]*domain.Contact, error)
	Update(ctx context.Context, ownerID, id string, req *dto.ContactRequest) (*domain.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	UpcomingBirthdays(ctx context.Context, ownerID string, days int) ([]*domain.Contact, error)
}

// Sender delivers account emails. Sending happens off the request path, so
// implementations must be safe for concurrent use.
type Sender interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// AvatarStorage persists avatar images and returns a public URL for each.
type AvatarStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

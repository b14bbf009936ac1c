package repository

import (
	"context"

	"github.com/prperemyshlev/contacts-api/internal/domain"
)

// UserRepository defines CRUD and state-transition operations on users.
// Every mutation re-caches the user; cache failures degrade silently.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, user *domain.User, token *string) error
	ConfirmEmail(ctx context.Context, email string) error
	InvalidatePassword(ctx context.Context, email string) error
	SetPassword(ctx context.Context, email, passwordHash string) error
	SetAvatar(ctx context.Context, email, url string) (*domain.User, error)
}

// ContactRepository defines owner-scoped operations on contacts. A contact
// belonging to another owner is indistinguishable from a missing one.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	List(ctx context.Context, ownerID string) ([]*domain.Contact, error)
	Update(ctx context.Context, ownerID string, contact *domain.Contact) error
	Delete(ctx context.Context, ownerID, id string) error
}

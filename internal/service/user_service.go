package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/repository"
)

// userService implements UserService interface
type userService struct {
	userRepo repository.UserRepository
	storage  AvatarStorage
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, storage AvatarStorage) UserService {
	return &userService{userRepo: userRepo, storage: storage}
}

// UpdateAvatar uploads a new avatar image and stores its URL on the profile.
// Each upload gets a fresh key, so stale CDN caches never serve the old image.
func (s *userService) UpdateAvatar(ctx context.Context, user *domain.User, file io.Reader, size int64, contentType string) (*domain.User, error) {
	key := fmt.Sprintf("avatars/%s", uuid.New().String())

	url, err := s.storage.Upload(ctx, key, file, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	updated, err := s.userRepo.SetAvatar(ctx, user.Email, url)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar url: %w", err)
	}

	return updated, nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/repository"
	"github.com/prperemyshlev/contacts-api/internal/utils"
)

// fakeUserRepository keeps users in a map keyed by email.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*domain.User{}}
}

func cloneUser(user *domain.User) *domain.User {
	clone := *user
	if user.Avatar != nil {
		avatar := *user.Avatar
		clone.Avatar = &avatar
	}
	if user.RefreshToken != nil {
		token := *user.RefreshToken
		clone.RefreshToken = &token
	}
	return &clone
}

func (f *fakeUserRepository) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Avatar == nil {
		avatar := utils.GravatarURL(user.Email)
		user.Avatar = &avatar
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	f.users[user.Email] = cloneUser(user)
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (f *fakeUserRepository) SetRefreshToken(ctx context.Context, user *domain.User, token *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.users[user.Email]
	if !ok {
		return repository.ErrNotFound
	}
	stored.RefreshToken = token
	user.RefreshToken = token
	return nil
}

func (f *fakeUserRepository) ConfirmEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsEmailConfirmed = true
	return nil
}

func (f *fakeUserRepository) InvalidatePassword(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsPasswordValid = false
	return nil
}

func (f *fakeUserRepository) SetPassword(ctx context.Context, email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.IsPasswordValid = true
	return nil
}

func (f *fakeUserRepository) SetAvatar(ctx context.Context, email, url string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Avatar = &url
	return cloneUser(user), nil
}

// fakeContactRepository keeps contacts in a map keyed by id.
type fakeContactRepository struct {
	mu       sync.Mutex
	contacts map[string]*domain.Contact
}

func newFakeContactRepository() *fakeContactRepository {
	return &fakeContactRepository{contacts: map[string]*domain.Contact{}}
}

func (f *fakeContactRepository) hasDuplicate(contact *domain.Contact) bool {
	for _, existing := range f.contacts {
		if existing.ID == contact.ID || existing.UserID != contact.UserID {
			continue
		}
		if existing.Email == contact.Email || existing.Phone == contact.Phone {
			return true
		}
	}
	return false
}

func (f *fakeContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if f.hasDuplicate(contact) {
		return repository.ErrDuplicateContact
	}

	now := time.Now().UTC()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	clone := *contact
	f.contacts[contact.ID] = &clone
	return nil
}

func (f *fakeContactRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	contact, ok := f.contacts[id]
	if !ok || contact.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	clone := *contact
	return &clone, nil
}

func (f *fakeContactRepository) List(ctx context.Context, ownerID string) ([]*domain.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var contacts []*domain.Contact
	for _, contact := range f.contacts {
		if contact.UserID == ownerID {
			clone := *contact
			contacts = append(contacts, &clone)
		}
	}
	return contacts, nil
}

func (f *fakeContactRepository) Update(ctx context.Context, ownerID string, contact *domain.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.contacts[contact.ID]
	if !ok || stored.UserID != ownerID {
		return repository.ErrNotFound
	}
	if f.hasDuplicate(contact) {
		return repository.ErrDuplicateContact
	}

	contact.UserID = ownerID
	contact.CreatedAt = stored.CreatedAt
	contact.UpdatedAt = time.Now().UTC()

	clone := *contact
	f.contacts[contact.ID] = &clone
	return nil
}

func (f *fakeContactRepository) Delete(ctx context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	contact, ok := f.contacts[id]
	if !ok || contact.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.contacts, id)
	return nil
}

// recordingSender captures sent emails on buffered channels so tests can wait
// for the background delivery goroutine.
type recordingSender struct {
	verifications chan sentEmail
	resets        chan sentEmail
}

type sentEmail struct {
	email string
	token string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{
		verifications: make(chan sentEmail, 8),
		resets:        make(chan sentEmail, 8),
	}
}

func (s *recordingSender) SendVerification(ctx context.Context, email, token string) error {
	s.verifications <- sentEmail{email: email, token: token}
	return nil
}

func (s *recordingSender) SendPasswordReset(ctx context.Context, email, token string) error {
	s.resets <- sentEmail{email: email, token: token}
	return nil
}

// fakeAvatarStorage records uploads and returns a deterministic URL.
type fakeAvatarStorage struct {
	mu      sync.Mutex
	uploads []string
}

func (f *fakeAvatarStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, key)
	return fmt.Sprintf("https://cdn.example.com/%s", key), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/dto"
	"github.com/prperemyshlev/contacts-api/internal/repository"
	"github.com/prperemyshlev/contacts-api/internal/utils"
	"go.uber.org/zap"
)

const emailSendTimeout = 10 * time.Second

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	mail       Sender
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	mail Sender,
	logger *zap.Logger,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		mail:       mail,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a new user and sends the verification email off the
// request path.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*domain.User, error) {
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidatePassword(req.Password) {
		return nil, ErrWeakPassword
	}

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrAccountExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:        req.Username,
		Email:           email,
		PasswordHash:    passwordHash,
		IsPasswordValid: true,
	}

	err = s.userRepo.Create(ctx, user)
	if err != nil {
		// Lost the race against a concurrent signup with the same email.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.Issue(user.Email, utils.PurposeEmailVerification)
	if err != nil {
		return nil, fmt.Errorf("failed to issue verification token: %w", err)
	}

	s.sendAsync(user.Email, token, s.mail.SendVerification)

	return user, nil
}

// ConfirmEmail marks the account behind a verification token as confirmed.
// Confirming an already confirmed account is a no-op.
func (s *authService) ConfirmEmail(ctx context.Context, token string) error {
	email, err := s.jwtManager.Verify(token, utils.PurposeEmailVerification)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	err = s.userRepo.ConfirmEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to confirm email: %w", err)
	}

	return nil
}

// Login authenticates a user and rotates the stored refresh token. Each
// failure mode gets its own error so the handler can report it precisely.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsEmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}

	// A password invalidated by a reset request stops working even if the
	// stored hash would still match.
	if !user.IsPasswordValid || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	return s.issueSession(ctx, user)
}

// Refresh exchanges a valid refresh token for a fresh pair. Only the most
// recently issued refresh token is honored; older ones died at rotation.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	email, err := s.jwtManager.Verify(refreshToken, utils.PurposeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	return s.issueSession(ctx, user)
}

// Logout clears the stored refresh token, ending the session.
func (s *authService) Logout(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, user, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// ForgotPassword invalidates the current password and emails a reset link.
// It reports success for unknown and unconfirmed accounts alike, so the
// endpoint cannot be used to probe which emails are registered.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsEmailConfirmed {
		return nil
	}

	if err := s.userRepo.InvalidatePassword(ctx, user.Email); err != nil {
		return fmt.Errorf("failed to invalidate password: %w", err)
	}

	token, err := s.jwtManager.Issue(user.Email, utils.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.sendAsync(user.Email, token, s.mail.SendPasswordReset)

	return nil
}

// ResetPassword sets a new password for the account behind a reset token and
// revokes the active session.
func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	email, err := s.jwtManager.Verify(token, utils.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !utils.ValidatePassword(password) {
		return ErrWeakPassword
	}

	passwordHash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepo.SetPassword(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set password: %w", err)
	}

	// Existing refresh tokens predate the new password; drop them.
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.userRepo.SetRefreshToken(ctx, user, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// Authenticate resolves an access token to its user.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	email, err := s.jwtManager.Verify(accessToken, utils.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// issueSession mints a token pair and durably stores the refresh token on the
// user row before returning it.
func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, err := s.jwtManager.IssuePair(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := s.userRepo.SetRefreshToken(ctx, user, &pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return pair, nil
}

// sendAsync delivers an email in the background with a detached context, so
// a slow provider never holds up the HTTP response.
func (s *authService) sendAsync(email, token string, send func(context.Context, string, string) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
		defer cancel()

		if err := send(ctx, email, token); err != nil {
			s.logger.Warn("failed to send email",
				zap.String("email", email),
				zap.Error(err),
			)
		}
	}()
}

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prperemyshlev/contacts-api/internal/domain"
)

// Purpose tags a token with the single operation class allowed to consume it.
type Purpose string

const (
	PurposeAccess            Purpose = "access"
	PurposeRefresh           Purpose = "refresh"
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Token verification errors
var (
	ErrTokenExpired    = errors.New("token is expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrPurposeMismatch = errors.New("token purpose mismatch")
)

// Claims carries the subject email plus the purpose tag under "scope".
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies purpose-tagged tokens. The signing key is
// loaded once at startup and never rotated mid-process.
type JWTManager struct {
	secret                  []byte
	accessTokenExpiry       time.Duration
	refreshTokenExpiry      time.Duration
	emailVerificationExpiry time.Duration
	passwordResetExpiry     time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessExpiry, refreshExpiry, verificationExpiry, resetExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:                  []byte(secret),
		accessTokenExpiry:       accessExpiry,
		refreshTokenExpiry:      refreshExpiry,
		emailVerificationExpiry: verificationExpiry,
		passwordResetExpiry:     resetExpiry,
	}
}

// TTL returns the configured lifetime for the given purpose.
func (j *JWTManager) TTL(purpose Purpose) time.Duration {
	switch purpose {
	case PurposeRefresh:
		return j.refreshTokenExpiry
	case PurposeEmailVerification:
		return j.emailVerificationExpiry
	case PurposePasswordReset:
		return j.passwordResetExpiry
	default:
		return j.accessTokenExpiry
	}
}

// Issue produces a signed token for subject with the purpose's configured TTL.
func (j *JWTManager) Issue(subject string, purpose Purpose) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: string(purpose),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL(purpose))),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", purpose, err)
	}

	return tokenString, nil
}

// Verify checks the signature, expiry and purpose of a token and returns its
// subject. Expiry is enforced here, not just at issuance.
func (j *JWTManager) Verify(tokenString string, expected Purpose) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Scope != string(expected) {
		return "", ErrPurposeMismatch
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// IssuePair issues an access and refresh token for the same subject.
func (j *JWTManager) IssuePair(subject string) (*domain.TokenPair, error) {
	accessToken, err := j.Issue(subject, PurposeAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := j.Issue(subject, PurposeRefresh)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(j.accessTokenExpiry.Seconds()),
	}, nil
}

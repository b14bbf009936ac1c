package dto

import (
	"time"

	"github.com/prperemyshlev/contacts-api/internal/domain"
)

// SignupRequest represents a registration request
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=2,max=64" validate:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required,min=8" validate:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password for a reset token
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8" validate:"required,min=8"`
}

// ContactRequest represents a contact create or update payload
type ContactRequest struct {
	FirstName string `json:"first_name" binding:"required,max=64" validate:"required,max=64"`
	LastName  string `json:"last_name" binding:"required,max=64" validate:"required,max=64"`
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Phone     string `json:"phone" binding:"required,max=32" validate:"required,max=32"`
	Birthday  string `json:"birthday" binding:"required,datetime=2006-01-02" validate:"required"`
	Address   string `json:"address" binding:"max=256" validate:"max=256"`
}

// UserResponse represents a user response
type UserResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Avatar           *string `json:"avatar"`
	IsEmailConfirmed bool    `json:"is_email_confirmed"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// NewUserResponse strips credentials and the stored refresh token from a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Avatar:           user.Avatar,
		IsEmailConfirmed: user.IsEmailConfirmed,
		CreatedAt:        user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        user.UpdatedAt.Format(time.RFC3339),
	}
}

// SignupResponse represents a successful registration response
type SignupResponse struct {
	User   UserResponse `json:"user"`
	Detail string       `json:"detail"`
}

// ContactResponse represents a contact response
type ContactResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewContactResponse renders a contact with the birthday as a calendar date.
func NewContactResponse(contact *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Birthday:  contact.Birthday.Format("2006-01-02"),
		Address:   contact.Address,
		CreatedAt: contact.CreatedAt.Format(time.RFC3339),
		UpdatedAt: contact.UpdatedAt.Format(time.RFC3339),
	}
}

// NewContactResponses renders a list of contacts.
func NewContactResponses(contacts []*domain.Contact) []ContactResponse {
	responses := make([]ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, NewContactResponse(contact))
	}
	return responses
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

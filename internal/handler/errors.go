package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contacts-api/internal/dto"
	"github.com/prperemyshlev/contacts-api/internal/service"
)

// respondError maps a service error to its HTTP status and user-facing
// message. Anything unrecognized becomes an opaque 500 so internals never
// leak into responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccountExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: "The account already exists",
		})
	case errors.Is(err, service.ErrInvalidEmail):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid email",
		})
	case errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "Password must be at least 8 characters long and contain uppercase, lowercase, and number",
		})
	case errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid password",
		})
	case errors.Is(err, service.ErrEmailNotConfirmed):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "The email is not confirmed",
		})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid or expired token",
		})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "User not found",
		})
	case errors.Is(err, service.ErrContactExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: "The contact already exists",
		})
	case errors.Is(err, service.ErrContactNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "Contact not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Something went wrong",
		})
	}
}

// respondValidationError reports a request binding failure.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/dto"
	"github.com/prperemyshlev/contacts-api/internal/service"
)

const userContextKey = "user"

// bearerToken extracts the token from the Authorization header. On failure it
// writes the 401 response and returns false.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authorization header is required",
		})
		c.Abort()
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid authorization header format",
		})
		c.Abort()
		return "", false
	}

	return parts[1], true
}

// AuthMiddleware resolves the bearer access token to its user and stores the
// user in the request context. Refresh and one-time tokens do not pass.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware. On a
// route missing the middleware it writes the 401 response and returns false.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User not found in context",
		})
		c.Abort()
		return nil, false
	}

	user, ok := value.(*domain.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User not found in context",
		})
		c.Abort()
		return nil, false
	}

	return user, true
}

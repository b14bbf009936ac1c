package acceptance

import (
	"net/http"

	"github.com/prperemyshlev/contacts-api/internal/dto"
)

func (s *Suite) TestGetMe() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")
	pair := s.login("alice@example.com", "Password123")

	resp := s.request(http.MethodGet, "/api/users/me", pair.AccessToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.decode(resp, &user)

	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.True(user.IsEmailConfirmed)
	s.NotNil(user.Avatar)
}

func (s *Suite) TestGetMe_RequiresAccessToken() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")
	pair := s.login("alice@example.com", "Password123")

	resp := s.request(http.MethodGet, "/api/users/me", "")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	// A refresh token is not an access token.
	resp = s.request(http.MethodGet, "/api/users/me", pair.RefreshToken)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

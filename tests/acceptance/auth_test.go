package acceptance

import (
	"encoding/json"
	"net/http"

	"github.com/prperemyshlev/contacts-api/internal/domain"
	"github.com/prperemyshlev/contacts-api/internal/dto"
	"github.com/prperemyshlev/contacts-api/internal/utils"
)

func (s *Suite) TestSignup_Success() {
	resp := s.postJSON("/api/auth/signup", dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123",
	}, "")
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var signupResp dto.SignupResponse
	err := json.NewDecoder(resp.Body).Decode(&signupResp)
	s.Require().NoError(err)

	s.NotEmpty(signupResp.User.ID)
	s.Equal("alice@example.com", signupResp.User.Email)
	s.False(signupResp.User.IsEmailConfirmed)
	s.NotNil(signupResp.User.Avatar)
	s.Contains(*signupResp.User.Avatar, "gravatar.com")
}

func (s *Suite) TestSignup_DuplicateEmail() {
	req := dto.SignupRequest{
		Username: "alice",
		Email:    "duplicate@example.com",
		Password: "Password123",
	}

	resp := s.postJSON("/api/auth/signup", req, "")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.postJSON("/api/auth/signup", req, "")
	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("The account already exists", errResp.Message)
}

func (s *Suite) TestSignup_InvalidPayload() {
	resp := s.postJSON("/api/auth/signup", dto.SignupRequest{
		Username: "alice",
		Email:    "not-an-email",
		Password: "Password123",
	}, "")
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON("/api/auth/signup", dto.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	}, "")
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_UnconfirmedEmail() {
	resp := s.postJSON("/api/auth/signup", dto.SignupRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "Password123",
	}, "")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.postJSON("/api/auth/login", dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "Password123",
	}, "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("The email is not confirmed", errResp.Message)
}

func (s *Suite) TestLogin_Success() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")

	pair := s.login("alice@example.com", "Password123")
	s.NotEmpty(pair.AccessToken)
	s.NotEmpty(pair.RefreshToken)
	s.Equal("bearer", pair.TokenType)
	s.NotZero(pair.ExpiresIn)
}

func (s *Suite) TestLogin_WrongCredentials() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")

	resp := s.postJSON("/api/auth/login", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password123",
	}, "")
	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid email", errResp.Message)

	resp = s.postJSON("/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPassword",
	}, "")
	s.decode(resp, &errResp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid password", errResp.Message)
}

func (s *Suite) TestConfirmEmail_InvalidToken() {
	resp := s.request(http.MethodGet, "/api/auth/confirmed_email/garbage", "")
	resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRefreshToken_Rotation() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")
	first := s.login("alice@example.com", "Password123")

	resp := s.request(http.MethodGet, "/api/auth/refresh_token", first.RefreshToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var second domain.TokenPair
	s.decode(resp, &second)
	s.NotEmpty(second.AccessToken)
	s.NotEqual(first.RefreshToken, second.RefreshToken)

	// The rotated-out token no longer works.
	resp = s.request(http.MethodGet, "/api/auth/refresh_token", first.RefreshToken)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefreshToken_AccessTokenRejected() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")
	pair := s.login("alice@example.com", "Password123")

	resp := s.request(http.MethodGet, "/api/auth/refresh_token", pair.AccessToken)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")
	pair := s.login("alice@example.com", "Password123")

	resp := s.postJSON("/api/auth/logout", struct{}{}, pair.AccessToken)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.request(http.MethodGet, "/api/auth/refresh_token", pair.RefreshToken)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestPasswordResetFlow() {
	s.signupAndConfirm("alice", "alice@example.com", "Password123")

	// The response is the same whether or not the account exists.
	resp := s.postJSON("/api/auth/forgot_password", dto.ForgotPasswordRequest{Email: "nobody@example.com"}, "")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.postJSON("/api/auth/forgot_password", dto.ForgotPasswordRequest{Email: "alice@example.com"}, "")
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	// The old password stops working once the reset was requested.
	loginResp := s.postJSON("/api/auth/login", dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Password123",
	}, "")
	loginResp.Body.Close()
	s.Equal(http.StatusUnauthorized, loginResp.StatusCode)

	token, err := s.App.JWTManager.Issue("alice@example.com", utils.PurposePasswordReset)
	s.Require().NoError(err)

	resp = s.postJSON("/api/auth/reset_password/"+token, dto.ResetPasswordRequest{Password: "NewPassword456"}, "")
	resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	pair := s.login("alice@example.com", "NewPassword456")
	s.NotEmpty(pair.AccessToken)
}

func (s *Suite) TestResetPassword_InvalidToken() {
	resp := s.postJSON("/api/auth/reset_password/garbage", dto.ResetPasswordRequest{Password: "NewPassword456"}, "")
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

package acceptance

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prperemyshlev/contacts-api/internal/dto"
)

func (s *Suite) authToken() string {
	s.T().Helper()

	s.signupAndConfirm("alice", "alice@example.com", "Password123")
	return s.login("alice@example.com", "Password123").AccessToken
}

func testContactRequest() dto.ContactRequest {
	return dto.ContactRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Phone:     "1234567890",
		Birthday:  "1990-06-15",
		Address:   "1 Main St",
	}
}

func (s *Suite) TestContacts_RequireAuth() {
	resp := s.request(http.MethodGet, "/api/contacts", "")
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestContacts_CreateAndGet() {
	token := s.authToken()

	resp := s.postJSON("/api/contacts", testContactRequest(), token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created dto.ContactResponse
	s.decode(resp, &created)
	s.NotEmpty(created.ID)
	s.Equal("1990-06-15", created.Birthday)

	resp = s.request(http.MethodGet, "/api/contacts/"+created.ID, token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var got dto.ContactResponse
	s.decode(resp, &got)
	s.Equal(created.ID, got.ID)
	s.Equal("john@example.com", got.Email)
}

func (s *Suite) TestContacts_Duplicate() {
	token := s.authToken()

	resp := s.postJSON("/api/contacts", testContactRequest(), token)
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	req := testContactRequest()
	req.Phone = "0987654321" // same email, different phone
	resp = s.postJSON("/api/contacts", req, token)
	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("The contact already exists", errResp.Message)
}

func (s *Suite) TestContacts_OwnerScoped() {
	token := s.authToken()

	resp := s.postJSON("/api/contacts", testContactRequest(), token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created dto.ContactResponse
	s.decode(resp, &created)

	// A second user cannot see the first user's contact.
	s.signupAndConfirm("bob", "bob@example.com", "Password123")
	otherToken := s.login("bob@example.com", "Password123").AccessToken

	resp = s.request(http.MethodGet, "/api/contacts/"+created.ID, otherToken)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("Contact not found", errResp.Message)
}

func (s *Suite) TestContacts_Update() {
	token := s.authToken()

	resp := s.postJSON("/api/contacts", testContactRequest(), token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created dto.ContactResponse
	s.decode(resp, &created)

	req := testContactRequest()
	req.FirstName = "Johnny"
	req.Email = "johnny@example.com"

	resp = s.putJSON("/api/contacts/"+created.ID, req, token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var updated dto.ContactResponse
	s.decode(resp, &updated)
	s.Equal("Johnny", updated.FirstName)
	s.Equal("johnny@example.com", updated.Email)
}

func (s *Suite) TestContacts_DeleteTwice() {
	token := s.authToken()

	resp := s.postJSON("/api/contacts", testContactRequest(), token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created dto.ContactResponse
	s.decode(resp, &created)

	resp = s.request(http.MethodDelete, "/api/contacts/"+created.ID, token)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.request(http.MethodDelete, "/api/contacts/"+created.ID, token)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestContacts_UpcomingBirthdays() {
	token := s.authToken()

	today := time.Now().UTC()
	birthdays := map[string]time.Time{
		"soon": today.AddDate(-30, 0, 3),
		"edge": today.AddDate(-25, 0, 7),
		"far":  today.AddDate(-40, 0, 30),
	}

	i := 0
	for name, birthday := range birthdays {
		req := dto.ContactRequest{
			FirstName: name,
			LastName:  "Birthday",
			Email:     fmt.Sprintf("%s@example.com", name),
			Phone:     fmt.Sprintf("555-000%d", i),
			Birthday:  birthday.Format("2006-01-02"),
		}
		resp := s.postJSON("/api/contacts", req, token)
		resp.Body.Close()
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
		i++
	}

	resp := s.request(http.MethodGet, "/api/contacts/birthdays_in_7_days", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var upcoming []dto.ContactResponse
	s.decode(resp, &upcoming)

	s.Len(upcoming, 2)
	for _, contact := range upcoming {
		s.NotEqual("far", contact.FirstName)
	}
}

func (s *Suite) TestContacts_List() {
	token := s.authToken()

	for i := 0; i < 3; i++ {
		req := testContactRequest()
		req.Email = fmt.Sprintf("contact%d@example.com", i)
		req.Phone = fmt.Sprintf("555-100%d", i)
		resp := s.postJSON("/api/contacts", req, token)
		resp.Body.Close()
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
	}

	resp := s.request(http.MethodGet, "/api/contacts", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var contacts []dto.ContactResponse
	s.decode(resp, &contacts)
	s.Len(contacts, 3)
}

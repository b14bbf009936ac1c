package acceptance

import (
	"encoding/json"
	"net/http"
)

func (s *Suite) TestHealthEndpoint() {
	for _, path := range []string{"/health", "/api/healthchecker"} {
		resp := s.request(http.MethodGet, path, "")

		s.Equal(http.StatusOK, resp.StatusCode)

		var body map[string]interface{}
		err := json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		s.Require().NoError(err)
		s.Equal("pass", body["status"])
	}
}

func (s *Suite) TestMetricsEndpoint() {
	resp := s.request(http.MethodGet, "/metrics", "")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

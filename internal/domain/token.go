package domain

// TokenPair represents a pair of access and refresh tokens issued together
// at login or refresh time. Both embed the same subject.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

package model

// TokenTypeBearer is the token_type value returned by the login and refresh
// endpoints, as opposed to the access/refresh claim inside a token.
const TokenTypeBearer = "bearer"

// TokenPair is the login response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// AccessTokenResponse is the refresh response.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

package model

import "github.com/golang-jwt/jwt/v5"

// Token types. Every token declares the operation class it is valid for, and
// verifiers reject the wrong class: a leaked refresh token is useless against
// resource endpoints.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// AppClaims is the fixed claim schema for every token this system issues.
// Subject carries the user ID as a decimal string. Email is set on access
// tokens only; refresh tokens stay minimal.
type AppClaims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

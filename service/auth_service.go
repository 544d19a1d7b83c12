package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"incident-hub/config"
	"incident-hub/logger"
	"incident-hub/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// AuthService owns password hashing and token issuance/verification. It is
// built once from the validated startup configuration; verification is a pure
// function of the token, the clock and that configuration, so a single
// instance is safe for concurrent use.
type AuthService struct {
	cfg config.JWTConfig
	now func() time.Time
}

func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{cfg: cfg, now: time.Now}
}

// HashPassword hashes a plaintext password with bcrypt. An error here is an
// internal fault, not a normal validation outcome.
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored digest.
// A mismatch is a plain false, never an error.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateAccessToken issues a short-lived access token for the user. Claims:
// subject (user ID), email, token_type=access, expiry.
func (s *AuthService) GenerateAccessToken(user *model.User) (string, error) {
	expiresAt := s.now().Add(time.Duration(s.cfg.AccessTTLMinutes) * time.Minute)

	claims := &model.AppClaims{
		Email:     user.Email,
		TokenType: model.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return s.sign(claims)
}

// GenerateRefreshToken issues a long-lived refresh token. Claims are kept to
// the bare minimum (subject, token_type, expiry) to limit the blast radius
// if the token ever leaks into a log.
func (s *AuthService) GenerateRefreshToken(userID int) (string, error) {
	expiresAt := s.now().Add(time.Duration(s.cfg.RefreshTTLDays) * 24 * time.Hour)

	claims := &model.AppClaims{
		TokenType: model.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	return s.sign(claims)
}

func (s *AuthService) sign(claims *model.AppClaims) (string, error) {
	method := jwt.GetSigningMethod(s.cfg.Algorithm)
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to sign token")
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, expiry, subject and token type, in that
// order, and returns the claims only if every check passes. Failures map to
// ErrExpiredToken or ErrInvalidToken; callers surface both identically.
// Only the configured algorithm is accepted.
func (s *AuthService) VerifyToken(raw, wantType string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	},
		jwt.WithValidMethods([]string{s.cfg.Algorithm}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SubjectID extracts the user ID a verified token asserts ownership of.
func SubjectID(claims *model.AppClaims) (int, error) {
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

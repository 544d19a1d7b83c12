package service

import (
	"testing"
	"time"

	"incident-hub/config"
	"incident-hub/model"

	"github.com/stretchr/testify/assert"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:        "test-secret",
		Algorithm:        "HS256",
		AccessTTLMinutes: 30,
		RefreshTTLDays:   7,
	}
}

func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(testJWTConfig())
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, hashedPassword, "hash must not equal the plaintext")

	assert.True(t, authService.CheckPasswordHash(password, hashedPassword))
	assert.False(t, authService.CheckPasswordHash("notMyPassword", hashedPassword))
}

func TestAuthService_AccessTokenRoundTrip(t *testing.T) {
	authService := NewAuthService(testJWTConfig())
	user := &model.User{ID: 42, Email: "ana@x.com"}

	token, err := authService.GenerateAccessToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.VerifyToken(token, model.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, model.TokenTypeAccess, claims.TokenType)

	id, err := SubjectID(claims)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestAuthService_ExpiredTokenRejected(t *testing.T) {
	issuedAt := time.Now()
	issuer := NewAuthService(testJWTConfig())
	issuer.now = func() time.Time { return issuedAt }

	token, err := issuer.GenerateAccessToken(&model.User{ID: 1, Email: "ana@x.com"})
	assert.NoError(t, err)

	verifier := NewAuthService(testJWTConfig())
	verifier.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }

	_, err = verifier.VerifyToken(token, model.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrExpiredToken)

	// Just inside the lifetime it still verifies.
	verifier.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	_, err = verifier.VerifyToken(token, model.TokenTypeAccess)
	assert.NoError(t, err)
}

func TestAuthService_WrongSecretRejected(t *testing.T) {
	issuer := NewAuthService(testJWTConfig())
	token, err := issuer.GenerateAccessToken(&model.User{ID: 1, Email: "ana@x.com"})
	assert.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "a-completely-different-secret"
	verifier := NewAuthService(otherCfg)

	_, err = verifier.VerifyToken(token, model.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_WrongAlgorithmRejected(t *testing.T) {
	hs512Cfg := testJWTConfig()
	hs512Cfg.Algorithm = "HS512"
	issuer := NewAuthService(hs512Cfg)

	token, err := issuer.GenerateAccessToken(&model.User{ID: 1, Email: "ana@x.com"})
	assert.NoError(t, err)

	// Same secret, different configured algorithm: still rejected.
	verifier := NewAuthService(testJWTConfig())
	_, err = verifier.VerifyToken(token, model.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_TokenTypeEnforced(t *testing.T) {
	authService := NewAuthService(testJWTConfig())

	refreshToken, err := authService.GenerateRefreshToken(7)
	assert.NoError(t, err)
	accessToken, err := authService.GenerateAccessToken(&model.User{ID: 7, Email: "ana@x.com"})
	assert.NoError(t, err)

	// A refresh token is not an access assertion and vice versa.
	_, err = authService.VerifyToken(refreshToken, model.TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = authService.VerifyToken(accessToken, model.TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshTokenClaimsAreMinimal(t *testing.T) {
	authService := NewAuthService(testJWTConfig())

	refreshToken, err := authService.GenerateRefreshToken(7)
	assert.NoError(t, err)

	claims, err := authService.VerifyToken(refreshToken, model.TokenTypeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Empty(t, claims.Email, "refresh tokens must not carry auxiliary claims")
}

func TestAuthService_GarbageTokenRejected(t *testing.T) {
	authService := NewAuthService(testJWTConfig())

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := authService.VerifyToken(raw, model.TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestSubjectID_RejectsNonNumericSubject(t *testing.T) {
	claims := &model.AppClaims{}
	claims.Subject = "ana@x.com"
	_, err := SubjectID(claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

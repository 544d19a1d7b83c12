package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"incident-hub/logger"
	"incident-hub/model"
	"incident-hub/repository"
)

const userCacheTTL = 10 * time.Minute

func userCacheKey(id int) string {
	return fmt.Sprintf("user:%d", id)
}

// UserService handles registration, login, token refresh and user lookups.
type UserService struct {
	userRepo repository.IUserRepository
	auth     *AuthService
	cache    ICacheClient
}

func NewUserService(userRepo repository.IUserRepository, auth *AuthService, cache ICacheClient) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		cache:    cache,
	}
}

// Register hashes the password and stores the new user. The plaintext is
// discarded here; only the digest crosses into the repository.
func (s *UserService) Register(req *model.CreateUserRequest) (*model.User, error) {
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// Login verifies the credentials and issues an access/refresh token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (*model.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.auth.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.auth.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    model.TokenTypeBearer,
	}, nil
}

// Refresh verifies a refresh token and mints a new access token. The subject
// must still exist: deleting a user revokes their refresh tokens without any
// separate revocation list.
func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := s.auth.VerifyToken(refreshToken, model.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	userID, err := SubjectID(claims)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return s.auth.GenerateAccessToken(user)
}

// Get looks up one user, cache-aside with a short TTL.
func (s *UserService) Get(id int) (*model.User, error) {
	ctx := context.Background()
	cacheKey := userCacheKey(id)

	if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
		user := &model.User{}
		if err := json.Unmarshal([]byte(cached), user); err == nil {
			return user, nil
		}
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if data, err := json.Marshal(user); err == nil {
		s.cache.Set(ctx, cacheKey, data, userCacheTTL)
	}
	return user, nil
}

// List returns a page of users. The limit is clamped to 1..1000.
func (s *UserService) List(limit, offset int) ([]*model.User, error) {
	if limit < 1 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(limit, offset)
}

// GetByIDs is the batch lookup behind the gateway's fan-out. IDs that no
// longer exist are silently absent from the result.
func (s *UserService) GetByIDs(ids []int) ([]*model.User, error) {
	return s.userRepo.GetByIDs(ids)
}

// ResolveIdentity confirms the token subject still exists in the identity
// store. The bearer argument is unused here: this service owns the store and
// needs no forwarded credential to read it.
func (s *UserService) ResolveIdentity(ctx context.Context, bearer string, userID int) (*model.User, error) {
	return s.Get(userID)
}

// Delete removes a user and invalidates the cache entry. From this moment
// the user's refresh tokens stop working; outstanding access tokens expire
// naturally.
func (s *UserService) Delete(id int) error {
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	s.cache.Del(context.Background(), userCacheKey(id))
	logger.Log.WithField("user_id", id).Info("User deleted")
	return nil
}

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"incident-hub/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ids []int) ([]*model.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *mockUserRepo) List(limit, offset int) ([]*model.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *mockUserRepo) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// fakeCache is an in-memory stand-in for the Redis client.
type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.store[key] = string(v)
	case string:
		f.store[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.store, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func newUserServiceForTest(repo *mockUserRepo) (*UserService, *AuthService) {
	auth := NewAuthService(testJWTConfig())
	return NewUserService(repo, auth, newFakeCache()), auth
}

func TestUserService_Register(t *testing.T) {
	t.Run("success stores hash, not plaintext", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		userService, auth := newUserServiceForTest(mockRepo)

		mockRepo.On("GetByEmail", "ana@x.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("Create", mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ana@x.com" &&
				u.PasswordHash != "password123" &&
				auth.CheckPasswordHash("password123", u.PasswordHash)
		})).Return(nil).Once()

		user, err := userService.Register(&model.CreateUserRequest{
			Name:     "Ana",
			Email:    "ana@x.com",
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.NotNil(t, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		userService, _ := newUserServiceForTest(mockRepo)

		mockRepo.On("GetByEmail", "ana@x.com").Return(&model.User{ID: 1, Email: "ana@x.com"}, nil).Once()

		_, err := userService.Register(&model.CreateUserRequest{
			Name:     "Ana",
			Email:    "ana@x.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestUserService_Login(t *testing.T) {
	mockRepo := new(mockUserRepo)
	userService, auth := newUserServiceForTest(mockRepo)

	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)
	user := &model.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: hash}

	t.Run("successful login returns bearer token pair", func(t *testing.T) {
		mockRepo.On("GetByEmail", "ana@x.com").Return(user, nil).Once()

		pair, err := userService.Login("ana@x.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "bearer", pair.TokenType)

		// The issued access token asserts the right subject.
		claims, err := auth.VerifyToken(pair.AccessToken, model.TokenTypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, "1", claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo.On("GetByEmail", "ana@x.com").Return(user, nil).Once()

		_, err := userService.Login("ana@x.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		mockRepo.On("GetByEmail", "ghost@x.com").Return(nil, sql.ErrNoRows).Once()

		_, err := userService.Login("ghost@x.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_Refresh(t *testing.T) {
	mockRepo := new(mockUserRepo)
	userService, auth := newUserServiceForTest(mockRepo)

	refreshToken, err := auth.GenerateRefreshToken(1)
	assert.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mockRepo.On("GetByID", 1).Return(&model.User{ID: 1, Email: "ana@x.com"}, nil).Once()

		accessToken, err := userService.Refresh(refreshToken)

		assert.NoError(t, err)
		claims, err := auth.VerifyToken(accessToken, model.TokenTypeAccess)
		assert.NoError(t, err)
		assert.Equal(t, "1", claims.Subject)
	})

	t.Run("deleted user is rejected even with an unexpired token", func(t *testing.T) {
		mockRepo.On("GetByID", 1).Return(nil, sql.ErrNoRows).Once()

		_, err := userService.Refresh(refreshToken)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("access token is not accepted as a refresh token", func(t *testing.T) {
		accessToken, err := auth.GenerateAccessToken(&model.User{ID: 1, Email: "ana@x.com"})
		assert.NoError(t, err)

		_, err = userService.Refresh(accessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestUserService_GetUsesCache(t *testing.T) {
	mockRepo := new(mockUserRepo)
	userService, _ := newUserServiceForTest(mockRepo)
	user := &model.User{ID: 3, Name: "Ana", Email: "ana@x.com"}

	// The repository is hit once; the second read comes from the cache.
	mockRepo.On("GetByID", 3).Return(user, nil).Once()

	first, err := userService.Get(3)
	assert.NoError(t, err)
	assert.Equal(t, 3, first.ID)

	second, err := userService.Get(3)
	assert.NoError(t, err)
	assert.Equal(t, first.Email, second.Email)

	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteInvalidatesCache(t *testing.T) {
	mockRepo := new(mockUserRepo)
	userService, _ := newUserServiceForTest(mockRepo)
	user := &model.User{ID: 3, Name: "Ana", Email: "ana@x.com"}

	mockRepo.On("GetByID", 3).Return(user, nil).Once()
	mockRepo.On("Delete", 3).Return(nil).Once()

	_, err := userService.Get(3)
	assert.NoError(t, err)

	assert.NoError(t, userService.Delete(3))

	// The cache entry is gone, so the next lookup goes back to the store.
	mockRepo.On("GetByID", 3).Return(nil, sql.ErrNoRows).Once()
	_, err = userService.Get(3)
	assert.ErrorIs(t, err, ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ListClampsLimit(t *testing.T) {
	mockRepo := new(mockUserRepo)
	userService, _ := newUserServiceForTest(mockRepo)

	mockRepo.On("List", 1000, 0).Return([]*model.User{}, nil).Once()
	_, err := userService.List(5000, -10)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

package user

import (
	"context"
	"errors"
	"testing"

	"cakestore-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, hashedPassword string) (User, error) {
	args := m.Called(ctx, name, email, hashedPassword)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int32) ([]User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Tests ---

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "Amy", "amy@example.com", mock.AnythingOfType("string")).
			Return(User{ID: 1, Name: "Amy", Email: "amy@example.com"}, nil)

		token, u, err := svc.Register(ctx, "Amy", "Amy@Example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, _, err := svc.Register(ctx, "", "amy@example.com", "s3cret")
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, "Amy", "amy@example.com", mock.AnythingOfType("string")).
			Return(User{}, ErrEmailExists)

		_, _, err := svc.Register(ctx, "Amy", "amy@example.com", "s3cret")
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "amy@example.com").
			Return(User{ID: 1, Email: "amy@example.com", Password: hash}, nil)

		token, u, err := svc.Login(ctx, "amy@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), u.ID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "ghost@example.com").
			Return(User{}, errors.New("sql: no rows"))

		_, _, err := svc.Login(ctx, "ghost@example.com", "s3cret")
		require.Error(t, err)
		assert.Equal(t, apperr.Auth, apperr.KindOf(err))
		assert.Equal(t, "invalid email or password", err.Error())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "amy@example.com").
			Return(User{ID: 1, Email: "amy@example.com", Password: hash}, nil)

		_, _, err := svc.Login(ctx, "amy@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, apperr.Auth, apperr.KindOf(err))
		assert.Equal(t, "invalid email or password", err.Error())
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("RehashesPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		newPass := "newpass"
		mockRepo.On("UpdateProfile", ctx, uint(1), mock.MatchedBy(func(p UpdateProfileParams) bool {
			return p.Password != nil && *p.Password != newPass
		})).Return(User{ID: 1}, nil)

		_, err := svc.UpdateProfile(ctx, 1, UpdateProfileParams{Password: &newPass})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

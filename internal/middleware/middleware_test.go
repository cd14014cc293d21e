package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"cakestore-be/internal/apperr"
	"cakestore-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, name, email, hashedPassword string) (user.User, error) {
	args := m.Called(ctx, name, email, hashedPassword)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int32) ([]user.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, params user.UpdateProfileParams) (user.User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func signToken(t *testing.T, userID uint, isAdmin bool) string {
	t.Helper()
	token, err := user.GenerateJWT(userID, "amy@example.com", isAdmin)
	require.NoError(t, err)
	return token
}

func TestProtect(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	t.Run("Missing Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()

		Protect(new(MockUserRepository))(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		Protect(new(MockUserRepository))(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token Resolves User Row", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).
			Return(user.User{ID: 1, Email: "amy@example.com"}, nil)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(1), u.ID)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 1, false))
		w := httptest.NewRecorder()

		Protect(users)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Deleted User Rejected", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(9)).
			Return(user.User{}, apperr.New(apperr.NotFound, "user not found"))

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 9, false))
		w := httptest.NewRecorder()

		Protect(users)(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	t.Run("Anonymous Passes Through", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := CurrentUser(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/recommendations", nil)
		w := httptest.NewRecorder()

		OptionalAuth(new(MockUserRepository))(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Valid Token Attaches User", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).
			Return(user.User{ID: 1}, nil)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(1), u.ID)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/recommendations", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 1, false))
		w := httptest.NewRecorder()

		OptionalAuth(users)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Authenticated Users Get Separate Buckets", func(t *testing.T) {
		handler := RateLimit(okHandler)

		fire := func(u *user.User) int {
			req := httptest.NewRequest("GET", "/api/products", nil)
			req.RemoteAddr = "10.0.0.9:5000"
			if u != nil {
				req = req.WithContext(WithUser(req.Context(), u))
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			return w.Code
		}

		// Exhaust the first user's general-tier quota.
		var last int
		for i := 0; i < 50; i++ {
			last = fire(&user.User{ID: 1})
		}
		assert.Equal(t, http.StatusTooManyRequests, last)

		// A different user behind the same IP still has a fresh quota.
		assert.Equal(t, http.StatusOK, fire(&user.User{ID: 2}))
	})

	t.Run("Chained After OptionalAuth Keys By Token User", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		defer os.Unsetenv("JWT_SECRET")

		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(11)).Return(user.User{ID: 11}, nil)
		users.On("FindByID", mock.Anything, uint(12)).Return(user.User{ID: 12}, nil)

		// Same chain order the router uses.
		chain := OptionalAuth(users)(RateLimit(okHandler))

		fire := func(token string) int {
			req := httptest.NewRequest("GET", "/api/products", nil)
			req.RemoteAddr = "10.0.0.10:5000"
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			chain.ServeHTTP(w, req)
			return w.Code
		}

		tokenA := signToken(t, 11, false)
		tokenB := signToken(t, 12, false)

		var last int
		for i := 0; i < 50; i++ {
			last = fire(tokenA)
		}
		assert.Equal(t, http.StatusTooManyRequests, last)
		assert.Equal(t, http.StatusOK, fire(tokenB))
	})
}

func TestAdminOnly(t *testing.T) {
	t.Run("Non-Admin Forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		ctx := WithUser(req.Context(), &user.User{ID: 1})
		w := httptest.NewRecorder()

		AdminOnly(http.NotFoundHandler()).ServeHTTP(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin Allowed", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/admin", nil)
		ctx := WithUser(req.Context(), &user.User{ID: 1, IsAdmin: true})
		w := httptest.NewRecorder()

		AdminOnly(next).ServeHTTP(w, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

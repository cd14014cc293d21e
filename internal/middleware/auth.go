package middleware

import (
	"context"
	"net/http"
	"strings"

	"cakestore-be/internal/httpx"
	"cakestore-be/internal/logger"
	"cakestore-be/internal/user"

	"go.uber.org/zap"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// CurrentUser returns the authenticated user placed in the context by
// Protect or OptionalAuth.
func CurrentUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(currentUserKey).(*user.User)
	return u, ok
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// resolveUser validates the token and loads the user row it points at.
// The row, not the claims, is the source of truth: a deleted user or a
// revoked admin flag takes effect on the next request.
func resolveUser(r *http.Request, users user.Repository) (*user.User, bool) {
	tokenStr := bearerToken(r)
	if tokenStr == "" {
		return nil, false
	}

	claims, err := user.ParseJWT(tokenStr)
	if err != nil {
		return nil, false
	}

	u, err := users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("token references unknown user",
			zap.Uint("user_id", claims.UserID), zap.Error(err))
		return nil, false
	}
	return &u, true
}

// Protect rejects requests without a valid token backed by an existing
// user row.
func Protect(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := resolveUser(r, users)
			if !ok {
				httpx.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := resolveUser(r, users); ok {
				r = r.WithContext(WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly must run after Protect.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !u.IsAdmin {
			httpx.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

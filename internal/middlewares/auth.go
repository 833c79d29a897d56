package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/campusprint/printqueue/internal/logger"
	"github.com/campusprint/printqueue/internal/sessions"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	TokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (*sessions.Claims, error)
}

// SessionChecker reports whether a session token id is still active.
type SessionChecker interface {
	Exists(ctx context.Context, tokenID uuid.UUID) (bool, error)
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var sessionKey = contextKey{}

// SetSessionToContext stores session claims in the context.
func SetSessionToContext(ctx context.Context, claims *sessions.Claims) context.Context {
	return context.WithValue(ctx, sessionKey, claims)
}

// SessionFromContext retrieves the session claims from the context.
// Returns nil if the request is unauthenticated.
func SessionFromContext(ctx context.Context) *sessions.Claims {
	claims, _ := ctx.Value(sessionKey).(*sessions.Claims)
	return claims
}

// AuthMiddleware returns a middleware that resolves the session cookie
// (or bearer token) to an identity, rejects revoked or invalid sessions,
// and stores the claims in the request context.
func AuthMiddleware(tokener Tokener, checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.TokenFromRequest(ctx, r)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := tokener.Parse(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				unauthorized(w)
				return
			}

			active, err := checker.Exists(ctx, claims.TokenID)
			if err != nil {
				logger.Log.Errorw("session lookup failed", "err", err)
				unauthorized(w)
				return
			}
			if !active {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionToContext(ctx, claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated"})
}

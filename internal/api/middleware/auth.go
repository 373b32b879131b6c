package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/userportal/internal/api/apierr"
	"github.com/mcoot/userportal/internal/model"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// TokenValidator resolves a bearer token to the user it was issued to
type TokenValidator interface {
	ValidateToken(token string) (model.UserID, error)
}

// Auth rejects requests without a valid bearer token with 401
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			userID, err := tokens.ValidateToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// GetUserID returns the authenticated user id from the request context
func GetUserID(ctx context.Context) model.UserID {
	id, _ := ctx.Value(userIDContextKey).(model.UserID)
	return id
}

// Package middleware provides the authentication middleware for the API.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed context key so values set here cannot collide
// with other packages.
type ContextKey string

const userIDKey ContextKey = "userID"

// TokenValidator validates a session token. Defined here so the
// middleware does not depend on the JWT implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserIDGetter, error)
}

// UserIDGetter exposes the account ID carried by validated claims.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// unauthorized writes the 401 response in the API's JSON error envelope
// so clients can branch on the detail field.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"detail": "Unauthorized"}`)) //nolint:errcheck
}

// AuthMiddleware rejects requests without a valid bearer token and puts
// the authenticated account ID on the request context. The scheme is
// matched case-insensitively.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.GetUserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated account ID from the request
// context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// UserIDKey returns the context key handlers are keyed on, for tests
// that bypass the middleware.
func UserIDKey() ContextKey {
	return userIDKey
}

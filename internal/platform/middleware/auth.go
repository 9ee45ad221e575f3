package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID int64
}

// JWTValidator verifies a bearer token's signature and expiry.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// UserValidator resolves a verified token payload to a live user. The
// auth service implements this; a token whose subject no longer exists
// must be rejected here, before any handler runs.
type UserValidator interface {
	ValidateUser(ctx context.Context, claims *JWTClaims) error
}

type contextKeyUserID struct{}

// ContextKeyUserID is exported for use in handlers.
var ContextKeyUserID = contextKeyUserID{}

// GetUserID retrieves the authenticated user id from the context.
// Returns 0 when the request is unauthenticated.
func GetUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(ContextKeyUserID).(int64)
	if !ok {
		return 0
	}
	return userID
}

// RequireAuth rejects requests without a valid bearer token and stashes
// the authenticated user id in the request context.
func RequireAuth(validator JWTValidator, users UserValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized - missing bearer token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			if err := users.ValidateUser(ctx, claims); err != nil {
				logger.WarnContext(ctx, "unauthorized - unknown token subject",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Please login to continue")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyUserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}

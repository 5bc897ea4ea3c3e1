package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/planejacasar/wedding-backend/internal/http/response"
	"github.com/planejacasar/wedding-backend/pkg/auth"
	"github.com/planejacasar/wedding-backend/pkg/logger"
)

type ctxKey string

const ctxClaims ctxKey = "claims"

// RequireAuth validates the bearer token and stores the claims on the
// request context. The three failure modes carry distinct codes so
// clients can tell a missing header from a malformed or rejected token.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" {
				response.WriteError(w, http.StatusUnauthorized, response.CodeNoToken, "authorization header is required")
				return
			}
			if !strings.HasPrefix(authz, "Bearer ") {
				response.WriteError(w, http.StatusUnauthorized, response.CodeInvalidTokenFormat, "authorization header must be a bearer token")
				return
			}

			raw := strings.TrimPrefix(authz, "Bearer ")
			claims, err := auth.Parse(raw, secret)
			if err != nil {
				response.WriteError(w, http.StatusUnauthorized, response.CodeInvalidToken, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the parsed token claims, or nil outside RequireAuth.
func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(ctxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

// UserID is a shortcut for the authenticated user's id.
func UserID(r *http.Request) string {
	if c := Claims(r); c != nil {
		return c.UserID
	}
	return ""
}

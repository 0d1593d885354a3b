package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/imclatam/imc-backend/internal/domain"
	"github.com/imclatam/imc-backend/internal/token"
)

type contextKey string

const authUserKey contextKey = "auth_user"

// AuthUserFrom returns the identity placed in the context by AuthMiddleware.
func AuthUserFrom(ctx context.Context) (domain.AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(domain.AuthUser)
	return user, ok
}

// WithAuthUser injects an identity directly, bypassing token verification.
func WithAuthUser(ctx context.Context, user domain.AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// AuthMiddleware rejects requests without a valid bearer token before any
// handler logic runs, and injects the token's identity into the context.
func AuthMiddleware(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			if tokenStr == header {
				writeError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			user, err := issuer.Verify(tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

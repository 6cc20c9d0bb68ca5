package common

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// UserFromContext returns the identity attached by AuthMiddleware.
func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(*AuthUser)
	return user, ok
}

// ContextWithUser is exposed for handler tests.
func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// AuthMiddleware is the session guard applied to every protected route:
// extract the bearer token, validate it, resolve the referenced user and
// attach the identity to the request context. Any failure short-circuits
// with the mapped status code.
func AuthMiddleware(tokens *TokenManager, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				WriteError(w, NewUnauthorizedError("authorization required"))
				return
			}

			// header = "Bearer <token>"
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, NewUnauthorizedError("invalid authorization header"))
				return
			}

			claims, err := tokens.ValidToken(parts[1])
			if err != nil {
				WriteError(w, err)
				return
			}

			user, err := resolver.ResolveUser(r.Context(), claims.UserID)
			if err != nil {
				WriteError(w, err)
				return
			}

			ctx := ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

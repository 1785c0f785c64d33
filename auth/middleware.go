package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/recipebox-go/apperror"
	"github.com/user/recipebox-go/httpx"
	"github.com/user/recipebox-go/i18n"
	"github.com/user/recipebox-go/users"
)

// TokenResolver is the part of Service the middleware needs.
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*users.User, error)
}

// TokenMiddleware authenticates requests carrying an
// "Authorization: Token {key}" header. On success the resolved user is placed
// in the request context; every failure is a 401.
func TokenMiddleware(resolver TokenResolver, catalog *i18n.Catalog) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpx.WriteError(w, apperror.NewAuthError(catalog.Text("auth_header_missing"), nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "token") || parts[1] == "" {
				httpx.WriteError(w, apperror.NewAuthError(catalog.Text("auth_header_malformed"), nil))
				return
			}

			user, err := resolver.ResolveToken(r.Context(), parts[1])
			if err != nil {
				httpx.WriteError(w, err)
				return
			}

			ctx := users.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/auth"
	"github.com/easyhomework/backend/internal/response"
)

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is missing or uses another scheme.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth is middleware that validates the bearer token and injects the
// caller's identity into the request context.
func RequireAuth(tokens TokenVerifier, errs *response.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				errs.Error(w, r, apperr.ErrUnauthenticated)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				errs.Error(w, r, apperr.ErrForbidden)
				return
			}

			ctx := auth.WithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

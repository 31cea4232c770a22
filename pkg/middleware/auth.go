package middleware

import (
	"context"
	"net/http"

	"github.com/plantnet-dev/plantnet/pkg/auth"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/response"
)

// emailKey is the unexported context key for the verified identity claim.
type emailKey struct{}

// EmailFromCtx returns the verified email stored by VerifyToken.
func EmailFromCtx(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(emailKey{}).(string)
	return email, ok && email != ""
}

// WithEmail stores a verified email on the request context. Exposed for
// tests that exercise gated handlers directly.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

// VerifyToken reads the session cookie, validates the token and stores the
// identity claim in the request context. Absent, malformed or expired
// tokens get a 401 with a structured JSON body.
func VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.WithCtx(r.Context()).Debug("token rejected", "error", err)
			response.Unauthorized(w)
			return
		}

		ctx := WithEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

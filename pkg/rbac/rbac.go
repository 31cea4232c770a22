// Package rbac gates role-scoped routes. The role comes from the user's
// stored record on every request, not from the token, so a role change
// takes effect without re-issuing the session.
package rbac

import (
	"context"
	"net/http"

	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/middleware"
	"github.com/plantnet-dev/plantnet/pkg/response"
)

// RoleResolver looks up the stored role for an identity.
// An absent user record is ("", nil); only store failures return an error.
type RoleResolver interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

// RoleResolverFunc adapts a plain function to RoleResolver.
type RoleResolverFunc func(ctx context.Context, email string) (string, error)

func (f RoleResolverFunc) RoleOf(ctx context.Context, email string) (string, error) {
	return f(ctx, email)
}

// Require returns middleware that allows access only to identities whose
// stored role is one of roles. It must run after middleware.VerifyToken.
// Missing user record or mismatched role gets a 403.
func Require(resolver RoleResolver, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := middleware.EmailFromCtx(r)
			if !ok {
				response.Unauthorized(w)
				return
			}

			role, err := resolver.RoleOf(r.Context(), email)
			if err != nil {
				logger.WithCtx(r.Context()).Error("role lookup failed", "email", email, "error", err)
				response.InternalError(w)
				return
			}
			if !allowed[role] {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

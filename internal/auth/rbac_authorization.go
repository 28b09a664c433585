package auth

import (
	"context"
	"log/slog"
	"net/http"
)

// ScreenAuthorizer answers per-screen access questions for the caller in ctx.
type ScreenAuthorizer interface {
	HasReadPermission(ctx context.Context, screen string) bool
	HasWritePermission(ctx context.Context, screen string) bool
}

type RBACAuthorization struct {
	authorizer ScreenAuthorizer
	logger     *slog.Logger
}

func NewRBACAuthorization(authorizer ScreenAuthorizer, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		authorizer: authorizer,
		logger:     logger,
	}
}

func (ra *RBACAuthorization) check(next http.Handler, allowed func(r *http.Request, p *Principal) bool, requirement string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			ra.logger.WarnContext(r.Context(), "authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !allowed(r, principal) {
			ra.logger.WarnContext(r.Context(), "access denied",
				"username", principal.Username,
				"requirement", requirement,
				"roles", principal.Roles)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRead admits callers with read access to screen.
func (ra *RBACAuthorization) RequireRead(screen string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.check(next, func(r *http.Request, _ *Principal) bool {
			return ra.authorizer.HasReadPermission(r.Context(), screen)
		}, "read:"+screen)
	}
}

// RequireWrite admits callers with write access to screen.
func (ra *RBACAuthorization) RequireWrite(screen string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.check(next, func(r *http.Request, _ *Principal) bool {
			return ra.authorizer.HasWritePermission(r.Context(), screen)
		}, "write:"+screen)
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.check(next, func(_ *http.Request, p *Principal) bool {
			return p.IsAdmin()
		}, "admin")
	}
}

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
)

// RequireRoles admits callers holding at least one of roles. Role names match
// case-insensitively and with or without the ROLE_ prefix.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				writeAppError(w, internal.NewUnauthorizedError("Authentication required", internal.ErrCodeInvalidToken))
				return
			}

			if !HasAnyRole(principal, roles...) {
				slog.WarnContext(r.Context(), "Access denied: user lacks required roles",
					"user_id", principal.ID,
					"required_roles", roles,
					"user_roles", principal.Roles)
				writeAppError(w, internal.NewForbiddenError("Insufficient role", internal.ErrCodeAccessDenied))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HasAnyRole reports whether p holds one of roles.
func HasAnyRole(p *auth.Principal, roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) || p.HasRole("ROLE_"+role) {
			return true
		}
	}
	return false
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

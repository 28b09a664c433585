package middleware

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/pkg/logger"
)

// UserContext copies the authenticated principal's id into the request
// context and the scoped logger. It must run after the auth middleware.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		userID := strconv.FormatInt(principal.ID, 10)
		ctx := internal.ContextWithUserID(r.Context(), userID)
		ctx = logger.With(ctx, "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package permission

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/internal/metrics"
)

// GrantSource loads the permission rows attached to a set of roles.
type GrantSource interface {
	GrantsForRoles(ctx context.Context, roleIDs []int64) ([]Grant, error)
}

// Resolver answers "may the current caller read/write screen X". It fails
// closed: an anonymous caller or a lookup error resolves to AccessNone.
type Resolver struct {
	source GrantSource
	logger *slog.Logger
}

func NewResolver(source GrantSource, logger *slog.Logger) *Resolver {
	return &Resolver{source: source, logger: logger}
}

func (r *Resolver) grants(ctx context.Context) ([]Grant, bool) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok || len(principal.RoleIDs) == 0 {
		return nil, false
	}
	grants, err := r.source.GrantsForRoles(ctx, principal.RoleIDs)
	if err != nil {
		r.logger.WarnContext(ctx, "permission lookup failed, denying", "username", principal.Username, "error", err)
		return nil, false
	}
	return grants, true
}

// Access resolves the caller's access to screen.
func (r *Resolver) Access(ctx context.Context, screen string) Access {
	grants, ok := r.grants(ctx)
	if !ok {
		return AccessNone
	}
	return Resolve(grants, normalizeScreen(screen))
}

func (r *Resolver) HasReadPermission(ctx context.Context, screen string) bool {
	if r.Access(ctx, screen).CanRead() {
		return true
	}
	metrics.PermissionDenied(screen, "read")
	return false
}

func (r *Resolver) HasWritePermission(ctx context.Context, screen string) bool {
	if r.Access(ctx, screen).CanWrite() {
		return true
	}
	metrics.PermissionDenied(screen, "write")
	return false
}

// RequireWritePermission guards mutating operations.
func (r *Resolver) RequireWritePermission(ctx context.Context, screen string) error {
	if !r.HasWritePermission(ctx, screen) {
		return internal.NewAccessDeniedError(screen)
	}
	return nil
}

// Snapshot resolves every screen for the caller at once. Anonymous callers
// and lookup failures get an empty snapshot.
func (r *Resolver) Snapshot(ctx context.Context) *Snapshot {
	grants, _ := r.grants(ctx)
	return NewSnapshot(grants)
}

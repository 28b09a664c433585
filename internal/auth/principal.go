package auth

import (
	"context"
	"strings"
)

type ctxKey string

const ContextPrincipalKey ctxKey = "principal"

// Principal is the authenticated caller as loaded for the current request.
type Principal struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	RoleIDs  []int64  `json:"-"`
}

func (p *Principal) HasRole(name string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// IsAdmin accepts both the bare and the ROLE_-prefixed administrator authority.
func (p *Principal) IsAdmin() bool {
	return p.HasRole("ADMIN") || p.HasRole("ROLE_ADMIN")
}

// Authorities returns the role names in ROLE_ prefixed form.
func (p *Principal) Authorities() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Roles))
	for _, r := range p.Roles {
		if strings.HasPrefix(r, "ROLE_") {
			out = append(out, r)
			continue
		}
		out = append(out, "ROLE_"+r)
	}
	return out
}

func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextPrincipalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ContextPrincipalKey).(*Principal)
	return p, ok && p != nil
}

// UsernameFromContext returns the caller's username, or "anonymous".
func UsernameFromContext(ctx context.Context) string {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.Username
	}
	return "anonymous"
}

package permission

import (
	"context"
	"net/http"
	"sort"

	"github.com/frahmantamala/toolbox/internal/transport"
)

type ServiceAPI interface {
	FindByRoleID(ctx context.Context, roleID int64) ([]PermissionDTO, error)
	SavePermission(ctx context.Context, dto SavePermissionDTO) (*PermissionDTO, error)
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Resolver *Resolver
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, resolver *Resolver) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Resolver:    resolver,
	}
}

func (h *Handler) GetByRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := h.PathID(r, "roleID")
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	perms, err := h.Service.FindByRoleID(r.Context(), roleID)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"permissions": perms})
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var dto SavePermissionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	saved, err := h.Service.SavePermission(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.Count(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]int64{"count": n})
}

type screenAccess struct {
	Screen   string `json:"screen"`
	CanRead  bool   `json:"can_read"`
	CanWrite bool   `json:"can_write"`
}

// Mine lists the caller's effective access per screen.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	snap := h.Resolver.Snapshot(r.Context())
	screens := snap.Screens()
	sort.Strings(screens)

	out := make([]screenAccess, 0, len(screens))
	for _, s := range screens {
		a := snap.Access(s)
		out = append(out, screenAccess{Screen: s, CanRead: a.CanRead(), CanWrite: a.CanWrite()})
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"screens": out})
}

package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/toolbox/internal/transport"
)

type ServiceAPI interface {
	TilesForDashboard(ctx context.Context) []Tile
	TilesForMenu(ctx context.Context) []Tile
	AllTilesForAdmin(ctx context.Context) ([]Tile, error)
}

type TilesResponse struct {
	Tiles []Tile `json:"tiles"`
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, TilesResponse{Tiles: h.Service.TilesForDashboard(r.Context())})
}

func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, TilesResponse{Tiles: h.Service.TilesForMenu(r.Context())})
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	tiles, err := h.Service.AllTilesForAdmin(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, TilesResponse{Tiles: tiles})
}

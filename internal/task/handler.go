package task

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/transport"
)

const dueDateLayout = "2006-01-02"

type ServiceAPI interface {
	CreateTask(ctx context.Context, description string, dueDate *time.Time) (*Task, error)
	List(ctx context.Context, limit, offset int) ([]*Task, error)
}

type CreateTaskDTO struct {
	Description string `json:"description"`
	DueDate     string `json:"due_date,omitempty"`
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tasks, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateTaskDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	var dueDate *time.Time
	if dto.DueDate != "" {
		d, err := time.Parse(dueDateLayout, dto.DueDate)
		if err != nil {
			h.WriteAppError(w, r, internal.NewValidationFieldError("due_date", "due_date must be formatted as YYYY-MM-DD", internal.ErrCodeValidationFailed))
			return
		}
		dueDate = &d
	}

	created, err := h.Service.CreateTask(r.Context(), dto.Description, dueDate)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

package assistant

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/aicontext"
	"github.com/frahmantamala/toolbox/internal/transport"
	"github.com/frahmantamala/toolbox/pkg/logger"
	"github.com/go-chi/chi"
)

const (
	msgChatFailed    = "Unable to process your request. Please try again later."
	msgAnalyzeFailed = "Unable to analyze code. Please try again later."
	msgQueryFailed   = "Unable to query database. Please try again later."
	msgContextFailed = "Unable to retrieve context information."

	maxQueryBodyBytes = 64 << 10
)

type ContextAPI interface {
	SpecificContext(ctx context.Context, contextType string) string
	QueryDatabase(ctx context.Context, query string) string
	AnalyzeFile(relPath string) (string, error)
}

type ChatMessageDTO struct {
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

type AnalyzeCodeDTO struct {
	Code     string `json:"code"`
	Context  string `json:"context"`
	Provider string `json:"provider"`
}

type ProviderDTO struct {
	Name        Provider `json:"name"`
	DisplayName string   `json:"displayName"`
	Available   bool     `json:"available"`
}

type availability interface {
	Available(p Provider) bool
}

type Handler struct {
	*transport.BaseHandler
	Service         ServiceAPI
	Context         ContextAPI
	DefaultProvider Provider
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, contexts ContextAPI, defaultProvider Provider) *Handler {
	if defaultProvider == "" {
		defaultProvider = ProviderClaude
	}
	return &Handler{
		BaseHandler:     baseHandler,
		Service:         svc,
		Context:         contexts,
		DefaultProvider: defaultProvider,
	}
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, msgChatFailed, func() (string, error) {
		var dto ChatMessageDTO
		if err := h.DecodeJSON(r, &dto); err != nil {
			return "", err
		}
		if strings.TrimSpace(dto.Message) == "" {
			return "", internal.NewValidationError("message is required", internal.ErrCodeValidationFailed)
		}
		provider, err := h.provider(dto.Provider)
		if err != nil {
			return "", err
		}
		return h.Service.Chat(r.Context(), dto.Message, provider), nil
	})
}

func (h *Handler) AnalyzeCode(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, msgAnalyzeFailed, func() (string, error) {
		var dto AnalyzeCodeDTO
		if err := h.DecodeJSON(r, &dto); err != nil {
			return "", err
		}
		if strings.TrimSpace(dto.Code) == "" {
			return "", internal.NewValidationError("code is required", internal.ErrCodeValidationFailed)
		}
		provider, err := h.provider(dto.Provider)
		if err != nil {
			return "", err
		}
		return h.Service.AnalyzeCode(r.Context(), dto.Code, dto.Context, provider), nil
	})
}

// QueryDatabase takes the raw request body as the query text.
func (h *Handler) QueryDatabase(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, msgQueryFailed, func() (string, error) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxQueryBodyBytes))
		if err != nil {
			return "", internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed).WithCause(err)
		}
		return h.Context.QueryDatabase(r.Context(), string(body)), nil
	})
}

func (h *Handler) GetContext(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, msgContextFailed, func() (string, error) {
		return h.Context.SpecificContext(r.Context(), chi.URLParam(r, "type")), nil
	})
}

func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, msgContextFailed, func() (string, error) {
		content, err := h.Context.AnalyzeFile(r.URL.Query().Get("path"))
		if errors.Is(err, aicontext.ErrOutsideProject) {
			return "", internal.NewValidationError("path must stay inside the project", internal.ErrCodeValidationFailed).WithCause(err)
		}
		return content, err
	})
}

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	avail, _ := h.Service.(availability)

	out := make([]ProviderDTO, 0, len(providerTable))
	for _, p := range Providers() {
		out = append(out, ProviderDTO{
			Name:        p,
			DisplayName: p.DisplayName(),
			Available:   avail != nil && avail.Available(p),
		})
	}
	h.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) provider(raw string) (Provider, error) {
	if strings.TrimSpace(raw) == "" {
		return h.DefaultProvider, nil
	}
	return ParseProvider(raw)
}

// respond writes produce's text, or fallback when it fails or panics.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fallback string, produce func() (string, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.From(r.Context()).Error("chat endpoint panicked", "path", r.URL.Path, "panic", rec)
			h.WriteText(w, http.StatusInternalServerError, fallback)
		}
	}()

	body, err := produce()
	if err != nil {
		status, detail := http.StatusInternalServerError, err.Error()
		if appErr, ok := internal.IsAppError(err); ok {
			if appErr.StatusCode != 0 {
				status = appErr.StatusCode
			}
			detail = appErr.GetDetailedMessage()
		}
		logger.From(r.Context()).Warn("chat endpoint failed", "path", r.URL.Path, "status", status, "error", detail)
		h.WriteText(w, status, fallback)
		return
	}
	h.WriteText(w, http.StatusOK, body)
}

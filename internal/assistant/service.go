package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal/metrics"
)

const systemPreamble = "You are an AI assistant for the Toolbox administration application. " +
	"Help with code analysis, suggestions, and framework guidance.\n\n" +
	"Project Context:\n"

type ContextSource interface {
	FullContext(ctx context.Context) string
}

type ServiceAPI interface {
	Chat(ctx context.Context, message string, provider Provider) string
	AnalyzeCode(ctx context.Context, code, codeContext string, provider Provider) string
}

// Service dispatches chat turns to the configured providers. Every outcome is
// returned as text; callers never see a raw provider error.
type Service struct {
	models  map[Provider]ChatModel
	context ContextSource
	logger  *slog.Logger
}

func NewService(models map[Provider]ChatModel, source ContextSource, logger *slog.Logger) *Service {
	if models == nil {
		models = map[Provider]ChatModel{}
	}
	return &Service{
		models:  models,
		context: source,
		logger:  logger,
	}
}

// Available reports whether a client is configured for p.
func (s *Service) Available(p Provider) bool {
	_, ok := s.models[p]
	return ok
}

func (s *Service) Chat(ctx context.Context, message string, provider Provider) string {
	projectContext := s.context.FullContext(ctx)

	model, ok := s.models[provider]
	if !ok {
		s.logger.InfoContext(ctx, "chat provider not configured", "provider", provider)
		metrics.ChatRequest(string(provider), "unavailable")
		return setupMessage(provider, projectContext)
	}

	reply, err := model.Call(ctx, Prompt{
		System: systemPreamble + projectContext,
		User:   message,
	})
	if err != nil {
		if isAuthFailure(err) {
			s.logger.WarnContext(ctx, "chat provider rejected credentials", "provider", provider, "error", err)
			metrics.ChatRequest(string(provider), "auth_failed")
			return setupMessage(provider, projectContext)
		}
		s.logger.ErrorContext(ctx, "chat provider call failed", "provider", provider, "error", err)
		reply = fmt.Sprintf("Error with %s: %s", provider.DisplayName(), err.Error())
		if ContainsLeakage(reply) {
			metrics.ChatRequest(string(provider), "refused")
			return RefusalMessage
		}
		metrics.ChatRequest(string(provider), "error")
		return reply
	}

	if ContainsLeakage(reply) {
		s.logger.WarnContext(ctx, "chat reply withheld by leakage scan", "provider", provider)
		metrics.ChatRequest(string(provider), "refused")
		return RefusalMessage
	}

	metrics.ChatRequest(string(provider), "ok")
	return reply
}

func (s *Service) AnalyzeCode(ctx context.Context, code, codeContext string, provider Provider) string {
	prompt := fmt.Sprintf(
		"Analyze this code:\n\nContext: %s\n\nCode:\n```\n%s\n```\n\n"+
			"Provide: quality assessment, improvements, framework suggestions",
		codeContext, code,
	)
	return s.Chat(ctx, prompt, provider)
}

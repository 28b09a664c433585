package aicontext

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/toolbox/internal/core/events"
	"golang.org/x/sync/errgroup"
)

const availableContexts = "Available contexts: code, database, git"

type CodeSource interface {
	ProjectContext(ctx context.Context) string
	AnalyzeFile(relPath string) (string, error)
}

type DatabaseSource interface {
	DatabaseContext(ctx context.Context) string
}

type GitSource interface {
	GitContext(ctx context.Context) string
}

type Querier interface {
	Query(ctx context.Context, input string) string
}

// Coordinator assembles the context blocks handed to chat providers.
type Coordinator struct {
	code   CodeSource
	db     DatabaseSource
	git    GitSource
	query  Querier
	cache  Cache
	logger *slog.Logger
}

func NewCoordinator(code CodeSource, db DatabaseSource, git GitSource, query Querier, cache Cache, logger *slog.Logger) *Coordinator {
	if cache == nil {
		cache = NoopCache()
	}
	return &Coordinator{
		code:   code,
		db:     db,
		git:    git,
		query:  query,
		cache:  cache,
		logger: logger,
	}
}

// FullContext gathers the three blocks concurrently. A failing source
// contributes its own error line instead of failing the whole context.
func (c *Coordinator) FullContext(ctx context.Context) string {
	if cached, ok := c.cache.Get(ctx); ok {
		return cached
	}

	var codeCtx, dbCtx, gitCtx string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		codeCtx = c.code.ProjectContext(gctx)
		return nil
	})
	g.Go(func() error {
		dbCtx = c.db.DatabaseContext(gctx)
		return nil
	})
	g.Go(func() error {
		gitCtx = c.git.GitContext(gctx)
		return nil
	})
	_ = g.Wait()

	var b strings.Builder
	b.WriteString("# Complete Project Context\n\n")
	b.WriteString(codeCtx)
	b.WriteString("\n")
	b.WriteString(dbCtx)
	b.WriteString("\n")
	b.WriteString(gitCtx)
	b.WriteString("\n")

	full := b.String()
	if ctx.Err() == nil {
		c.cache.Set(ctx, full)
	}
	return full
}

// SpecificContext returns a single block selected by a loose type token.
func (c *Coordinator) SpecificContext(ctx context.Context, contextType string) string {
	switch strings.ToLower(strings.TrimSpace(contextType)) {
	case "code", "project":
		return c.code.ProjectContext(ctx)
	case "database", "db", "schema":
		return c.db.DatabaseContext(ctx)
	case "git", "repository", "repo":
		return c.git.GitContext(ctx)
	default:
		return availableContexts
	}
}

func (c *Coordinator) QueryDatabase(ctx context.Context, query string) string {
	return c.query.Query(ctx, query)
}

func (c *Coordinator) AnalyzeFile(relPath string) (string, error) {
	return c.code.AnalyzeFile(relPath)
}

// InvalidateOn drops the cached context whenever one of the given events is published.
func (c *Coordinator) InvalidateOn(bus *events.EventBus, eventTypes ...string) {
	for _, t := range eventTypes {
		bus.Subscribe(t, func(ctx context.Context, e events.Event) error {
			c.logger.DebugContext(ctx, "invalidating project context cache", "event_type", e.EventType())
			c.cache.Invalidate(ctx)
			return nil
		})
	}
}

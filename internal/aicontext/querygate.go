package aicontext

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/frahmantamala/toolbox/internal/metrics"
)

const maxResultRows = 10

const (
	msgEmptyQuery    = "Query cannot be empty"
	msgForbidden     = "Query contains forbidden keywords or characters"
	msgWrongShape    = "Only queries of the form SELECT * FROM <table> are allowed"
	msgUnknownTable  = "Unknown table. Only existing tables can be queried"
	msgExecuteFailed = "Unable to execute query. Please check your syntax."
	msgNoResults     = "Query returned no results"
)

var (
	forbiddenKeywords = regexp.MustCompile(`(?i)\b(DROP|DELETE|UPDATE|INSERT|ALTER|CREATE|TRUNCATE|EXEC|EXECUTE|UNION|JOIN)\b`)
	forbiddenTokens   = []string{"--", "/*", "*/", ";"}
	selectAllShape    = regexp.MustCompile(`(?i)^SELECT\s+\*\s+FROM\s+([A-Za-z_][A-Za-z0-9_]*)$`)
)

// TableCatalog is the part of the schema inspector the gate needs.
type TableCatalog interface {
	Tables(ctx context.Context) ([]string, error)
	CountRows(ctx context.Context, table string) (int64, error)
	SelectRows(ctx context.Context, table string, limit int) ([]Row, error)
}

// QueryGate accepts only "SELECT * FROM <table>" for tables present in the
// live catalog and runs fixed statements built from the catalog's own
// spelling of the table name. Caller text never reaches the database.
type QueryGate struct {
	catalog TableCatalog
	logger  *slog.Logger
}

func NewQueryGate(catalog TableCatalog, logger *slog.Logger) *QueryGate {
	return &QueryGate{catalog: catalog, logger: logger}
}

// Check validates input and returns the catalog-cased table name, or a
// user-facing refusal.
func (g *QueryGate) Check(ctx context.Context, input string) (string, string, bool) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", g.reject(ctx, "empty", msgEmptyQuery), false
	}
	if forbiddenKeywords.MatchString(query) {
		return "", g.reject(ctx, "keyword", msgForbidden), false
	}
	for _, tok := range forbiddenTokens {
		if strings.Contains(query, tok) {
			return "", g.reject(ctx, "token", msgForbidden), false
		}
	}
	m := selectAllShape.FindStringSubmatch(query)
	if m == nil {
		return "", g.reject(ctx, "shape", msgWrongShape), false
	}

	tables, err := g.catalog.Tables(ctx)
	if err != nil {
		g.logger.WarnContext(ctx, "failed to read catalog for query", "error", err)
		return "", g.reject(ctx, "catalog", msgExecuteFailed), false
	}
	for _, t := range tables {
		if strings.EqualFold(t, m[1]) {
			return t, "", true
		}
	}
	return "", g.reject(ctx, "unknown_table", msgUnknownTable), false
}

// Query runs the gated query and renders at most ten rows.
func (g *QueryGate) Query(ctx context.Context, input string) string {
	table, refusal, ok := g.Check(ctx, input)
	if !ok {
		return refusal
	}

	total, err := g.catalog.CountRows(ctx, table)
	if err != nil {
		g.logger.WarnContext(ctx, "gated count failed", "table", table, "error", err)
		return msgExecuteFailed
	}
	if total == 0 {
		return msgNoResults
	}
	rows, err := g.catalog.SelectRows(ctx, table, maxResultRows)
	if err != nil {
		g.logger.WarnContext(ctx, "gated select failed", "table", table, "error", err)
		return msgExecuteFailed
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Query Results (%d rows):\n", total)
	for i, row := range rows {
		fmt.Fprintf(&b, "Row %d: %s\n", i+1, row)
	}
	if total > maxResultRows {
		fmt.Fprintf(&b, "... and %d more rows", total-maxResultRows)
	}
	g.logger.InfoContext(ctx, "gated query executed", "table", table, "rows", total)
	return b.String()
}

func (g *QueryGate) reject(ctx context.Context, reason, message string) string {
	metrics.QueryRejected(reason)
	g.logger.InfoContext(ctx, "query rejected", "reason", reason)
	return message
}

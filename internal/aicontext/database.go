package aicontext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
)

type Column struct {
	Name     string `db:"name"`
	Type     string `db:"type"`
	Nullable bool   `db:"nullable"`
}

// catalogQueries holds the dialect-specific statements that read the live
// catalog. Both return rows shaped for Column or a single name column.
type catalogQueries struct {
	tables  string
	columns string
}

var (
	postgresCatalog = catalogQueries{
		tables: `SELECT table_name FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
			ORDER BY table_name`,
		columns: `SELECT column_name AS name, data_type AS type, is_nullable = 'YES' AS nullable
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = ?
			ORDER BY ordinal_position`,
	}
	sqliteCatalog = catalogQueries{
		tables: `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
			ORDER BY name`,
		columns: `SELECT name, type, "notnull" = 0 AS nullable
			FROM pragma_table_info(?)
			ORDER BY cid`,
	}
)

// SchemaInspector reads table metadata from the database's own catalog.
type SchemaInspector struct {
	db      *sqlx.DB
	catalog catalogQueries
	logger  *slog.Logger
}

func NewSchemaInspector(db *sqlx.DB, logger *slog.Logger) *SchemaInspector {
	catalog := postgresCatalog
	switch db.DriverName() {
	case "sqlite3", "sqlite":
		catalog = sqliteCatalog
	}
	return &SchemaInspector{db: db, catalog: catalog, logger: logger}
}

// Tables lists the user tables currently present in the catalog.
func (s *SchemaInspector) Tables(ctx context.Context) ([]string, error) {
	var tables []string
	if err := s.db.SelectContext(ctx, &tables, s.catalog.tables); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *SchemaInspector) Columns(ctx context.Context, table string) ([]Column, error) {
	var cols []Column
	if err := s.db.SelectContext(ctx, &cols, s.db.Rebind(s.catalog.columns), table); err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	return cols, nil
}

// CountRows counts the rows of a table named exactly as the catalog reports it.
func (s *SchemaInspector) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+quoteIdent(table)); err != nil {
		return 0, err
	}
	return n, nil
}

// DatabaseContext renders the schema and per-table row counts.
func (s *SchemaInspector) DatabaseContext(ctx context.Context) string {
	var b strings.Builder

	tables, err := s.Tables(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read database catalog", "error", err)
		b.WriteString("## Database Schema\nError reading database schema\n")
		return b.String()
	}

	b.WriteString("## Database Schema\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "### Table: %s\n", t)
		cols, err := s.Columns(ctx, t)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to read columns", "table", t, "error", err)
			b.WriteString("- Error reading columns\n\n")
			continue
		}
		for _, c := range cols {
			null := " NOT NULL"
			if c.Nullable {
				null = " NULL"
			}
			fmt.Fprintf(&b, "- %s (%s)%s\n", c.Name, c.Type, null)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Table Statistics\n")
	for _, t := range tables {
		n, err := s.CountRows(ctx, t)
		if err != nil {
			fmt.Fprintf(&b, "- %s: Error reading count\n", t)
			continue
		}
		fmt.Fprintf(&b, "- %s: %d records\n", t, n)
	}
	return b.String()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Row is one result row with its columns in select order.
type Row struct {
	Columns []string
	Values  []interface{}
}

func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		v := r.Values[i]
		if raw, ok := v.([]byte); ok {
			v = string(raw)
		}
		fmt.Fprintf(&b, "%s=%v", c, v)
	}
	b.WriteByte('}')
	return b.String()
}

// SelectRows returns the first limit rows of a table named exactly as the
// catalog reports it.
func (s *SchemaInspector) SelectRows(ctx context.Context, table string, limit int) ([]Row, error) {
	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []Row
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		out = append(out, Row{Columns: cols, Values: values})
	}
	return out, rows.Err()
}

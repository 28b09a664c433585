package aicontext_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal/aicontext"
	functionalareaDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/functionalarea"
	"github.com/frahmantamala/toolbox/internal/core/testdb"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func openCatalog() (*gorm.DB, *aicontext.SchemaInspector) {
	db, err := testdb.Open()
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(testdb.Close, db)

	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	return db, aicontext.NewSchemaInspector(sqlx.NewDb(sqlDB, "sqlite3"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedAreas(db *gorm.DB, n int) {
	for i := 0; i < n; i++ {
		area := &functionalareaDatamodel.FunctionalArea{
			Code:        fmt.Sprintf("%c%c", 'A'+i/26, 'A'+i%26),
			Name:        fmt.Sprintf("Area %02d", i),
			Description: "seeded",
		}
		Expect(db.Create(area).Error).To(Succeed())
	}
}

var _ = Describe("SchemaInspector", func() {
	var (
		db        *gorm.DB
		inspector *aicontext.SchemaInspector
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		db, inspector = openCatalog()
	})

	It("lists tables from the live catalog", func() {
		tables, err := inspector.Tables(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(tables).To(ContainElements("functional_areas", "permissions", "roles", "users", "tasks", "reference_table"))
	})

	It("renders schema and statistics", func() {
		seedAreas(db, 3)

		out := inspector.DatabaseContext(ctx)
		Expect(out).To(HavePrefix("## Database Schema\n"))
		Expect(out).To(ContainSubstring("### Table: functional_areas\n"))
		Expect(out).To(ContainSubstring("- code ("))
		Expect(out).To(ContainSubstring("\n## Table Statistics\n"))
		Expect(out).To(ContainSubstring("- functional_areas: 3 records\n"))
		Expect(out).To(ContainSubstring("- tasks: 0 records\n"))
	})

	It("marks nullable columns", func() {
		out := inspector.DatabaseContext(ctx)
		Expect(out).To(MatchRegexp(`- due_date \(.*\) NULL\n`))
		Expect(out).To(MatchRegexp(`- description \(.*\) NOT NULL\n`))
	})
})

var _ = Describe("QueryGate", func() {
	var (
		db   *gorm.DB
		gate *aicontext.QueryGate
		ctx  context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var inspector *aicontext.SchemaInspector
		db, inspector = openCatalog()
		gate = aicontext.NewQueryGate(inspector, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("accepts a known table regardless of case and uses the catalog spelling", func() {
		seedAreas(db, 2)

		table, _, ok := gate.Check(ctx, "select * from FUNCTIONAL_AREAS")
		Expect(ok).To(BeTrue())
		Expect(table).To(Equal("functional_areas"))

		out := gate.Query(ctx, "SELECT * FROM Functional_Areas")
		Expect(out).To(HavePrefix("Query Results (2 rows):\n"))
		Expect(out).To(ContainSubstring("Row 1: {id="))
		Expect(out).To(ContainSubstring("code=AA"))
	})

	It("caps output at ten rows", func() {
		seedAreas(db, 13)

		out := gate.Query(ctx, "SELECT * FROM functional_areas")
		Expect(out).To(HavePrefix("Query Results (13 rows):\n"))
		Expect(out).To(ContainSubstring("Row 10: "))
		Expect(out).NotTo(ContainSubstring("Row 11: "))
		Expect(out).To(HaveSuffix("... and 3 more rows"))
	})

	It("reports an empty table explicitly", func() {
		Expect(gate.Query(ctx, "SELECT * FROM tasks")).To(Equal("Query returned no results"))
	})

	DescribeTable("rejections",
		func(query, message string) {
			Expect(gate.Query(ctx, query)).To(Equal(message))
		},
		Entry("empty", "   ", "Query cannot be empty"),
		Entry("stacked statement", "SELECT * FROM USERS; DROP TABLE USERS", "Query contains forbidden keywords or characters"),
		Entry("trailing separator", "SELECT * FROM users;", "Query contains forbidden keywords or characters"),
		Entry("comment", "SELECT * FROM users -- hi", "Query contains forbidden keywords or characters"),
		Entry("block comment", "SELECT * FROM /* x */ users", "Query contains forbidden keywords or characters"),
		Entry("union", "SELECT * FROM users UNION SELECT * FROM roles", "Query contains forbidden keywords or characters"),
		Entry("join", "SELECT * FROM users JOIN roles", "Query contains forbidden keywords or characters"),
		Entry("lowercase delete", "delete from users", "Query contains forbidden keywords or characters"),
		Entry("where clause", "SELECT * FROM users WHERE id = 1", "Only queries of the form SELECT * FROM <table> are allowed"),
		Entry("column list", "SELECT id FROM users", "Only queries of the form SELECT * FROM <table> are allowed"),
		Entry("quoted identifier", `SELECT * FROM "users"`, "Only queries of the form SELECT * FROM <table> are allowed"),
		Entry("unknown table", "SELECT * FROM nope", "Unknown table. Only existing tables can be queried"),
	)

	It("does not mistake column-like words for keywords", func() {
		_, _, ok := gate.Check(ctx, "SELECT * FROM reference_table")
		Expect(ok).To(BeTrue())
	})
})

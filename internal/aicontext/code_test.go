package aicontext_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/frahmantamala/toolbox/internal/aicontext"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const sampleGoMod = `module example.com/sample

go 1.24.0

require (
	github.com/go-chi/chi v1.5.5
	gorm.io/gorm v1.30.5
	golang.org/x/text v0.28.0 // indirect
)
`

var _ = Describe("CodeAnalyzer", func() {
	var (
		root     string
		analyzer *aicontext.CodeAnalyzer
	)

	write := func(rel, body string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		write("go.mod", sampleGoMod)
		write("cmd/main.go", "package main\n")
		write("internal/auth/postgres/repo.go", "package postgres\n")
		write("internal/auth/postgres/deep/er/x.go", "package er\n")
		write(".git/HEAD", "ref: refs/heads/main\n")
		write("vendor/mod/x.go", "package mod\n")
		write("_scratch/notes.txt", "x")

		var err error
		analyzer, err = aicontext.NewCodeAnalyzer(root, slog.New(slog.NewTextHandler(io.Discard, nil)))
		Expect(err).NotTo(HaveOccurred())
	})

	It("lists directories up to three levels deep", func() {
		out := analyzer.ProjectContext(context.Background())
		Expect(out).To(HavePrefix("## Project Structure\n"))
		Expect(out).To(ContainSubstring("- cmd/\n"))
		Expect(out).To(ContainSubstring("- internal/auth/postgres/\n"))
		Expect(out).NotTo(ContainSubstring("internal/auth/postgres/deep/"))
	})

	It("skips hidden, vendored and underscore directories", func() {
		out := analyzer.ProjectContext(context.Background())
		Expect(out).NotTo(ContainSubstring(".git/"))
		Expect(out).NotTo(ContainSubstring("vendor/"))
		Expect(out).NotTo(ContainSubstring("_scratch/"))
	})

	It("summarises go.mod", func() {
		out := analyzer.ProjectContext(context.Background())
		Expect(out).To(ContainSubstring("\n## Key Files\n### go.mod\n- module example.com/sample\n- go 1.24.0\n"))
		Expect(out).To(ContainSubstring("- github.com/go-chi/chi v1.5.5\n"))
		Expect(out).NotTo(ContainSubstring("golang.org/x/text"))
		Expect(out).To(ContainSubstring("\n## Framework Info\nGo 1.24.0 + GORM + chi HTTP router\n"))
	})

	It("copes with a missing go.mod", func() {
		Expect(os.Remove(filepath.Join(root, "go.mod"))).To(Succeed())
		out := analyzer.ProjectContext(context.Background())
		Expect(out).To(ContainSubstring("No go.mod found\n"))
		Expect(out).To(HaveSuffix("## Framework Info\nGo\n"))
	})

	Describe("AnalyzeFile", func() {
		It("returns file content for a project path", func() {
			out, err := analyzer.AnalyzeFile("cmd/main.go")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("File: cmd/main.go\n\nContent:\npackage main\n"))
		})

		It("reports a missing file", func() {
			out, err := analyzer.AnalyzeFile("cmd/nope.go")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("File not found: cmd/nope.go"))
		})

		It("reports a directory as not found", func() {
			out, err := analyzer.AnalyzeFile("cmd")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("File not found: cmd"))
		})

		DescribeTable("refuses paths outside the project",
			func(path string) {
				_, err := analyzer.AnalyzeFile(path)
				Expect(err).To(MatchError(aicontext.ErrOutsideProject))
			},
			Entry("parent traversal", "../etc/passwd"),
			Entry("nested traversal", "cmd/../../secret"),
			Entry("absolute path", "/etc/passwd"),
			Entry("empty path", ""),
		)

		It("refuses a symlink that leaves the project", func() {
			outside := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(outside, "secret"), []byte("s"), 0o600)).To(Succeed())
			Expect(os.Symlink(filepath.Join(outside, "secret"), filepath.Join(root, "link"))).To(Succeed())

			_, err := analyzer.AnalyzeFile("link")
			Expect(err).To(MatchError(aicontext.ErrOutsideProject))
		})
	})
})

package aicontext

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

const (
	structureDepth = 3
	maxFileBytes   = 256 << 10
)

// ErrOutsideProject is returned for paths that resolve outside the project root.
var ErrOutsideProject = errors.New("path is outside the project root")

var skippedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
}

// frameworks maps module paths to the names reported under Framework Info.
var frameworks = []struct {
	module string
	name   string
}{
	{"github.com/go-chi/chi", "chi HTTP router"},
	{"gorm.io/gorm", "GORM"},
	{"github.com/jmoiron/sqlx", "sqlx"},
	{"github.com/jackc/pgx/v5", "pgx PostgreSQL driver"},
	{"github.com/pressly/goose/v3", "goose migrations"},
	{"github.com/spf13/cobra", "Cobra CLI"},
	{"github.com/spf13/viper", "Viper configuration"},
	{"github.com/redis/go-redis/v9", "go-redis"},
	{"github.com/prometheus/client_golang", "Prometheus client"},
	{"github.com/onsi/ginkgo/v2", "Ginkgo/Gomega tests"},
}

// CodeAnalyzer describes the source tree below root.
type CodeAnalyzer struct {
	root   string
	logger *slog.Logger
}

func NewCodeAnalyzer(root string, logger *slog.Logger) (*CodeAnalyzer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	return &CodeAnalyzer{root: abs, logger: logger}, nil
}

func (c *CodeAnalyzer) ProjectContext(ctx context.Context) string {
	var b strings.Builder

	b.WriteString("## Project Structure\n")
	if err := c.writeStructure(ctx, &b); err != nil {
		c.logger.WarnContext(ctx, "failed to walk project tree", "error", err)
		b.WriteString("Error reading project structure\n")
	}

	b.WriteString("\n## Key Files\n")
	mod, err := c.readModule()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.WriteString("No go.mod found\n")
	case err != nil:
		c.logger.WarnContext(ctx, "failed to parse go.mod", "error", err)
		b.WriteString("Could not read go.mod\n")
	default:
		writeModule(&b, mod)
	}

	b.WriteString("\n## Framework Info\n")
	writeFrameworks(&b, mod)

	return b.String()
}

func (c *CodeAnalyzer) writeStructure(ctx context.Context, b *strings.Builder) error {
	return filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() || path == c.root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || skippedDirs[name] {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1
		if depth > structureDepth {
			return filepath.SkipDir
		}
		fmt.Fprintf(b, "- %s/\n", filepath.ToSlash(rel))
		return nil
	})
}

func (c *CodeAnalyzer) readModule() (*modfile.File, error) {
	path := filepath.Join(c.root, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return modfile.ParseLax(path, data, nil)
}

func writeModule(b *strings.Builder, mod *modfile.File) {
	b.WriteString("### go.mod\n")
	if mod.Module != nil {
		fmt.Fprintf(b, "- module %s\n", mod.Module.Mod.Path)
	}
	if mod.Go != nil {
		fmt.Fprintf(b, "- go %s\n", mod.Go.Version)
	}
	direct := make([]string, 0, len(mod.Require))
	for _, r := range mod.Require {
		if !r.Indirect {
			direct = append(direct, r.Mod.Path+" "+r.Mod.Version)
		}
	}
	if len(direct) == 0 {
		return
	}
	b.WriteString("### Direct dependencies:\n")
	for _, d := range direct {
		fmt.Fprintf(b, "- %s\n", d)
	}
}

func writeFrameworks(b *strings.Builder, mod *modfile.File) {
	if mod == nil {
		b.WriteString("Go\n")
		return
	}
	required := make(map[string]bool, len(mod.Require))
	for _, r := range mod.Require {
		required[r.Mod.Path] = true
	}
	names := make([]string, 0)
	for _, f := range frameworks {
		if required[f.module] {
			names = append(names, f.name)
		}
	}
	sort.Strings(names)

	lang := "Go"
	if mod.Go != nil {
		lang += " " + mod.Go.Version
	}
	if len(names) == 0 {
		fmt.Fprintf(b, "%s\n", lang)
		return
	}
	fmt.Fprintf(b, "%s + %s\n", lang, strings.Join(names, " + "))
}

// AnalyzeFile returns the content of a file addressed relative to the
// project root.
func (c *CodeAnalyzer) AnalyzeFile(relPath string) (string, error) {
	full, err := c.resolve(relPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Sprintf("File not found: %s", relPath), nil
	}
	if info.Size() > maxFileBytes {
		return fmt.Sprintf("File too large to analyze: %s (%d bytes)", relPath, info.Size()), nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", relPath, err)
	}
	return fmt.Sprintf("File: %s\n\nContent:\n%s", relPath, data), nil
}

func (c *CodeAnalyzer) resolve(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) {
		return "", ErrOutsideProject
	}
	full := filepath.Join(c.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(c.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideProject
	}
	// a symlink inside the tree may still point outside of it
	if resolved, err := filepath.EvalSymlinks(full); err == nil {
		root, rerr := filepath.EvalSymlinks(c.root)
		if rerr == nil {
			rel, err := filepath.Rel(root, resolved)
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return "", ErrOutsideProject
			}
		}
	}
	return full, nil
}

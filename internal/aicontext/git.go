package aicontext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const recentCommits = 5

// GitInspector reads repository state directly from the .git directory.
type GitInspector struct {
	root   string
	logger *slog.Logger
}

func NewGitInspector(root string, logger *slog.Logger) *GitInspector {
	return &GitInspector{root: root, logger: logger}
}

func (g *GitInspector) GitContext(ctx context.Context) string {
	var b strings.Builder

	repo, err := git.PlainOpenWithOptions(g.root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		g.logger.WarnContext(ctx, "failed to open git repository", "root", g.root, "error", err)
		b.WriteString("## Git Information\nGit repository not available\n")
		return b.String()
	}

	b.WriteString("## Git Information\n")
	b.WriteString(g.status(ctx, repo))

	head, err := repo.Head()
	if err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			g.logger.WarnContext(ctx, "failed to resolve HEAD", "error", err)
		}
		b.WriteString("\n## Recent Commits\nNo commits yet\n")
		b.WriteString("\n## Branch Info\nNo branches yet\n")
		return b.String()
	}

	b.WriteString("\n## Recent Commits\n")
	b.WriteString(g.commits(ctx, repo, head))
	b.WriteString("\n## Branch Info\n")
	b.WriteString(g.branches(ctx, repo, head))
	return b.String()
}

func (g *GitInspector) status(ctx context.Context, repo *git.Repository) string {
	wt, err := repo.Worktree()
	if err != nil {
		return "Working tree not available\n"
	}
	status, err := wt.Status()
	if err != nil {
		g.logger.WarnContext(ctx, "failed to read git status", "error", err)
		return "Git status unavailable\n"
	}

	lines := make([]string, 0, len(status))
	for path, fs := range status {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		lines = append(lines, fmt.Sprintf("%c%c %s", fs.Staging, fs.Worktree, path))
	}
	if len(lines) == 0 {
		return "Working tree clean\n"
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i][3:] < lines[j][3:] })
	return strings.Join(lines, "\n") + "\n"
}

func (g *GitInspector) commits(ctx context.Context, repo *git.Repository, head *plumbing.Reference) string {
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		g.logger.WarnContext(ctx, "failed to read git log", "error", err)
		return "Git log unavailable\n"
	}
	defer iter.Close()

	var b strings.Builder
	for i := 0; i < recentCommits; i++ {
		c, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			g.logger.WarnContext(ctx, "failed to walk git log", "error", err)
			break
		}
		fmt.Fprintf(&b, "%s %s\n", shortHash(c.Hash), subject(c))
	}
	return b.String()
}

func (g *GitInspector) branches(ctx context.Context, repo *git.Repository, head *plumbing.Reference) string {
	iter, err := repo.Branches()
	if err != nil {
		g.logger.WarnContext(ctx, "failed to list branches", "error", err)
		return "Branches unavailable\n"
	}

	var lines []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		marker := " "
		if ref.Name() == head.Name() {
			marker = "*"
		}
		line := fmt.Sprintf("%s %s %s", marker, ref.Name().Short(), shortHash(ref.Hash()))
		if c, err := repo.CommitObject(ref.Hash()); err == nil {
			line += " " + subject(c)
		}
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		g.logger.WarnContext(ctx, "failed to walk branches", "error", err)
	}
	if head.Name() == plumbing.HEAD {
		lines = append([]string{fmt.Sprintf("* (detached) %s", shortHash(head.Hash()))}, lines...)
	}
	if len(lines) == 0 {
		return "No branches yet\n"
	}
	return strings.Join(lines, "\n") + "\n"
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:7]
}

func subject(c *object.Commit) string {
	msg := strings.TrimSpace(c.Message)
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

package aicontext_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/toolbox/internal/aicontext"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("GitInspector", func() {
	var (
		root   string
		repo   *git.Repository
		logger *slog.Logger
	)

	commit := func(name, msg string) {
		Expect(os.WriteFile(filepath.Join(root, name), []byte(msg), 0o644)).To(Succeed())
		wt, err := repo.Worktree()
		Expect(err).NotTo(HaveOccurred())
		_, err = wt.Add(name)
		Expect(err).NotTo(HaveOccurred())
		_, err = wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: time.Now()},
		})
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		var err error
		repo, err = git.PlainInit(root, false)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports an empty repository", func() {
		out := aicontext.NewGitInspector(root, logger).GitContext(context.Background())
		Expect(out).To(HavePrefix("## Git Information\n"))
		Expect(out).To(ContainSubstring("## Recent Commits\nNo commits yet\n"))
	})

	It("shows the five most recent commits, newest first", func() {
		for i := 1; i <= 7; i++ {
			commit(fmt.Sprintf("f%d.txt", i), fmt.Sprintf("commit %d", i))
		}

		out := aicontext.NewGitInspector(root, logger).GitContext(context.Background())
		Expect(out).To(ContainSubstring("commit 7\n"))
		Expect(out).To(ContainSubstring("commit 3\n"))
		Expect(out).NotTo(ContainSubstring("commit 2\n"))
		Expect(out).To(MatchRegexp(`## Recent Commits\n[0-9a-f]{7} commit 7\n`))
	})

	It("shows a clean tree and marks the current branch", func() {
		commit("a.txt", "initial")

		out := aicontext.NewGitInspector(root, logger).GitContext(context.Background())
		Expect(out).To(ContainSubstring("## Git Information\nWorking tree clean\n"))
		Expect(out).To(MatchRegexp(`## Branch Info\n\* master [0-9a-f]{7} initial\n`))
	})

	It("lists untracked and modified files", func() {
		commit("a.txt", "initial")
		Expect(os.WriteFile(filepath.Join(root, "a.txt"), []byte("changed"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "new.txt"), []byte("new"), 0o644)).To(Succeed())

		out := aicontext.NewGitInspector(root, logger).GitContext(context.Background())
		Expect(out).To(ContainSubstring(" M a.txt\n"))
		Expect(out).To(ContainSubstring("?? new.txt\n"))
	})

	It("degrades when there is no repository", func() {
		out := aicontext.NewGitInspector(GinkgoT().TempDir(), logger).GitContext(context.Background())
		Expect(out).To(Equal("## Git Information\nGit repository not available\n"))
	})
})

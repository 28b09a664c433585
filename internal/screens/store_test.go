package screens_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/frahmantamala/toolbox/internal/screens"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	writeFile := func(body string) string {
		path := filepath.Join(GinkgoT().TempDir(), "screens.json")
		Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())
		return path
	}

	It("loads the built-in configuration", func() {
		store := screens.Load(true, "", logger)
		Expect(store.Titles()).To(ContainElements("Dashboard", "Functional Areas", "Task List", "Users", "Permissions"))
	})

	It("stays empty when loading is disabled", func() {
		store := screens.Load(false, "", logger)
		Expect(store.Screens()).To(BeEmpty())
	})

	It("falls back to an empty list when the file is missing", func() {
		store := screens.Load(true, "/does/not/exist.json", logger)
		Expect(store.Screens()).To(BeEmpty())
	})

	It("falls back to an empty list when the file is malformed", func() {
		store := screens.Load(true, writeFile(`{"screens": [`), logger)
		Expect(store.Screens()).To(BeEmpty())
	})

	It("replaces the snapshot wholesale on reload", func() {
		store := screens.Load(true, "", logger)
		before := store.Screens()

		Expect(store.Reload(writeFile(`{"screens":[{"id":1,"title":"Only"}]}`))).To(Succeed())
		Expect(store.Titles()).To(Equal([]string{"Only"}))
		Expect(len(before)).To(BeNumerically(">", 1))
	})
})

var _ = Describe("ScreenConfig", func() {
	DescribeTable("AdminOnly",
		func(perms map[string]screens.DefaultPermission, expected bool) {
			Expect(screens.ScreenConfig{DefaultPermissions: perms}.AdminOnly()).To(Equal(expected))
		},
		Entry("no USER entry", map[string]screens.DefaultPermission{"ADMIN": {CanRead: true}}, true),
		Entry("USER with nothing", map[string]screens.DefaultPermission{"USER": {}}, true),
		Entry("USER may read", map[string]screens.DefaultPermission{"USER": {CanRead: true}}, false),
		Entry("USER may only write", map[string]screens.DefaultPermission{"USER": {CanWrite: true}}, false),
		Entry("no permissions at all", nil, true),
	)

	It("marks the built-in administration screens as admin-only", func() {
		store := screens.Load(true, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
		adminOnly := map[string]bool{}
		for _, sc := range store.Screens() {
			adminOnly[sc.Title] = sc.AdminOnly()
		}
		Expect(adminOnly).To(HaveKeyWithValue("Users", true))
		Expect(adminOnly).To(HaveKeyWithValue("Roles", true))
		Expect(adminOnly).To(HaveKeyWithValue("AI Chat", true))
		Expect(adminOnly).To(HaveKeyWithValue("Task List", false))
	})
})

package task_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/testdb"
	"github.com/frahmantamala/toolbox/internal/task"
	taskPostgres "github.com/frahmantamala/toolbox/internal/task/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type guard struct{ allow bool }

func (g *guard) RequireWritePermission(_ context.Context, screen string) error {
	if g.allow {
		return nil
	}
	return internal.NewAccessDeniedError(screen)
}

var _ = Describe("Task Service", func() {
	var (
		service *task.Service
		g       *guard
		ctx     context.Context
		now     time.Time
	)

	BeforeEach(func() {
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(testdb.Close, db)

		ctx = context.Background()
		now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
		g = &guard{allow: true}
		clock := func() time.Time { return now }
		service = task.NewService(taskPostgres.NewTaskRepository(db), g, slog.New(slog.NewTextHandler(io.Discard, nil)), clock)
	})

	It("stamps the creation date from the clock", func() {
		created, err := service.CreateTask(ctx, "Write report", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.CreationDate).To(BeTemporally("==", now))
		Expect(created.DueDate).To(BeNil())
	})

	It("keeps a due date", func() {
		due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		created, err := service.CreateTask(ctx, "Renew permit", &due)
		Expect(err).NotTo(HaveOccurred())
		Expect(*created.DueDate).To(BeTemporally("==", due))
	})

	It("rejects the reserved failing description", func() {
		_, err := service.CreateTask(ctx, "fail", nil)
		Expect(internal.HasCode(err, internal.ErrCodeTaskCreation)).To(BeTrue())

		tasks, err := service.List(ctx, 10, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(tasks).To(BeEmpty())
	})

	It("rejects a due date in the past", func() {
		due := now.AddDate(0, 0, -2)
		_, err := service.CreateTask(ctx, "Late", &due)
		Expect(err).To(MatchError("due_date cannot be in the past"))
	})

	It("rejects a blank description", func() {
		_, err := service.CreateTask(ctx, "   ", nil)
		Expect(err).To(MatchError("description is required"))
	})

	It("requires write permission", func() {
		g.allow = false
		_, err := service.CreateTask(ctx, "Write report", nil)
		Expect(internal.HasCode(err, internal.ErrCodeAccessDenied)).To(BeTrue())
	})

	It("lists newest first and pages", func() {
		for i, d := range []string{"first", "second", "third"} {
			now = time.Date(2025, 3, 14, 9, i, 0, 0, time.UTC)
			_, err := service.CreateTask(ctx, d, nil)
			Expect(err).NotTo(HaveOccurred())
		}

		page, err := service.List(ctx, 2, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(page).To(HaveLen(2))
		Expect(page[0].Description).To(Equal("third"))
		Expect(page[1].Description).To(Equal("second"))

		rest, err := service.List(ctx, 2, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(rest).To(HaveLen(1))
		Expect(rest[0].Description).To(Equal("first"))
	})
})

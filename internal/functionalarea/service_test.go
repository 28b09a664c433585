package functionalarea_test

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/testdb"
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	"github.com/frahmantamala/toolbox/internal/functionalarea/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubGuard struct {
	allow bool
	calls int
}

func (g *stubGuard) RequireWritePermission(_ context.Context, screen string) error {
	g.calls++
	if g.allow {
		return nil
	}
	return internal.NewAccessDeniedError(screen)
}

var _ = Describe("FunctionalArea", func() {
	DescribeTable("Validate",
		func(area functionalarea.FunctionalArea, valid bool) {
			err := area.Validate()
			if valid {
				Expect(err).To(BeNil())
			} else {
				Expect(err).NotTo(BeNil())
			}
		},
		Entry("well formed", functionalarea.FunctionalArea{Code: "FI", Name: "Financial", Description: "Money"}, true),
		Entry("lowercase code", functionalarea.FunctionalArea{Code: "fi", Name: "Financial", Description: "Money"}, false),
		Entry("three letter code", functionalarea.FunctionalArea{Code: "FIN", Name: "Financial", Description: "Money"}, false),
		Entry("digit in code", functionalarea.FunctionalArea{Code: "F1", Name: "Financial", Description: "Money"}, false),
		Entry("missing name", functionalarea.FunctionalArea{Code: "FI", Description: "Money"}, false),
		Entry("name at limit", functionalarea.FunctionalArea{Code: "FI", Name: strings.Repeat("n", 100), Description: "Money"}, true),
		Entry("name too long", functionalarea.FunctionalArea{Code: "FI", Name: strings.Repeat("n", 101), Description: "Money"}, false),
		Entry("missing description", functionalarea.FunctionalArea{Code: "FI", Name: "Financial"}, false),
		Entry("description too long", functionalarea.FunctionalArea{Code: "FI", Name: "Financial", Description: strings.Repeat("d", 256)}, false),
	)

	It("reports the code rule with its own error code", func() {
		err := (&functionalarea.FunctionalArea{Code: "x1", Name: "n", Description: "d"}).Validate()
		Expect(err).To(MatchError("code must be exactly 2 uppercase letters"))
		details := err.Details.(internal.ValidationErrors)
		Expect(details.Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidCode)))
	})
})

var _ = Describe("FunctionalArea Service", func() {
	var (
		service *functionalarea.Service
		guard   *stubGuard
		ctx     context.Context
	)

	BeforeEach(func() {
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(testdb.Close, db)

		ctx = context.Background()
		guard = &stubGuard{allow: true}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = functionalarea.NewService(postgres.NewFunctionalAreaRepository(db), guard, nil, logger)
	})

	save := func(code, name string) (*functionalarea.FunctionalArea, error) {
		return service.Save(ctx, &functionalarea.FunctionalArea{Code: code, Name: name, Description: name + " things"})
	}

	Describe("Save", func() {
		It("creates a new area and assigns an id", func() {
			area, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())
			Expect(area.ID).To(BeNumerically(">", 0))
			Expect(service.Count(ctx)).To(Equal(int64(1)))
		})

		It("rejects a duplicate name without writing", func() {
			_, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())

			_, err = save("FX", "Financial")
			Expect(err).To(MatchError("Functional area with name 'Financial' already exists"))
			Expect(internal.HasCode(err, internal.ErrCodeFunctionalAreaNameExists)).To(BeTrue())
			Expect(service.Count(ctx)).To(Equal(int64(1)))
		})

		It("rejects a duplicate code with a distinct error", func() {
			_, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())

			_, err = save("FI", "Finance Two")
			Expect(err).To(MatchError("Functional area with code 'FI' already exists"))
			Expect(internal.HasCode(err, internal.ErrCodeFunctionalAreaCodeExists)).To(BeTrue())
			Expect(service.Count(ctx)).To(Equal(int64(1)))
		})

		It("lets an area keep its own name and code on update", func() {
			area, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())

			area.Description = "Financial operations and accounting"
			updated, err := service.Save(ctx, area)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(area.ID))

			got, err := service.Get(ctx, area.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Description).To(Equal("Financial operations and accounting"))
		})

		It("rejects renaming onto another area's name", func() {
			_, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())
			other, err := save("DE", "Delivery")
			Expect(err).NotTo(HaveOccurred())

			other.Name = "Financial"
			_, err = service.Save(ctx, other)
			Expect(internal.HasCode(err, internal.ErrCodeFunctionalAreaNameExists)).To(BeTrue())
		})

		It("reports an update of a missing area", func() {
			_, err := service.Save(ctx, &functionalarea.FunctionalArea{ID: 42, Code: "FI", Name: "Financial", Description: "d"})
			Expect(err).To(MatchError("Functional area with id 42 not found"))
		})

		It("fails validation before checking uniqueness", func() {
			_, err := save("fi", "Financial")
			Expect(internal.HasCode(err, internal.ErrCodeValidationFailed)).To(BeTrue())
			Expect(service.Count(ctx)).To(Equal(int64(0)))
		})

		It("denies callers without write permission", func() {
			guard.allow = false
			_, err := save("FI", "Financial")
			Expect(internal.HasCode(err, internal.ErrCodeAccessDenied)).To(BeTrue())
			Expect(service.Count(ctx)).To(Equal(int64(0)))
		})

		It("tolerates a denial during data initialization", func() {
			guard.allow = false
			ctx = internal.WithSystemBootstrap(ctx)

			area, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())
			Expect(area.ID).To(BeNumerically(">", 0))
			Expect(guard.calls).To(Equal(1))
		})
	})

	Describe("Delete", func() {
		It("removes an existing area", func() {
			area, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, area.ID)).To(Succeed())
			_, err = service.Get(ctx, area.ID)
			Expect(internal.HasCode(err, internal.ErrCodeFunctionalAreaNotFound)).To(BeTrue())
		})

		It("is never bypassed, even during data initialization", func() {
			area, err := save("FI", "Financial")
			Expect(err).NotTo(HaveOccurred())

			guard.allow = false
			err = service.Delete(internal.WithSystemBootstrap(ctx), area.ID)
			Expect(internal.HasCode(err, internal.ErrCodeAccessDenied)).To(BeTrue())
			Expect(service.Count(ctx)).To(Equal(int64(1)))
		})
	})

	It("lists areas ordered by code", func() {
		_, err := save("WH", "Warehouse")
		Expect(err).NotTo(HaveOccurred())
		_, err = save("DE", "Delivery")
		Expect(err).NotTo(HaveOccurred())

		areas, err := service.ListAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(areas).To(HaveLen(2))
		Expect(areas[0].Code).To(Equal("DE"))
		Expect(areas[1].Code).To(Equal("WH"))
	})
})

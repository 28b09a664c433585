package bootstrap_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/internal/bootstrap"
	"github.com/frahmantamala/toolbox/internal/core/testdb"
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	functionalareaPostgres "github.com/frahmantamala/toolbox/internal/functionalarea/postgres"
	"github.com/frahmantamala/toolbox/internal/permission"
	permissionPostgres "github.com/frahmantamala/toolbox/internal/permission/postgres"
	"github.com/frahmantamala/toolbox/internal/role"
	rolePostgres "github.com/frahmantamala/toolbox/internal/role/postgres"
	"github.com/frahmantamala/toolbox/internal/screens"
	"github.com/frahmantamala/toolbox/internal/user"
	userPostgres "github.com/frahmantamala/toolbox/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct{}

func (bcryptHasher) HashPassword(p string) (string, error) {
	return auth.HashPassword(p, bcrypt.MinCost)
}

type failingAreas struct {
	bootstrap.FunctionalAreaService
}

func (failingAreas) Save(context.Context, *functionalarea.FunctionalArea) (*functionalarea.FunctionalArea, error) {
	return nil, errors.New("disk full")
}

var _ = Describe("Initializer", func() {
	var (
		ctx         context.Context
		deps        bootstrap.Dependencies
		logger      *slog.Logger
		areas       *functionalarea.Service
		roles       *role.Service
		users       *user.Service
		permissions *permission.Service
		store       *screens.Store
	)

	BeforeEach(func() {
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(testdb.Close, db)

		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))

		permRepo := permissionPostgres.NewPermissionRepository(db)
		roleRepo := rolePostgres.NewRoleRepository(db)
		resolver := permission.NewResolver(permRepo, logger)

		roles = role.NewService(roleRepo, logger)
		users = user.NewService(userPostgres.NewUserRepository(db), bcryptHasher{}, logger)
		areas = functionalarea.NewService(functionalareaPostgres.NewFunctionalAreaRepository(db), resolver, nil, logger)
		permissions = permission.NewService(permRepo, roleRepo, nil, logger)
		store = screens.Load(true, "", logger)

		deps = bootstrap.Dependencies{
			Roles:           roles,
			Users:           users,
			FunctionalAreas: areas,
			Permissions:     permissions,
			Screens:         store,
		}
	})

	It("seeds exactly ten functional areas into an empty database", func() {
		Expect(bootstrap.NewInitializer(deps, logger).Run(ctx)).To(Succeed())

		Expect(areas.Count(ctx)).To(Equal(int64(10)))
		all, err := areas.ListAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(ContainElement(SatisfyAll(
			HaveField("Code", "FI"),
			HaveField("Name", "Financial"),
			HaveField("Description", "Financial operations and accounting"),
		)))
	})

	It("is idempotent", func() {
		Expect(bootstrap.NewInitializer(deps, logger).Run(ctx)).To(Succeed())
		permsBefore, err := permissions.Count(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(bootstrap.NewInitializer(deps, logger).Run(ctx)).To(Succeed())

		Expect(areas.Count(ctx)).To(Equal(int64(10)))
		Expect(roles.Count(ctx)).To(Equal(int64(2)))
		Expect(users.Count(ctx)).To(Equal(int64(2)))
		Expect(permissions.Count(ctx)).To(Equal(permsBefore))
	})

	It("leaves existing functional areas alone", func() {
		_, err := areas.Save(auth.ContextWithPrincipal(ctx, &auth.Principal{}), &functionalarea.FunctionalArea{Code: "ZZ", Name: "Existing", Description: "d"})
		Expect(err).To(HaveOccurred(), "a caller without grants may not write outside initialization")

		_, err = deps.FunctionalAreas.Save(internal.WithSystemBootstrap(ctx), &functionalarea.FunctionalArea{Code: "ZZ", Name: "Existing", Description: "d"})
		Expect(err).NotTo(HaveOccurred())

		Expect(bootstrap.NewInitializer(deps, logger).Run(ctx)).To(Succeed())
		Expect(areas.Count(ctx)).To(Equal(int64(1)))
	})

	It("creates the sample accounts with their roles", func() {
		Expect(bootstrap.NewInitializer(deps, logger).Run(ctx)).To(Succeed())

		admin, err := users.FindByUsername(ctx, "admin")
		Expect(err).NotTo(HaveOccurred())
		Expect(admin.FullName).To(Equal("Alice Administrator"))
		Expect(admin.Email).To(Equal("alice@example.com"))
		Expect(admin.Roles).To(ConsistOf("ADMIN", "USER"))

		plain, err := users.FindByUsername(ctx, "user")
		Expect(err).NotTo(HaveOccurred())
		Expect(plain.FullName).To(Equal("Ursula User"))
		Expect(plain.Roles).To(ConsistOf("USER"))
	})

	It("seeds one permission per configured role default", func() {
		Expect(bootstrap.NewInitializer(deps, logger).Run(ctx)).To(Succeed())

		expected := 0
		for _, sc := range store.Screens() {
			for roleName := range sc.DefaultPermissions {
				if roleName == "ADMIN" || roleName == "USER" {
					expected++
				}
			}
		}
		Expect(permissions.Count(ctx)).To(Equal(int64(expected)))

		userRole, err := roles.FindByName(ctx, "USER")
		Expect(err).NotTo(HaveOccurred())
		perms, err := permissions.FindByRoleID(ctx, userRole.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(perms).To(ContainElement(SatisfyAll(
			HaveField("ScreenName", "Users"),
			HaveField("CanRead", false),
		)))
	})

	It("wraps any failure", func() {
		deps.FunctionalAreas = failingAreas{FunctionalAreaService: areas}
		err := bootstrap.NewInitializer(deps, logger).Run(ctx)
		Expect(err).To(MatchError(ContainSubstring("data initialization failed: ")))
		Expect(err).To(MatchError(ContainSubstring("disk full")))
	})
})

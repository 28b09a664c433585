package permission_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
	"github.com/frahmantamala/toolbox/internal/core/events"
	"github.com/frahmantamala/toolbox/internal/core/testdb"
	"github.com/frahmantamala/toolbox/internal/permission"
	permissionPostgres "github.com/frahmantamala/toolbox/internal/permission/postgres"
	rolePostgres "github.com/frahmantamala/toolbox/internal/role/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Permission Service", func() {
	var (
		service *permission.Service
		repo    *permissionPostgres.PermissionRepository
		ctx     context.Context
		role    *roleDatamodel.Role
		bus     *events.EventBus
		saved   chan events.Event
	)

	BeforeEach(func() {
		db, err := testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(testdb.Close, db)

		ctx = context.Background()
		role = &roleDatamodel.Role{Name: "USER"}
		Expect(db.Create(role).Error).To(Succeed())

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		bus = events.NewEventBus(logger)
		saved = make(chan events.Event, 4)
		bus.Subscribe(events.EventTypePermissionSaved, func(_ context.Context, e events.Event) error {
			saved <- e
			return nil
		})

		repo = permissionPostgres.NewPermissionRepository(db)
		service = permission.NewService(repo, rolePostgres.NewRoleRepository(db), bus, logger)
	})

	roleID := func() *int64 { id := role.ID; return &id }

	It("requires a role id", func() {
		_, err := service.SavePermission(ctx, permission.SavePermissionDTO{ScreenName: "Users"})
		Expect(err).To(MatchError("Role ID cannot be null"))
	})

	It("requires a screen name", func() {
		_, err := service.SavePermission(ctx, permission.SavePermissionDTO{RoleID: roleID(), ScreenName: "  "})
		Expect(err).To(MatchError("Screen name cannot be null or empty"))
	})

	It("reports an unknown role", func() {
		missing := int64(999)
		_, err := service.SavePermission(ctx, permission.SavePermissionDTO{RoleID: &missing, ScreenName: "Users"})
		Expect(internal.HasCode(err, internal.ErrCodeRoleNotFound)).To(BeTrue())
	})

	It("creates then updates the same row", func() {
		first, err := service.SavePermission(ctx, permission.SavePermissionDTO{RoleID: roleID(), ScreenName: "Users", CanRead: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(first.RoleName).To(Equal("USER"))

		second, err := service.SavePermission(ctx, permission.SavePermissionDTO{RoleID: roleID(), ScreenName: "Users", CanRead: true, CanWrite: true})
		Expect(err).NotTo(HaveOccurred())
		Expect(second.ID).To(Equal(first.ID))
		Expect(second.CanWrite).To(BeTrue())

		Expect(service.Count(ctx)).To(Equal(int64(1)))

		perms, err := service.FindByRoleID(ctx, role.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(perms).To(HaveLen(1))
		Expect(perms[0].CanWrite).To(BeTrue())
	})

	It("publishes a permission.saved event", func() {
		_, err := service.SavePermission(ctx, permission.SavePermissionDTO{RoleID: roleID(), ScreenName: "Reports", CanRead: true})
		Expect(err).NotTo(HaveOccurred())

		var e events.Event
		Eventually(saved).Should(Receive(&e))
		Expect(e.(*events.PermissionSavedEvent).ScreenName).To(Equal("Reports"))
	})
})

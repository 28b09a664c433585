package dashboard_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/internal/dashboard"
	"github.com/frahmantamala/toolbox/internal/permission"
	"github.com/frahmantamala/toolbox/internal/screens"
	"github.com/frahmantamala/toolbox/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fixedScreens []screens.ScreenConfig

func (f fixedScreens) Screens() []screens.ScreenConfig { return f }

type fixedGrants struct {
	grants []permission.Grant
	calls  int
}

func (f *fixedGrants) Snapshot(context.Context) *permission.Snapshot {
	f.calls++
	return permission.NewSnapshot(f.grants)
}

var userCanRead = map[string]screens.DefaultPermission{"USER": {CanRead: true}}

func screen(id int, title string, order int) screens.ScreenConfig {
	return screens.ScreenConfig{
		ID: id, Title: title, Order: order,
		Enabled: true, ShowInMenu: true, ShowInDashboard: true,
		DefaultPermissions: userCanRead,
	}
}

func titles(tiles []dashboard.Tile) []string {
	out := make([]string, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, t.Title)
	}
	return out
}

var _ = Describe("Dashboard Service", func() {
	var (
		configured fixedScreens
		grants     *fixedGrants
		service    *dashboard.Service
		userCtx    context.Context
		adminCtx   context.Context
	)

	BeforeEach(func() {
		configured = fixedScreens{
			screen(1, "Reports", 3),
			screen(2, "Task List", 1),
			screen(3, "Reference", 1),
			screen(4, "Settings", 2),
		}
		grants = &fixedGrants{grants: []permission.Grant{
			{ScreenName: "Reports", CanRead: true},
			{ScreenName: "Task List", CanRead: true},
			{ScreenName: "Reference", CanRead: true},
			{ScreenName: "Settings", CanRead: true},
			{ScreenName: "Users", CanRead: true},
		}}
		service = dashboard.NewService(configured, grants, slog.New(slog.NewTextHandler(io.Discard, nil)))

		userCtx = auth.ContextWithPrincipal(context.Background(), &auth.Principal{Username: "user", Roles: []string{"USER"}})
		adminCtx = auth.ContextWithPrincipal(context.Background(), &auth.Principal{Username: "admin", Roles: []string{"ADMIN", "USER"}})
	})

	It("orders by the configured order and keeps ties in input order", func() {
		Expect(titles(service.TilesForDashboard(userCtx))).To(Equal([]string{"Task List", "Reference", "Settings", "Reports"}))
	})

	It("resolves permissions once per call", func() {
		service.TilesForDashboard(userCtx)
		Expect(grants.calls).To(Equal(1))
	})

	It("drops disabled tiles", func() {
		configured[0].Enabled = false
		Expect(titles(service.TilesForDashboard(userCtx))).NotTo(ContainElement("Reports"))
	})

	It("applies the flag of each view separately", func() {
		configured[3].ShowInDashboard = false
		configured[1].ShowInMenu = false

		Expect(titles(service.TilesForDashboard(userCtx))).NotTo(ContainElement("Settings"))
		Expect(titles(service.TilesForMenu(userCtx))).To(ContainElement("Settings"))
		Expect(titles(service.TilesForMenu(userCtx))).NotTo(ContainElement("Task List"))
	})

	It("drops tiles without read permission", func() {
		grants.grants = []permission.Grant{{ScreenName: "Reports", CanWrite: true}}
		Expect(service.TilesForDashboard(userCtx)).To(BeEmpty())
	})

	It("hides admin-only tiles from non-admins even with read permission", func() {
		configured = append(configured, screens.ScreenConfig{
			ID: 9, Title: "Users", Order: 0, Enabled: true, ShowInDashboard: true, ShowInMenu: true,
			DefaultPermissions: map[string]screens.DefaultPermission{"ADMIN": {CanRead: true}},
		})
		service = dashboard.NewService(configured, grants, slog.New(slog.NewTextHandler(io.Discard, nil)))

		Expect(titles(service.TilesForDashboard(userCtx))).NotTo(ContainElement("Users"))
		Expect(titles(service.TilesForDashboard(adminCtx))).To(HaveExactElements("Users", "Task List", "Reference", "Settings", "Reports"))
	})

	It("still requires read permission for admins", func() {
		grants.grants = nil
		Expect(service.TilesForDashboard(adminCtx)).To(BeEmpty())
	})

	It("returns nothing to an anonymous caller", func() {
		grants.grants = nil
		Expect(service.TilesForMenu(context.Background())).To(BeEmpty())
	})

	Describe("AllTilesForAdmin", func() {
		It("returns every tile to admins", func() {
			configured[0].Enabled = false
			tiles, err := service.AllTilesForAdmin(adminCtx)
			Expect(err).NotTo(HaveOccurred())
			Expect(tiles).To(HaveLen(4))
		})

		It("refuses non-admins", func() {
			_, err := service.AllTilesForAdmin(userCtx)
			Expect(internal.HasCode(err, internal.ErrCodeAccessDenied)).To(BeTrue())
		})
	})

	It("serves the menu as JSON", func() {
		h := dashboard.NewHandler(transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil))), service)
		req := httptest.NewRequest(http.MethodGet, "/menu", nil).WithContext(userCtx)
		w := httptest.NewRecorder()
		h.Menu(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var body dashboard.TilesResponse
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Tiles).To(HaveLen(4))
	})
})

package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type stubAuthorizer struct {
	read  map[string]bool
	write map[string]bool
}

func (s stubAuthorizer) HasReadPermission(_ context.Context, screen string) bool {
	return s.read[screen]
}

func (s stubAuthorizer) HasWritePermission(_ context.Context, screen string) bool {
	return s.write[screen]
}

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		rbac *RBACAuthorization
		ok   http.Handler
	)

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(stubAuthorizer{
			read:  map[string]bool{"Reports": true},
			write: map[string]bool{"Task List": true},
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
	})

	serve := func(mw func(http.Handler) http.Handler, p *Principal) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if p != nil {
			req = req.WithContext(ContextWithPrincipal(req.Context(), p))
		}
		rec := httptest.NewRecorder()
		mw(ok).ServeHTTP(rec, req)
		return rec.Code
	}

	ginkgo.It("returns 401 without a principal", func() {
		gomega.Expect(serve(rbac.RequireRead("Reports"), nil)).To(gomega.Equal(http.StatusUnauthorized))
	})

	ginkgo.It("passes through when the screen is readable", func() {
		gomega.Expect(serve(rbac.RequireRead("Reports"), &Principal{Username: "u"})).To(gomega.Equal(http.StatusTeapot))
	})

	ginkgo.It("returns 403 when the screen is not readable", func() {
		gomega.Expect(serve(rbac.RequireRead("Settings"), &Principal{Username: "u"})).To(gomega.Equal(http.StatusForbidden))
	})

	ginkgo.It("checks write access separately from read access", func() {
		gomega.Expect(serve(rbac.RequireWrite("Reports"), &Principal{Username: "u"})).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(serve(rbac.RequireWrite("Task List"), &Principal{Username: "u"})).To(gomega.Equal(http.StatusTeapot))
	})

	ginkgo.It("admits only administrators through RequireAdmin", func() {
		gomega.Expect(serve(rbac.RequireAdmin(), &Principal{Roles: []string{"USER"}})).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(serve(rbac.RequireAdmin(), &Principal{Roles: []string{"ROLE_ADMIN"}})).To(gomega.Equal(http.StatusTeapot))
	})
})

package permission_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/internal/permission"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubGrantSource struct {
	byRole map[int64][]permission.Grant
	err    error
	calls  int
}

func (s *stubGrantSource) GrantsForRoles(_ context.Context, roleIDs []int64) ([]permission.Grant, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []permission.Grant
	for _, id := range roleIDs {
		out = append(out, s.byRole[id]...)
	}
	return out, nil
}

var _ = Describe("Resolver", func() {
	var (
		source   *stubGrantSource
		resolver *permission.Resolver
		userCtx  context.Context
	)

	BeforeEach(func() {
		source = &stubGrantSource{byRole: map[int64][]permission.Grant{
			1: {{ScreenName: "Functional Areas", CanRead: true, CanWrite: true}},
			2: {{ScreenName: "Functional Areas", CanRead: true}, {ScreenName: "Reports", CanRead: true}},
		}}
		resolver = permission.NewResolver(source, slog.New(slog.NewTextHandler(io.Discard, nil)))
		userCtx = auth.ContextWithPrincipal(context.Background(), &auth.Principal{
			ID: 2, Username: "user", Roles: []string{"USER"}, RoleIDs: []int64{2},
		})
	})

	It("returns false for an anonymous caller without consulting the store", func() {
		ctx := context.Background()
		Expect(resolver.HasReadPermission(ctx, "Reports")).To(BeFalse())
		Expect(resolver.HasWritePermission(ctx, "Reports")).To(BeFalse())
		Expect(source.calls).To(Equal(0))
	})

	It("resolves from the caller's roles", func() {
		Expect(resolver.HasReadPermission(userCtx, "Reports")).To(BeTrue())
		Expect(resolver.HasWritePermission(userCtx, "Functional Areas")).To(BeFalse())
	})

	It("unions across every role the caller holds", func() {
		ctx := auth.ContextWithPrincipal(context.Background(), &auth.Principal{
			Username: "admin", Roles: []string{"ADMIN", "USER"}, RoleIDs: []int64{1, 2},
		})
		Expect(resolver.Access(ctx, "Functional Areas")).To(Equal(permission.AccessReadWrite))
		Expect(resolver.Access(ctx, "Reports")).To(Equal(permission.AccessRead))
	})

	It("fails closed when the lookup errors", func() {
		source.err = errors.New("connection reset")
		Expect(resolver.HasReadPermission(userCtx, "Reports")).To(BeFalse())
		Expect(resolver.Snapshot(userCtx).Screens()).To(BeEmpty())
	})

	It("denies callers that hold no roles", func() {
		ctx := auth.ContextWithPrincipal(context.Background(), &auth.Principal{Username: "norole"})
		Expect(resolver.HasReadPermission(ctx, "Reports")).To(BeFalse())
	})

	Describe("RequireWritePermission", func() {
		It("returns an access-denied error naming the screen", func() {
			err := resolver.RequireWritePermission(userCtx, "Functional Areas")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("You do not have write permission for Functional Areas screen"))
			Expect(internal.HasCode(err, internal.ErrCodeAccessDenied)).To(BeTrue())
		})

		It("passes for a writer", func() {
			ctx := auth.ContextWithPrincipal(context.Background(), &auth.Principal{RoleIDs: []int64{1}})
			Expect(resolver.RequireWritePermission(ctx, "Functional Areas")).To(Succeed())
		})
	})
})

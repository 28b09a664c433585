package dashboard

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	"github.com/frahmantamala/toolbox/internal/permission"
	"github.com/frahmantamala/toolbox/internal/screens"
)

// ScreenSource supplies the current screen configuration.
type ScreenSource interface {
	Screens() []screens.ScreenConfig
}

// AccessSnapshotter resolves every screen permission of the caller in one lookup.
type AccessSnapshotter interface {
	Snapshot(ctx context.Context) *permission.Snapshot
}

type Service struct {
	screens ScreenSource
	access  AccessSnapshotter
	logger  *slog.Logger
}

func NewService(source ScreenSource, access AccessSnapshotter, logger *slog.Logger) *Service {
	return &Service{
		screens: source,
		access:  access,
		logger:  logger,
	}
}

// TilesForDashboard returns the enabled dashboard tiles the caller may read,
// ordered by their configured order.
func (s *Service) TilesForDashboard(ctx context.Context) []Tile {
	return s.visible(ctx, "dashboard", func(t Tile) bool { return t.ShowInDashboard })
}

// TilesForMenu is TilesForDashboard for the navigation menu flag.
func (s *Service) TilesForMenu(ctx context.Context) []Tile {
	return s.visible(ctx, "menu", func(t Tile) bool { return t.ShowInMenu })
}

// AllTilesForAdmin returns every configured tile unfiltered.
func (s *Service) AllTilesForAdmin(ctx context.Context) ([]Tile, error) {
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return nil, internal.NewForbiddenError("Administrator role required", internal.ErrCodeAccessDenied)
	}
	return s.tiles(), nil
}

func (s *Service) tiles() []Tile {
	configured := s.screens.Screens()
	out := make([]Tile, 0, len(configured))
	for _, sc := range configured {
		out = append(out, FromScreen(sc))
	}
	return out
}

func (s *Service) visible(ctx context.Context, view string, shown func(Tile) bool) []Tile {
	principal, _ := auth.PrincipalFromContext(ctx)
	isAdmin := principal.IsAdmin()
	snapshot := s.access.Snapshot(ctx)

	out := make([]Tile, 0)
	for _, t := range s.tiles() {
		if !t.Enabled || !shown(t) {
			continue
		}
		if t.AdminOnly && !isAdmin {
			continue
		}
		if !snapshot.HasRead(t.Title) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	s.logger.DebugContext(ctx, "resolved tiles", "view", view, "admin", isAdmin, "count", len(out))
	return out
}

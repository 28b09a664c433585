package permission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	permissionDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/permission"
	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
	"github.com/frahmantamala/toolbox/internal/core/events"
)

type RepositoryAPI interface {
	GrantSource
	FindByRoleID(ctx context.Context, roleID int64) ([]*permissionDatamodel.Permission, error)
	FindByRoleAndScreen(ctx context.Context, roleID int64, screen string) (*permissionDatamodel.Permission, error)
	Save(ctx context.Context, p *permissionDatamodel.Permission) error
	Count(ctx context.Context) (int64, error)
}

// RoleFinder resolves role ids for permission assignment.
type RoleFinder interface {
	GetByID(ctx context.Context, id int64) (*roleDatamodel.Role, error)
}

type Service struct {
	repo      RepositoryAPI
	roles     RoleFinder
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, roles RoleFinder, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		roles:     roles,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) FindByRoleID(ctx context.Context, roleID int64) ([]PermissionDTO, error) {
	rows, err := s.repo.FindByRoleID(ctx, roleID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load permissions", err)
	}
	out := make([]PermissionDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, ToDTO(p))
	}
	return out, nil
}

// SavePermission creates or updates the single (role, screen) permission row.
func (s *Service) SavePermission(ctx context.Context, dto SavePermissionDTO) (*PermissionDTO, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	screen := strings.TrimSpace(dto.ScreenName)

	role, err := s.roles.GetByID(ctx, *dto.RoleID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if role == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("Role not found with ID: %d", *dto.RoleID), internal.ErrCodeRoleNotFound)
	}

	existing, err := s.repo.FindByRoleAndScreen(ctx, role.ID, screen)
	if err != nil {
		return nil, internal.NewInternalError("failed to load permission", err)
	}
	if existing == nil {
		existing = &permissionDatamodel.Permission{RoleID: role.ID, ScreenName: screen}
	}
	existing.CanRead = dto.CanRead
	existing.CanWrite = dto.CanWrite

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, internal.NewInternalError("failed to save permission", err)
	}
	existing.Role = *role

	s.logger.InfoContext(ctx, "permission saved",
		"role", role.Name,
		"screen", screen,
		"can_read", dto.CanRead,
		"can_write", dto.CanWrite,
		"actor", auth.UsernameFromContext(ctx))
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.NewPermissionSavedEvent(role.ID, screen, dto.CanRead, dto.CanWrite))
	}

	out := ToDTO(existing)
	return &out, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

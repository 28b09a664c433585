package role

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*roleDatamodel.Role, error)
	GetByID(ctx context.Context, id int64) (*roleDatamodel.Role, error)
	GetByName(ctx context.Context, name string) (*roleDatamodel.Role, error)
	Create(ctx context.Context, r *roleDatamodel.Role) error
	Update(ctx context.Context, r *roleDatamodel.Role) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllRoles(ctx context.Context) ([]RoleDTO, error) {
	roles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to load roles", err)
	}
	out := make([]RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, ToDTO(r))
	}
	return out, nil
}

func (s *Service) FindByName(ctx context.Context, name string) (*RoleDTO, error) {
	r, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if r == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("Role not found: %s", name), internal.ErrCodeRoleNotFound)
	}
	dto := ToDTO(r)
	return &dto, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*RoleDTO, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if r == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("Role not found with ID: %d", id), internal.ErrCodeRoleNotFound)
	}
	dto := ToDTO(r)
	return &dto, nil
}

func (s *Service) Create(ctx context.Context, dto SaveRoleDTO) (*RoleDTO, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	name := strings.ToUpper(strings.TrimSpace(dto.Name))
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError(fmt.Sprintf("Role with name '%s' already exists", name), internal.ErrCodeRoleExists)
	}
	r := &roleDatamodel.Role{Name: name, Description: dto.Description}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, internal.NewInternalError("failed to create role", err)
	}
	s.logger.InfoContext(ctx, "role created", "role", name)
	out := ToDTO(r)
	return &out, nil
}

// Update changes the description only. Role names are referenced by the
// screens configuration and stay fixed once created.
func (s *Service) Update(ctx context.Context, id int64, dto SaveRoleDTO) (*RoleDTO, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role", err)
	}
	if r == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("Role not found with ID: %d", id), internal.ErrCodeRoleNotFound)
	}
	if len(dto.Description) > 255 {
		return nil, internal.NewValidationFieldError("description", "description must not exceed 255 characters", internal.ErrCodeValidationFailed)
	}
	r.Description = dto.Description
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, internal.NewInternalError("failed to update role", err)
	}
	out := ToDTO(r)
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load role", err)
	}
	if r == nil {
		return internal.NewNotFoundError(fmt.Sprintf("Role not found with ID: %d", id), internal.ErrCodeRoleNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete role", err)
	}
	s.logger.InfoContext(ctx, "role deleted", "role", r.Name)
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

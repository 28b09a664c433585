package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	userDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByUsername(ctx context.Context, username string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User, roleIDs []int64) error
	Update(ctx context.Context, u *userDatamodel.User, roleIDs []int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// PasswordHasher is satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to load users", err)
	}
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToDTO(u))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("User not found with ID: %d", id), internal.ErrCodeUserNotFound)
	}
	dto := ToDTO(u)
	return &dto, nil
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*UserDTO, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("User not found: %s", username), internal.ErrCodeUserNotFound)
	}
	dto := ToDTO(u)
	return &dto, nil
}

// CurrentUser describes the caller carried in ctx.
func (s *Service) CurrentUser(ctx context.Context) (*UserInfo, error) {
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, internal.NewUnauthorizedError("not authenticated", internal.ErrCodeInvalidToken)
	}
	return &UserInfo{
		ID:          p.ID,
		Username:    p.Username,
		FullName:    p.FullName,
		Email:       p.Email,
		Authorities: p.Authorities(),
		IsAdmin:     p.IsAdmin(),
	}, nil
}

func (s *Service) Create(ctx context.Context, dto SaveUserDTO) (*UserDTO, error) {
	if err := dto.Validate(true); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(dto.Username)
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError(fmt.Sprintf("User with username '%s' already exists", username), internal.ErrCodeUserExists)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}
	u := &userDatamodel.User{
		Username:     username,
		FullName:     dto.FullName,
		Email:        dto.Email,
		PasswordHash: hash,
		IsActive:     dto.IsActive == nil || *dto.IsActive,
	}
	if err := s.repo.Create(ctx, u, dto.RoleIDs); err != nil {
		return nil, internal.NewInternalError("failed to create user", err)
	}
	s.logger.InfoContext(ctx, "user created", "username", username, "actor", auth.UsernameFromContext(ctx))
	return s.Get(ctx, u.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto SaveUserDTO) (*UserDTO, error) {
	if err := dto.Validate(false); err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError(fmt.Sprintf("User not found with ID: %d", id), internal.ErrCodeUserNotFound)
	}

	username := strings.TrimSpace(dto.Username)
	if username != u.Username {
		clash, err := s.repo.GetByUsername(ctx, username)
		if err != nil {
			return nil, internal.NewInternalError("failed to load user", err)
		}
		if clash != nil {
			return nil, internal.NewConflictError(fmt.Sprintf("User with username '%s' already exists", username), internal.ErrCodeUserExists)
		}
	}

	u.Username = username
	u.FullName = dto.FullName
	u.Email = dto.Email
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	if dto.Password != "" {
		hash, err := s.hasher.HashPassword(dto.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, u, dto.RoleIDs); err != nil {
		return nil, internal.NewInternalError("failed to update user", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if p, ok := auth.PrincipalFromContext(ctx); ok && p.ID == id {
		return internal.NewValidationError("You cannot delete your own account", internal.ErrCodeValidationFailed)
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load user", err)
	}
	if u == nil {
		return internal.NewNotFoundError(fmt.Sprintf("User not found with ID: %d", id), internal.ErrCodeUserNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}
	s.logger.InfoContext(ctx, "user deleted", "username", u.Username, "actor", auth.UsernameFromContext(ctx))
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

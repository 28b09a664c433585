package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	"github.com/frahmantamala/toolbox/internal/permission"
	"github.com/frahmantamala/toolbox/internal/role"
	"github.com/frahmantamala/toolbox/internal/screens"
	"github.com/frahmantamala/toolbox/internal/user"
)

const defaultSamplePassword = "password"

type RoleService interface {
	GetAllRoles(ctx context.Context) ([]role.RoleDTO, error)
	Create(ctx context.Context, dto role.SaveRoleDTO) (*role.RoleDTO, error)
	Count(ctx context.Context) (int64, error)
}

type UserService interface {
	Create(ctx context.Context, dto user.SaveUserDTO) (*user.UserDTO, error)
	Count(ctx context.Context) (int64, error)
}

type FunctionalAreaService interface {
	Save(ctx context.Context, area *functionalarea.FunctionalArea) (*functionalarea.FunctionalArea, error)
	Count(ctx context.Context) (int64, error)
}

type PermissionService interface {
	SavePermission(ctx context.Context, dto permission.SavePermissionDTO) (*permission.PermissionDTO, error)
	Count(ctx context.Context) (int64, error)
}

type ScreenSource interface {
	Screens() []screens.ScreenConfig
}

type Dependencies struct {
	Roles           RoleService
	Users           UserService
	FunctionalAreas FunctionalAreaService
	Permissions     PermissionService
	Screens         ScreenSource
	// SamplePassword is given to the sample accounts; empty means "password".
	SamplePassword string
}

// Initializer seeds an empty database. Each step only runs when its table is
// empty, so running it again against a seeded database writes nothing.
type Initializer struct {
	deps   Dependencies
	logger *slog.Logger
}

func NewInitializer(deps Dependencies, logger *slog.Logger) *Initializer {
	if deps.SamplePassword == "" {
		deps.SamplePassword = defaultSamplePassword
	}
	return &Initializer{deps: deps, logger: logger}
}

func (i *Initializer) Run(ctx context.Context) error {
	ctx = internal.WithSystemBootstrap(ctx)

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"roles", i.seedRoles},
		{"users", i.seedUsers},
		{"functional areas", i.seedFunctionalAreas},
		{"permissions", i.seedPermissions},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			i.logger.ErrorContext(ctx, "data initialization failed", "step", step.name, "error", err)
			return fmt.Errorf("data initialization failed: %w", err)
		}
	}
	return nil
}

func (i *Initializer) seedRoles(ctx context.Context) error {
	n, err := i.deps.Roles.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		i.logger.InfoContext(ctx, "roles already exist", "count", n)
		return nil
	}
	for _, r := range defaultRoles {
		if _, err := i.deps.Roles.Create(ctx, r); err != nil {
			return fmt.Errorf("create role %s: %w", r.Name, err)
		}
	}
	i.logger.InfoContext(ctx, "roles initialized", "count", len(defaultRoles))
	return nil
}

func (i *Initializer) seedUsers(ctx context.Context) error {
	n, err := i.deps.Users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		i.logger.InfoContext(ctx, "users already exist", "count", n)
		return nil
	}

	roleIDs, err := i.roleIDsByName(ctx)
	if err != nil {
		return err
	}
	for _, su := range sampleUsers {
		ids := make([]int64, 0, len(su.roles))
		for _, name := range su.roles {
			id, ok := roleIDs[name]
			if !ok {
				return fmt.Errorf("sample user %s needs missing role %s", su.username, name)
			}
			ids = append(ids, id)
		}
		_, err := i.deps.Users.Create(ctx, user.SaveUserDTO{
			Username: su.username,
			FullName: su.fullName,
			Email:    su.email,
			Password: i.deps.SamplePassword,
			RoleIDs:  ids,
		})
		if err != nil {
			return fmt.Errorf("create user %s: %w", su.username, err)
		}
	}
	i.logger.InfoContext(ctx, "sample users initialized", "count", len(sampleUsers))
	return nil
}

func (i *Initializer) seedFunctionalAreas(ctx context.Context) error {
	n, err := i.deps.FunctionalAreas.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		i.logger.InfoContext(ctx, "functional area data already exists", "count", n)
		return nil
	}
	for _, a := range defaultFunctionalAreas {
		area := a
		if _, err := i.deps.FunctionalAreas.Save(ctx, &area); err != nil {
			return fmt.Errorf("create functional area %s: %w", a.Code, err)
		}
	}
	i.logger.InfoContext(ctx, "functional area data initialized", "count", len(defaultFunctionalAreas))
	return nil
}

func (i *Initializer) seedPermissions(ctx context.Context) error {
	n, err := i.deps.Permissions.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		i.logger.InfoContext(ctx, "permissions already exist", "count", n)
		return nil
	}

	roleIDs, err := i.roleIDsByName(ctx)
	if err != nil {
		return err
	}
	saved := 0
	for _, sc := range i.deps.Screens.Screens() {
		for roleName, perm := range sc.DefaultPermissions {
			id, ok := roleIDs[roleName]
			if !ok {
				continue
			}
			_, err := i.deps.Permissions.SavePermission(ctx, permission.SavePermissionDTO{
				RoleID:     &id,
				ScreenName: sc.Title,
				CanRead:    perm.CanRead,
				CanWrite:   perm.CanWrite,
			})
			if err != nil {
				return fmt.Errorf("save permission %s/%s: %w", roleName, sc.Title, err)
			}
			saved++
		}
	}
	i.logger.InfoContext(ctx, "default permissions initialized", "count", saved)
	return nil
}

func (i *Initializer) roleIDsByName(ctx context.Context) (map[string]int64, error) {
	roles, err := i.deps.Roles.GetAllRoles(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(roles))
	for _, r := range roles {
		out[r.Name] = r.ID
	}
	return out, nil
}

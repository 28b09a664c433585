package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/toolbox/internal/auth"
	userDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentials(ctx context.Context, username string) (*auth.Credentials, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &auth.Credentials{
		UserID:       u.ID,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}, nil
}

// GetPrincipal loads an active user with every role they hold.
func (r *Repository) GetPrincipal(ctx context.Context, userID int64) (*auth.Principal, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ? AND is_active = ?", userID, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return ToPrincipal(&u), nil
}

func ToPrincipal(u *userDatamodel.User) *auth.Principal {
	p := &auth.Principal{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Roles:    make([]string, 0, len(u.Roles)),
		RoleIDs:  make([]int64, 0, len(u.Roles)),
	}
	for _, role := range u.Roles {
		p.Roles = append(p.Roles, role.Name)
		p.RoleIDs = append(p.RoleIDs, role.ID)
	}
	return p
}

package postgres

import (
	"context"
	"errors"

	permissionDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/permission"
	"github.com/frahmantamala/toolbox/internal/permission"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

var _ permission.RepositoryAPI = (*PermissionRepository)(nil)

func (r *PermissionRepository) GrantsForRoles(ctx context.Context, roleIDs []int64) ([]permission.Grant, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var grants []permission.Grant
	err := r.db.WithContext(ctx).
		Model(&permissionDatamodel.Permission{}).
		Select("screen_name, can_read, can_write").
		Where("role_id IN ?", roleIDs).
		Scan(&grants).Error
	return grants, err
}

func (r *PermissionRepository) FindByRoleID(ctx context.Context, roleID int64) ([]*permissionDatamodel.Permission, error) {
	var rows []*permissionDatamodel.Permission
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("role_id = ?", roleID).
		Order("screen_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *PermissionRepository) FindByRoleAndScreen(ctx context.Context, roleID int64, screen string) (*permissionDatamodel.Permission, error) {
	var p permissionDatamodel.Permission
	err := r.db.WithContext(ctx).Where("role_id = ? AND screen_name = ?", roleID, screen).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepository) Save(ctx context.Context, p *permissionDatamodel.Permission) error {
	return r.db.WithContext(ctx).Omit("Role").Save(p).Error
}

func (r *PermissionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&permissionDatamodel.Permission{}).Count(&n).Error
	return n, err
}

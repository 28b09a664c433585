package permission

import (
	"time"

	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
)

// Permission grants one role read and/or write access to one screen.
// (role_id, screen_name) is unique.
type Permission struct {
	ID         int64              `gorm:"primaryKey"`
	RoleID     int64              `gorm:"column:role_id;not null;uniqueIndex:idx_permissions_role_screen"`
	Role       roleDatamodel.Role `gorm:"foreignKey:RoleID"`
	ScreenName string             `gorm:"column:screen_name;size:100;not null;uniqueIndex:idx_permissions_role_screen"`
	CanRead    bool               `gorm:"column:can_read;not null"`
	CanWrite   bool               `gorm:"column:can_write;not null"`
	CreatedAt  time.Time          `gorm:"column:created_at"`
	UpdatedAt  time.Time          `gorm:"column:updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

package user

import (
	"time"

	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
)

type User struct {
	ID           int64                `gorm:"primaryKey"`
	Username     string               `gorm:"column:username;uniqueIndex;size:50;not null"`
	FullName     string               `gorm:"column:full_name;size:100;not null"`
	Email        string               `gorm:"column:email;size:255"`
	PasswordHash string               `gorm:"column:password_hash;not null"`
	IsActive     bool                 `gorm:"column:is_active;not null"`
	Roles        []roleDatamodel.Role `gorm:"many2many:user_roles;"`
	CreatedAt    time.Time            `gorm:"column:created_at"`
	UpdatedAt    time.Time            `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

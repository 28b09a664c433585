package permission

import (
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	permissionDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/permission"
)

type PermissionDTO struct {
	ID         int64  `json:"id"`
	RoleID     int64  `json:"role_id"`
	RoleName   string `json:"role_name"`
	ScreenName string `json:"screen_name"`
	CanRead    bool   `json:"can_read"`
	CanWrite   bool   `json:"can_write"`
}

type SavePermissionDTO struct {
	RoleID     *int64 `json:"role_id"`
	ScreenName string `json:"screen_name"`
	CanRead    bool   `json:"can_read"`
	CanWrite   bool   `json:"can_write"`
}

func (d SavePermissionDTO) Validate() error {
	if d.RoleID == nil {
		return internal.NewValidationFieldError("role_id", "Role ID cannot be null", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.ScreenName) == "" {
		return internal.NewValidationFieldError("screen_name", "Screen name cannot be null or empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDTO(p *permissionDatamodel.Permission) PermissionDTO {
	return PermissionDTO{
		ID:         p.ID,
		RoleID:     p.RoleID,
		RoleName:   p.Role.Name,
		ScreenName: p.ScreenName,
		CanRead:    p.CanRead,
		CanWrite:   p.CanWrite,
	}
}

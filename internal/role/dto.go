package role

import (
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	roleDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/role"
)

type RoleDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SaveRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d SaveRoleDTO) Validate() error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if len(name) > 50 {
		return internal.NewValidationFieldError("name", "name must not exceed 50 characters", internal.ErrCodeValidationFailed)
	}
	if len(d.Description) > 255 {
		return internal.NewValidationFieldError("description", "description must not exceed 255 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

func ToDTO(r *roleDatamodel.Role) RoleDTO {
	return RoleDTO{ID: r.ID, Name: r.Name, Description: r.Description}
}

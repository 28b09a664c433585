package user

import (
	"net/mail"
	"strings"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/user"
)

type UserDTO struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	IsActive bool     `json:"is_active"`
	Roles    []string `json:"roles"`
}

// UserInfo is the shape returned for the signed-in caller.
type UserInfo struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
	IsAdmin     bool     `json:"is_admin"`
}

type SaveUserDTO struct {
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password string  `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	RoleIDs  []int64 `json:"role_ids"`
}

func (d SaveUserDTO) Validate(creating bool) error {
	v := validation.NewValidator()
	v.Field("username", strings.TrimSpace(d.Username)).Required().MinLength(3).MaxLength(50)
	v.Field("full_name", d.FullName).Required().MaxLength(100)
	v.Field("email", d.Email).MaxLength(255).Custom(func(value interface{}) *internal.AppError {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return internal.NewValidationFieldError("email", "email is not a valid address", internal.ErrCodeValidationFailed)
		}
		return nil
	})
	if creating {
		v.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	} else if d.Password != "" {
		v.Field("password", d.Password).MinLength(8).MaxLength(72)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func ToDTO(u *userDatamodel.User) UserDTO {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		IsActive: u.IsActive,
		Roles:    roles,
	}
}

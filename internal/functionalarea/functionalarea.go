package functionalarea

import (
	"regexp"
	"strings"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/common/validation"
	functionalareaDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/functionalarea"
)

// ScreenName is the screen whose permissions gate functional area writes.
const ScreenName = "Functional Areas"

var codePattern = regexp.MustCompile(`^[A-Z]{2}$`)

type FunctionalArea struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsNew reports whether the area has not been persisted yet.
func (f *FunctionalArea) IsNew() bool {
	return f.ID == 0
}

func (f *FunctionalArea) normalize() {
	f.Code = strings.TrimSpace(f.Code)
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
}

// Validate checks field shape only. Uniqueness is the service's job.
func (f *FunctionalArea) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("code", f.Code).
		Required().
		Matches(codePattern, "code must be exactly 2 uppercase letters", internal.ErrCodeInvalidCode)
	v.Field("name", f.Name).Required().MaxLength(100)
	v.Field("description", f.Description).Required().MaxLength(255)
	return v.Validate()
}

func ToDataModel(f *FunctionalArea) *functionalareaDatamodel.FunctionalArea {
	return &functionalareaDatamodel.FunctionalArea{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func FromDataModel(f *functionalareaDatamodel.FunctionalArea) *FunctionalArea {
	return &FunctionalArea{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

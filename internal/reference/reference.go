package reference

import (
	"strings"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/common/validation"
	referenceDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/reference"
)

const ScreenName = "Reference"

type Entry struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Entry) Validate() *internal.AppError {
	e.Code = strings.TrimSpace(e.Code)
	e.Category = strings.TrimSpace(e.Category)

	v := validation.NewValidator()
	v.Field("code", e.Code).Required().MaxLength(50)
	v.Field("description", e.Description).Required().MaxLength(255)
	v.Field("category", e.Category).MaxLength(100)
	return v.Validate()
}

func ToDataModel(e *Entry) *referenceDatamodel.ReferenceEntry {
	return &referenceDatamodel.ReferenceEntry{
		ID:          e.ID,
		Code:        e.Code,
		Description: e.Description,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *referenceDatamodel.ReferenceEntry) *Entry {
	return &Entry{
		ID:          e.ID,
		Code:        e.Code,
		Description: e.Description,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

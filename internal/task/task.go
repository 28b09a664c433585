package task

import (
	"strings"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/core/common/validation"
	taskDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/task"
)

const ScreenName = "Task List"

// failDescription is rejected outright so the client error path can be exercised.
const failDescription = "fail"

type Task struct {
	ID           int64      `json:"id"`
	Description  string     `json:"description"`
	CreationDate time.Time  `json:"creation_date"`
	DueDate      *time.Time `json:"due_date,omitempty"`
}

func validate(description string, dueDate *time.Time, now func() time.Time) *internal.AppError {
	v := validation.NewValidator()
	v.Field("description", strings.TrimSpace(description)).Required().MaxLength(255)
	v.Field("due_date", dueDate).NotPast(now)
	return v.Validate()
}

func FromDataModel(t *taskDatamodel.Task) *Task {
	return &Task{
		ID:           t.ID,
		Description:  t.Description,
		CreationDate: t.CreationDate,
		DueDate:      t.DueDate,
	}
}

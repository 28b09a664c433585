package postgres

import (
	"context"

	taskDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/task"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *taskDatamodel.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) List(ctx context.Context, limit, offset int) ([]*taskDatamodel.Task, error) {
	var rows []*taskDatamodel.Task
	err := r.db.WithContext(ctx).
		Order("creation_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

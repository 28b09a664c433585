package task

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/toolbox/internal"
	taskDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/task"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type RepositoryAPI interface {
	Create(ctx context.Context, t *taskDatamodel.Task) error
	List(ctx context.Context, limit, offset int) ([]*taskDatamodel.Task, error)
}

type WriteGuard interface {
	RequireWritePermission(ctx context.Context, screen string) error
}

type Service struct {
	repo   RepositoryAPI
	guard  WriteGuard
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, guard WriteGuard, logger *slog.Logger, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		repo:   repo,
		guard:  guard,
		logger: logger,
		now:    clock,
	}
}

// CreateTask stamps the task with the service clock and stores it.
func (s *Service) CreateTask(ctx context.Context, description string, dueDate *time.Time) (*Task, error) {
	if err := s.guard.RequireWritePermission(ctx, ScreenName); err != nil {
		return nil, err
	}
	if description == failDescription {
		return nil, internal.NewValidationError("Task creation failed for testing purposes", internal.ErrCodeTaskCreation)
	}
	if err := validate(description, dueDate, s.now); err != nil {
		return nil, err
	}

	row := &taskDatamodel.Task{
		Description:  strings.TrimSpace(description),
		CreationDate: s.now().UTC(),
		DueDate:      dueDate,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to create task", "error", err)
		return nil, internal.NewInternalError("failed to create task", err)
	}
	s.logger.InfoContext(ctx, "task created", "id", row.ID)
	return FromDataModel(row), nil
}

// List pages through tasks, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Task, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list tasks", err)
	}
	out := make([]*Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

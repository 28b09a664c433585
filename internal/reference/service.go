package reference

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	referenceDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/reference"
	"github.com/frahmantamala/toolbox/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context, category string) ([]*referenceDatamodel.ReferenceEntry, error)
	GetByID(ctx context.Context, id int64) (*referenceDatamodel.ReferenceEntry, error)
	Create(ctx context.Context, e *referenceDatamodel.ReferenceEntry) error
	Update(ctx context.Context, e *referenceDatamodel.ReferenceEntry) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type WriteGuard interface {
	RequireWritePermission(ctx context.Context, screen string) error
}

type Service struct {
	repo      RepositoryAPI
	guard     WriteGuard
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, guard WriteGuard, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns every entry, or only those of category when it is not empty.
func (s *Service) List(ctx context.Context, category string) ([]*Entry, error) {
	rows, err := s.repo.GetAll(ctx, category)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get reference entries", "error", err)
		return nil, internal.NewInternalError("failed to load reference entries", err)
	}
	out := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load reference entry", err)
	}
	if row == nil {
		return nil, notFound(id)
	}
	return FromDataModel(row), nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Save(ctx context.Context, entry *Entry) (*Entry, error) {
	if err := s.guard.RequireWritePermission(ctx, ScreenName); err != nil {
		return nil, err
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	row := ToDataModel(entry)
	if entry.ID == 0 {
		if err := s.repo.Create(ctx, row); err != nil {
			return nil, internal.NewInternalError("failed to create reference entry", err)
		}
	} else {
		existing, err := s.repo.GetByID(ctx, entry.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to load reference entry", err)
		}
		if existing == nil {
			return nil, notFound(entry.ID)
		}
		row.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, row); err != nil {
			return nil, internal.NewInternalError("failed to update reference entry", err)
		}
	}

	s.logger.InfoContext(ctx, "reference entry saved", "id", row.ID, "code", row.Code)
	s.publish(ctx, row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.guard.RequireWritePermission(ctx, ScreenName); err != nil {
		return err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load reference entry", err)
	}
	if row == nil {
		return notFound(id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete reference entry", err)
	}
	s.logger.InfoContext(ctx, "reference entry deleted", "id", id)
	s.publish(ctx, id)
	return nil
}

func (s *Service) publish(ctx context.Context, id int64) {
	if s.publisher == nil {
		return
	}
	event := events.NewEntityChangedEvent(events.EventTypeReferenceChanged, id, auth.UsernameFromContext(ctx))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "event_type", event.Type, "error", err)
	}
}

func notFound(id int64) *internal.AppError {
	return internal.NewNotFoundError(fmt.Sprintf("Reference with id %d not found", id), internal.ErrCodeReferenceNotFound)
}

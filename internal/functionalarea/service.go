package functionalarea

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/toolbox/internal"
	"github.com/frahmantamala/toolbox/internal/auth"
	functionalareaDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/functionalarea"
	"github.com/frahmantamala/toolbox/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*functionalareaDatamodel.FunctionalArea, error)
	GetByID(ctx context.Context, id int64) (*functionalareaDatamodel.FunctionalArea, error)
	// ExistsByName and ExistsByCode ignore the row with excludeID; pass 0 to check every row.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, f *functionalareaDatamodel.FunctionalArea) error
	Update(ctx context.Context, f *functionalareaDatamodel.FunctionalArea) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// WriteGuard is the permission check run before every mutation.
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

func (s *Service) ListAll(ctx context.Context) ([]*FunctionalArea, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to load functional areas", err)
	}
	out := make([]*FunctionalArea, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*FunctionalArea, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load functional area", err)
	}
	if row == nil {
		return nil, notFound(id)
	}
	return FromDataModel(row), nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Save creates the area when it has no id and updates it otherwise.
// Name and code must be unique across all other rows; nothing is written when
// either collides.
func (s *Service) Save(ctx context.Context, area *FunctionalArea) (*FunctionalArea, error) {
	if err := s.checkWrite(ctx); err != nil {
		return nil, err
	}

	area.normalize()
	if err := area.Validate(); err != nil {
		return nil, err
	}

	if !area.IsNew() {
		existing, err := s.repo.GetByID(ctx, area.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to load functional area", err)
		}
		if existing == nil {
			return nil, notFound(area.ID)
		}
		area.CreatedAt = existing.CreatedAt
	}

	if err := s.checkUnique(ctx, area); err != nil {
		return nil, err
	}

	row := ToDataModel(area)
	var err error
	if area.IsNew() {
		err = s.repo.Create(ctx, row)
	} else {
		err = s.repo.Update(ctx, row)
	}
	if err != nil {
		return nil, internal.NewInternalError("failed to save functional area", err)
	}

	s.logger.InfoContext(ctx, "functional area saved", "id", row.ID, "code", row.Code, "actor", auth.UsernameFromContext(ctx))
	s.publish(ctx, events.EventTypeFunctionalAreaSaved, row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.guard.RequireWritePermission(ctx, ScreenName); err != nil {
		return err
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to load functional area", err)
	}
	if row == nil {
		return notFound(id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete functional area", err)
	}
	s.logger.InfoContext(ctx, "functional area deleted", "id", id, "code", row.Code, "actor", auth.UsernameFromContext(ctx))
	s.publish(ctx, events.EventTypeFunctionalAreaDeleted, id)
	return nil
}

// checkWrite enforces write permission. The startup data initializer runs
// before any caller exists, so a denial is tolerated for bootstrap contexts only.
func (s *Service) checkWrite(ctx context.Context) error {
	err := s.guard.RequireWritePermission(ctx, ScreenName)
	if err == nil {
		return nil
	}
	if internal.IsSystemBootstrap(ctx) {
		s.logger.DebugContext(ctx, "write permission check skipped during data initialization", "screen", ScreenName)
		return nil
	}
	return err
}

func (s *Service) checkUnique(ctx context.Context, area *FunctionalArea) error {
	nameTaken, err := s.repo.ExistsByName(ctx, area.Name, area.ID)
	if err != nil {
		return internal.NewInternalError("failed to check functional area name", err)
	}
	if nameTaken {
		return internal.NewConflictError(
			fmt.Sprintf("Functional area with name '%s' already exists", area.Name),
			internal.ErrCodeFunctionalAreaNameExists)
	}

	codeTaken, err := s.repo.ExistsByCode(ctx, area.Code, area.ID)
	if err != nil {
		return internal.NewInternalError("failed to check functional area code", err)
	}
	if codeTaken {
		return internal.NewConflictError(
			fmt.Sprintf("Functional area with code '%s' already exists", area.Code),
			internal.ErrCodeFunctionalAreaCodeExists)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEntityChangedEvent(eventType, id, auth.UsernameFromContext(ctx))); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", "event_type", eventType, "error", err)
	}
}

func notFound(id int64) *internal.AppError {
	return internal.NewNotFoundError(fmt.Sprintf("Functional area with id %d not found", id), internal.ErrCodeFunctionalAreaNotFound)
}

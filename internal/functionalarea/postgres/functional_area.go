package postgres

import (
	"context"
	"errors"

	functionalareaDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/functionalarea"
	"github.com/frahmantamala/toolbox/internal/functionalarea"
	"gorm.io/gorm"
)

type FunctionalAreaRepository struct {
	db *gorm.DB
}

func NewFunctionalAreaRepository(db *gorm.DB) *FunctionalAreaRepository {
	return &FunctionalAreaRepository{db: db}
}

var _ functionalarea.RepositoryAPI = (*FunctionalAreaRepository)(nil)

func (r *FunctionalAreaRepository) GetAll(ctx context.Context) ([]*functionalareaDatamodel.FunctionalArea, error) {
	var rows []*functionalareaDatamodel.FunctionalArea
	err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error
	return rows, err
}

func (r *FunctionalAreaRepository) GetByID(ctx context.Context, id int64) (*functionalareaDatamodel.FunctionalArea, error) {
	var row functionalareaDatamodel.FunctionalArea
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *FunctionalAreaRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.exists(ctx, "name", name, excludeID)
}

func (r *FunctionalAreaRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return r.exists(ctx, "code", code, excludeID)
}

func (r *FunctionalAreaRepository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&functionalareaDatamodel.FunctionalArea{}).
		Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *FunctionalAreaRepository) Create(ctx context.Context, f *functionalareaDatamodel.FunctionalArea) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FunctionalAreaRepository) Update(ctx context.Context, f *functionalareaDatamodel.FunctionalArea) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FunctionalAreaRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&functionalareaDatamodel.FunctionalArea{}, id).Error
}

func (r *FunctionalAreaRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&functionalareaDatamodel.FunctionalArea{}).Count(&n).Error
	return n, err
}

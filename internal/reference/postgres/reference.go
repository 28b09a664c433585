package postgres

import (
	"context"
	"errors"

	referenceDatamodel "github.com/frahmantamala/toolbox/internal/core/datamodel/reference"
	"gorm.io/gorm"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) GetAll(ctx context.Context, category string) ([]*referenceDatamodel.ReferenceEntry, error) {
	var rows []*referenceDatamodel.ReferenceEntry
	q := r.db.WithContext(ctx).Order("category ASC, code ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *ReferenceRepository) GetByID(ctx context.Context, id int64) (*referenceDatamodel.ReferenceEntry, error) {
	var row referenceDatamodel.ReferenceEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ReferenceRepository) Create(ctx context.Context, e *referenceDatamodel.ReferenceEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ReferenceRepository) Update(ctx context.Context, e *referenceDatamodel.ReferenceEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ReferenceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&referenceDatamodel.ReferenceEntry{}, id).Error
}

func (r *ReferenceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&referenceDatamodel.ReferenceEntry{}).Count(&n).Error
	return n, err
}

package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, metric *model.Metric) error {
	if err := r.db.WithContext(ctx).Create(metric).Error; err != nil {
		return fmt.Errorf("failed to create metric: %v", err)
	}
	return nil
}

func (r repository) findAll(ctx context.Context) ([]model.Metric, error) {
	var metrics []model.Metric
	err := r.db.
		WithContext(ctx).
		Order("id").
		Find(&metrics).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find metrics: %v", err)
	}
	return metrics, nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Metric, error) {
	var metric *model.Metric
	err := r.db.WithContext(ctx).First(&metric, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find metric with id %d", id)
	}
	return metric, err
}

func (r repository) delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Delete(&model.Metric{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete metric with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find metric with id %d", id)
	}
	return nil
}

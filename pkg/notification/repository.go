package notification

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

func (r repository) create(ctx context.Context, notifications ...*model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(notifications).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %v", err)
	}
	return nil
}

func (r repository) findAll(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).Order("id").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %v", err)
	}
	return notifications, nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Notification, error) {
	var notification *model.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find notification with id %d", id)
	}
	return notification, err
}

func (r repository) findByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.
		WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications of user %d: %v", userID, err)
	}
	return notifications, nil
}

func (r repository) delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Delete(&model.Notification{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete notification with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find notification with id %d", id)
	}
	return nil
}

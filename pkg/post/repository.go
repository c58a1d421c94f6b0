package post

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

func (r repository) create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %v", err)
	}
	return nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Post, error) {
	var post *model.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find post with id %d", id)
	}
	return post, err
}

// findActive returns posts with status active, newest first.
func (r repository) findActive(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.
		WithContext(ctx).
		Where("status = ?", model.StatusActive).
		Order("created_at desc").
		Order("id desc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active posts: %v", err)
	}
	return posts, nil
}

func (r repository) update(ctx context.Context, post *model.Post) error {
	err := r.db.
		WithContext(ctx).
		Model(post).
		Select("Title", "Location", "Description", "DietarySpecification", "AvailableFrom", "AvailableUntil", "ImageURL", "Status").
		Updates(post).Error
	if err != nil {
		return fmt.Errorf("failed to update post %d: %v", post.ID, err)
	}
	return nil
}

func (r repository) updateStatus(ctx context.Context, id uint, status string) error {
	db := r.db.
		WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("status", status)
	if db.Error != nil {
		return fmt.Errorf("failed to update status of post %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find post with id %d", id)
	}
	return nil
}

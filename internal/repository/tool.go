package repository

import (
	"context"
	"time"

	"paint-it-black-manufacturer/internal/model"

	"gorm.io/gorm"
)

type ToolRepository interface {
	Create(ctx context.Context, tool *model.Tool) error
	FindByID(ctx context.Context, tx *gorm.DB, toolID string) (*model.Tool, error)
	List(ctx context.Context, limit int) ([]*model.Tool, error)
	DecrementAvailable(ctx context.Context, tx *gorm.DB, toolID string, quantity int) error
}

type toolRepoImpl struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) ToolRepository {
	return &toolRepoImpl{
		db: db,
	}
}

func (r *toolRepoImpl) Create(ctx context.Context, tool *model.Tool) error {
	return r.db.WithContext(ctx).Create(tool).Error
}

func (r *toolRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, toolID string) (*model.Tool, error) {
	var tool model.Tool
	err := conn(r.db, tx).WithContext(ctx).
		Where("id = ?", toolID).
		First(&tool).Error

	if err != nil {
		return nil, err
	}

	return &tool, nil
}

func (r *toolRepoImpl) List(ctx context.Context, limit int) ([]*model.Tool, error) {
	var tools []*model.Tool
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&tools).Error; err != nil {
		return nil, err
	}

	return tools, nil
}

// DecrementAvailable subtracts quantity only while availability stays non-negative.
func (r *toolRepoImpl) DecrementAvailable(ctx context.Context, tx *gorm.DB, toolID string, quantity int) error {
	db := conn(r.db, tx).WithContext(ctx)

	result := db.Model(&model.Tool{}).
		Where("id = ? AND available >= ?", toolID, quantity).
		Updates(map[string]interface{}{
			"available":  gorm.Expr("available - ?", quantity),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.Tool{}).Where("id = ?", toolID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrInsufficientStock
}

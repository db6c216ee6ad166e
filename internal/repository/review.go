package repository

import (
	"context"

	"paint-it-black-manufacturer/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByTool(ctx context.Context, toolID string) ([]*model.Review, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) ListByTool(ctx context.Context, toolID string) ([]*model.Review, error) {
	var reviews []*model.Review
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if toolID != "" {
		q = q.Where("tool_id = ?", toolID)
	}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}

	return reviews, nil
}

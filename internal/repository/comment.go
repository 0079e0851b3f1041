package repository

import (
	"context"

	"tradepost/internal/cache"
	"tradepost/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for item comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	cache.InvalidateItem(ctx, comment.ItemID)
	return nil
}

func (r *commentRepository) ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

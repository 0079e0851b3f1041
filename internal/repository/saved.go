package repository

import (
	"context"
	"time"

	"tradepost/internal/cache"
	"tradepost/internal/models"

	"gorm.io/gorm"
)

// SavedItemRepository defines the interface for bookmark data operations
type SavedItemRepository interface {
	IsSaved(ctx context.Context, userID, itemID uint) (bool, error)
	Save(ctx context.Context, userID, itemID uint) error
	Unsave(ctx context.Context, userID, itemID uint) error
}

type savedItemRepository struct {
	db *gorm.DB
}

// NewSavedItemRepository creates a new saved item repository instance.
func NewSavedItemRepository(db *gorm.DB) SavedItemRepository {
	return &savedItemRepository{db: db}
}

func (r *savedItemRepository) IsSaved(ctx context.Context, userID, itemID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedItem{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save uses INSERT ... ON CONFLICT DO NOTHING so two racing toggles cannot
// trip the unique index on (user_id, item_id).
func (r *savedItemRepository) Save(ctx context.Context, userID, itemID uint) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO saved_items (user_id, item_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, item_id) DO NOTHING`,
		userID, itemID, time.Now(),
	)
	if result.Error == nil {
		cache.InvalidateItem(ctx, itemID)
	}
	return result.Error
}

func (r *savedItemRepository) Unsave(ctx context.Context, userID, itemID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.SavedItem{}).Error
	if err == nil {
		cache.InvalidateItem(ctx, itemID)
	}
	return err
}

package repository

import (
	"context"

	"tradepost/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations. Tag rows are
// shared across items and never garbage-collected.
type TagRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (*models.Tag, error)
	AttachToItem(ctx context.Context, itemID, tagID uint) error
	DetachAllFromItem(ctx context.Context, itemID uint) error
	NamesForItem(ctx context.Context, itemID uint) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// GetOrCreateByName looks the name up first and only inserts on a miss. There
// is no unique constraint backing this, so two concurrent writers can both
// insert; the duplicate row is harmless and later lookups just pick the first.
func (r *tagRepository) GetOrCreateByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tag = models.Tag{Name: name}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) AttachToItem(ctx context.Context, itemID, tagID uint) error {
	return r.db.WithContext(ctx).Create(&models.ItemTag{ItemID: itemID, TagID: tagID}).Error
}

// DetachAllFromItem clears the item's tag set unconditionally. Updates always
// rebuild the full set rather than diffing.
func (r *tagRepository) DetachAllFromItem(ctx context.Context, itemID uint) error {
	return r.db.WithContext(ctx).Where("item_id = ?", itemID).Delete(&models.ItemTag{}).Error
}

func (r *tagRepository) NamesForItem(ctx context.Context, itemID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Joins("JOIN item_tags ON item_tags.tag_id = tags.id").
		Where("item_tags.item_id = ?", itemID).
		Order("item_tags.id ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

package repository

import (
	"context"
	"errors"

	"tradepost/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines the interface for image row operations. Files on
// disk belong to the image service; only metadata lives here.
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id uint) (*models.Image, error)
	ListByItem(ctx context.Context, itemID uint) ([]models.Image, error)
	Delete(ctx context.Context, id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository instance.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Image", id)
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) ListByItem(ctx context.Context, itemID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Image{}, id).Error
}

package repository

import (
	"context"

	"tradepost/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for seller review operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Review, error)
	AverageForSeller(ctx context.Context, sellerID uint) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageForSeller returns 0 for sellers with no reviews.
func (r *reviewRepository) AverageForSeller(ctx context.Context, sellerID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("seller_id = ?", sellerID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

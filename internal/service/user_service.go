package service

import (
	"context"
	"strings"

	"tradepost/internal/models"
	"tradepost/internal/repository"
	"tradepost/internal/validation"
)

// UserService covers profiles and seller reviews.
type UserService struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	reviewRepo repository.ReviewRepository
}

// UpdateProfileInput carries the editable profile fields. Empty strings leave
// the current value in place.
type UpdateProfileInput struct {
	UserID       uint
	FirstName    string
	LastName     string
	DistanceUnit string
}

// PublicProfile is another user's profile page: their listings plus the
// reviews other users left for them.
type PublicProfile struct {
	User          *models.User    `json:"user"`
	Items         []*models.Item  `json:"items"`
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
}

// CreateReviewInput is feedback left on a seller's profile.
type CreateReviewInput struct {
	SellerID uint
	AuthorID uint
	Rating   int
	Body     string
}

// NewUserService creates a new user service instance.
func NewUserService(userRepo repository.UserRepository, itemRepo repository.ItemRepository, reviewRepo repository.ReviewRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		itemRepo:   itemRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		user.LastName = v
	}
	if in.DistanceUnit != "" {
		if err := validation.ValidateDistanceUnit(in.DistanceUnit); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.DistanceUnit = in.DistanceUnit
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ViewUser builds a seller's public profile page.
func (s *UserService) ViewUser(ctx context.Context, userID uint) (*PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListBySeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	avg, err := s.reviewRepo.AverageForSeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		User:          user,
		Items:         items,
		Reviews:       reviews,
		AverageRating: avg,
	}, nil
}

// CreateReview records feedback on a seller. Reviewing yourself is rejected.
func (s *UserService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.SellerID == in.AuthorID {
		return nil, models.NewValidationError("You cannot review yourself")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	if _, err := s.userRepo.GetByID(ctx, in.SellerID); err != nil {
		return nil, err
	}

	review := &models.Review{
		SellerID: in.SellerID,
		AuthorID: in.AuthorID,
		Rating:   in.Rating,
		Body:     strings.TrimSpace(in.Body),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

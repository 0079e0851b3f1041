package service

import (
	"context"
	"testing"

	"tradepost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockReviewRepository is a mock of the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Review, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageForSeller(ctx context.Context, sellerID uint) (float64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(float64), args.Error(1)
}

func newUserServiceWithMocks() (*UserService, *MockUserRepository, *MockItemRepository, *MockReviewRepository) {
	userRepo := new(MockUserRepository)
	itemRepo := new(MockItemRepository)
	reviewRepo := new(MockReviewRepository)
	svc := NewUserService(userRepo, itemRepo, reviewRepo)
	return svc, userRepo, itemRepo, reviewRepo
}

func TestUpdateProfileKeepsBlankFields(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceWithMocks()

	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, FirstName: "Alex", LastName: "Reed", DistanceUnit: models.DistanceUnitImperial}, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:    1,
		FirstName: "  ",
		LastName:  "Stone",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex", user.FirstName)
	assert.Equal(t, "Stone", user.LastName)
	assert.Equal(t, models.DistanceUnitImperial, user.DistanceUnit)
}

func TestUpdateProfileRejectsBadDistanceUnit(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceWithMocks()

	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1}, nil)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:       1,
		DistanceUnit: "parsecs",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	userRepo.AssertNotCalled(t, "Update")
}

func TestViewUserAssemblesProfile(t *testing.T) {
	svc, userRepo, itemRepo, reviewRepo := newUserServiceWithMocks()

	userRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.User{ID: 3, FirstName: "Sam"}, nil)
	itemRepo.On("ListByUser", mock.Anything, uint(3)).
		Return([]*models.Item{{ID: 1}, {ID: 2}}, nil)
	reviewRepo.On("ListBySeller", mock.Anything, uint(3)).
		Return([]models.Review{{ID: 1, Rating: 4}}, nil)
	reviewRepo.On("AverageForSeller", mock.Anything, uint(3)).Return(4.0, nil)

	profile, err := svc.ViewUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Sam", profile.User.FirstName)
	assert.Len(t, profile.Items, 2)
	assert.Len(t, profile.Reviews, 1)
	assert.Equal(t, 4.0, profile.AverageRating)
}

func TestCreateReviewRejectsSelfReview(t *testing.T) {
	svc, _, _, reviewRepo := newUserServiceWithMocks()

	_, err := svc.CreateReview(context.Background(), CreateReviewInput{
		SellerID: 1,
		AuthorID: 1,
		Rating:   5,
		Body:     "Great seller",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	reviewRepo.AssertNotCalled(t, "Create")
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _, _ := newUserServiceWithMocks()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), CreateReviewInput{
			SellerID: 2,
			AuthorID: 1,
			Rating:   rating,
		})
		assert.Error(t, err, "rating %d", rating)
	}
}

func TestCreateReviewUnknownSeller(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceWithMocks()

	userRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User", 99))

	_, err := svc.CreateReview(context.Background(), CreateReviewInput{
		SellerID: 99,
		AuthorID: 1,
		Rating:   4,
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCreateReviewSuccess(t *testing.T) {
	svc, userRepo, _, reviewRepo := newUserServiceWithMocks()

	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2}, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	review, err := svc.CreateReview(context.Background(), CreateReviewInput{
		SellerID: 2,
		AuthorID: 1,
		Rating:   5,
		Body:     "  Prompt and friendly  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Prompt and friendly", review.Body)
	assert.Equal(t, uint(2), review.SellerID)
}

package server

import (
	"testing"

	"tradepost/internal/config"
	"tradepost/internal/database"
	"tradepost/internal/models"
	"tradepost/internal/repository"
	"tradepost/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a Server against an in-memory sqlite database and
// registers the full route table. Redis stays nil: the blacklist check and
// rate limiters all degrade gracefully without it.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Env:       "test",
		UploadDir: t.TempDir(),
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	tagRepo := repository.NewTagRepository(db)
	savedRepo := repository.NewSavedItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	imageRepo := repository.NewImageRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		tagRepo:      tagRepo,
		savedRepo:    savedRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		commentRepo:  commentRepo,
		reviewRepo:   reviewRepo,
	}
	s.imageService = service.NewImageService(imageRepo, itemRepo, cfg)
	s.itemService = service.NewItemService(itemRepo, tagRepo, savedRepo, categoryRepo, s.imageService)
	s.userService = service.NewUserService(userRepo, itemRepo, reviewRepo)
	s.distanceService = service.NewDistanceService(userRepo, cfg)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Password:     string(hashed),
		DistanceUnit: models.DistanceUnitImperial,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedItem(t *testing.T, db *gorm.DB, userID, categoryID uint, name string) *models.Item {
	t.Helper()

	price := 50
	item := &models.Item{
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        name,
		Description: "A test listing",
		Type:        models.ListingTypeSell,
		Price:       &price,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func authToken(t *testing.T, s *Server, userID uint) string {
	t.Helper()

	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return token
}

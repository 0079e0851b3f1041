package repository

import (
	"testing"

	"tradepost/internal/database"
	"tradepost/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Password:     "hashed",
		DistanceUnit: models.DistanceUnitImperial,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestItem(t *testing.T, db *gorm.DB, userID, categoryID uint, name, listingType string) *models.Item {
	t.Helper()
	price := 100
	trade := "something interesting"
	item := &models.Item{
		UserID:      userID,
		CategoryID:  categoryID,
		Name:        name,
		Description: "test item",
		Type:        listingType,
		Price:       &price,
		Trade:       &trade,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

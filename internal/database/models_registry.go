package database

import "tradepost/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.Tag{},
		&models.ItemTag{},
		&models.Image{},
		&models.SavedItem{},
		&models.Comment{},
		&models.Review{},
	}
}

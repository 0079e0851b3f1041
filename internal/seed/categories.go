package seed

import (
	_ "embed"
	"fmt"

	"tradepost/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed categories.yml
var categoriesYAML []byte

type categoryFixtures struct {
	Categories []struct {
		Name string `yaml:"name"`
		Slug string `yaml:"slug"`
	} `yaml:"categories"`
}

// SeedCategories inserts the fixture categories, skipping slugs that already
// exist. Safe to run repeatedly.
func SeedCategories(db *gorm.DB) error {
	var fixtures categoryFixtures
	if err := yaml.Unmarshal(categoriesYAML, &fixtures); err != nil {
		return fmt.Errorf("parse category fixtures: %w", err)
	}

	for _, f := range fixtures.Categories {
		category := models.Category{Name: f.Name, Slug: f.Slug}
		if err := db.Where("slug = ?", f.Slug).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", f.Slug, err)
		}
	}
	return nil
}

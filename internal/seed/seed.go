package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"tradepost/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumItems int
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates every domain table. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Review{},
		&models.Comment{},
		&models.SavedItem{},
		&models.Image{},
		&models.ItemTag{},
		&models.Tag{},
		&models.Item{},
		&models.Category{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clear table %T: %w", table, err)
		}
	}
	log.Println("Cleared all tables")
	return nil
}

// Run seeds categories, users, listings, tags, bookmarks, comments and
// reviews in one pass.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumItems <= 0 {
		opts.NumItems = 100
	}

	if err := SeedCategories(s.db); err != nil {
		return err
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return err
	}

	// A fixed demo account for manual poking.
	demo, err := s.factory.CreateUser(func(u *models.User) {
		u.FirstName = "Demo"
		u.LastName = "Seller"
		u.Email = "demo@tradepost.local"
	})
	if err != nil {
		return err
	}

	users := []*models.User{demo}
	for i := 1; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users (password %q)", len(users), DemoPassword)

	var items []*models.Item
	for i := 0; i < opts.NumItems; i++ {
		owner := users[s.rand.Intn(len(users))]
		category := categories[s.rand.Intn(len(categories))]
		item, err := s.factory.CreateItem(owner, &category)
		if err != nil {
			return err
		}
		if s.rand.Intn(3) > 0 {
			tags := fmt.Sprintf("%s %s", gofakeit.Word(), gofakeit.Word())
			if err := s.factory.AttachTags(item, tags); err != nil {
				return err
			}
		}
		items = append(items, item)
	}
	log.Printf("Created %d items", len(items))

	saves, comments, reviews := 0, 0, 0
	for _, item := range items {
		for _, user := range users {
			if user.ID == item.UserID {
				continue
			}
			if s.rand.Intn(10) == 0 {
				save := models.SavedItem{UserID: user.ID, ItemID: item.ID}
				if err := s.db.Create(&save).Error; err != nil {
					return err
				}
				saves++
			}
			if s.rand.Intn(20) == 0 {
				if _, err := s.factory.CreateComment(item, user); err != nil {
					return err
				}
				comments++
			}
		}
	}
	for _, seller := range users {
		for i := 0; i < s.rand.Intn(4); i++ {
			author := users[s.rand.Intn(len(users))]
			if author.ID == seller.ID {
				continue
			}
			if _, err := s.factory.CreateReview(seller, author); err != nil {
				return err
			}
			reviews++
		}
	}
	log.Printf("Created %d saves, %d comments, %d reviews", saves, comments, reviews)

	return nil
}

// Package seed provides helpers to create demo and test data for the
// marketplace database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tradepost/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every generated account logs in with.
const DemoPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with fake but plausible account data.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	dob := gofakeit.DateRange(
		time.Now().AddDate(-60, 0, 0),
		time.Now().AddDate(-18, 0, 0),
	)

	unit := models.DistanceUnitImperial
	if f.rand.Intn(2) == 0 {
		unit = models.DistanceUnitMetric
	}

	user := &models.User{
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
		Email:        gofakeit.Email(),
		Password:     string(hashed),
		DistanceUnit: unit,
		DateOfBirth:  &dob,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateItem persists a listing owned by user in the given category. The
// listing type drives which of price/trade get set, mirroring the validation
// rules.
func (f *Factory) CreateItem(user *models.User, category *models.Category, overrides ...func(*models.Item)) (*models.Item, error) {
	listingType := models.AllListingTypes[f.rand.Intn(len(models.AllListingTypes))]

	item := &models.Item{
		UserID:      user.ID,
		CategoryID:  category.ID,
		Name:        strings.TrimSuffix(gofakeit.ProductName(), "."),
		Description: gofakeit.Sentence(8),
		Type:        listingType,
		Sold:        f.rand.Intn(10) == 0,
	}

	if listingType != models.ListingTypeSwap {
		price := 5 + f.rand.Intn(995)
		item.Price = &price
	}
	if listingType != models.ListingTypeSell {
		trade := gofakeit.ProductName()
		item.Trade = &trade
	}

	// Roughly central UK coordinates with some spread.
	lat := 52.5 + f.rand.Float64()*2 - 1
	lng := -1.9 + f.rand.Float64()*2 - 1
	item.Latitude = &lat
	item.Longitude = &lng

	// Realistic created_at spread over the last 90 days.
	daysBack := f.rand.Intn(90)
	item.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(f.rand.Intn(24))*time.Hour)

	for _, override := range overrides {
		override(item)
	}

	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// AttachTags links space-separated tag tokens to an item, creating tag rows
// on first use.
func (f *Factory) AttachTags(item *models.Item, tagString string) error {
	for _, token := range strings.Fields(tagString) {
		var tag models.Tag
		if err := f.db.Where("name = ?", token).First(&tag).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			tag = models.Tag{Name: token}
			if err := f.db.Create(&tag).Error; err != nil {
				return err
			}
		}
		if err := f.db.Create(&models.ItemTag{ItemID: item.ID, TagID: tag.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateReview persists a review of seller written by author.
func (f *Factory) CreateReview(seller, author *models.User) (*models.Review, error) {
	review := &models.Review{
		SellerID: seller.ID,
		AuthorID: author.ID,
		Rating:   1 + f.rand.Intn(5),
		Body:     gofakeit.Sentence(10),
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// CreateComment persists a comment by user on item.
func (f *Factory) CreateComment(item *models.Item, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		ItemID: item.ID,
		UserID: user.ID,
		Body:   fmt.Sprintf("%s?", strings.TrimSuffix(gofakeit.Question(), "?")),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

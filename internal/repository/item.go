package repository

import (
	"context"
	"errors"
	"strings"

	"tradepost/internal/cache"
	"tradepost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemsPerPage is the fixed page size for every listing query.
const ItemsPerPage = 15

// ItemFilter narrows a listing query. Zero values mean "no restriction":
// empty Types falls back to all listing types and an empty sort falls back
// to newest first.
type ItemFilter struct {
	CategorySlug string
	Types        []string
	SortField    string
	SortDir      string
	Page         int
}

// allowed sort columns. Anything else silently falls back to created_at so a
// crafted sort parameter can never reach the ORDER BY clause.
var sortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"price":      true,
	"name":       true,
}

// ItemRepository defines the interface for listing data operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Item, error)
	List(ctx context.Context, filter ItemFilter) (*models.ItemPage, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Item, error)
	ListSavedBy(ctx context.Context, userID uint, page int) (*models.ItemPage, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
}

// itemRepository implements ItemRepository
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID loads the full detail payload. The anonymous path reads through the
// cache; authenticated reads skip it so ownership checks always see fresh rows.
func (r *itemRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Item, error) {
	var item models.Item

	fetch := func() error {
		return r.db.WithContext(ctx).
			Preload("Category").
			Preload("Images").
			Preload("User").
			Preload("Comments").
			Preload("Comments.User").
			First(&item, id).Error
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.ItemKey(id), &item, cache.ItemTTL, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Item", id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) (*models.ItemPage, error) {
	types := filter.Types
	if len(types) == 0 {
		types = models.AllListingTypes
	}

	base := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("items.type IN ?", types)
	if filter.CategorySlug != "" {
		base = base.
			Joins("JOIN categories ON categories.id = items.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	return r.paginate(base, filter.Page, sortClause(filter.SortField, filter.SortDir))
}

func (r *itemRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListSavedBy pages through the items a user has bookmarked, newest save first.
func (r *itemRepository) ListSavedBy(ctx context.Context, userID uint, page int) (*models.ItemPage, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Joins("JOIN saved_items ON saved_items.item_id = items.id").
		Where("saved_items.user_id = ?", userID)

	return r.paginate(base, page, "saved_items.created_at DESC")
}

// paginate counts, orders and fetches one fixed-size page off the prepared
// query. The count runs before preloads so it stays a plain SELECT COUNT.
func (r *itemRepository) paginate(base *gorm.DB, page int, order string) (*models.ItemPage, error) {
	// base is reused for the count and the page fetch, so both run on a
	// fresh session.
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	var items []*models.Item
	err := base.Session(&gorm.Session{}).
		Order(order).
		Preload("Category").
		Preload("Images").
		Limit(ItemsPerPage).
		Offset((page - 1) * ItemsPerPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	lastPage := int((total + ItemsPerPage - 1) / ItemsPerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	return &models.ItemPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PerPage:  ItemsPerPage,
		LastPage: lastPage,
	}, nil
}

// sortClause builds the ORDER BY expression. Field and direction are both
// whitelisted; unrecognized values degrade to created_at DESC.
func sortClause(field, dir string) string {
	if !sortFields[field] {
		field = "created_at"
	}
	if d := strings.ToUpper(dir); d == "ASC" {
		dir = "ASC"
	} else {
		dir = "DESC"
	}
	return "items." + field + " " + dir
}

// Update persists the scalar columns only. Associations are omitted so a
// preloaded Category cannot write a stale CategoryID back over the new value.
func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		return err
	}
	cache.InvalidateItem(ctx, item.ID)
	return nil
}

// Delete removes the row and its dependents. Image blobs are the service's
// problem; the rows go here so the database never holds dangling references.
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.ItemTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.SavedItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateItem(ctx, id)
	return nil
}

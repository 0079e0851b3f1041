// Package service holds the business logic between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"strings"

	"tradepost/internal/middleware"
	"tradepost/internal/models"
	"tradepost/internal/repository"
	"tradepost/internal/validation"
)

// ItemService owns listing lifecycle and the save toggle.
type ItemService struct {
	itemRepo  repository.ItemRepository
	tagRepo   repository.TagRepository
	savedRepo repository.SavedItemRepository
	catRepo   repository.CategoryRepository
	images    *ImageService
}

// CreateItemInput carries the listing form. Price and Trade stay pointers so
// the type-conditional validation can tell "absent" from "empty".
type CreateItemInput struct {
	UserID      uint
	CategoryID  uint
	Name        string
	Description string
	Type        string
	Price       *int
	Trade       *string
	Latitude    *float64
	Longitude   *float64
	Tags        string
}

// UpdateItemInput mirrors CreateItemInput plus the sold checkbox. An empty
// Tags string leaves the existing tag set untouched.
type UpdateItemInput struct {
	UserID      uint
	ItemID      uint
	CategoryID  uint
	Name        string
	Description string
	Type        string
	Price       *int
	Trade       *string
	Latitude    *float64
	Longitude   *float64
	Sold        bool
	Tags        string
}

// ListItemsInput narrows the public listing feed. Sort is "field|direction".
type ListItemsInput struct {
	CategorySlug string
	Types        []string
	Sort         string
	Page         int
}

// ItemDetail is the detail page payload. Authorised and Saved are computed
// for the requesting user; Tags are the item's tokens in attach order.
type ItemDetail struct {
	Item       *models.Item `json:"item"`
	Tags       []string     `json:"tags"`
	Authorised bool         `json:"authorised"`
	Saved      bool         `json:"saved"`
}

// NewItemService creates a new item service instance.
func NewItemService(
	itemRepo repository.ItemRepository,
	tagRepo repository.TagRepository,
	savedRepo repository.SavedItemRepository,
	catRepo repository.CategoryRepository,
	images *ImageService,
) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		tagRepo:   tagRepo,
		savedRepo: savedRepo,
		catRepo:   catRepo,
		images:    images,
	}
}

// ListItems returns one page of the public feed. Unknown sort fields and
// directions degrade to newest first rather than erroring.
func (s *ItemService) ListItems(ctx context.Context, in ListItemsInput) (*models.ItemPage, error) {
	field, dir := parseSort(in.Sort)

	if in.CategorySlug != "" {
		if _, err := s.catRepo.GetBySlug(ctx, in.CategorySlug); err != nil {
			return nil, err
		}
	}

	return s.itemRepo.List(ctx, repository.ItemFilter{
		CategorySlug: in.CategorySlug,
		Types:        in.Types,
		SortField:    field,
		SortDir:      dir,
		Page:         in.Page,
	})
}

// GetDetail loads an item plus the viewer-dependent flags.
func (s *ItemService) GetDetail(ctx context.Context, itemID, currentUserID uint) (*ItemDetail, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID, currentUserID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.NamesForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail := &ItemDetail{
		Item:       item,
		Tags:       tags,
		Authorised: currentUserID != 0 && item.UserID == currentUserID,
	}
	if currentUserID != 0 {
		saved, err := s.savedRepo.IsSaved(ctx, currentUserID, itemID)
		if err != nil {
			return nil, err
		}
		detail.Saved = saved
	}
	return detail, nil
}

// GetForEdit is the detail load behind the edit and mark-sold screens. Only
// the owner gets the payload back.
func (s *ItemService) GetForEdit(ctx context.Context, itemID, currentUserID uint) (*ItemDetail, error) {
	detail, err := s.GetDetail(ctx, itemID, currentUserID)
	if err != nil {
		return nil, err
	}
	if !detail.Authorised {
		return nil, models.NewForbiddenError("You do not own this item")
	}
	return detail, nil
}

func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	exists, err := s.catRepo.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if errs := validation.ValidateListing(validation.ListingInput{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Trade:       in.Trade,
	}, exists); len(errs) > 0 {
		return nil, errs
	}

	item := &models.Item{
		UserID:      in.UserID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Trade:       in.Trade,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	middleware.ItemWrites.WithLabelValues("create").Inc()

	if err := s.applyTags(ctx, item.ID, in.Tags); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, in UpdateItemInput) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, in.ItemID, in.UserID)
	if err != nil {
		return nil, err
	}
	if item.UserID != in.UserID {
		return nil, models.NewForbiddenError("You do not own this item")
	}

	exists, err := s.catRepo.Exists(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if errs := validation.ValidateListing(validation.ListingInput{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Trade:       in.Trade,
	}, exists); len(errs) > 0 {
		return nil, errs
	}

	// The repository skips association writes, so the preloaded Category is
	// refreshed by hand when it changes.
	if in.CategoryID != item.CategoryID {
		cat, err := s.catRepo.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		item.Category = *cat
	}
	item.CategoryID = in.CategoryID
	item.Name = in.Name
	item.Description = in.Description
	item.Type = in.Type
	item.Price = in.Price
	item.Trade = in.Trade
	item.Latitude = in.Latitude
	item.Longitude = in.Longitude
	item.Sold = in.Sold

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	middleware.ItemWrites.WithLabelValues("update").Inc()

	// Empty tag string means "leave tags alone"; a non-empty one rebuilds
	// the full set.
	if strings.TrimSpace(in.Tags) != "" {
		if err := s.tagRepo.DetachAllFromItem(ctx, in.ItemID); err != nil {
			return nil, err
		}
		if err := s.applyTags(ctx, in.ItemID, in.Tags); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// DeleteItem removes the listing, its rows and its image blobs. Non-owners
// get a Forbidden error instead of a silent no-op.
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.itemRepo.GetByID(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.NewForbiddenError("You do not own this item")
	}

	if s.images != nil {
		if err := s.images.RemoveBlobsForItem(ctx, itemID); err != nil {
			return err
		}
	}
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return err
	}
	middleware.ItemWrites.WithLabelValues("delete").Inc()
	return nil
}

// ToggleSave flips the bookmark and reports the resulting state. Saving your
// own listing is a no-op that reports saved=false.
func (s *ItemService) ToggleSave(ctx context.Context, userID, itemID uint) (bool, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID, userID)
	if err != nil {
		return false, err
	}
	if item.UserID == userID {
		return false, nil
	}

	saved, err := s.savedRepo.IsSaved(ctx, userID, itemID)
	if err != nil {
		return false, err
	}
	if saved {
		if err := s.savedRepo.Unsave(ctx, userID, itemID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.savedRepo.Save(ctx, userID, itemID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ItemService) ListSaved(ctx context.Context, userID uint, page int) (*models.ItemPage, error) {
	return s.itemRepo.ListSavedBy(ctx, userID, page)
}

// applyTags splits the tag string on spaces and attaches each token. Tokens
// are looked up by name and created on a miss; repeated tokens attach twice.
func (s *ItemService) applyTags(ctx context.Context, itemID uint, tags string) error {
	tagString := strings.TrimSpace(tags)
	if tagString == "" {
		return nil
	}

	for _, token := range strings.Split(tagString, " ") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tag, err := s.tagRepo.GetOrCreateByName(ctx, token)
		if err != nil {
			return err
		}
		if err := s.tagRepo.AttachToItem(ctx, itemID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// parseSort splits a "field|direction" token. Either half may be missing.
func parseSort(sort string) (field, dir string) {
	field = "created_at"
	dir = "DESC"
	if sort == "" {
		return field, dir
	}
	parts := strings.SplitN(sort, "|", 2)
	if parts[0] != "" {
		field = parts[0]
	}
	if len(parts) == 2 && parts[1] != "" {
		dir = parts[1]
	}
	return field, dir
}

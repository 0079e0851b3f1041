package server

import (
	"strings"

	"tradepost/internal/models"
	"tradepost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// itemRequest is the listing form for create and update. It accepts both
// JSON and multipart form bodies.
type itemRequest struct {
	CategoryID  uint     `json:"category_id" form:"category_id"`
	Name        string   `json:"name" form:"name"`
	Description string   `json:"description" form:"description"`
	Type        string   `json:"type" form:"type"`
	Price       *int     `json:"price" form:"price"`
	Trade       *string  `json:"trade" form:"trade"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
	Tags        string   `json:"tags" form:"tags"`
	Sold        bool     `json:"sold" form:"sold"`
}

// GetItems handles GET /api/items and GET /api/items/:category
func (s *Server) GetItems(c *fiber.Ctx) error {
	// item_type may repeat and each value may itself be a CSV list.
	var types []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("item_type") {
		for _, t := range strings.Split(string(raw), ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	page, err := s.itemService.ListItems(c.Context(), service.ListItemsInput{
		CategorySlug: c.Params("category"),
		Types:        types,
		Sort:         c.Query("sort"),
		Page:         parsePage(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Success (all items)", page)
}

// GetItem handles GET /api/items/:category/:id. The category position doubles
// as a verb: "update" and "sold" return the owner's edit payload instead of
// the public detail view.
func (s *Server) GetItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	category := c.Params("category")
	if category == "update" || category == "sold" {
		detail, err := s.itemService.GetForEdit(c.Context(), id, userID)
		if err != nil {
			return respondServiceError(c, err)
		}
		return models.RespondSuccess(c, "Success (item for editing)", detail)
	}

	detail, err := s.itemService.GetDetail(c.Context(), id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, "Success (individual item)", detail)
}

// CreateItem handles POST /api/items
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	userID := c.Locals("userID").(uint)

	item, err := s.itemService.CreateItem(c.Context(), service.CreateItemInput{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Price:       req.Price,
		Trade:       req.Trade,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	// Images may ride along on the create form.
	if files, ferr := parseUploads(c); ferr == nil && len(files) > 0 {
		if _, err := s.imageService.Attach(c.Context(), userID, item.ID, files); err != nil {
			return respondServiceError(c, err)
		}
	}

	return models.RespondCreated(c, "Successfully added item.", item)
}

// UpdateItem handles POST /api/items/:id
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.itemService.UpdateItem(c.Context(), service.UpdateItemInput{
		UserID:      c.Locals("userID").(uint),
		ItemID:      id,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Price:       req.Price,
		Trade:       req.Trade,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Sold:        req.Sold,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Successfully updated item.", item)
}

// DeleteItem handles DELETE /api/items/:id
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.itemService.DeleteItem(c.Context(), c.Locals("userID").(uint), id); err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Successfully removed item.", nil)
}

// ToggleSaveItem handles POST /api/items/:id/save
func (s *Server) ToggleSaveItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, err := s.itemService.ToggleSave(c.Context(), c.Locals("userID").(uint), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Success (save toggled)", fiber.Map{"saved": saved})
}

// GetSavedItems handles GET /api/items/saved
func (s *Server) GetSavedItems(c *fiber.Ctx) error {
	page, err := s.itemService.ListSaved(c.Context(), c.Locals("userID").(uint), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Success (saved items)", page)
}

// CreateComment handles POST /api/items/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body" form:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Body) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment body is required"))
	}

	userID := c.Locals("userID").(uint)
	if _, err := s.itemRepo.GetByID(c.Context(), id, userID); err != nil {
		return respondServiceError(c, err)
	}

	comment := &models.Comment{
		ItemID: id,
		UserID: userID,
		Body:   strings.TrimSpace(req.Body),
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return models.RespondCreated(c, "Comment added", comment)
}

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return models.RespondSuccess(c, "Success (categories)", categories)
}

// GetDistance handles GET /api/distance. The data field carries the upstream
// response verbatim, or null when a coordinate is missing or the upstream
// call failed.
func (s *Server) GetDistance(c *fiber.Ctx) error {
	result, err := s.distanceService.Lookup(c.Context(), service.DistanceInput{
		UserID:        c.Locals("userID").(uint),
		ItemLatitude:  c.Query("item_latitude"),
		ItemLongitude: c.Query("item_longitude"),
		UserLatitude:  c.Query("user_latitude"),
		UserLongitude: c.Query("user_longitude"),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if result == nil {
		return models.RespondSuccess(c, "Success (distance)", nil)
	}
	return models.RespondSuccess(c, "Success (distance)", result)
}

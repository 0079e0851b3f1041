package server

import (
	"tradepost/internal/models"
	"tradepost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), c.Locals("userID").(uint))
	if err != nil {
		return respondServiceError(c, err)
	}
	return models.RespondSuccess(c, "Success (profile)", user)
}

// UpdateProfile handles POST /api/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName    string `json:"first_name" form:"first_name"`
		LastName     string `json:"last_name" form:"last_name"`
		DistanceUnit string `json:"distance_unit" form:"distance_unit"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:       c.Locals("userID").(uint),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DistanceUnit: req.DistanceUnit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Profile updated", user)
}

// ViewUser handles GET /api/view/:id. Public; an anonymous viewer just sees
// the seller's listings and reviews.
func (s *Server) ViewUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.ViewUser(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Success (user profile)", profile)
}

// CreateReview handles POST /api/view/:id/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating" form:"rating"`
		Body   string `json:"body" form:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.userService.CreateReview(c.Context(), service.CreateReviewInput{
		SellerID: id,
		AuthorID: c.Locals("userID").(uint),
		Rating:   req.Rating,
		Body:     req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondCreated(c, "Review added", review)
}

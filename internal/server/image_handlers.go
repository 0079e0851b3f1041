package server

import (
	"io"

	"tradepost/internal/models"
	"tradepost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseUploads reads every "images" file from a multipart form. A request
// without a multipart body yields an empty slice, not an error.
func parseUploads(c *fiber.Ctx) ([]service.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var files []service.UploadFile
	for _, fh := range form.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, service.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return files, nil
}

// AttachImages handles POST /api/items/:id/images
func (s *Server) AttachImages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	files, err := parseUploads(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}

	images, err := s.imageService.Attach(c.Context(), c.Locals("userID").(uint), id, files)
	if err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondCreated(c, "Images uploaded", images)
}

// DeleteImage handles DELETE /api/images/:id
func (s *Server) DeleteImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.imageService.Delete(c.Context(), c.Locals("userID").(uint), id); err != nil {
		return respondServiceError(c, err)
	}

	return models.RespondSuccess(c, "Image removed", nil)
}

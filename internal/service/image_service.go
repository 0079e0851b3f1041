package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tradepost/internal/config"
	"tradepost/internal/models"
	"tradepost/internal/repository"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultUploadDir       = "/tmp/tradepost/uploads"
	DefaultMaxUploadSizeMB = 10
	ThumbnailMaxSize       = 320
	ThumbnailWebPQuality   = 70
)

// UploadFile is one multipart file as received by the handler.
type UploadFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService stores listing photos on disk and their metadata in the
// database. Blobs are removed before rows on delete so a half-finished
// delete never leaves a row pointing at a missing file.
type ImageService struct {
	imageRepo          repository.ImageRepository
	itemRepo           repository.ItemRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewImageService creates a new image service instance.
func NewImageService(imageRepo repository.ImageRepository, itemRepo repository.ItemRepository, cfg *config.Config) *ImageService {
	uploadDir := DefaultUploadDir
	maxUploadSizeMB := DefaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
	}

	return &ImageService{
		imageRepo:          imageRepo,
		itemRepo:           itemRepo,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Attach stores each uploaded file under the item's directory and records a
// row per file. Only the item's owner may attach images.
func (s *ImageService) Attach(ctx context.Context, userID, itemID uint, files []UploadFile) ([]models.Image, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, models.NewForbiddenError("You do not own this item")
	}
	if len(files) == 0 {
		return nil, models.NewValidationError("No files uploaded")
	}

	var stored []models.Image
	for _, f := range files {
		img, err := s.storeOne(ctx, itemID, f)
		if err != nil {
			return nil, err
		}
		stored = append(stored, *img)
	}
	return stored, nil
}

func (s *ImageService) storeOne(ctx context.Context, itemID uint, f UploadFile) (*models.Image, error) {
	if len(f.Content) == 0 {
		return nil, models.NewValidationError("Uploaded file is empty")
	}
	if int64(len(f.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(f.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(f.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	name := uuid.NewString()
	rel := filepath.Join("items", fmt.Sprint(itemID), name+extForFormat(format))
	thumbRel := filepath.Join("items", fmt.Sprint(itemID), name+"_thumb.webp")

	if err := writeBytesToFile(filepath.Join(s.uploadDir, rel), f.Content); err != nil {
		return nil, err
	}

	thumbBytes, err := encodeThumbnail(decoded)
	if err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, rel))
		return nil, err
	}
	if err := writeBytesToFile(filepath.Join(s.uploadDir, thumbRel), thumbBytes); err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, rel))
		return nil, err
	}

	img := &models.Image{
		ItemID:    itemID,
		Path:      rel,
		ThumbPath: thumbRel,
		MimeType:  detectedType,
		SizeBytes: int64(len(f.Content)),
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		cleanupImageFiles([]string{
			filepath.Join(s.uploadDir, rel),
			filepath.Join(s.uploadDir, thumbRel),
		})
		return nil, err
	}
	return img, nil
}

// Delete removes one image. Only the owner of the image's item may delete it.
// Blobs go first, then the row.
func (s *ImageService) Delete(ctx context.Context, userID, imageID uint) error {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	item, err := s.itemRepo.GetByID(ctx, img.ItemID, userID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.NewForbiddenError("You do not own this item")
	}

	s.removeBlobs(img)
	return s.imageRepo.Delete(ctx, imageID)
}

// RemoveBlobsForItem clears every file belonging to an item. Rows are deleted
// by the item repository's cascade; this only touches the disk.
func (s *ImageService) RemoveBlobsForItem(ctx context.Context, itemID uint) error {
	images, err := s.imageRepo.ListByItem(ctx, itemID)
	if err != nil {
		return err
	}
	for i := range images {
		s.removeBlobs(&images[i])
	}
	return nil
}

func (s *ImageService) removeBlobs(img *models.Image) {
	paths := []string{filepath.Join(s.uploadDir, img.Path)}
	if img.ThumbPath != "" {
		paths = append(paths, filepath.Join(s.uploadDir, img.ThumbPath))
	}
	cleanupImageFiles(paths)
}

func encodeThumbnail(src image.Image) ([]byte, error) {
	thumb := resizeToFit(src, ThumbnailMaxSize, ThumbnailMaxSize)
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, thumb, &webp.Options{Quality: ThumbnailWebPQuality}); err != nil {
		// Some color models cannot round-trip through webp; fall back
		// to JPEG rather than rejecting the upload.
		buf.Reset()
		if jerr := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 82}); jerr != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func extForFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	default:
		return ".img"
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func cleanupImageFiles(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

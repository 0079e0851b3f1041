package models

import "time"

// Image is an uploaded photo attached to an item. Path and ThumbPath are
// relative to the upload root; deleting an image removes the blobs before the
// row so a failed delete can never leave a path pointing at nothing.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"not null;index" json:"item_id"`
	Path      string    `gorm:"not null" json:"path"`
	ThumbPath string    `json:"thumb_path"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

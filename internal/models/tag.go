package models

import "time"

// Tag is a free-text token attached to items. Tag names are deduplicated by
// lookup-before-insert rather than a unique constraint, and rows are never
// deleted even when no item references them; both behaviors are inherited
// from the original system.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemTag links an item to a tag. Updates replace the full set for an item
// (delete-then-insert); duplicate tokens in one tag string produce duplicate
// rows on purpose.
type ItemTag struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ItemID uint `gorm:"not null;index" json:"item_id"`
	TagID  uint `gorm:"not null;index" json:"tag_id"`
}

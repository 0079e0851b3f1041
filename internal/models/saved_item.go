package models

import "time"

// SavedItem is a user's bookmark of another user's listing. The composite
// unique index backs the toggle's check-then-act with a real constraint so
// concurrent toggles cannot produce duplicate rows.
type SavedItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_item" json:"user_id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_item" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"
)

// Listing types. Anything that is not sell or swap is validated as a
// part-exchange listing (both price and trade required).
const (
	ListingTypeSell         = "sell"
	ListingTypeSwap         = "swap"
	ListingTypePartExchange = "part-exchange"
)

// AllListingTypes is the default type filter when a listing query does not
// restrict the type.
var AllListingTypes = []string{ListingTypeSell, ListingTypeSwap, ListingTypePartExchange}

// Item is a marketplace listing. Items are hard-deleted; removed listings
// leave no row behind.
type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Type        string    `gorm:"not null;index" json:"type"`
	Price       *int      `json:"price"`
	Trade       *string   `json:"trade"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Sold        bool      `gorm:"not null;default:false" json:"sold"`
	Images      []Image   `gorm:"foreignKey:ItemID" json:"images,omitempty"`
	Comments    []Comment `gorm:"foreignKey:ItemID" json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPage is one page of a listing query, mirroring the fixed page size of 15.
type ItemPage struct {
	Items    []*Item `json:"items"`
	Total    int64   `json:"total"`
	Page     int     `json:"page"`
	PerPage  int     `json:"per_page"`
	LastPage int     `json:"last_page"`
}

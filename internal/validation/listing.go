// Package validation contains input validation rules for marketplace listings
// and accounts.
package validation

import (
	"strings"
	"unicode/utf8"

	"tradepost/internal/models"
)

const maxNameLength = 255
const maxDescriptionLength = 255

// ListingInput is the field set validated on item create and update. Price
// and Trade are pointers so "absent" and "zero/empty" stay distinguishable.
type ListingInput struct {
	CategoryID  uint
	Name        string
	Description string
	Type        string
	Price       *int
	Trade       *string
}

// ValidateListing applies the type-conditional rule table. Listing type picks
// the required-field mask: sell requires price, swap requires trade, and every
// other type (part-exchange included) requires both. categoryExists reflects a
// repository lookup done by the caller.
//
// Returns an empty map when the input is valid. Callers must not persist
// anything when errors are present.
func ValidateListing(in ListingInput, categoryExists bool) models.FieldErrors {
	errs := models.FieldErrors{}

	if in.CategoryID == 0 {
		errs["category_id"] = "The category field is required."
	} else if !categoryExists {
		errs["category_id"] = "The selected category is invalid."
	}

	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "The name field is required."
	} else if utf8.RuneCountInString(in.Name) > maxNameLength {
		errs["name"] = "The name may not be greater than 255 characters."
	}

	if strings.TrimSpace(in.Description) == "" {
		errs["description"] = "The description field is required."
	} else if utf8.RuneCountInString(in.Description) > maxDescriptionLength {
		errs["description"] = "The description may not be greater than 255 characters."
	}

	if strings.TrimSpace(in.Type) == "" {
		errs["type"] = "The type field is required."
	}

	priceRequired := in.Type != models.ListingTypeSwap
	tradeRequired := in.Type != models.ListingTypeSell

	if priceRequired && in.Price == nil {
		errs["price"] = "The price field is required."
	}
	if tradeRequired && (in.Trade == nil || strings.TrimSpace(*in.Trade) == "") {
		errs["trade"] = "The trade field is required."
	}

	return errs
}

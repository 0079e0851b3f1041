package validation

import (
	"strings"
	"testing"

	"tradepost/internal/models"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestValidateListing(t *testing.T) {
	valid := ListingInput{
		CategoryID:  1,
		Name:        "Mountain bike",
		Description: "Hardly used",
		Type:        models.ListingTypeSell,
		Price:       intPtr(150),
	}

	tests := []struct {
		name           string
		mutate         func(*ListingInput)
		categoryExists bool
		wantFields     []string
	}{
		{
			name:           "valid sell listing",
			mutate:         func(in *ListingInput) {},
			categoryExists: true,
		},
		{
			name: "sell requires price but not trade",
			mutate: func(in *ListingInput) {
				in.Price = nil
			},
			categoryExists: true,
			wantFields:     []string{"price"},
		},
		{
			name: "swap requires trade but not price",
			mutate: func(in *ListingInput) {
				in.Type = models.ListingTypeSwap
				in.Price = nil
			},
			categoryExists: true,
			wantFields:     []string{"trade"},
		},
		{
			name: "part-exchange requires both",
			mutate: func(in *ListingInput) {
				in.Type = models.ListingTypePartExchange
				in.Price = nil
				in.Trade = nil
			},
			categoryExists: true,
			wantFields:     []string{"price", "trade"},
		},
		{
			name: "unknown type validated like part-exchange",
			mutate: func(in *ListingInput) {
				in.Type = "barter"
				in.Price = nil
				in.Trade = nil
			},
			categoryExists: true,
			wantFields:     []string{"price", "trade"},
		},
		{
			name: "missing category",
			mutate: func(in *ListingInput) {
				in.CategoryID = 0
			},
			categoryExists: false,
			wantFields:     []string{"category_id"},
		},
		{
			name:           "nonexistent category",
			mutate:         func(in *ListingInput) {},
			categoryExists: false,
			wantFields:     []string{"category_id"},
		},
		{
			name: "name too long",
			mutate: func(in *ListingInput) {
				in.Name = strings.Repeat("x", 256)
			},
			categoryExists: true,
			wantFields:     []string{"name"},
		},
		{
			// Length limits count characters, not bytes.
			name: "multibyte name at the limit passes",
			mutate: func(in *ListingInput) {
				in.Name = strings.Repeat("é", 255)
			},
			categoryExists: true,
		},
		{
			name: "multibyte description over the limit fails",
			mutate: func(in *ListingInput) {
				in.Description = strings.Repeat("é", 256)
			},
			categoryExists: true,
			wantFields:     []string{"description"},
		},
		{
			name: "blank required strings",
			mutate: func(in *ListingInput) {
				in.Name = "  "
				in.Description = ""
				in.Type = ""
			},
			categoryExists: true,
			wantFields:     []string{"name", "description", "type", "trade"},
		},
		{
			name: "whitespace trade counts as missing",
			mutate: func(in *ListingInput) {
				in.Type = models.ListingTypeSwap
				in.Trade = strPtr("   ")
			},
			categoryExists: true,
			wantFields:     []string{"trade"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			errs := ValidateListing(in, tt.categoryExists)

			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateListingMessages(t *testing.T) {
	errs := ValidateListing(ListingInput{Type: models.ListingTypeSell}, false)
	assert.Equal(t, "The category field is required.", errs["category_id"])
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Equal(t, "The price field is required.", errs["price"])
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("@missing-local.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@b.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough1"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateDistanceUnit(t *testing.T) {
	assert.NoError(t, ValidateDistanceUnit("imperial"))
	assert.NoError(t, ValidateDistanceUnit("metric"))
	assert.Error(t, ValidateDistanceUnit("furlongs"))
}

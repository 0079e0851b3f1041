package repository

import (
	"context"
	"testing"

	"tradepost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepositoryListBySeller(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	require.NoError(t, repo.Create(ctx, &models.Review{SellerID: seller.ID, AuthorID: alice.ID, Rating: 5, Body: "Great"}))
	require.NoError(t, repo.Create(ctx, &models.Review{SellerID: seller.ID, AuthorID: bob.ID, Rating: 2, Body: "Slow to reply"}))
	// A review of someone else must not leak in.
	require.NoError(t, repo.Create(ctx, &models.Review{SellerID: alice.ID, AuthorID: bob.ID, Rating: 4, Body: "Fine"}))

	reviews, err := repo.ListBySeller(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.NotEmpty(t, reviews[0].Author.Email)
}

func TestReviewRepositoryAverageForSeller(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	// No reviews yet: average is zero, not an error.
	avg, err := repo.AverageForSeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	require.NoError(t, repo.Create(ctx, &models.Review{SellerID: seller.ID, AuthorID: alice.ID, Rating: 5}))
	require.NoError(t, repo.Create(ctx, &models.Review{SellerID: seller.ID, AuthorID: bob.ID, Rating: 2}))

	avg, err = repo.AverageForSeller(ctx, seller.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.0001)
}

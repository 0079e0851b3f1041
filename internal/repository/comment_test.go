package repository

import (
	"context"
	"testing"
	"time"

	"tradepost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryListByItemOrdersOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	buyer := createTestUser(t, db, "buyer@example.com")
	cat := createTestCategory(t, db, "Misc", "misc")
	item := createTestItem(t, db, seller.ID, cat.ID, "Lamp", models.ListingTypeSell)
	other := createTestItem(t, db, seller.ID, cat.ID, "Chair", models.ListingTypeSell)

	now := time.Now()
	first := &models.Comment{ItemID: item.ID, UserID: buyer.ID, Body: "Is this available?", CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, first))
	second := &models.Comment{ItemID: item.ID, UserID: seller.ID, Body: "It is.", CreatedAt: now}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &models.Comment{ItemID: other.ID, UserID: buyer.ID, Body: "Elsewhere"}))

	comments, err := repo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// Oldest first, with the author preloaded.
	assert.Equal(t, "Is this available?", comments[0].Body)
	assert.Equal(t, "buyer@example.com", comments[0].User.Email)
	assert.Equal(t, "It is.", comments[1].Body)
}

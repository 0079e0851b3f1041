package repository

import (
	"context"
	"testing"

	"tradepost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepositoryGetOrCreateByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	first, err := repo.GetOrCreateByName(ctx, "vintage")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.GetOrCreateByName(ctx, "vintage")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTagRepositoryAttachAndNames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com")
	cat := createTestCategory(t, db, "Misc", "misc")
	item := createTestItem(t, db, user.ID, cat.ID, "Lamp", models.ListingTypeSell)

	for _, name := range []string{"retro", "lamp", "retro"} {
		tag, err := repo.GetOrCreateByName(ctx, name)
		require.NoError(t, err)
		require.NoError(t, repo.AttachToItem(ctx, item.ID, tag.ID))
	}

	names, err := repo.NamesForItem(ctx, item.ID)
	require.NoError(t, err)

	// Duplicate tokens attach twice; attach order is preserved.
	assert.Equal(t, []string{"retro", "lamp", "retro"}, names)
}

func TestTagRepositoryDetachAllFromItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller@example.com")
	cat := createTestCategory(t, db, "Misc", "misc")
	item := createTestItem(t, db, user.ID, cat.ID, "Lamp", models.ListingTypeSell)
	other := createTestItem(t, db, user.ID, cat.ID, "Chair", models.ListingTypeSell)

	tag, err := repo.GetOrCreateByName(ctx, "wooden")
	require.NoError(t, err)
	require.NoError(t, repo.AttachToItem(ctx, item.ID, tag.ID))
	require.NoError(t, repo.AttachToItem(ctx, other.ID, tag.ID))

	require.NoError(t, repo.DetachAllFromItem(ctx, item.ID))

	names, err := repo.NamesForItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, names)

	// Other items keep their links, and the tag row is never deleted.
	otherNames, err := repo.NamesForItem(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"wooden"}, otherNames)
}

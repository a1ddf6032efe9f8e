package postgres_test

import (
	"context"
	"testing"

	"github.com/marc/albumshare/internal/repository/postgres"
	"github.com/marc/albumshare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlbumRepository_SearchByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlbumRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	other, _ := testutil.NewUserBuilder().Build(t, db)

	testutil.NewAlbumBuilder(user.ID).WithName("Summer Trip").Build(t, db)
	testutil.NewAlbumBuilder(user.ID).WithName("Winter").Build(t, db)
	testutil.NewAlbumBuilder(other.ID).WithName("Summer Elsewhere").Build(t, db)

	albums, err := repo.SearchByName(ctx, user.ID, "summer")
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Summer Trip", albums[0].Name)

	// LIKE wildcards in the search term are literals, not patterns.
	albums, err = repo.SearchByName(ctx, user.ID, "%")
	require.NoError(t, err)
	assert.Empty(t, albums)
}

func TestAlbumRepository_DeleteByUserID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlbumRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	other, _ := testutil.NewUserBuilder().Build(t, db)

	testutil.NewAlbumBuilder(user.ID).Build(t, db)
	testutil.NewAlbumBuilder(user.ID).Build(t, db)
	kept := testutil.NewAlbumBuilder(other.ID).Build(t, db)

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))

	albums, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, albums)

	remaining, err := repo.GetByUserID(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

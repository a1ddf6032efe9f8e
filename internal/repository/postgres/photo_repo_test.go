package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/repository/postgres"
	"github.com/marc/albumshare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoRepository_FindByAlbum_FilterComposition(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPhotoRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	testutil.NewPhotoBuilder(album.ID).WithName("cat1").WithAttributes("animal", 100, 80).Build(t, db)
	testutil.NewPhotoBuilder(album.ID).WithName("cat2").WithAttributes("animal", 200, 80).Build(t, db)
	testutil.NewPhotoBuilder(album.ID).WithName("dog1").WithAttributes("pet", 100, 80).Build(t, db)

	tests := []struct {
		name      string
		filter    domain.PhotoFilter
		wantNames []string
	}{
		{
			name:      "no filter returns everything",
			filter:    domain.PhotoFilter{},
			wantNames: []string{"cat1", "cat2", "dog1"},
		},
		{
			name:      "tag and width are ANDed",
			filter:    domain.PhotoFilter{Tag: "animal", Width: 100},
			wantNames: []string{"cat1"},
		},
		{
			name:      "name substring is case insensitive",
			filter:    domain.PhotoFilter{Name: "CAT"},
			wantNames: []string{"cat1", "cat2"},
		},
		{
			name:      "tag substring matches",
			filter:    domain.PhotoFilter{Tag: "anim"},
			wantNames: []string{"cat1", "cat2"},
		},
		{
			name:      "width alone",
			filter:    domain.PhotoFilter{Width: 100},
			wantNames: []string{"cat1", "dog1"},
		},
		{
			name:      "height applies to all",
			filter:    domain.PhotoFilter{Height: 80},
			wantNames: []string{"cat1", "cat2", "dog1"},
		},
		{
			name:      "no match",
			filter:    domain.PhotoFilter{Tag: "animal", Width: 300},
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photos, err := repo.FindByAlbum(ctx, album.ID, tt.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(photos))
			for _, p := range photos {
				names = append(names, p.Name)
			}
			assert.ElementsMatch(t, tt.wantNames, names)
		})
	}
}

func TestPhotoRepository_FindByAlbum_ColorFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPhotoRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	testutil.NewPhotoBuilder(album.ID).WithName("sunset").WithAttributes("sky", 640, 480, "red", "Orange").Build(t, db)
	testutil.NewPhotoBuilder(album.ID).WithName("forest").WithAttributes("trees", 640, 480, "green").Build(t, db)

	photos, err := repo.FindByAlbum(ctx, album.ID, domain.PhotoFilter{Color: "ORANGE"})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "sunset", photos[0].Name)
}

func TestPhotoRepository_FindByAlbum_ScopedToAlbum(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPhotoRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album1 := testutil.NewAlbumBuilder(user.ID).Build(t, db)
	album2 := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	testutil.NewPhotoBuilder(album1.ID).WithName("mine").Build(t, db)
	testutil.NewPhotoBuilder(album2.ID).WithName("other").Build(t, db)

	photos, err := repo.FindByAlbum(ctx, album1.ID, domain.PhotoFilter{})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "mine", photos[0].Name)
}

func TestPhotoRepository_CountByAlbum(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPhotoRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	for i := 0; i < 3; i++ {
		testutil.NewPhotoBuilder(album.ID).Build(t, db)
	}

	count, err := repo.CountByAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestPhotoRepository_DeleteByAlbumID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPhotoRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)
	keepAlbum := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	testutil.NewPhotoBuilder(album.ID).Build(t, db)
	testutil.NewPhotoBuilder(album.ID).Build(t, db)
	kept := testutil.NewPhotoBuilder(keepAlbum.ID).Build(t, db)

	require.NoError(t, repo.DeleteByAlbumID(ctx, album.ID))

	count, err := repo.CountByAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	still, err := repo.GetByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, kept.ID, still.ID)
}

func TestPhotoRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewPhotoRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/repository/postgres"
	"github.com/marc/albumshare/internal/service"
	"github.com/marc/albumshare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type staticEnricher struct {
	features domain.ImageFeatures
	err      error
}

func (e *staticEnricher) Enrich(ctx context.Context, photoURL string) (domain.ImageFeatures, error) {
	return e.features, e.err
}

func newPhotoService(t *testing.T, enricher *staticEnricher) (*service.PhotoService, *gorm.DB, *testutil.FakeGateway) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	gateway := testutil.NewFakeGateway()
	if enricher == nil {
		return service.NewPhotoService(repos.Photo, gateway, nil), db, gateway
	}
	return service.NewPhotoService(repos.Photo, gateway, enricher), db, gateway
}

func TestPhotoService_CreateWithoutEnricher(t *testing.T) {
	photoService, db, _ := newPhotoService(t, nil)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	photo, err := photoService.Create(ctx, service.CreatePhotoInput{
		AlbumID: album.ID,
		Name:    "plain",
		URL:     "https://res.example.com/social-app/plain.jpg",
	})
	require.NoError(t, err)
	assert.Empty(t, photo.Features, "creation succeeds with no feature metadata")

	features, err := photo.GetFeatures()
	require.NoError(t, err)
	assert.True(t, features.IsZero())
}

func TestPhotoService_CreateEnricherFailureDoesNotBlock(t *testing.T) {
	photoService, db, _ := newPhotoService(t, &staticEnricher{err: errors.New("download failed")})
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	photo, err := photoService.Create(ctx, service.CreatePhotoInput{
		AlbumID: album.ID,
		Name:    "still-created",
		URL:     "https://res.example.com/social-app/x.jpg",
	})
	require.NoError(t, err)
	assert.Empty(t, photo.Features)
}

func TestPhotoService_CreateStoresEnrichment(t *testing.T) {
	enricher := &staticEnricher{features: domain.ImageFeatures{
		Tags:           []string{"Animal"},
		DominantColors: []domain.DominantColor{{Color: "Red", Percentage: 61.5}},
		Metadata:       domain.ImageMetadata{Width: 640, Height: 480, Format: "jpeg"},
	}}
	photoService, db, _ := newPhotoService(t, enricher)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	photo, err := photoService.Create(ctx, service.CreatePhotoInput{
		AlbumID: album.ID,
		Name:    "enriched",
		URL:     "https://res.example.com/social-app/y.jpg",
	})
	require.NoError(t, err)

	// Filter columns follow the feature block, lowercased.
	assert.Equal(t, 640, photo.Width)
	assert.Equal(t, 480, photo.Height)
	assert.Equal(t, "animal", photo.TagList)
	assert.Equal(t, "red", photo.ColorList)

	features, err := photo.GetFeatures()
	require.NoError(t, err)
	assert.Equal(t, []string{"Animal"}, features.Tags)
}

func TestPhotoService_DeleteRemovesRemoteAssetFirst(t *testing.T) {
	photoService, db, gateway := newPhotoService(t, nil)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)
	photo := testutil.NewPhotoBuilder(album.ID).WithURL("https://res.example.com/social-app/pic.jpg").Build(t, db)

	require.NoError(t, photoService.Delete(ctx, photo.ID))
	assert.Equal(t, []string{"social-app/pic"}, gateway.Deleted)

	_, err := photoService.Get(ctx, photo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPhotoService_DeleteBlockedByGatewayFailure(t *testing.T) {
	photoService, db, gateway := newPhotoService(t, nil)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)
	photo := testutil.NewPhotoBuilder(album.ID).Build(t, db)

	gateway.DeleteErr = errors.New("boom")

	err := photoService.Delete(ctx, photo.ID)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = photoService.Get(ctx, photo.ID)
	require.NoError(t, err, "local record survives a blocked delete")
}

func TestPhotoService_DeleteBatchPartialSuccess(t *testing.T) {
	photoService, db, gateway := newPhotoService(t, nil)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	var ids []uuid.UUID
	var assets []string
	for i := 0; i < 3; i++ {
		photo := testutil.NewPhotoBuilder(album.ID).Build(t, db)
		ids = append(ids, photo.ID)
		assets = append(assets, gateway.AssetID(photo.URL))
	}

	gateway.DeleteErr = errors.New("remote down")

	err := photoService.DeleteBatch(ctx, ids, assets)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	// Local records are gone even though the remote step failed; there is
	// no rollback on partial success.
	var remaining int64
	require.NoError(t, db.Model(&domain.Photo{}).Where("album_id = ?", album.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

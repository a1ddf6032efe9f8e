package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marc/albumshare/internal/domain"
	"github.com/marc/albumshare/internal/repository/postgres"
	"github.com/marc/albumshare/internal/service"
	"github.com/marc/albumshare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*service.UserService, *gorm.DB, *testutil.FakeGateway) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(db)
	gateway := testutil.NewFakeGateway()
	return service.NewUserService(repos.User, repos.Album, repos.Photo, gateway), db, gateway
}

func TestUserService_DeleteCascades(t *testing.T) {
	userService, db, gateway := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	album1 := testutil.NewAlbumBuilder(user.ID).Build(t, db)
	album2 := testutil.NewAlbumBuilder(user.ID).Build(t, db)

	testutil.NewPhotoBuilder(album1.ID).Build(t, db)
	testutil.NewPhotoBuilder(album1.ID).Build(t, db)
	testutil.NewPhotoBuilder(album2.ID).Build(t, db)

	// A second user must be untouched by the cascade.
	bystander, _ := testutil.NewUserBuilder().Build(t, db)
	bystanderAlbum := testutil.NewAlbumBuilder(bystander.ID).Build(t, db)
	testutil.NewPhotoBuilder(bystanderAlbum.ID).Build(t, db)

	require.NoError(t, userService.Delete(ctx, user.ID))

	var users, albums, photos int64
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", user.ID).Count(&users).Error)
	require.NoError(t, db.Model(&domain.Album{}).Where("user_id = ?", user.ID).Count(&albums).Error)
	require.NoError(t, db.Model(&domain.Photo{}).Where("album_id IN ?", []uuid.UUID{album1.ID, album2.ID}).Count(&photos).Error)
	assert.Zero(t, users)
	assert.Zero(t, albums)
	assert.Zero(t, photos)

	assert.Len(t, gateway.Deleted, 3, "remote assets of the deleted user are removed")

	var bystanderPhotos int64
	require.NoError(t, db.Model(&domain.Photo{}).Where("album_id = ?", bystanderAlbum.ID).Count(&bystanderPhotos).Error)
	assert.Equal(t, int64(1), bystanderPhotos)
}

func TestUserService_DeleteMissingUser(t *testing.T) {
	userService, _, _ := newUserService(t)

	err := userService.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_UpdateRejectsTakenEmail(t *testing.T) {
	userService, db, _ := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithEmail("a@b.com").Build(t, db)
	testutil.NewUserBuilder().WithEmail("taken@b.com").Build(t, db)

	input := service.UpdateUserInput{
		FirstName: "New",
		LastName:  "Name",
		Email:     "taken@b.com",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:    "F",
	}
	_, err := userService.Update(ctx, user.ID, input)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// Keeping one's own email is fine.
	input.Email = "a@b.com"
	updated, err := userService.Update(ctx, user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
}

func TestUserService_UpdateNeverTouchesPassword(t *testing.T) {
	userService, db, _ := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)
	originalHash := user.PasswordHash

	_, err := userService.Update(ctx, user.ID, service.UpdateUserInput{
		FirstName: "X",
		LastName:  "Y",
		Email:     user.Email,
		BirthDate: user.BirthDate,
		Gender:    user.Gender,
	})
	require.NoError(t, err)

	reloaded, err := userService.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, reloaded.PasswordHash)
}

func TestUserService_SetAdmin(t *testing.T) {
	userService, db, _ := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)

	promoted, err := userService.SetAdmin(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	demoted, err := userService.SetAdmin(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin)

	_, err = userService.SetAdmin(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

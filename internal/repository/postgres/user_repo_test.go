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

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithEmail("a@b.com").Build(t, db)

	found, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_EmailTakenByOther(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithEmail("a@b.com").Build(t, db)
	testutil.NewUserBuilder().WithEmail("c@d.com").Build(t, db)

	taken, err := repo.EmailTakenByOther(ctx, user.ID, "a@b.com")
	require.NoError(t, err)
	assert.False(t, taken, "own email is not a conflict")

	taken, err = repo.EmailTakenByOther(ctx, user.ID, "c@d.com")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTakenByOther(ctx, user.ID, "free@b.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing user is not an error at the repository level.
	require.NoError(t, repo.Delete(ctx, uuid.New()))
}

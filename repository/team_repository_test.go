package repository

import (
	"context"
	"testing"

	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTeamRepository(testDB.DB)
	ctx := context.Background()

	team := testutil.CreateTestTeam(t, testDB, "Arsenal")
	assert.NotZero(t, team.ID)

	fetched, err := repo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Arsenal", fetched.Name)
	assert.True(t, fetched.IsActive)

	t.Run("duplicate name rejected", func(t *testing.T) {
		dup := &entities.Team{Name: "Arsenal", IsActive: true}
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestTeamRepository_SetActive(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTeamRepository(testDB.DB)
	ctx := context.Background()

	team := testutil.CreateTestTeam(t, testDB, "Chelsea")
	testutil.CreateTestTeam(t, testDB, "Liverpool")

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, repo.SetActive(ctx, team.ID, false))

	active, err = repo.GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Liverpool", active[0].Name)

	t.Run("unknown team", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetActive(ctx, 999999, false), entities.ErrTeamNotFound)
	})
}

package repository

import (
	"context"
	"sync"
	"testing"

	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch(t, testDB, "Arsenal", "Chelsea")

	fetched, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Arsenal", fetched.HomeTeam.Name)
	assert.Equal(t, "Chelsea", fetched.AwayTeam.Name)
	assert.Equal(t, entities.MatchStatusUpcoming, fetched.Status)
	assert.Nil(t, fetched.HomeScore)
	assert.Nil(t, fetched.Result)

	upcoming, err := repo.GetByStatus(ctx, entities.MatchStatusUpcoming)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestMatchRepository_FinalizeMatch(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch(t, testDB, "Liverpool", "Everton")

	finalized, err := repo.FinalizeMatch(ctx, match.ID, 2, 1, entities.MatchResultHome)
	require.NoError(t, err)
	require.NotNil(t, finalized)
	assert.Equal(t, entities.MatchStatusFinished, finalized.Status)
	require.NotNil(t, finalized.HomeScore)
	assert.Equal(t, 2, *finalized.HomeScore)
	require.NotNil(t, finalized.Result)
	assert.Equal(t, entities.MatchResultHome, *finalized.Result)
	assert.NotNil(t, finalized.EndTime)

	t.Run("second finalization is refused", func(t *testing.T) {
		_, err := repo.FinalizeMatch(ctx, match.ID, 0, 0, entities.MatchResultDraw)
		assert.ErrorIs(t, err, entities.ErrAlreadySettled)

		// The recorded final score is untouched
		current, err := repo.GetByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, *current.HomeScore)
		assert.Equal(t, entities.MatchResultHome, *current.Result)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := repo.FinalizeMatch(ctx, 999999, 1, 0, entities.MatchResultHome)
		assert.ErrorIs(t, err, entities.ErrMatchNotFound)
	})
}

// Concurrent finalizations: exactly one writer wins the status transition.
func TestMatchRepository_FinalizeMatch_Concurrent(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch(t, testDB, "City", "United")

	const workers = 6
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.FinalizeMatch(ctx, match.ID, 1, 1, entities.MatchResultDraw); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Equal(t, 1, len(successes))
}

func TestMatchRepository_SetLive(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMatchRepository(testDB.DB)
	ctx := context.Background()

	match := testutil.CreateTestMatch(t, testDB, "Spurs", "West Ham")

	require.NoError(t, repo.SetLive(ctx, match.ID))

	live, err := repo.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.MatchStatusLive, live.Status)

	t.Run("second transition is refused", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetLive(ctx, match.ID), entities.ErrAlreadySettled)
	})

	t.Run("unknown match", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetLive(ctx, 999999), entities.ErrMatchNotFound)
	})
}

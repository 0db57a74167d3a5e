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

func TestGiftRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiftRepository(testDB.DB)
	ctx := context.Background()

	gift := testutil.CreateTestGift(t, testDB, "signed shirt", 500, 3)

	fetched, err := repo.GetByID(ctx, gift.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "signed shirt", fetched.Name)
	assert.Equal(t, 3, fetched.Quantity)
	assert.True(t, fetched.IsAvailable())

	missing, err := repo.GetByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGiftRepository_StockMovement(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiftRepository(testDB.DB)
	ctx := context.Background()

	gift := testutil.CreateTestGift(t, testDB, "scarf", 100, 1)

	require.NoError(t, repo.DecrementStock(ctx, gift.ID))

	t.Run("depleted stock refuses decrement", func(t *testing.T) {
		err := repo.DecrementStock(ctx, gift.ID)
		assert.ErrorIs(t, err, entities.ErrOutOfStock)

		current, err := repo.GetByID(ctx, gift.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, current.Quantity)
	})

	t.Run("increment restores a unit", func(t *testing.T) {
		require.NoError(t, repo.IncrementStock(ctx, gift.ID))

		current, err := repo.GetByID(ctx, gift.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, current.Quantity)
	})

	t.Run("unknown gift", func(t *testing.T) {
		assert.ErrorIs(t, repo.DecrementStock(ctx, 999999), entities.ErrGiftNotFound)
		assert.ErrorIs(t, repo.IncrementStock(ctx, 999999), entities.ErrGiftNotFound)
	})
}

// Two decrements racing for the last unit: the conditional update guarantees
// exactly one wins.
func TestGiftRepository_DecrementStock_LastUnitRace(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiftRepository(testDB.DB)
	ctx := context.Background()

	gift := testutil.CreateTestGift(t, testDB, "final ticket", 100, 1)

	const workers = 8
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.DecrementStock(ctx, gift.ID); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Equal(t, 1, len(successes))

	final, err := repo.GetByID(ctx, gift.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Quantity)
}

func TestGiftRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGiftRepository(testDB.DB)
	ctx := context.Background()

	gift := testutil.CreateTestGift(t, testDB, "mug", 50, 10)

	gift.Name = "club mug"
	gift.PointsCost = 75
	gift.IsActive = false
	require.NoError(t, repo.Update(ctx, gift))

	updated, err := repo.GetByID(ctx, gift.ID)
	require.NoError(t, err)
	assert.Equal(t, "club mug", updated.Name)
	assert.Equal(t, int64(75), updated.PointsCost)
	assert.False(t, updated.IsActive)
	// Update never moves stock
	assert.Equal(t, 10, updated.Quantity)
}

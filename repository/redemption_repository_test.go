package repository

import (
	"context"
	"sync"
	"testing"

	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRedemption(t *testing.T, testDB *testutil.TestDatabase, userID, giftID int64, pointsUsed int64) *entities.GiftRedemption {
	t.Helper()

	redemption := &entities.GiftRedemption{
		Reference:  uuid.New(),
		UserID:     userID,
		GiftID:     giftID,
		PointsUsed: pointsUsed,
		Status:     entities.RedemptionStatusPending,
	}
	repo := NewRedemptionRepository(testDB.DB)
	require.NoError(t, repo.Create(context.Background(), redemption))
	return redemption
}

func TestRedemptionRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRedemptionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "redeemer", 1000)
	gift := testutil.CreateTestGift(t, testDB, "shirt", 200, 5)

	redemption := createRedemption(t, testDB, user.ID, gift.ID, 200)

	fetched, err := repo.GetByID(ctx, redemption.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, redemption.Reference, fetched.Reference)
	assert.Equal(t, int64(200), fetched.PointsUsed)
	assert.True(t, fetched.IsPending())

	byUser, err := repo.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRedemptionRepository_UpdateStatus(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRedemptionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "statuser", 1000)
	gift := testutil.CreateTestGift(t, testDB, "cap", 100, 5)

	redemption := createRedemption(t, testDB, user.ID, gift.ID, 100)

	updated, err := repo.UpdateStatus(ctx, redemption.ID, entities.RedemptionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entities.RedemptionStatusCancelled, updated.Status)
	// The snapshot survives the transition
	assert.Equal(t, int64(100), updated.PointsUsed)

	t.Run("terminal status refuses transition", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, redemption.ID, entities.RedemptionStatusCompleted)
		assert.ErrorIs(t, err, entities.ErrRedemptionNotPending)
	})

	t.Run("unknown redemption", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, 999999, entities.RedemptionStatusCompleted)
		assert.ErrorIs(t, err, entities.ErrRedemptionNotFound)
	})
}

// Concurrent cancellations of one pending redemption: the status condition
// lets exactly one through, which is what makes a double refund impossible.
func TestRedemptionRepository_UpdateStatus_Concurrent(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRedemptionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "canceller", 1000)
	gift := testutil.CreateTestGift(t, testDB, "ball", 100, 5)
	redemption := createRedemption(t, testDB, user.ID, gift.ID, 100)

	const workers = 6
	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.UpdateStatus(ctx, redemption.ID, entities.RedemptionStatusCancelled); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	assert.Equal(t, 1, len(successes))
}

func TestRedemptionRepository_Delete(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRedemptionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "deleter", 1000)
	gift := testutil.CreateTestGift(t, testDB, "badge", 100, 5)
	redemption := createRedemption(t, testDB, user.ID, gift.ID, 100)

	require.NoError(t, repo.Delete(ctx, redemption.ID))

	gone, err := repo.GetByID(ctx, redemption.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, repo.Delete(ctx, redemption.ID), entities.ErrRedemptionNotFound)
}

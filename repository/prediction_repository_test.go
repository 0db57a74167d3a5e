package repository

import (
	"context"
	"testing"

	"matchday/domain/entities"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "predictor", 0)
	match := testutil.CreateTestMatch(t, testDB, "Arsenal", "Chelsea")

	prediction := testutil.CreateTestPrediction(t, testDB, user.ID, match.ID, 2, 1)
	assert.NotZero(t, prediction.ID)
	assert.Equal(t, entities.MatchResultHome, prediction.PredictedResult)

	t.Run("one prediction per user and match", func(t *testing.T) {
		dup := &entities.Prediction{
			UserID:             user.ID,
			MatchID:            match.ID,
			PredictedHomeScore: 0,
			PredictedAwayScore: 0,
			PredictedResult:    entities.MatchResultDraw,
		}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, entities.ErrPredictionExists)
	})

	t.Run("same user may predict another match", func(t *testing.T) {
		other := testutil.CreateTestMatch(t, testDB, "Liverpool", "Everton")
		testutil.CreateTestPrediction(t, testDB, user.ID, other.ID, 0, 0)
	})
}

func TestPredictionRepository_MarkSettled(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "settler", 0)
	match := testutil.CreateTestMatch(t, testDB, "City", "United")
	prediction := testutil.CreateTestPrediction(t, testDB, user.ID, match.ID, 1, 0)

	require.NoError(t, repo.MarkSettled(ctx, prediction.ID, true, 3))

	settled, err := repo.GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	require.NotNil(t, settled.IsCorrect)
	assert.True(t, *settled.IsCorrect)
	assert.Equal(t, 3, settled.PointsEarned)
	assert.NotNil(t, settled.SettledAt)

	t.Run("second settlement is refused", func(t *testing.T) {
		err := repo.MarkSettled(ctx, prediction.ID, true, 3)
		assert.ErrorIs(t, err, entities.ErrPredictionSettled)
	})

	t.Run("unknown prediction", func(t *testing.T) {
		assert.Error(t, repo.MarkSettled(ctx, 999999, false, 0))
	})
}

func TestPredictionRepository_GetUnsettledByMatch(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, testDB, "alice", 0)
	bob := testutil.CreateTestUser(t, testDB, "bob", 0)
	match := testutil.CreateTestMatch(t, testDB, "Spurs", "West Ham")

	p1 := testutil.CreateTestPrediction(t, testDB, alice.ID, match.ID, 2, 1)
	p2 := testutil.CreateTestPrediction(t, testDB, bob.ID, match.ID, 1, 1)

	open, err := repo.GetUnsettledByMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	require.NoError(t, repo.MarkSettled(ctx, p1.ID, true, 3))

	open, err = repo.GetUnsettledByMatch(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, p2.ID, open[0].ID)

	all, err := repo.GetByMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPredictionRepository_GetByUserAndMatch(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPredictionRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "lookup", 0)
	match := testutil.CreateTestMatch(t, testDB, "Leeds", "Burnley")

	none, err := repo.GetByUserAndMatch(ctx, user.ID, match.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	created := testutil.CreateTestPrediction(t, testDB, user.ID, match.ID, 0, 2)

	found, err := repo.GetByUserAndMatch(ctx, user.ID, match.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, entities.MatchResultAway, found.PredictedResult)
}

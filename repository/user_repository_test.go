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

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		created, err := repo.Create(ctx, "alice", "alice@example.com", 500)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotZero(t, created.ID)
		assert.Equal(t, int64(500), created.Points)
		assert.Equal(t, entities.UserRoleUser, created.Role)

		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, created.Username, byID.Username)

		byName, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, created.ID, byName.ID)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, "bob", "bob@example.com", 0)
		require.NoError(t, err)

		_, err = repo.Create(ctx, "bob", "bob2@example.com", 0)
		assert.Error(t, err)
	})
}

func TestUserRepository_CreditPoints(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "creditme", 100)

	newBalance, err := repo.CreditPoints(ctx, user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(103), newBalance)

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.CreditPoints(ctx, 999999, 10)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := repo.CreditPoints(ctx, user.ID, 0)
		assert.Error(t, err)
	})
}

func TestUserRepository_DebitPoints(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "debitme", 100)

	t.Run("successful debit", func(t *testing.T) {
		newBalance, err := repo.DebitPoints(ctx, user.ID, 40)
		require.NoError(t, err)
		assert.Equal(t, int64(60), newBalance)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		_, err := repo.DebitPoints(ctx, user.ID, 1000)
		assert.ErrorIs(t, err, entities.ErrInsufficientPoints)

		// The failed debit must not have touched the balance
		current, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(60), current.Points)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.DebitPoints(ctx, 999999, 10)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

// Concurrent debits of a balance that only covers some of them: the
// single-statement conditional update must never let the balance go negative.
func TestUserRepository_DebitPoints_Concurrent(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "racer", 100)

	const workers = 10
	const amount = 30

	var wg sync.WaitGroup
	successes := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.DebitPoints(ctx, user.ID, amount); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	succeeded := len(successes)
	assert.Equal(t, 3, succeeded, "only 3 debits of 30 fit into 100")

	final, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100-amount*succeeded), final.Points)
	assert.GreaterOrEqual(t, final.Points, int64(0))
}

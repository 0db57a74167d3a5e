package repository

import (
	"context"
	"testing"

	"matchday/events"
	"matchday/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitMakesWritesVisible(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	uow := CreateTestUnitOfWork(testDB.DB, events.NewTransactionalBus(bus))
	require.NoError(t, uow.Begin(ctx))

	user, err := uow.UserRepository().Create(ctx, "committed", "committed@example.com", 100)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	poolRepo := NewUserRepository(testDB.DB)
	visible, err := poolRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, visible)
	assert.Equal(t, int64(100), visible.Points)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	uow := CreateTestUnitOfWork(testDB.DB, events.NewTransactionalBus(bus))
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Create(ctx, "rolledback", "rolledback@example.com", 100)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	poolRepo := NewUserRepository(testDB.DB)
	gone, err := poolRepo.GetByUsername(ctx, "rolledback")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// A settlement's three writes share one transaction: if the ledger write
// fails, neither the outcome nor the credit survive.
func TestUnitOfWork_SettlementWritesAreAtomic(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, testDB, "atomic", 100)
	match := testutil.CreateTestMatch(t, testDB, "Arsenal", "Chelsea")
	prediction := testutil.CreateTestPrediction(t, testDB, user.ID, match.ID, 2, 1)

	bus := events.NewBus()
	uow := CreateTestUnitOfWork(testDB.DB, events.NewTransactionalBus(bus))
	require.NoError(t, uow.Begin(ctx))

	require.NoError(t, uow.PredictionRepository().MarkSettled(ctx, prediction.ID, true, 3))
	_, err := uow.UserRepository().CreditPoints(ctx, user.ID, 3)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	// Nothing stuck
	poolPredictions := NewPredictionRepository(testDB.DB)
	p, err := poolPredictions.GetByID(ctx, prediction.ID)
	require.NoError(t, err)
	assert.Nil(t, p.SettledAt)

	poolUsers := NewUserRepository(testDB.DB)
	u, err := poolUsers.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.Points)
}

func TestUnitOfWork_EventsFlushOnlyOnCommit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		received <- event
	})

	t.Run("rollback discards events", func(t *testing.T) {
		uow := CreateTestUnitOfWork(testDB.DB, events.NewTransactionalBus(bus))
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.EventBus().Publish(events.UserCreatedEvent{UserID: 1}))
		require.NoError(t, uow.Rollback())

		select {
		case <-received:
			t.Fatal("event delivered despite rollback")
		default:
		}
	})

	t.Run("commit flushes events", func(t *testing.T) {
		uow := CreateTestUnitOfWork(testDB.DB, events.NewTransactionalBus(bus))
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.EventBus().Publish(events.UserCreatedEvent{UserID: 2}))
		require.NoError(t, uow.Commit())

		event := <-received
		created, ok := event.(events.UserCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, int64(2), created.UserID)
	})
}

func TestUnitOfWork_BeginTwiceFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	uow := CreateTestUnitOfWork(testDB.DB, events.NewTransactionalBus(bus))
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback() }()

	assert.Error(t, uow.Begin(ctx))
}

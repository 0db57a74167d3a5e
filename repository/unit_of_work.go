package repository

import (
	"context"
	"fmt"

	"matchday/application"
	"matchday/database"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher

	userRepo             interfaces.UserRepository
	pointTransactionRepo interfaces.PointTransactionRepository
	teamRepo             interfaces.TeamRepository
	matchRepo            interfaces.MatchRepository
	predictionRepo       interfaces.PredictionRepository
	giftRepo             interfaces.GiftRepository
	redemptionRepo       interfaces.RedemptionRepository
}

type unitOfWorkFactory struct {
	db           *database.DB
	newPublisher func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a UnitOfWork factory. newPublisher is invoked
// once per unit of work so each transaction gets its own event queue.
func NewUnitOfWorkFactory(db *database.DB, newPublisher func() interfaces.TransactionalEventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:           db,
		newPublisher: newPublisher,
	}
}

// Create creates a new UnitOfWork
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: f.newPublisher(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create transaction-scoped repositories
	u.userRepo = newUserRepository(tx)
	u.pointTransactionRepo = newPointTransactionRepository(tx)
	u.teamRepo = newTeamRepository(tx)
	u.matchRepo = newMatchRepository(tx)
	u.predictionRepo = newPredictionRepository(tx)
	u.giftRepo = newGiftRepository(tx)
	u.redemptionRepo = newRedemptionRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// PointTransactionRepository returns the ledger repository for this unit of work
func (u *unitOfWork) PointTransactionRepository() interfaces.PointTransactionRepository {
	if u.pointTransactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.pointTransactionRepo
}

// TeamRepository returns the team repository for this unit of work
func (u *unitOfWork) TeamRepository() interfaces.TeamRepository {
	if u.teamRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.teamRepo
}

// MatchRepository returns the match repository for this unit of work
func (u *unitOfWork) MatchRepository() interfaces.MatchRepository {
	if u.matchRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.matchRepo
}

// PredictionRepository returns the prediction repository for this unit of work
func (u *unitOfWork) PredictionRepository() interfaces.PredictionRepository {
	if u.predictionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.predictionRepo
}

// GiftRepository returns the gift repository for this unit of work
func (u *unitOfWork) GiftRepository() interfaces.GiftRepository {
	if u.giftRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.giftRepo
}

// RedemptionRepository returns the redemption repository for this unit of work
func (u *unitOfWork) RedemptionRepository() interfaces.RedemptionRepository {
	if u.redemptionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.redemptionRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work has no event publisher")
	}
	return u.transactionalPublisher
}

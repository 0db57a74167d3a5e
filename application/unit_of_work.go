package application

import (
	"context"

	"matchday/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations.
// All repositories returned by one unit of work share a single database
// transaction; their writes become visible together on Commit or not at all.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes queued events
	Commit() error

	// Rollback rolls back the transaction and discards queued events
	Rollback() error

	// Repository getters
	UserRepository() interfaces.UserRepository
	PointTransactionRepository() interfaces.PointTransactionRepository
	TeamRepository() interfaces.TeamRepository
	MatchRepository() interfaces.MatchRepository
	PredictionRepository() interfaces.PredictionRepository
	GiftRepository() interfaces.GiftRepository
	RedemptionRepository() interfaces.RedemptionRepository

	// EventBus returns the transactional event publisher; events published
	// through it are held until Commit
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}

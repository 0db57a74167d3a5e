package interfaces

import (
	"context"

	"matchday/domain/entities"
	"matchday/events"
)

// UserRepository defines the interface for user data access.
// CreditPoints and DebitPoints are the only legal mutators of User.Points.
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// Create creates a new user with the starting point balance
	Create(ctx context.Context, username, email string, startingPoints int64) (*entities.User, error)

	// CreditPoints atomically increases a user's balance and returns the new
	// balance. Fails with entities.ErrUserNotFound if the user does not exist.
	CreditPoints(ctx context.Context, userID, amount int64) (int64, error)

	// DebitPoints atomically decreases a user's balance if and only if the
	// balance covers the amount, and returns the new balance. Fails with
	// entities.ErrInsufficientPoints otherwise. The check and the write are a
	// single statement; two concurrent debits can never both pass the check.
	DebitPoints(ctx context.Context, userID, amount int64) (int64, error)
}

// PointTransactionRepository defines the interface for the point ledger history
type PointTransactionRepository interface {
	// Record creates a new ledger entry
	Record(ctx context.Context, tx *entities.PointTransaction) error

	// GetByUser returns ledger entries for a user, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.PointTransaction, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// Create creates a new team
	Create(ctx context.Context, team *entities.Team) error

	// GetByID retrieves a team by ID
	GetByID(ctx context.Context, id int64) (*entities.Team, error)

	// GetActive returns all active teams
	GetActive(ctx context.Context) ([]*entities.Team, error)

	// SetActive toggles a team's active flag
	SetActive(ctx context.Context, id int64, active bool) error
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// Create creates a new match in the upcoming state
	Create(ctx context.Context, match *entities.Match) error

	// GetByID retrieves a match by ID
	GetByID(ctx context.Context, id int64) (*entities.Match, error)

	// GetByStatus returns matches in the given status ordered by start time
	GetByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error)

	// SetLive transitions an upcoming match to live. Fails with
	// entities.ErrAlreadySettled if the match already left the upcoming state.
	SetLive(ctx context.Context, id int64) error

	// FinalizeMatch writes the final score and result and transitions the
	// match to finished, as a single check-and-set: it fails with
	// entities.ErrAlreadySettled if the match is already finished, so two
	// concurrent settlements cannot both succeed.
	FinalizeMatch(ctx context.Context, matchID int64, homeScore, awayScore int, result entities.MatchResult) (*entities.Match, error)
}

// PredictionRepository defines the interface for prediction data access
type PredictionRepository interface {
	// Create creates a new prediction. Fails with entities.ErrPredictionExists
	// if the user already predicted the match.
	Create(ctx context.Context, prediction *entities.Prediction) error

	// GetByID retrieves a prediction by ID
	GetByID(ctx context.Context, id int64) (*entities.Prediction, error)

	// GetByMatch returns all predictions referencing a match
	GetByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error)

	// GetUnsettledByMatch returns predictions for a match not yet settled
	GetUnsettledByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error)

	// GetByUser returns a user's predictions, newest first
	GetByUser(ctx context.Context, userID int64) ([]*entities.Prediction, error)

	// GetByUserAndMatch returns the user's prediction for a match, nil if none
	GetByUserAndMatch(ctx context.Context, userID, matchID int64) (*entities.Prediction, error)

	// MarkSettled writes the settlement outcome of a prediction, guarded so a
	// prediction is settled at most once: fails with
	// entities.ErrPredictionSettled on a repeat.
	MarkSettled(ctx context.Context, predictionID int64, isCorrect bool, pointsEarned int) error
}

// GiftRepository defines the interface for gift data access.
// DecrementStock and IncrementStock are the only legal mutators of Gift.Quantity.
type GiftRepository interface {
	// Create creates a new gift
	Create(ctx context.Context, gift *entities.Gift) error

	// GetByID retrieves a gift by ID
	GetByID(ctx context.Context, id int64) (*entities.Gift, error)

	// GetActive returns active gifts ordered by point cost
	GetActive(ctx context.Context) ([]*entities.Gift, error)

	// Update updates a gift's catalog fields (never quantity)
	Update(ctx context.Context, gift *entities.Gift) error

	// DecrementStock atomically decrements quantity by one if stock remains.
	// Fails with entities.ErrOutOfStock when the decrement would go negative.
	DecrementStock(ctx context.Context, giftID int64) error

	// IncrementStock atomically increments quantity by one
	IncrementStock(ctx context.Context, giftID int64) error
}

// RedemptionRepository defines the interface for gift redemption data access
type RedemptionRepository interface {
	// Create creates a new redemption in the pending status
	Create(ctx context.Context, redemption *entities.GiftRedemption) error

	// GetByID retrieves a redemption by ID
	GetByID(ctx context.Context, id int64) (*entities.GiftRedemption, error)

	// GetByUser returns a user's redemptions, newest first
	GetByUser(ctx context.Context, userID int64) ([]*entities.GiftRedemption, error)

	// GetAll returns all redemptions, newest first
	GetAll(ctx context.Context) ([]*entities.GiftRedemption, error)

	// UpdateStatus transitions a pending redemption to the given status and
	// returns the updated row. The transition is a check-and-set on the
	// pending status: it fails with entities.ErrRedemptionNotPending if the
	// redemption already reached a terminal status.
	UpdateStatus(ctx context.Context, id int64, status entities.RedemptionStatus) (*entities.GiftRedemption, error)

	// Delete removes a redemption record. Used only to unwind a record whose
	// ledger effects could not be applied.
	Delete(ctx context.Context, id int64) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher queues published events for the lifetime of a
// transaction. Flush delivers them after commit; Discard drops them after
// rollback, so handlers never observe effects that were rolled back.
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush delivers all queued events
	Flush(ctx context.Context) error

	// Discard drops all queued events
	Discard()
}

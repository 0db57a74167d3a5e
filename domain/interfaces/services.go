package interfaces

import (
	"context"
	"time"

	"matchday/domain/entities"
)

// SettlementResult summarizes one settlement pass over a match's predictions
type SettlementResult struct {
	Match               *entities.Match
	PredictionsTotal    int
	PredictionsSettled  int
	PointsCredited      int64
	FailedPredictionIDs []int64
}

// HasFailures returns true if any prediction could not be settled
func (r *SettlementResult) HasFailures() bool {
	return len(r.FailedPredictionIDs) > 0
}

// SettlementService finalizes matches and scores predictions against them
type SettlementService interface {
	// FinalizeMatch validates the score pair, classifies the result and
	// transitions the match to finished exactly once.
	FinalizeMatch(ctx context.Context, matchID int64, homeScore, awayScore int) (*entities.Match, error)

	// SettlePrediction scores one prediction against a settled match, writes
	// the outcome and credits the owning user. Returns the points awarded.
	// Safe to retry: an already-settled prediction fails with
	// entities.ErrPredictionSettled and has no ledger effect.
	SettlePrediction(ctx context.Context, prediction *entities.Prediction, match *entities.Match) (int, error)
}

// RedemptionService validates and executes gift redemptions and their
// status transitions
type RedemptionService interface {
	// Redeem debits the user, decrements gift stock and creates a pending
	// redemption, compensating already-applied steps when a later step fails.
	Redeem(ctx context.Context, userID, giftID int64) (*entities.GiftRedemption, error)

	// SetStatus transitions a pending redemption to completed or cancelled.
	// Cancelling refunds the points snapshot and restores one unit of stock.
	SetStatus(ctx context.Context, redemptionID int64, status entities.RedemptionStatus) (*entities.GiftRedemption, error)
}

// PredictionService creates predictions for upcoming matches
type PredictionService interface {
	// CreatePrediction records a user's score prediction for an upcoming match
	CreatePrediction(ctx context.Context, userID, matchID int64, homeScore, awayScore int) (*entities.Prediction, error)
}

// CreateMatchParams carries the inputs for scheduling a match
type CreateMatchParams struct {
	HomeTeamID  int64
	AwayTeamID  int64
	StartTime   time.Time
	EndTime     *time.Time
	Competition string
	Stadium     string
}

// MatchService schedules matches between active teams
type MatchService interface {
	// CreateMatch snapshots both teams and creates an upcoming match
	CreateMatch(ctx context.Context, params CreateMatchParams) (*entities.Match, error)
}

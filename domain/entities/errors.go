package entities

import (
	"errors"
	"fmt"
	"sort"
)

// Domain errors returned by the ledger, settlement and redemption flows.
// Callers classify with errors.Is; repositories and services wrap these
// with additional context.
var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrMatchNotFound is returned when a match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrGiftNotFound is returned when a gift does not exist.
	ErrGiftNotFound = errors.New("gift not found")

	// ErrTeamNotFound is returned when a team does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrTeamInactive is returned when scheduling a match with a deactivated team.
	ErrTeamInactive = errors.New("team is not active")

	// ErrRedemptionNotFound is returned when a redemption does not exist.
	ErrRedemptionNotFound = errors.New("redemption not found")

	// ErrAlreadySettled is returned when settling a match that is already finished.
	ErrAlreadySettled = errors.New("match already settled")

	// ErrMatchNotOpen is returned when predicting on a match that is no longer upcoming.
	ErrMatchNotOpen = errors.New("match is not open for predictions")

	// ErrPredictionExists is returned when a user already predicted a match.
	ErrPredictionExists = errors.New("prediction already exists for this match")

	// ErrPredictionSettled is returned when a prediction has already been scored and credited.
	ErrPredictionSettled = errors.New("prediction already settled")

	// ErrInsufficientPoints is returned when a debit would drive a balance negative.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrOutOfStock is returned when a stock decrement would drive quantity negative.
	ErrOutOfStock = errors.New("gift out of stock")

	// ErrGiftUnavailable is returned when redeeming an inactive or depleted gift.
	ErrGiftUnavailable = errors.New("gift unavailable")

	// ErrRedemptionNotPending is returned when transitioning a redemption that
	// already reached a terminal status.
	ErrRedemptionNotPending = errors.New("redemption is not pending")
)

// PartialSettlementError reports predictions that could not be settled after
// the match itself was finalized. Match finalization is never rolled back;
// the failed subset can be retried.
type PartialSettlementError struct {
	MatchID             int64
	FailedPredictionIDs []int64
}

func (e *PartialSettlementError) Error() string {
	ids := make([]int64, len(e.FailedPredictionIDs))
	copy(ids, e.FailedPredictionIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return fmt.Sprintf("settlement of match %d partially failed: %d prediction(s) not credited %v", e.MatchID, len(ids), ids)
}

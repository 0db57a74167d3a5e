package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
	"matchday/domain/utils"

	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	matchRepo      interfaces.MatchRepository
	predictionRepo interfaces.PredictionRepository
	userRepo       interfaces.UserRepository
	ledgerRepo     interfaces.PointTransactionRepository
	eventPublisher interfaces.EventPublisher
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	matchRepo interfaces.MatchRepository,
	predictionRepo interfaces.PredictionRepository,
	userRepo interfaces.UserRepository,
	ledgerRepo interfaces.PointTransactionRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// FinalizeMatch classifies the final score and transitions the match to
// finished. The transition is a single check-and-set in the repository, so a
// match can be finalized exactly once even under concurrent settlements.
func (s *settlementService) FinalizeMatch(ctx context.Context, matchID int64, homeScore, awayScore int) (*entities.Match, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("scores must be non-negative, got %d-%d", homeScore, awayScore)
	}

	result := entities.DetermineResult(homeScore, awayScore)

	match, err := s.matchRepo.FinalizeMatch(ctx, matchID, homeScore, awayScore, result)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize match %d: %w", matchID, err)
	}

	log.WithFields(log.Fields{
		"matchID":   matchID,
		"homeScore": homeScore,
		"awayScore": awayScore,
		"result":    result,
	}).Info("Match finalized")

	return match, nil
}

// SettlePrediction scores one prediction against a settled match, writes the
// outcome and credits the owning user. The outcome write is guarded so a
// prediction settles at most once; the credit and the ledger entry share the
// caller's transaction scope with that write.
func (s *settlementService) SettlePrediction(ctx context.Context, prediction *entities.Prediction, match *entities.Match) (int, error) {
	if !match.IsSettled() {
		return 0, fmt.Errorf("match %d has no final result", match.ID)
	}
	if prediction.MatchID != match.ID {
		return 0, fmt.Errorf("prediction %d does not reference match %d", prediction.ID, match.ID)
	}

	points := prediction.Score(match)

	if err := s.predictionRepo.MarkSettled(ctx, prediction.ID, points > 0, points); err != nil {
		return 0, fmt.Errorf("failed to mark prediction %d settled: %w", prediction.ID, err)
	}

	if points == 0 {
		return 0, nil
	}

	newBalance, err := s.userRepo.CreditPoints(ctx, prediction.UserID, int64(points))
	if err != nil {
		return 0, fmt.Errorf("failed to credit user %d: %w", prediction.UserID, err)
	}

	relatedID := prediction.ID
	relatedType := entities.RelatedTypePrediction
	entry := &entities.PointTransaction{
		UserID:          prediction.UserID,
		PointsBefore:    newBalance - int64(points),
		PointsAfter:     newBalance,
		ChangeAmount:    int64(points),
		TransactionType: entities.TransactionTypePredictionWin,
		Metadata: map[string]any{
			"match_id":        match.ID,
			"predicted_score": fmt.Sprintf("%d-%d", prediction.PredictedHomeScore, prediction.PredictedAwayScore),
			"final_score":     fmt.Sprintf("%d-%d", *match.HomeScore, *match.AwayScore),
			"exact":           points == entities.PointsExactScore,
		},
		RelatedID:   &relatedID,
		RelatedType: &relatedType,
	}
	if err := utils.RecordPointChange(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return 0, fmt.Errorf("failed to record settlement credit: %w", err)
	}

	return points, nil
}

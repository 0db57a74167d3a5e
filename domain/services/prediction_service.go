package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type predictionService struct {
	matchRepo      interfaces.MatchRepository
	predictionRepo interfaces.PredictionRepository
	userRepo       interfaces.UserRepository
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	matchRepo interfaces.MatchRepository,
	predictionRepo interfaces.PredictionRepository,
	userRepo interfaces.UserRepository,
) interfaces.PredictionService {
	return &predictionService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
	}
}

// CreatePrediction records a user's score prediction for an upcoming match.
// The predicted result is derived here so settlement never re-derives it per
// prediction.
func (s *predictionService) CreatePrediction(ctx context.Context, userID, matchID int64, homeScore, awayScore int) (*entities.Prediction, error) {
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("predicted scores must be non-negative, got %d-%d", homeScore, awayScore)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, entities.ErrUserNotFound
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if match == nil {
		return nil, entities.ErrMatchNotFound
	}
	if !match.AcceptsPredictions() {
		return nil, entities.ErrMatchNotOpen
	}

	prediction := &entities.Prediction{
		UserID:             userID,
		MatchID:            matchID,
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
		PredictedResult:    entities.DetermineResult(homeScore, awayScore),
	}
	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	return prediction, nil
}

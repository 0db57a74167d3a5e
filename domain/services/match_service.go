package services

import (
	"context"
	"fmt"

	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

type matchService struct {
	matchRepo interfaces.MatchRepository
	teamRepo  interfaces.TeamRepository
}

// NewMatchService creates a new match service
func NewMatchService(matchRepo interfaces.MatchRepository, teamRepo interfaces.TeamRepository) interfaces.MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
	}
}

// CreateMatch schedules an upcoming match between two active teams. Team
// name and logo are snapshotted at creation time; later renames of either
// team do not affect the match.
func (s *matchService) CreateMatch(ctx context.Context, params interfaces.CreateMatchParams) (*entities.Match, error) {
	if params.StartTime.IsZero() {
		return nil, fmt.Errorf("start time is required")
	}
	if params.EndTime != nil && params.EndTime.Before(params.StartTime) {
		return nil, fmt.Errorf("end time cannot precede start time")
	}
	if params.HomeTeamID == params.AwayTeamID {
		return nil, fmt.Errorf("a team cannot play itself")
	}

	homeTeam, err := s.teamRepo.GetByID(ctx, params.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get home team %d: %w", params.HomeTeamID, err)
	}
	awayTeam, err := s.teamRepo.GetByID(ctx, params.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get away team %d: %w", params.AwayTeamID, err)
	}
	if homeTeam == nil || awayTeam == nil {
		return nil, entities.ErrTeamNotFound
	}
	if !homeTeam.IsActive || !awayTeam.IsActive {
		return nil, entities.ErrTeamInactive
	}

	match := &entities.Match{
		HomeTeam:    homeTeam.Snapshot(),
		AwayTeam:    awayTeam.Snapshot(),
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Status:      entities.MatchStatusUpcoming,
		Competition: params.Competition,
		Stadium:     params.Stadium,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return match, nil
}

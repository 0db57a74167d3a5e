package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"matchday/domain/entities"

	"github.com/stretchr/testify/require"
)

// Factories insert fixture rows directly so they stay usable from the
// repository package's own tests.

// CreateTestUser inserts a user with the given starting points and returns it
func CreateTestUser(t *testing.T, td *TestDatabase, username string, points int64) *entities.User {
	t.Helper()

	user := &entities.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Points:   points,
	}
	err := td.DB.QueryRow(context.Background(), `
		INSERT INTO users (username, email, points)
		VALUES ($1, $2, $3)
		RETURNING id, role, created_at, updated_at
	`, user.Username, user.Email, user.Points).
		Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	require.NoError(t, err)
	return user
}

// CreateTestTeam inserts an active team and returns it
func CreateTestTeam(t *testing.T, td *TestDatabase, name string) *entities.Team {
	t.Helper()

	team := &entities.Team{
		Name:     name,
		Logo:     fmt.Sprintf("https://img.example.com/%s.png", name),
		IsActive: true,
	}
	err := td.DB.QueryRow(context.Background(), `
		INSERT INTO teams (name, logo, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, team.Name, team.Logo, team.IsActive).
		Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	require.NoError(t, err)
	return team
}

// CreateTestMatch inserts an upcoming match between two fresh teams
func CreateTestMatch(t *testing.T, td *TestDatabase, homeName, awayName string) *entities.Match {
	t.Helper()

	home := CreateTestTeam(t, td, homeName)
	away := CreateTestTeam(t, td, awayName)

	match := &entities.Match{
		HomeTeam:    home.Snapshot(),
		AwayTeam:    away.Snapshot(),
		StartTime:   time.Now().Add(24 * time.Hour),
		Status:      entities.MatchStatusUpcoming,
		Competition: "Test League",
	}
	err := td.DB.QueryRow(context.Background(), `
		INSERT INTO matches
			(home_team_id, home_team_name, home_team_logo,
			 away_team_id, away_team_name, away_team_logo,
			 start_time, status, competition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, match.HomeTeam.TeamID, match.HomeTeam.Name, match.HomeTeam.Logo,
		match.AwayTeam.TeamID, match.AwayTeam.Name, match.AwayTeam.Logo,
		match.StartTime, match.Status, match.Competition).
		Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	require.NoError(t, err)
	return match
}

// CreateTestPrediction inserts a prediction for the given user and match
func CreateTestPrediction(t *testing.T, td *TestDatabase, userID, matchID int64, homeScore, awayScore int) *entities.Prediction {
	t.Helper()

	prediction := &entities.Prediction{
		UserID:             userID,
		MatchID:            matchID,
		PredictedHomeScore: homeScore,
		PredictedAwayScore: awayScore,
		PredictedResult:    entities.DetermineResult(homeScore, awayScore),
	}
	err := td.DB.QueryRow(context.Background(), `
		INSERT INTO predictions
			(user_id, match_id, predicted_home_score, predicted_away_score, predicted_result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, prediction.UserID, prediction.MatchID,
		prediction.PredictedHomeScore, prediction.PredictedAwayScore, prediction.PredictedResult).
		Scan(&prediction.ID, &prediction.CreatedAt, &prediction.UpdatedAt)
	require.NoError(t, err)
	return prediction
}

// CreateTestGift inserts an active gift with the given cost and stock
func CreateTestGift(t *testing.T, td *TestDatabase, name string, cost int64, quantity int) *entities.Gift {
	t.Helper()

	gift := &entities.Gift{
		Name:       name,
		PointsCost: cost,
		Quantity:   quantity,
		IsActive:   true,
	}
	err := td.DB.QueryRow(context.Background(), `
		INSERT INTO gifts (name, points_cost, quantity, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, gift.Name, gift.PointsCost, gift.Quantity, gift.IsActive).
		Scan(&gift.ID, &gift.CreatedAt, &gift.UpdatedAt)
	require.NoError(t, err)
	return gift
}

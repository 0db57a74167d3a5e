package repository

import (
	"context"
	"errors"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PredictionRepository implements the PredictionRepository interface
type PredictionRepository struct {
	q Queryable
}

// NewPredictionRepository creates a pool-backed prediction repository
func NewPredictionRepository(db *database.DB) *PredictionRepository {
	return &PredictionRepository{q: db.Pool}
}

func newPredictionRepository(q Queryable) interfaces.PredictionRepository {
	return &PredictionRepository{q: q}
}

const predictionColumns = `
	id, user_id, match_id,
	predicted_home_score, predicted_away_score, predicted_result,
	is_correct, points_earned, settled_at,
	created_at, updated_at`

func scanPrediction(row pgx.Row) (*entities.Prediction, error) {
	var prediction entities.Prediction
	err := row.Scan(
		&prediction.ID,
		&prediction.UserID,
		&prediction.MatchID,
		&prediction.PredictedHomeScore,
		&prediction.PredictedAwayScore,
		&prediction.PredictedResult,
		&prediction.IsCorrect,
		&prediction.PointsEarned,
		&prediction.SettledAt,
		&prediction.CreatedAt,
		&prediction.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// Create creates a new prediction. The (user, match) unique constraint maps
// to ErrPredictionExists so callers can surface the conflict directly.
func (r *PredictionRepository) Create(ctx context.Context, prediction *entities.Prediction) error {
	query := `
		INSERT INTO predictions
			(user_id, match_id, predicted_home_score, predicted_away_score, predicted_result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.PredictedHomeScore,
		prediction.PredictedAwayScore,
		prediction.PredictedResult,
	).Scan(&prediction.ID, &prediction.CreatedAt, &prediction.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return entities.ErrPredictionExists
		}
		return fmt.Errorf("failed to create prediction for user %d on match %d: %w",
			prediction.UserID, prediction.MatchID, err)
	}

	return nil
}

// GetByID retrieves a prediction by ID. Returns nil without error when none exists.
func (r *PredictionRepository) GetByID(ctx context.Context, id int64) (*entities.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`

	prediction, err := scanPrediction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction %d: %w", id, err)
	}
	return prediction, nil
}

// GetByMatch returns all predictions referencing a match
func (r *PredictionRepository) GetByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE match_id = $1 ORDER BY id`

	return r.queryPredictions(ctx, query, matchID)
}

// GetUnsettledByMatch returns the predictions for a match that have not been
// settled yet. This is the work queue for settlement and retries.
func (r *PredictionRepository) GetUnsettledByMatch(ctx context.Context, matchID int64) ([]*entities.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE match_id = $1 AND settled_at IS NULL ORDER BY id`

	return r.queryPredictions(ctx, query, matchID)
}

// GetByUser returns a user's predictions, newest first
func (r *PredictionRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	return r.queryPredictions(ctx, query, userID)
}

// GetByUserAndMatch returns the user's prediction for a match, nil if none
func (r *PredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int64) (*entities.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE user_id = $1 AND match_id = $2`

	prediction, err := scanPrediction(r.q.QueryRow(ctx, query, userID, matchID))
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction for user %d on match %d: %w", userID, matchID, err)
	}
	return prediction, nil
}

// MarkSettled writes the settlement outcome of a prediction. The settled_at
// guard makes the write first-writer-wins, so re-running settlement over a
// match never credits a prediction twice.
func (r *PredictionRepository) MarkSettled(ctx context.Context, predictionID int64, isCorrect bool, pointsEarned int) error {
	query := `
		UPDATE predictions
		SET is_correct = $2, points_earned = $3, settled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND settled_at IS NULL
	`

	result, err := r.q.Exec(ctx, query, predictionID, isCorrect, pointsEarned)
	if err != nil {
		return fmt.Errorf("failed to mark prediction %d settled: %w", predictionID, err)
	}
	if result.RowsAffected() == 0 {
		prediction, getErr := r.GetByID(ctx, predictionID)
		if getErr != nil {
			return getErr
		}
		if prediction == nil {
			return fmt.Errorf("prediction %d not found", predictionID)
		}
		return entities.ErrPredictionSettled
	}

	return nil
}

func (r *PredictionRepository) queryPredictions(ctx context.Context, query string, args ...any) ([]*entities.Prediction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*entities.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

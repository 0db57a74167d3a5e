package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func settledMatch(homeScore, awayScore int) *Match {
	result := DetermineResult(homeScore, awayScore)
	return &Match{
		ID:        1,
		Status:    MatchStatusFinished,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		Result:    &result,
	}
}

func TestPrediction_Score(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		predictedHome  int
		predictedAway  int
		finalHome      int
		finalAway      int
		expectedPoints int
	}{
		{"exact score", 2, 1, 2, 1, PointsExactScore},
		{"exact goalless draw", 0, 0, 0, 0, PointsExactScore},
		{"right outcome wrong score", 1, 0, 3, 1, PointsCorrectResult},
		{"right draw wrong score", 1, 1, 2, 2, PointsCorrectResult},
		{"wrong outcome", 2, 1, 0, 1, 0},
		{"predicted draw got home win", 1, 1, 2, 1, 0},
		{"mirrored score is not exact", 1, 2, 2, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prediction := &Prediction{
				MatchID:            1,
				PredictedHomeScore: tt.predictedHome,
				PredictedAwayScore: tt.predictedAway,
				PredictedResult:    DetermineResult(tt.predictedHome, tt.predictedAway),
			}
			points := prediction.Score(settledMatch(tt.finalHome, tt.finalAway))
			assert.Equal(t, tt.expectedPoints, points)
		})
	}
}

func TestPrediction_Score_NoResult(t *testing.T) {
	t.Parallel()

	prediction := &Prediction{
		PredictedHomeScore: 1,
		PredictedAwayScore: 0,
		PredictedResult:    MatchResultHome,
	}
	match := &Match{Status: MatchStatusLive}

	assert.Equal(t, 0, prediction.Score(match))
}

func TestPointTransaction_Validate(t *testing.T) {
	t.Parallel()

	t.Run("consistent entry", func(t *testing.T) {
		entry := &PointTransaction{
			UserID:          1,
			PointsBefore:    100,
			PointsAfter:     103,
			ChangeAmount:    3,
			TransactionType: TransactionTypePredictionWin,
		}
		assert.NoError(t, entry.Validate())
	})

	t.Run("zero change", func(t *testing.T) {
		entry := &PointTransaction{PointsBefore: 100, PointsAfter: 100}
		assert.Error(t, entry.Validate())
	})

	t.Run("inconsistent arithmetic", func(t *testing.T) {
		entry := &PointTransaction{PointsBefore: 100, PointsAfter: 90, ChangeAmount: -5}
		assert.Error(t, entry.Validate())
	})

	t.Run("negative resulting balance", func(t *testing.T) {
		entry := &PointTransaction{PointsBefore: 10, PointsAfter: -10, ChangeAmount: -20}
		assert.Error(t, entry.Validate())
	})
}

package entities

import "time"

// Point awards for a settled prediction.
const (
	PointsExactScore    = 3
	PointsCorrectResult = 1
)

// Prediction represents a user's score prediction for a single match.
// A user can predict each match at most once. The prediction is immutable
// except for the settlement write (IsCorrect, PointsEarned, SettledAt).
type Prediction struct {
	ID                 int64       `db:"id"`
	UserID             int64       `db:"user_id"`
	MatchID            int64       `db:"match_id"`
	PredictedHomeScore int         `db:"predicted_home_score"`
	PredictedAwayScore int         `db:"predicted_away_score"`
	PredictedResult    MatchResult `db:"predicted_result"`
	IsCorrect          *bool       `db:"is_correct"`
	PointsEarned       int         `db:"points_earned"`
	SettledAt          *time.Time  `db:"settled_at"`
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`
}

// Score computes the point award for this prediction against a settled match.
// The match result must already be determined; Score never recomputes it.
// Returns PointsExactScore for a perfect score line, PointsCorrectResult for
// the right outcome with a different score, 0 otherwise.
func (p *Prediction) Score(match *Match) int {
	if match.Result == nil || *match.Result != p.PredictedResult {
		return 0
	}
	if match.HomeScore != nil && match.AwayScore != nil &&
		p.PredictedHomeScore == *match.HomeScore &&
		p.PredictedAwayScore == *match.AwayScore {
		return PointsExactScore
	}
	return PointsCorrectResult
}

// IsSettledPrediction checks if the prediction has already been scored
func (p *Prediction) IsSettledPrediction() bool {
	return p.SettledAt != nil
}

package entities

import "time"

// MatchStatus represents the lifecycle state of a match
type MatchStatus string

const (
	MatchStatusUpcoming MatchStatus = "upcoming"
	MatchStatusLive     MatchStatus = "live"
	MatchStatusFinished MatchStatus = "finished"
)

// MatchResult represents the categorical outcome of a finished match
type MatchResult string

const (
	MatchResultHome MatchResult = "home"
	MatchResultAway MatchResult = "away"
	MatchResultDraw MatchResult = "draw"
)

// Match represents a scheduled football match between two team snapshots.
// HomeScore, AwayScore and Result are set exactly once, by settlement.
type Match struct {
	ID          int64        `db:"id"`
	HomeTeam    TeamSnapshot `db:"-"`
	AwayTeam    TeamSnapshot `db:"-"`
	StartTime   time.Time    `db:"start_time"`
	EndTime     *time.Time   `db:"end_time"`
	Status      MatchStatus  `db:"status"`
	HomeScore   *int         `db:"home_score"`
	AwayScore   *int         `db:"away_score"`
	Result      *MatchResult `db:"result"`
	Competition string       `db:"competition"`
	Stadium     string       `db:"stadium"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// DetermineResult maps a final score pair to the categorical match result.
// Pure and total for non-negative scores; callers validate inputs first.
func DetermineResult(homeScore, awayScore int) MatchResult {
	switch {
	case homeScore > awayScore:
		return MatchResultHome
	case homeScore < awayScore:
		return MatchResultAway
	default:
		return MatchResultDraw
	}
}

// IsUpcoming checks if the match has not started yet
func (m *Match) IsUpcoming() bool {
	return m.Status == MatchStatusUpcoming
}

// IsFinished checks if the match has been settled
func (m *Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}

// AcceptsPredictions checks if predictions may still be created for the match
func (m *Match) AcceptsPredictions() bool {
	return m.Status == MatchStatusUpcoming
}

// IsSettled checks if the match carries a final score and result
func (m *Match) IsSettled() bool {
	return m.IsFinished() && m.HomeScore != nil && m.AwayScore != nil && m.Result != nil
}

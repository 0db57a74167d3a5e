package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// MatchRepository implements the MatchRepository interface
type MatchRepository struct {
	q Queryable
}

// NewMatchRepository creates a pool-backed match repository
func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{q: db.Pool}
}

func newMatchRepository(q Queryable) interfaces.MatchRepository {
	return &MatchRepository{q: q}
}

const matchColumns = `
	id,
	home_team_id, home_team_name, home_team_logo,
	away_team_id, away_team_name, away_team_logo,
	start_time, end_time, status,
	home_score, away_score, result,
	competition, stadium,
	created_at, updated_at`

func scanMatch(row pgx.Row) (*entities.Match, error) {
	var match entities.Match
	err := row.Scan(
		&match.ID,
		&match.HomeTeam.TeamID,
		&match.HomeTeam.Name,
		&match.HomeTeam.Logo,
		&match.AwayTeam.TeamID,
		&match.AwayTeam.Name,
		&match.AwayTeam.Logo,
		&match.StartTime,
		&match.EndTime,
		&match.Status,
		&match.HomeScore,
		&match.AwayScore,
		&match.Result,
		&match.Competition,
		&match.Stadium,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Create creates a new match with the team snapshots already embedded
func (r *MatchRepository) Create(ctx context.Context, match *entities.Match) error {
	query := `
		INSERT INTO matches
			(home_team_id, home_team_name, home_team_logo,
			 away_team_id, away_team_name, away_team_logo,
			 start_time, end_time, status, competition, stadium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		match.HomeTeam.TeamID, match.HomeTeam.Name, match.HomeTeam.Logo,
		match.AwayTeam.TeamID, match.AwayTeam.Name, match.AwayTeam.Logo,
		match.StartTime, match.EndTime, match.Status, match.Competition, match.Stadium,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// GetByID retrieves a match by ID. Returns nil without error when no match exists.
func (r *MatchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

// GetByStatus returns all matches in the given status ordered by kick-off time
func (r *MatchRepository) GetByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE status = $1 ORDER BY start_time`

	rows, err := r.q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches with status %s: %w", status, err)
	}
	defer rows.Close()

	var matches []*entities.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}

	return matches, nil
}

// SetLive transitions an upcoming match to live
func (r *MatchRepository) SetLive(ctx context.Context, id int64) error {
	query := `
		UPDATE matches
		SET status = 'live', updated_at = NOW()
		WHERE id = $1 AND status = 'upcoming'
	`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to set match %d live: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		match, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		if match == nil {
			return entities.ErrMatchNotFound
		}
		return entities.ErrAlreadySettled
	}

	return nil
}

// FinalizeMatch writes the final score and transitions the match to finished.
// The status condition makes the transition first-writer-wins: a match already
// finished is never overwritten, so the recorded final score is immutable.
func (r *MatchRepository) FinalizeMatch(ctx context.Context, matchID int64, homeScore, awayScore int, result entities.MatchResult) (*entities.Match, error) {
	query := `
		UPDATE matches
		SET home_score = $2,
		    away_score = $3,
		    result = $4,
		    status = 'finished',
		    end_time = COALESCE(end_time, NOW()),
		    updated_at = NOW()
		WHERE id = $1 AND status <> 'finished'
		RETURNING ` + matchColumns

	match, err := scanMatch(r.q.QueryRow(ctx, query, matchID, homeScore, awayScore, result))
	if err != nil {
		return nil, fmt.Errorf("failed to finalize match %d: %w", matchID, err)
	}
	if match == nil {
		// No row updated: either the match is already finished or it does not exist
		existing, getErr := r.GetByID(ctx, matchID)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, entities.ErrMatchNotFound
		}
		return nil, entities.ErrAlreadySettled
	}

	return match, nil
}

package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// TeamRepository implements the TeamRepository interface
type TeamRepository struct {
	q Queryable
}

// NewTeamRepository creates a pool-backed team repository
func NewTeamRepository(db *database.DB) *TeamRepository {
	return &TeamRepository{q: db.Pool}
}

func newTeamRepository(q Queryable) interfaces.TeamRepository {
	return &TeamRepository{q: q}
}

const teamColumns = `id, name, short_name, logo, is_active, created_at, updated_at`

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var team entities.Team
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.ShortName,
		&team.Logo,
		&team.IsActive,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	query := `
		INSERT INTO teams (name, short_name, logo, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, team.Name, team.ShortName, team.Logo, team.IsActive).
		Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}

	return nil
}

// GetByID retrieves a team by ID. Returns nil without error when no team exists.
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*entities.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

// GetActive returns all active teams ordered by name
func (r *TeamRepository) GetActive(ctx context.Context) ([]*entities.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE is_active ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active teams: %w", err)
	}
	defer rows.Close()

	var teams []*entities.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, nil
}

// SetActive activates or deactivates a team
func (r *TeamRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE teams SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to set team %d active=%t: %w", id, active, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrTeamNotFound
	}

	return nil
}

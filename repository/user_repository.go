package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q Queryable
}

// NewUserRepository creates a pool-backed user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

func newUserRepository(q Queryable) interfaces.UserRepository {
	return &UserRepository{q: q}
}

const userColumns = `id, username, email, role, points, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Role,
		&user.Points,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID. Returns nil without error when no user exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username. Returns nil without error when no user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

// Create creates a new user with the given starting points
func (r *UserRepository) Create(ctx context.Context, username, email string, startingPoints int64) (*entities.User, error) {
	query := `
		INSERT INTO users (username, email, points)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username, email, startingPoints))
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// CreditPoints atomically adds points to a user's balance and returns the new
// balance.
func (r *UserRepository) CreditPoints(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	query := `
		UPDATE users
		SET points = points + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING points
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, userID, amount).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, entities.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to credit user %d: %w", userID, err)
	}

	return newBalance, nil
}

// DebitPoints atomically subtracts points from a user's balance and returns
// the new balance. The balance condition is part of the statement, so a debit
// can never push a balance below zero regardless of concurrent debits.
func (r *UserRepository) DebitPoints(ctx context.Context, userID int64, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	query := `
		UPDATE users
		SET points = points - $2, updated_at = NOW()
		WHERE id = $1 AND points >= $2
		RETURNING points
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, userID, amount).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Distinguish a missing user from an insufficient balance
		user, getErr := r.GetByID(ctx, userID)
		if getErr != nil {
			return 0, getErr
		}
		if user == nil {
			return 0, entities.ErrUserNotFound
		}
		return 0, entities.ErrInsufficientPoints
	}
	if err != nil {
		return 0, fmt.Errorf("failed to debit user %d: %w", userID, err)
	}

	return newBalance, nil
}

package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// RedemptionRepository implements the RedemptionRepository interface
type RedemptionRepository struct {
	q Queryable
}

// NewRedemptionRepository creates a pool-backed redemption repository
func NewRedemptionRepository(db *database.DB) *RedemptionRepository {
	return &RedemptionRepository{q: db.Pool}
}

func newRedemptionRepository(q Queryable) interfaces.RedemptionRepository {
	return &RedemptionRepository{q: q}
}

const redemptionColumns = `id, reference, user_id, gift_id, points_used, status, created_at, updated_at`

func scanRedemption(row pgx.Row) (*entities.GiftRedemption, error) {
	var redemption entities.GiftRedemption
	err := row.Scan(
		&redemption.ID,
		&redemption.Reference,
		&redemption.UserID,
		&redemption.GiftID,
		&redemption.PointsUsed,
		&redemption.Status,
		&redemption.CreatedAt,
		&redemption.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &redemption, nil
}

// Create creates a new redemption record
func (r *RedemptionRepository) Create(ctx context.Context, redemption *entities.GiftRedemption) error {
	query := `
		INSERT INTO gift_redemptions (reference, user_id, gift_id, points_used, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		redemption.Reference,
		redemption.UserID,
		redemption.GiftID,
		redemption.PointsUsed,
		redemption.Status,
	).Scan(&redemption.ID, &redemption.CreatedAt, &redemption.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create redemption for user %d: %w", redemption.UserID, err)
	}

	return nil
}

// GetByID retrieves a redemption by ID. Returns nil without error when none exists.
func (r *RedemptionRepository) GetByID(ctx context.Context, id int64) (*entities.GiftRedemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM gift_redemptions WHERE id = $1`

	redemption, err := scanRedemption(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get redemption %d: %w", id, err)
	}
	return redemption, nil
}

// GetByUser returns a user's redemptions, newest first
func (r *RedemptionRepository) GetByUser(ctx context.Context, userID int64) ([]*entities.GiftRedemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM gift_redemptions WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	return r.queryRedemptions(ctx, query, userID)
}

// GetAll returns all redemptions, newest first
func (r *RedemptionRepository) GetAll(ctx context.Context) ([]*entities.GiftRedemption, error) {
	query := `SELECT ` + redemptionColumns + ` FROM gift_redemptions ORDER BY created_at DESC, id DESC`

	return r.queryRedemptions(ctx, query)
}

// UpdateStatus transitions a pending redemption to the given status. The
// pending condition makes the transition first-writer-wins: a redemption that
// already reached a terminal status is never transitioned again, which is
// what prevents a double refund on cancel.
func (r *RedemptionRepository) UpdateStatus(ctx context.Context, id int64, status entities.RedemptionStatus) (*entities.GiftRedemption, error) {
	query := `
		UPDATE gift_redemptions
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + redemptionColumns

	redemption, err := scanRedemption(r.q.QueryRow(ctx, query, id, status))
	if err != nil {
		return nil, fmt.Errorf("failed to update redemption %d status: %w", id, err)
	}
	if redemption == nil {
		existing, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if existing == nil {
			return nil, entities.ErrRedemptionNotFound
		}
		return nil, entities.ErrRedemptionNotPending
	}

	return redemption, nil
}

// Delete removes a redemption record
func (r *RedemptionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM gift_redemptions WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete redemption %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrRedemptionNotFound
	}

	return nil
}

func (r *RedemptionRepository) queryRedemptions(ctx context.Context, query string, args ...any) ([]*entities.GiftRedemption, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []*entities.GiftRedemption
	for rows.Next() {
		redemption, err := scanRedemption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, redemption)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate redemptions: %w", err)
	}

	return redemptions, nil
}

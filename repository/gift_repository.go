package repository

import (
	"context"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// GiftRepository implements the GiftRepository interface
type GiftRepository struct {
	q Queryable
}

// NewGiftRepository creates a pool-backed gift repository
func NewGiftRepository(db *database.DB) *GiftRepository {
	return &GiftRepository{q: db.Pool}
}

func newGiftRepository(q Queryable) interfaces.GiftRepository {
	return &GiftRepository{q: q}
}

const giftColumns = `id, name, description, image, points_cost, quantity, is_active, created_at, updated_at`

func scanGift(row pgx.Row) (*entities.Gift, error) {
	var gift entities.Gift
	err := row.Scan(
		&gift.ID,
		&gift.Name,
		&gift.Description,
		&gift.Image,
		&gift.PointsCost,
		&gift.Quantity,
		&gift.IsActive,
		&gift.CreatedAt,
		&gift.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// Create creates a new gift
func (r *GiftRepository) Create(ctx context.Context, gift *entities.Gift) error {
	query := `
		INSERT INTO gifts (name, description, image, points_cost, quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		gift.Name, gift.Description, gift.Image, gift.PointsCost, gift.Quantity, gift.IsActive,
	).Scan(&gift.ID, &gift.CreatedAt, &gift.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gift %q: %w", gift.Name, err)
	}

	return nil
}

// GetByID retrieves a gift by ID. Returns nil without error when no gift exists.
func (r *GiftRepository) GetByID(ctx context.Context, id int64) (*entities.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE id = $1`

	gift, err := scanGift(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get gift %d: %w", id, err)
	}
	return gift, nil
}

// GetActive returns active gifts ordered by point cost
func (r *GiftRepository) GetActive(ctx context.Context) ([]*entities.Gift, error) {
	query := `SELECT ` + giftColumns + ` FROM gifts WHERE is_active ORDER BY points_cost`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active gifts: %w", err)
	}
	defer rows.Close()

	var gifts []*entities.Gift
	for rows.Next() {
		gift, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		gifts = append(gifts, gift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gifts: %w", err)
	}

	return gifts, nil
}

// Update updates a gift's catalog fields. Quantity is deliberately not
// written here; stock only moves through DecrementStock and IncrementStock.
func (r *GiftRepository) Update(ctx context.Context, gift *entities.Gift) error {
	query := `
		UPDATE gifts
		SET name = $2, description = $3, image = $4, points_cost = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query,
		gift.ID, gift.Name, gift.Description, gift.Image, gift.PointsCost, gift.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update gift %d: %w", gift.ID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrGiftNotFound
	}

	return nil
}

// DecrementStock atomically takes one unit of stock. The quantity condition
// is part of the statement, so concurrent redemptions of the last unit race
// on the row and exactly one wins.
func (r *GiftRepository) DecrementStock(ctx context.Context, giftID int64) error {
	query := `
		UPDATE gifts
		SET quantity = quantity - 1, updated_at = NOW()
		WHERE id = $1 AND quantity >= 1
	`

	result, err := r.q.Exec(ctx, query, giftID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for gift %d: %w", giftID, err)
	}
	if result.RowsAffected() == 0 {
		gift, getErr := r.GetByID(ctx, giftID)
		if getErr != nil {
			return getErr
		}
		if gift == nil {
			return entities.ErrGiftNotFound
		}
		return entities.ErrOutOfStock
	}

	return nil
}

// IncrementStock atomically returns one unit of stock
func (r *GiftRepository) IncrementStock(ctx context.Context, giftID int64) error {
	query := `
		UPDATE gifts
		SET quantity = quantity + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, giftID)
	if err != nil {
		return fmt.Errorf("failed to increment stock for gift %d: %w", giftID, err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrGiftNotFound
	}

	return nil
}

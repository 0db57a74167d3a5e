package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"matchday/database"
	"matchday/domain/entities"
	"matchday/domain/interfaces"
)

// PointTransactionRepository implements the PointTransactionRepository interface
type PointTransactionRepository struct {
	q Queryable
}

// NewPointTransactionRepository creates a pool-backed point transaction repository
func NewPointTransactionRepository(db *database.DB) *PointTransactionRepository {
	return &PointTransactionRepository{q: db.Pool}
}

func newPointTransactionRepository(q Queryable) interfaces.PointTransactionRepository {
	return &PointTransactionRepository{q: q}
}

// Record appends a balance change to the ledger. Entries are append-only;
// there is no update or delete path.
func (r *PointTransactionRepository) Record(ctx context.Context, transaction *entities.PointTransaction) error {
	var metadataJSON []byte
	if transaction.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(transaction.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction metadata: %w", err)
		}
	}

	query := `
		INSERT INTO point_transactions
			(user_id, points_before, points_after, change_amount, transaction_type, metadata, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transaction.UserID,
		transaction.PointsBefore,
		transaction.PointsAfter,
		transaction.ChangeAmount,
		transaction.TransactionType,
		metadataJSON,
		transaction.RelatedID,
		transaction.RelatedType,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record point transaction for user %d: %w", transaction.UserID, err)
	}

	return nil
}

// GetByUser returns a user's ledger entries, newest first
func (r *PointTransactionRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.PointTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, points_before, points_after, change_amount, transaction_type, metadata, related_id, related_type, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get point transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*entities.PointTransaction
	for rows.Next() {
		var transaction entities.PointTransaction
		var metadataJSON []byte
		err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.PointsBefore,
			&transaction.PointsAfter,
			&transaction.ChangeAmount,
			&transaction.TransactionType,
			&metadataJSON,
			&transaction.RelatedID,
			&transaction.RelatedType,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point transaction: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &transaction.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}
		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate point transactions: %w", err)
	}

	return transactions, nil
}

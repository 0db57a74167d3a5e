package entities

import (
	"errors"
	"time"
)

// TransactionType represents the kind of point balance change
type TransactionType string

const (
	// Settlement credits
	TransactionTypePredictionWin TransactionType = "prediction_win"

	// Redemption debits and reversals
	TransactionTypeGiftRedemption TransactionType = "gift_redemption"
	TransactionTypeGiftRefund     TransactionType = "gift_refund"

	// System transactions
	TransactionTypeInitial TransactionType = "initial"
)

// IsCredit returns true if the transaction type increases a balance
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypePredictionWin ||
		tt == TransactionTypeGiftRefund ||
		tt == TransactionTypeInitial
}

// IsDebit returns true if the transaction type decreases a balance
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeGiftRedemption
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}

// RelatedType represents what entity a point transaction refers to
type RelatedType string

const (
	RelatedTypePrediction RelatedType = "prediction"
	RelatedTypeRedemption RelatedType = "redemption"
)

// PointTransaction is one ledger entry for a user's point balance.
// Every mutation of User.Points produces exactly one entry.
type PointTransaction struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	PointsBefore    int64           `db:"points_before"`
	PointsAfter     int64           `db:"points_after"`
	ChangeAmount    int64           `db:"change_amount"`
	TransactionType TransactionType `db:"transaction_type"`
	Metadata        map[string]any  `db:"metadata"`
	RelatedID       *int64          `db:"related_id"`
	RelatedType     *RelatedType    `db:"related_type"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Validate performs basic consistency checks on the ledger entry
func (pt *PointTransaction) Validate() error {
	if pt.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}
	if pt.PointsAfter != pt.PointsBefore+pt.ChangeAmount {
		return errors.New("points calculation is inconsistent")
	}
	if pt.PointsAfter < 0 {
		return errors.New("points cannot go negative")
	}
	return nil
}

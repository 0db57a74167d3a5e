package entities

import (
	"time"

	"github.com/google/uuid"
)

// RedemptionStatus represents the lifecycle state of a gift redemption
type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusCompleted RedemptionStatus = "completed"
	RedemptionStatusCancelled RedemptionStatus = "cancelled"
)

// IsTerminal returns true if no further transition is allowed from the status
func (s RedemptionStatus) IsTerminal() bool {
	return s == RedemptionStatusCompleted || s == RedemptionStatusCancelled
}

// IsValid returns true for a known redemption status
func (s RedemptionStatus) IsValid() bool {
	switch s {
	case RedemptionStatusPending, RedemptionStatusCompleted, RedemptionStatusCancelled:
		return true
	}
	return false
}

// GiftRedemption represents a user's claim against their point balance for a
// catalog gift. PointsUsed snapshots the gift's cost at redemption time, so
// later price changes never affect refunds. Created pending; cancelled is the
// only status that triggers a ledger reversal.
type GiftRedemption struct {
	ID         int64            `db:"id"`
	Reference  uuid.UUID        `db:"reference"`
	UserID     int64            `db:"user_id"`
	GiftID     int64            `db:"gift_id"`
	PointsUsed int64            `db:"points_used"`
	Status     RedemptionStatus `db:"status"`
	CreatedAt  time.Time        `db:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at"`
}

// IsPending checks if the redemption can still transition
func (r *GiftRedemption) IsPending() bool {
	return r.Status == RedemptionStatusPending
}

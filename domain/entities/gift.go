package entities

import "time"

// Gift represents a catalog item redeemable against points.
// Quantity is mutated exclusively through the stock operations on
// GiftRepository, in lockstep with a redemption.
type Gift struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Image       string    `db:"image"`
	PointsCost  int64     `db:"points_cost"`
	Quantity    int       `db:"quantity"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// IsAvailable checks if the gift can currently be redeemed
func (g *Gift) IsAvailable() bool {
	return g.IsActive && g.Quantity > 0
}

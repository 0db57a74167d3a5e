package entities

import (
	"errors"
	"time"
)

// UserRole distinguishes regular players from administrators. Authorization
// itself is handled outside the core; the role is carried as data only.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a player with an accumulated point balance.
// Points are mutated exclusively through the ledger operations on
// UserRepository; every other component treats the field as read-only.
type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Role      UserRole  `db:"role"`
	Points    int64     `db:"points"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanAfford checks if the user has sufficient points for a cost
func (u *User) CanAfford(cost int64) bool {
	return u.Points >= cost
}

// ValidateCost checks if a point cost is valid and affordable
func (u *User) ValidateCost(cost int64) error {
	if cost <= 0 {
		return errors.New("cost must be positive")
	}
	if !u.CanAfford(cost) {
		return ErrInsufficientPoints
	}
	return nil
}

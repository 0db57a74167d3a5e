package entities

import "time"

// Team represents a football team available for matches
type Team struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	ShortName string    `db:"short_name"`
	Logo      string    `db:"logo"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamSnapshot is the name/logo of a team captured at match-creation time.
// Matches do not track later renames of the underlying team.
type TeamSnapshot struct {
	TeamID int64  `db:"team_id"`
	Name   string `db:"name"`
	Logo   string `db:"logo"`
}

// Snapshot captures the team's current name and logo for embedding in a match
func (t *Team) Snapshot() TeamSnapshot {
	return TeamSnapshot{
		TeamID: t.ID,
		Name:   t.Name,
		Logo:   t.Logo,
	}
}

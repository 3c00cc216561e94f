package teams

import (
	"time"

	"github.com/solvaders/clubhub/internal/shared"
)

// Team is a club squad. Names are unique across the club.
type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Member is a roster entry joined with the account it points at. The
// team role is independent of the member's global role.
type Member struct {
	UserID   int64           `json:"user_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     shared.TeamRole `json:"role"`
	Position string          `json:"position"`
	JoinedAt time.Time       `json:"joined_at"`
}

// UpcomingMatch is the slim match view embedded in a team detail.
type UpcomingMatch struct {
	ID          int64     `json:"id"`
	Opponent    string    `json:"opponent"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// UpcomingTraining is the slim training view embedded in a team detail.
type UpcomingTraining struct {
	ID       int64     `json:"id"`
	Kind     string    `json:"kind"`
	StartsAt time.Time `json:"starts_at"`
}

// Detail is the full team view returned by GET /teams/{id}.
type Detail struct {
	Team
	Members           []Member           `json:"members"`
	UpcomingMatches   []UpcomingMatch    `json:"upcoming_matches"`
	UpcomingTrainings []UpcomingTraining `json:"upcoming_trainings"`
}

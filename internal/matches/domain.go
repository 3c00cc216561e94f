package matches

import "time"

// Match is a scheduled or played game. Scores stay null until the
// result is recorded.
type Match struct {
	ID          int64     `json:"id"`
	TeamID      int64     `json:"team_id"`
	Opponent    string    `json:"opponent"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"`
	HomeScore   *int      `json:"home_score"`
	AwayScore   *int      `json:"away_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

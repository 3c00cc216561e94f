package trainings

import "time"

// Training is a scheduled practice session. Attendance is a plain
// headcount recorded after the session.
type Training struct {
	ID         int64     `json:"id"`
	TeamID     int64     `json:"team_id"`
	StartsAt   time.Time `json:"starts_at"`
	Kind       string    `json:"kind"`
	Attendance int       `json:"attendance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

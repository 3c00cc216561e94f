package trainings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/solvaders/clubhub/internal/shared"
)

type CreateTrainingRequest struct {
	TeamID   int64     `json:"team_id" validate:"required,gt=0"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	Kind     string    `json:"kind" validate:"required,max=100"`
}

type UpdateTrainingRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	Kind     string    `json:"kind" validate:"required,max=100"`
}

type AttendanceRequest struct {
	Attendance int `json:"attendance" validate:"gte=0"`
}

// ListResponse pairs a page of trainings with its pagination metadata.
type ListResponse struct {
	Trainings  []Training        `json:"trainings"`
	Pagination shared.Pagination `json:"pagination"`
}

var sortFields = map[string]bool{
	"starts_at": true,
	"id":        true,
	"team_id":   true,
	"kind":      true,
}

// Filter carries the query window for training listings.
type Filter struct {
	TeamID int64
	Kind   string
	From   *time.Time
	To     *time.Time
	Sort   string
	Desc   bool
}

// ParseFilter reads list query parameters, reporting the offending
// parameter names.
func ParseFilter(r *http.Request) (Filter, []string) {
	q := r.URL.Query()
	f := Filter{Sort: "starts_at", Kind: q.Get("kind")}
	var bad []string

	if raw := q.Get("team_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			bad = append(bad, "team_id")
		} else {
			f.TeamID = id
		}
	}
	if raw := q.Get("from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			bad = append(bad, "from")
		} else {
			f.From = &t
		}
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			bad = append(bad, "to")
		} else {
			f.To = &t
		}
	}
	if raw := q.Get("sort"); raw != "" {
		if !sortFields[raw] {
			bad = append(bad, "sort")
		} else {
			f.Sort = raw
		}
	}
	switch q.Get("order") {
	case "", "asc":
	case "desc":
		f.Desc = true
	default:
		bad = append(bad, "order")
	}
	return f, bad
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

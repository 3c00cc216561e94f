package matches

import (
	"net/http"
	"strconv"
	"time"

	"github.com/solvaders/clubhub/internal/shared"
)

type CreateMatchRequest struct {
	TeamID      int64     `json:"team_id" validate:"required,gt=0"`
	Opponent    string    `json:"opponent" validate:"required,max=255"`
	Location    string    `json:"location" validate:"required,max=255"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type UpdateMatchRequest struct {
	Opponent    string    `json:"opponent" validate:"required,max=255"`
	Location    string    `json:"location" validate:"required,max=255"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	HomeScore   *int      `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore   *int      `json:"away_score" validate:"omitempty,gte=0"`
}

// ListResponse pairs a page of matches with its pagination metadata.
type ListResponse struct {
	Matches    []Match           `json:"matches"`
	Pagination shared.Pagination `json:"pagination"`
}

// sortFields is the allow-list of sortable columns. Anything else in
// the sort parameter is a validation error, never raw SQL.
var sortFields = map[string]bool{
	"scheduled_at": true,
	"id":           true,
	"team_id":      true,
	"location":     true,
	"opponent":     true,
}

// Filter carries the query window for match listings.
type Filter struct {
	TeamID int64
	From   *time.Time
	To     *time.Time
	Sort   string
	Desc   bool
}

// ParseFilter reads list query parameters. It reports the offending
// parameter names so the handler can answer with a field list.
func ParseFilter(r *http.Request) (Filter, []string) {
	q := r.URL.Query()
	f := Filter{Sort: "scheduled_at"}
	var bad []string

	if raw := q.Get("team_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
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

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

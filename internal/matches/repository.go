package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvaders/clubhub/internal/shared"
)

// RepositoryPort defines data access methods for matches.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]Match, error)
	Count(ctx context.Context, filter Filter) (int, error)
	FindByID(ctx context.Context, id int64) (*Match, error)
	Create(ctx context.Context, req CreateMatchRequest) (*Match, error)
	Update(ctx context.Context, id int64, req UpdateMatchRequest) (*Match, error)
	Delete(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const matchColumns = `id, team_id, opponent, location, scheduled_at, home_score, away_score, created_at, updated_at`

func (r *Repository) List(ctx context.Context, filter Filter, limit, offset int) ([]Match, error) {
	where, args := filterClause(filter)
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}
	// filter.Sort passed the allow-list at parse time.
	query := fmt.Sprintf(`SELECT %s FROM matches%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		matchColumns, where, filter.Sort, direction, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var matches []Match
	for rows.Next() {
		var m Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *Repository) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := filterClause(filter)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM matches`+where, args...).Scan(&total)
	return total, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*Match, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	var m Match
	if err := scanMatch(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts a match. A broken team reference reads as a missing
// team.
func (r *Repository) Create(ctx context.Context, req CreateMatchRequest) (*Match, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO matches (team_id, opponent, location, scheduled_at) VALUES ($1, $2, $3, $4) RETURNING `+matchColumns,
		req.TeamID, req.Opponent, req.Location, req.ScheduledAt)
	var m Match
	if err := scanMatch(row, &m); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateMatchRequest) (*Match, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE matches SET opponent = $2, location = $3, scheduled_at = $4, home_score = $5, away_score = $6, updated_at = NOW()
		 WHERE id = $1 RETURNING `+matchColumns,
		id, req.Opponent, req.Location, req.ScheduledAt, req.HomeScore, req.AwayScore)
	var m Match
	if err := scanMatch(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func filterClause(filter Filter) (string, []any) {
	var conds []string
	var args []any
	if filter.TeamID > 0 {
		args = append(args, filter.TeamID)
		conds = append(conds, fmt.Sprintf("team_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("scheduled_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("scheduled_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanMatch(row pgx.Row, m *Match) error {
	return row.Scan(&m.ID, &m.TeamID, &m.Opponent, &m.Location, &m.ScheduledAt, &m.HomeScore, &m.AwayScore, &m.CreatedAt, &m.UpdatedAt)
}

var _ RepositoryPort = (*Repository)(nil)

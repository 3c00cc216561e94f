package trainings

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

// RepositoryPort defines data access methods for trainings.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter, limit, offset int) ([]Training, error)
	Count(ctx context.Context, filter Filter) (int, error)
	FindByID(ctx context.Context, id int64) (*Training, error)
	Create(ctx context.Context, req CreateTrainingRequest) (*Training, error)
	Update(ctx context.Context, id int64, req UpdateTrainingRequest) (*Training, error)
	SetAttendance(ctx context.Context, id int64, attendance int) (*Training, error)
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

const trainingColumns = `id, team_id, starts_at, kind, attendance, created_at, updated_at`

func (r *Repository) List(ctx context.Context, filter Filter, limit, offset int) ([]Training, error) {
	where, args := filterClause(filter)
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}
	// filter.Sort passed the allow-list at parse time.
	query := fmt.Sprintf(`SELECT %s FROM trainings%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		trainingColumns, where, filter.Sort, direction, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var trainings []Training
	for rows.Next() {
		var t Training
		if err := scanTraining(rows, &t); err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func (r *Repository) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := filterClause(filter)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM trainings`+where, args...).Scan(&total)
	return total, err
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*Training, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id)
	return oneTraining(row)
}

// Create inserts a training. A broken team reference reads as a
// missing team.
func (r *Repository) Create(ctx context.Context, req CreateTrainingRequest) (*Training, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO trainings (team_id, starts_at, kind) VALUES ($1, $2, $3) RETURNING `+trainingColumns,
		req.TeamID, req.StartsAt, req.Kind)
	training, err := oneTraining(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return training, nil
}

func (r *Repository) Update(ctx context.Context, id int64, req UpdateTrainingRequest) (*Training, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE trainings SET starts_at = $2, kind = $3, updated_at = NOW() WHERE id = $1 RETURNING `+trainingColumns,
		id, req.StartsAt, req.Kind)
	return oneTraining(row)
}

func (r *Repository) SetAttendance(ctx context.Context, id int64, attendance int) (*Training, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE trainings SET attendance = $2, updated_at = NOW() WHERE id = $1 RETURNING `+trainingColumns,
		id, attendance)
	return oneTraining(row)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
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
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("starts_at <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func oneTraining(row pgx.Row) (*Training, error) {
	var t Training
	if err := scanTraining(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func scanTraining(row pgx.Row, t *Training) error {
	return row.Scan(&t.ID, &t.TeamID, &t.StartsAt, &t.Kind, &t.Attendance, &t.CreatedAt, &t.UpdatedAt)
}

var _ RepositoryPort = (*Repository)(nil)

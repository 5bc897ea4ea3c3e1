package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planejacasar/wedding-backend/internal/domain"
)

type TimelineRepository interface {
	Create(ctx context.Context, req *domain.CreateTimelineTaskRequest) (*domain.TimelineTask, error)
	GetByID(ctx context.Context, id string) (*domain.TimelineTask, error)
	ListByEvent(ctx context.Context, eventID string, filters domain.TimelineFilters) ([]domain.TimelineTask, error)
	Update(ctx context.Context, id string, patch domain.TimelineTaskPatch) (*domain.TimelineTask, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type timelineRepository struct {
	pool *pgxpool.Pool
}

func NewTimelineRepository(pool *pgxpool.Pool) TimelineRepository {
	return &timelineRepository{pool: pool}
}

const timelineCols = `id, event_id, title, description, date, time, status, created_at, updated_at`

func scanTimelineTask(row pgx.Row) (*domain.TimelineTask, error) {
	var t domain.TimelineTask
	err := row.Scan(
		&t.ID, &t.EventID, &t.Title, &t.Description, &t.Date, &t.Time,
		&t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *timelineRepository) Create(ctx context.Context, req *domain.CreateTimelineTaskRequest) (*domain.TimelineTask, error) {
	const q = `INSERT INTO timeline_tasks (event_id, title, description, date, time, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING ` + timelineCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTimelineTask(r.pool.QueryRow(ctx, q,
		req.EventID, req.Title, req.Description, req.Date, req.Time,
	))
}

func (r *timelineRepository) GetByID(ctx context.Context, id string) (*domain.TimelineTask, error) {
	const q = `SELECT ` + timelineCols + ` FROM timeline_tasks WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTimelineTask(r.pool.QueryRow(ctx, q, id))
}

func (r *timelineRepository) ListByEvent(ctx context.Context, eventID string, filters domain.TimelineFilters) ([]domain.TimelineTask, error) {
	q := `SELECT ` + timelineCols + ` FROM timeline_tasks WHERE event_id=$1`
	args := []any{eventID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		q += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		q += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	q += ` ORDER BY date ASC, time ASC NULLS LAST`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.TimelineTask
	for rows.Next() {
		var t domain.TimelineTask
		if err := rows.Scan(
			&t.ID, &t.EventID, &t.Title, &t.Description, &t.Date, &t.Time,
			&t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *timelineRepository) Update(ctx context.Context, id string, patch domain.TimelineTaskPatch) (*domain.TimelineTask, error) {
	const q = `
		UPDATE timeline_tasks
		SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			date        = COALESCE($4, date),
			time        = COALESCE($5, time),
			status      = COALESCE($6, status),
			updated_at  = now()
		WHERE id=$1
		RETURNING ` + timelineCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTimelineTask(r.pool.QueryRow(ctx, q,
		id, patch.Title, patch.Description, patch.Date, patch.Time, patch.Status,
	))
}

func (r *timelineRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM timeline_tasks WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

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

type ChecklistRepository interface {
	Create(ctx context.Context, req *domain.CreateChecklistTaskRequest) (*domain.ChecklistTask, error)
	GetByID(ctx context.Context, id string) (*domain.ChecklistTask, error)
	ListByEvent(ctx context.Context, eventID string, filters domain.ChecklistFilters) ([]domain.ChecklistTask, error)
	Update(ctx context.Context, id string, patch domain.ChecklistTaskPatch) (*domain.ChecklistTask, error)
	SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.ChecklistTask, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByEventAndStatus(ctx context.Context, eventID string, status domain.TaskStatus) (int, error)
	ListUpcoming(ctx context.Context, eventID string, limit int) ([]domain.UpcomingTask, error)
}

type checklistRepository struct {
	pool *pgxpool.Pool
}

func NewChecklistRepository(pool *pgxpool.Pool) ChecklistRepository {
	return &checklistRepository{pool: pool}
}

const taskCols = `id, event_id, title, description, category, priority, status, due_date, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.ChecklistTask, error) {
	var t domain.ChecklistTask
	err := row.Scan(
		&t.ID, &t.EventID, &t.Title, &t.Description, &t.Category, &t.Priority,
		&t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *checklistRepository) Create(ctx context.Context, req *domain.CreateChecklistTaskRequest) (*domain.ChecklistTask, error) {
	const q = `INSERT INTO checklist_tasks (event_id, title, description, category, priority, status, due_date)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING ` + taskCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTask(r.pool.QueryRow(ctx, q,
		req.EventID, req.Title, req.Description, req.Category, req.Priority, req.DueDate,
	))
}

func (r *checklistRepository) GetByID(ctx context.Context, id string) (*domain.ChecklistTask, error) {
	const q = `SELECT ` + taskCols + ` FROM checklist_tasks WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTask(r.pool.QueryRow(ctx, q, id))
}

func (r *checklistRepository) ListByEvent(ctx context.Context, eventID string, filters domain.ChecklistFilters) ([]domain.ChecklistTask, error) {
	q := `SELECT ` + taskCols + ` FROM checklist_tasks WHERE event_id=$1`
	args := []any{eventID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		q += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		q += fmt.Sprintf(` AND category=$%d`, len(args))
	}
	if filters.Priority != nil {
		args = append(args, *filters.Priority)
		q += fmt.Sprintf(` AND priority=$%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		q += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	q += ` ORDER BY due_date ASC NULLS LAST, created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.ChecklistTask
	for rows.Next() {
		var t domain.ChecklistTask
		if err := rows.Scan(
			&t.ID, &t.EventID, &t.Title, &t.Description, &t.Category, &t.Priority,
			&t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *checklistRepository) Update(ctx context.Context, id string, patch domain.ChecklistTaskPatch) (*domain.ChecklistTask, error) {
	const q = `
		UPDATE checklist_tasks
		SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			category    = COALESCE($4, category),
			priority    = COALESCE($5, priority),
			status      = COALESCE($6, status),
			due_date    = COALESCE($7, due_date),
			updated_at  = now()
		WHERE id=$1
		RETURNING ` + taskCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTask(r.pool.QueryRow(ctx, q,
		id, patch.Title, patch.Description, patch.Category, patch.Priority,
		patch.Status, patch.DueDate,
	))
}

func (r *checklistRepository) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.ChecklistTask, error) {
	const q = `UPDATE checklist_tasks SET status=$2, updated_at=now() WHERE id=$1 RETURNING ` + taskCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanTask(r.pool.QueryRow(ctx, q, id, status))
}

func (r *checklistRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM checklist_tasks WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *checklistRepository) CountByEventAndStatus(ctx context.Context, eventID string, status domain.TaskStatus) (int, error) {
	const q = `SELECT count(*) FROM checklist_tasks WHERE event_id=$1 AND status=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int
	err := r.pool.QueryRow(ctx, q, eventID, status).Scan(&n)
	return n, err
}

// ListUpcoming returns pending tasks that have a due date, soonest first.
func (r *checklistRepository) ListUpcoming(ctx context.Context, eventID string, limit int) ([]domain.UpcomingTask, error) {
	const q = `SELECT id, title, due_date, priority, category
		FROM checklist_tasks
		WHERE event_id=$1 AND status='pending' AND due_date IS NOT NULL
		ORDER BY due_date ASC
		LIMIT $2`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, eventID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.UpcomingTask
	for rows.Next() {
		var t domain.UpcomingTask
		if err := rows.Scan(&t.ID, &t.Title, &t.DueDate, &t.Priority, &t.Category); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

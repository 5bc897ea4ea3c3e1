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

type BudgetRepository interface {
	Create(ctx context.Context, req *domain.CreateBudgetRequest) (*domain.Budget, error)
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	ListByEvent(ctx context.Context, eventID string, filters domain.BudgetFilters) ([]domain.Budget, error)
	ListApprovedByEvent(ctx context.Context, eventID string) ([]domain.Budget, error)
	Update(ctx context.Context, id string, patch domain.BudgetPatch) (*domain.Budget, error)
	SetStatus(ctx context.Context, id string, status domain.BudgetStatus) (*domain.Budget, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type budgetRepository struct {
	pool *pgxpool.Pool
}

func NewBudgetRepository(pool *pgxpool.Pool) BudgetRepository {
	return &budgetRepository{pool: pool}
}

const budgetCols = `id, event_id, vendor_name, category, description, value, status, valid_until, notes, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.ID, &b.EventID, &b.VendorName, &b.Category, &b.Description, &b.Value,
		&b.Status, &b.ValidUntil, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *budgetRepository) Create(ctx context.Context, req *domain.CreateBudgetRequest) (*domain.Budget, error) {
	const q = `INSERT INTO budgets (event_id, vendor_name, category, description, value, status, valid_until, notes)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7)
		RETURNING ` + budgetCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanBudget(r.pool.QueryRow(ctx, q,
		req.EventID, req.VendorName, req.Category, req.Description,
		req.Value, req.ValidUntil, req.Notes,
	))
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	const q = `SELECT ` + budgetCols + ` FROM budgets WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanBudget(r.pool.QueryRow(ctx, q, id))
}

func (r *budgetRepository) ListByEvent(ctx context.Context, eventID string, filters domain.BudgetFilters) ([]domain.Budget, error) {
	q := `SELECT ` + budgetCols + ` FROM budgets WHERE event_id=$1`
	args := []any{eventID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		q += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filters.Category != nil {
		args = append(args, *filters.Category)
		q += fmt.Sprintf(` AND category=$%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		q += fmt.Sprintf(` AND (vendor_name ILIKE $%d OR description ILIKE $%d OR notes ILIKE $%d)`, len(args), len(args), len(args))
	}
	q += ` ORDER BY created_at DESC`

	return r.queryBudgets(ctx, q, args...)
}

// ListApprovedByEvent feeds the dashboard's budget aggregations; only
// approved quotes count against the plan.
func (r *budgetRepository) ListApprovedByEvent(ctx context.Context, eventID string) ([]domain.Budget, error) {
	const q = `SELECT ` + budgetCols + ` FROM budgets WHERE event_id=$1 AND status='approved' ORDER BY created_at ASC`
	return r.queryBudgets(ctx, q, eventID)
}

func (r *budgetRepository) queryBudgets(ctx context.Context, q string, args ...any) ([]domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(
			&b.ID, &b.EventID, &b.VendorName, &b.Category, &b.Description, &b.Value,
			&b.Status, &b.ValidUntil, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *budgetRepository) Update(ctx context.Context, id string, patch domain.BudgetPatch) (*domain.Budget, error) {
	const q = `
		UPDATE budgets
		SET
			vendor_name = COALESCE($2, vendor_name),
			category    = COALESCE($3, category),
			description = COALESCE($4, description),
			value       = COALESCE($5, value),
			status      = COALESCE($6, status),
			valid_until = COALESCE($7, valid_until),
			notes       = COALESCE($8, notes),
			updated_at  = now()
		WHERE id=$1
		RETURNING ` + budgetCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanBudget(r.pool.QueryRow(ctx, q,
		id, patch.VendorName, patch.Category, patch.Description,
		patch.Value, patch.Status, patch.ValidUntil, patch.Notes,
	))
}

func (r *budgetRepository) SetStatus(ctx context.Context, id string, status domain.BudgetStatus) (*domain.Budget, error) {
	const q = `UPDATE budgets SET status=$2, updated_at=now() WHERE id=$1 RETURNING ` + budgetCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanBudget(r.pool.QueryRow(ctx, q, id, status))
}

func (r *budgetRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM budgets WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

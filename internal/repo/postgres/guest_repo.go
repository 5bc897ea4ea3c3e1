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

type GuestRepository interface {
	Create(ctx context.Context, req *domain.CreateGuestRequest) (*domain.Guest, error)
	GetByID(ctx context.Context, id string) (*domain.Guest, error)
	ListByEvent(ctx context.Context, eventID string, filters domain.GuestFilters) ([]domain.Guest, error)
	Update(ctx context.Context, id string, patch domain.GuestPatch) (*domain.Guest, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CountByEventAndStatus(ctx context.Context, eventID string, status domain.GuestStatus) (int, error)
}

type guestRepository struct {
	pool *pgxpool.Pool
}

func NewGuestRepository(pool *pgxpool.Pool) GuestRepository {
	return &guestRepository{pool: pool}
}

const guestCols = `id, event_id, name, email, phone, type, side, status, table_number, dietary_notes, notes, created_at, updated_at`

func scanGuest(row pgx.Row) (*domain.Guest, error) {
	var g domain.Guest
	err := row.Scan(
		&g.ID, &g.EventID, &g.Name, &g.Email, &g.Phone, &g.Type, &g.Side,
		&g.Status, &g.TableNumber, &g.DietaryNotes, &g.Notes,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guestRepository) Create(ctx context.Context, req *domain.CreateGuestRequest) (*domain.Guest, error) {
	const q = `INSERT INTO guests (event_id, name, email, phone, type, side, status, table_number, dietary_notes, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + guestCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q,
		req.EventID, req.Name, req.Email, req.Phone, req.Type, req.Side,
		req.Status, req.TableNumber, req.DietaryNotes, req.Notes,
	))
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	const q = `SELECT ` + guestCols + ` FROM guests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q, id))
}

func (r *guestRepository) ListByEvent(ctx context.Context, eventID string, filters domain.GuestFilters) ([]domain.Guest, error) {
	q := `SELECT ` + guestCols + ` FROM guests WHERE event_id=$1`
	args := []any{eventID}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		q += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filters.Type != nil {
		args = append(args, *filters.Type)
		q += fmt.Sprintf(` AND type=$%d`, len(args))
	}
	if filters.Side != nil {
		args = append(args, *filters.Side)
		q += fmt.Sprintf(` AND side=$%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		q += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	q += ` ORDER BY name ASC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []domain.Guest
	for rows.Next() {
		var g domain.Guest
		if err := rows.Scan(
			&g.ID, &g.EventID, &g.Name, &g.Email, &g.Phone, &g.Type, &g.Side,
			&g.Status, &g.TableNumber, &g.DietaryNotes, &g.Notes,
			&g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) Update(ctx context.Context, id string, patch domain.GuestPatch) (*domain.Guest, error) {
	const q = `
		UPDATE guests
		SET
			name          = COALESCE($2, name),
			email         = COALESCE($3, email),
			phone         = COALESCE($4, phone),
			type          = COALESCE($5, type),
			side          = COALESCE($6, side),
			status        = COALESCE($7, status),
			table_number  = COALESCE($8, table_number),
			dietary_notes = COALESCE($9, dietary_notes),
			notes         = COALESCE($10, notes),
			updated_at    = now()
		WHERE id=$1
		RETURNING ` + guestCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanGuest(r.pool.QueryRow(ctx, q,
		id, patch.Name, patch.Email, patch.Phone, patch.Type, patch.Side,
		patch.Status, patch.TableNumber, patch.DietaryNotes, patch.Notes,
	))
}

func (r *guestRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM guests WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *guestRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	const q = `SELECT count(*) FROM guests WHERE event_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int
	err := r.pool.QueryRow(ctx, q, eventID).Scan(&n)
	return n, err
}

func (r *guestRepository) CountByEventAndStatus(ctx context.Context, eventID string, status domain.GuestStatus) (int, error) {
	const q = `SELECT count(*) FROM guests WHERE event_id=$1 AND status=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var n int
	err := r.pool.QueryRow(ctx, q, eventID, status).Scan(&n)
	return n, err
}

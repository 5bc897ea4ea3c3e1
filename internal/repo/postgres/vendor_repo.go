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

type VendorRepository interface {
	Create(ctx context.Context, req *domain.CreateVendorRequest) (*domain.Vendor, error)
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	ListByEvent(ctx context.Context, eventID string, filters domain.VendorFilters) ([]domain.Vendor, error)
	ListStatuses(ctx context.Context, eventID string) ([]string, error)
	Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error)
	SetStatus(ctx context.Context, id string, status domain.VendorStatus) (*domain.Vendor, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type vendorRepository struct {
	pool *pgxpool.Pool
}

func NewVendorRepository(pool *pgxpool.Pool) VendorRepository {
	return &vendorRepository{pool: pool}
}

const vendorCols = `id, event_id, name, category, contact, email, phone, value, status, rating, notes, created_at, updated_at`

func scanVendor(row pgx.Row) (*domain.Vendor, error) {
	var v domain.Vendor
	err := row.Scan(
		&v.ID, &v.EventID, &v.Name, &v.Category, &v.Contact, &v.Email, &v.Phone,
		&v.Value, &v.Status, &v.Rating, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepository) Create(ctx context.Context, req *domain.CreateVendorRequest) (*domain.Vendor, error) {
	const q = `INSERT INTO vendors (event_id, name, category, contact, email, phone, value, status, rating, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8, $9)
		RETURNING ` + vendorCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanVendor(r.pool.QueryRow(ctx, q,
		req.EventID, req.Name, req.Category, req.Contact, req.Email, req.Phone,
		req.Value, req.Rating, req.Notes,
	))
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	const q = `SELECT ` + vendorCols + ` FROM vendors WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanVendor(r.pool.QueryRow(ctx, q, id))
}

func (r *vendorRepository) ListByEvent(ctx context.Context, eventID string, filters domain.VendorFilters) ([]domain.Vendor, error) {
	q := `SELECT ` + vendorCols + ` FROM vendors WHERE event_id=$1`
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
		q += fmt.Sprintf(` AND (name ILIKE $%d OR contact ILIKE $%d)`, len(args), len(args))
	}
	q += ` ORDER BY name ASC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		var v domain.Vendor
		if err := rows.Scan(
			&v.ID, &v.EventID, &v.Name, &v.Category, &v.Contact, &v.Email, &v.Phone,
			&v.Value, &v.Status, &v.Rating, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// ListStatuses returns the raw status column for every vendor of the
// event. Rows with values outside the known set still count toward the
// dashboard total, so the strings come back unfiltered.
func (r *vendorRepository) ListStatuses(ctx context.Context, eventID string) ([]string, error) {
	const q = `SELECT status FROM vendors WHERE event_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *vendorRepository) Update(ctx context.Context, id string, patch domain.VendorPatch) (*domain.Vendor, error) {
	const q = `
		UPDATE vendors
		SET
			name       = COALESCE($2, name),
			category   = COALESCE($3, category),
			contact    = COALESCE($4, contact),
			email      = COALESCE($5, email),
			phone      = COALESCE($6, phone),
			value      = COALESCE($7, value),
			status     = COALESCE($8, status),
			rating     = COALESCE($9, rating),
			notes      = COALESCE($10, notes),
			updated_at = now()
		WHERE id=$1
		RETURNING ` + vendorCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanVendor(r.pool.QueryRow(ctx, q,
		id, patch.Name, patch.Category, patch.Contact, patch.Email, patch.Phone,
		patch.Value, patch.Status, patch.Rating, patch.Notes,
	))
}

func (r *vendorRepository) SetStatus(ctx context.Context, id string, status domain.VendorStatus) (*domain.Vendor, error) {
	const q = `UPDATE vendors SET status=$2, updated_at=now() WHERE id=$1 RETURNING ` + vendorCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanVendor(r.pool.QueryRow(ctx, q, id, status))
}

func (r *vendorRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM vendors WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

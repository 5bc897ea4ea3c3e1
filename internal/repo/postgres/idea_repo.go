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

type IdeaRepository interface {
	Create(ctx context.Context, req *domain.CreateIdeaRequest) (*domain.Idea, error)
	GetByID(ctx context.Context, id string) (*domain.Idea, error)
	ListByEvent(ctx context.Context, eventID string, filters domain.IdeaFilters) ([]domain.Idea, error)
	Update(ctx context.Context, id string, patch domain.IdeaPatch) (*domain.Idea, error)
	SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Idea, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ideaRepository struct {
	pool *pgxpool.Pool
}

func NewIdeaRepository(pool *pgxpool.Pool) IdeaRepository {
	return &ideaRepository{pool: pool}
}

const ideaCols = `id, event_id, title, description, category, image_url, source_url, tags, is_favorite, created_at, updated_at`

func scanIdea(row pgx.Row) (*domain.Idea, error) {
	var i domain.Idea
	err := row.Scan(
		&i.ID, &i.EventID, &i.Title, &i.Description, &i.Category, &i.ImageURL,
		&i.SourceURL, &i.Tags, &i.IsFavorite, &i.CreatedAt, &i.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
	return &i, nil
}

func (r *ideaRepository) Create(ctx context.Context, req *domain.CreateIdeaRequest) (*domain.Idea, error) {
	const q = `INSERT INTO ideas (event_id, title, description, category, image_url, source_url, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + ideaCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanIdea(r.pool.QueryRow(ctx, q,
		req.EventID, req.Title, req.Description, req.Category,
		req.ImageURL, req.SourceURL, req.Tags,
	))
}

func (r *ideaRepository) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	const q = `SELECT ` + ideaCols + ` FROM ideas WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanIdea(r.pool.QueryRow(ctx, q, id))
}

func (r *ideaRepository) ListByEvent(ctx context.Context, eventID string, filters domain.IdeaFilters) ([]domain.Idea, error) {
	q := `SELECT ` + ideaCols + ` FROM ideas WHERE event_id=$1`
	args := []any{eventID}

	if filters.Category != nil {
		args = append(args, *filters.Category)
		q += fmt.Sprintf(` AND category=$%d`, len(args))
	}
	if filters.IsFavorite != nil {
		args = append(args, *filters.IsFavorite)
		q += fmt.Sprintf(` AND is_favorite=$%d`, len(args))
	}
	if len(filters.Tags) > 0 {
		args = append(args, filters.Tags)
		q += fmt.Sprintf(` AND tags && $%d`, len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		q += fmt.Sprintf(` AND (title ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	q += ` ORDER BY created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []domain.Idea
	for rows.Next() {
		var i domain.Idea
		if err := rows.Scan(
			&i.ID, &i.EventID, &i.Title, &i.Description, &i.Category, &i.ImageURL,
			&i.SourceURL, &i.Tags, &i.IsFavorite, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if i.Tags == nil {
			i.Tags = []string{}
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

func (r *ideaRepository) Update(ctx context.Context, id string, patch domain.IdeaPatch) (*domain.Idea, error) {
	const q = `
		UPDATE ideas
		SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			category    = COALESCE($4, category),
			image_url   = COALESCE($5, image_url),
			source_url  = COALESCE($6, source_url),
			tags        = COALESCE($7, tags),
			is_favorite = COALESCE($8, is_favorite),
			updated_at  = now()
		WHERE id=$1
		RETURNING ` + ideaCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanIdea(r.pool.QueryRow(ctx, q,
		id, patch.Title, patch.Description, patch.Category, patch.ImageURL,
		patch.SourceURL, patch.Tags, patch.IsFavorite,
	))
}

func (r *ideaRepository) SetFavorite(ctx context.Context, id string, favorite bool) (*domain.Idea, error) {
	const q = `UPDATE ideas SET is_favorite=$2, updated_at=now() WHERE id=$1 RETURNING ` + ideaCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanIdea(r.pool.QueryRow(ctx, q, id, favorite))
}

func (r *ideaRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM ideas WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

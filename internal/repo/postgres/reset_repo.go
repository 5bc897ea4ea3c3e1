package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PasswordResetRepository stores hashed reset tokens with an expiry. A
// consume operation comes with the reset-password flow once it is built.
type PasswordResetRepository interface {
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type passwordResetRepository struct {
	pool *pgxpool.Pool
}

func NewPasswordResetRepository(pool *pgxpool.Pool) PasswordResetRepository {
	return &passwordResetRepository{pool: pool}
}

func (r *passwordResetRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	const q = `INSERT INTO password_resets (user_id, token_hash, expires_at) VALUES ($1, $2, $3)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.pool.Exec(ctx, q, userID, tokenHash, expiresAt)
	return err
}

func (r *passwordResetRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM password_resets WHERE expires_at <= now()`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

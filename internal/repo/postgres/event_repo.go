package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/planejacasar/wedding-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, ownerID, inviteCode string, req *domain.CreateEventRequest) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Event, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Event, []domain.MemberRole, error)
	Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdateProgress(ctx context.Context, id string, progress int) error

	GetMember(ctx context.Context, eventID, userID string) (*domain.EventMember, error)
	CreateMember(ctx context.Context, eventID, userID string, role domain.MemberRole) (*domain.EventMember, error)
	ListMembers(ctx context.Context, eventID string) ([]domain.MemberInfo, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

const eventCols = `id, event_type, date, venue, budget, status, invite_code, overall_progress, owner_id, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.EventType, &e.Date, &e.Venue, &e.Budget, &e.Status,
		&e.InviteCode, &e.OverallProgress, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts the event and the owner's membership row in one transaction
// so a failure cannot leave an event without an owner member.
func (r *eventRepository) Create(ctx context.Context, ownerID, inviteCode string, req *domain.CreateEventRequest) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertEvent = `INSERT INTO events (event_type, date, venue, budget, status, invite_code, owner_id)
		VALUES ($1, $2, $3, $4, 'in-progress', $5, $6)
		RETURNING ` + eventCols

	event, err := scanEvent(tx.QueryRow(ctx, insertEvent,
		req.EventType, req.Date, req.Venue, req.Budget, inviteCode, ownerID,
	))
	if err != nil {
		return nil, err
	}

	const insertMember = `INSERT INTO event_members (event_id, user_id, role) VALUES ($1, $2, 'owner')`
	if _, err := tx.Exec(ctx, insertMember, event.ID, ownerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

func (r *eventRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE invite_code=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanEvent(r.pool.QueryRow(ctx, q, code))
}

// ListByUser returns every event the user belongs to alongside the user's
// role on it, most recently joined first.
func (r *eventRepository) ListByUser(ctx context.Context, userID string) ([]domain.Event, []domain.MemberRole, error) {
	const q = `SELECT e.id, e.event_type, e.date, e.venue, e.budget, e.status, e.invite_code,
			e.overall_progress, e.owner_id, e.created_at, e.updated_at, m.role
		FROM event_members m
		JOIN events e ON e.id = m.event_id
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var events []domain.Event
	var roles []domain.MemberRole
	for rows.Next() {
		var e domain.Event
		var role domain.MemberRole
		if err := rows.Scan(
			&e.ID, &e.EventType, &e.Date, &e.Venue, &e.Budget, &e.Status,
			&e.InviteCode, &e.OverallProgress, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt,
			&role,
		); err != nil {
			return nil, nil, err
		}
		events = append(events, e)
		roles = append(roles, role)
	}
	return events, roles, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	const q = `
		UPDATE events
		SET
			event_type = COALESCE($2, event_type),
			date       = COALESCE($3, date),
			venue      = COALESCE($4, venue),
			status     = COALESCE($5, status),
			budget     = COALESCE($6, budget),
			updated_at = now()
		WHERE id=$1
		RETURNING ` + eventCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanEvent(r.pool.QueryRow(ctx, q,
		id, patch.EventType, patch.Date, patch.Venue, patch.Status, patch.Budget,
	))
}

// Delete removes the event; members and child resources go with it via the
// declared ON DELETE CASCADE constraints.
func (r *eventRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM events WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *eventRepository) UpdateProgress(ctx context.Context, id string, progress int) error {
	const q = `UPDATE events SET overall_progress=$2, updated_at=now() WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.pool.Exec(ctx, q, id, progress)
	return err
}

const memberCols = `id, event_id, user_id, role, created_at`

func (r *eventRepository) GetMember(ctx context.Context, eventID, userID string) (*domain.EventMember, error) {
	const q = `SELECT ` + memberCols + ` FROM event_members WHERE event_id=$1 AND user_id=$2`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.EventMember
	err := r.pool.QueryRow(ctx, q, eventID, userID).Scan(
		&m.ID, &m.EventID, &m.UserID, &m.Role, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMember relies on the UNIQUE(event_id, user_id) constraint to close
// the check-then-insert race on concurrent joins; a duplicate insert surfaces
// as ErrAlreadyMember.
func (r *eventRepository) CreateMember(ctx context.Context, eventID, userID string, role domain.MemberRole) (*domain.EventMember, error) {
	const q = `INSERT INTO event_members (event_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING ` + memberCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.EventMember
	err := r.pool.QueryRow(ctx, q, eventID, userID, role).Scan(
		&m.ID, &m.EventID, &m.UserID, &m.Role, &m.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil, domain.ErrAlreadyMember
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *eventRepository) ListMembers(ctx context.Context, eventID string) ([]domain.MemberInfo, error) {
	const q = `SELECT u.id, u.name, u.email, u.avatar, m.role, m.created_at
		FROM event_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.event_id = $1
		ORDER BY m.created_at ASC`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.MemberInfo
	for rows.Next() {
		var mi domain.MemberInfo
		if err := rows.Scan(
			&mi.User.ID, &mi.User.Name, &mi.User.Email, &mi.User.Avatar,
			&mi.Role, &mi.JoinedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, mi)
	}
	return members, rows.Err()
}

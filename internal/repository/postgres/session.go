package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prepmate/prepmate-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// Create inserts a new session. A token collision surfaces as
// model.ErrDuplicate so the caller can retry with fresh randomness.
func (r *SessionRepository) Create(ctx context.Context, session model.Session) (model.Session, error) {
	query := `INSERT INTO user_sessions (user_id, session_token, expires_at)
			  VALUES ($1, $2, $3)
			  RETURNING id, user_id, session_token, created_at, expires_at, is_active`

	var saved model.Session
	err := r.db.QueryRow(ctx, query,
		session.UserID, session.Token, session.ExpiresAt,
	).Scan(
		&saved.ID, &saved.UserID, &saved.Token, &saved.CreatedAt, &saved.ExpiresAt, &saved.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Session{}, model.ErrDuplicate
		}
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return saved, nil
}

// GetByToken fetches the session row for a token in a single atomic read.
// Activity and expiry are judged by the caller against this snapshot.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (model.Session, error) {
	var session model.Session
	query := `SELECT id, user_id, session_token, created_at, expires_at, is_active
			  FROM user_sessions WHERE session_token = $1`

	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID, &session.UserID, &session.Token, &session.CreatedAt, &session.ExpiresAt, &session.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	return session, nil
}

// Deactivate marks the session inactive. Unknown or already-inactive tokens
// are a no-op, which makes logout idempotent.
func (r *SessionRepository) Deactivate(ctx context.Context, token string) error {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE session_token = $1`

	if _, err := r.db.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	return nil
}

// DeactivateExpired sweeps every active session past its expiry in one
// statement and reports how many were affected.
func (r *SessionRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	query := `UPDATE user_sessions SET is_active = FALSE WHERE is_active = TRUE AND expires_at < now()`

	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired sessions: %w", err)
	}

	return cmd.RowsAffected(), nil
}

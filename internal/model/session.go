package model

import (
	"context"
	"time"
)

// SessionDuration is how long an issued session stays valid.
const SessionDuration = 7 * 24 * time.Hour

// SessionStore persists login sessions keyed by opaque tokens.
type SessionStore interface {
	Create(ctx context.Context, session Session) (Session, error)
	GetByToken(ctx context.Context, token string) (Session, error)
	Deactivate(ctx context.Context, token string) error
	DeactivateExpired(ctx context.Context) (int64, error)
}

// Session represents a login grant. The bearer of Token is authenticated
// exactly while IsActive is true and ExpiresAt lies in the future.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	IsActive  bool
}

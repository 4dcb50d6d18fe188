package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prepmate/prepmate-server/internal/apierrors"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/model"
	"github.com/prepmate/prepmate-server/internal/security"
)

// maxTokenAttempts bounds the retry loop on token collisions. A collision of
// 256-bit tokens points at a broken randomness source, so hitting the bound
// is treated as fatal.
const maxTokenAttempts = 5

// Session issues, validates, invalidates and sweeps login sessions.
type Session struct {
	sessionStore model.SessionStore
	logger       *logger.Logger
}

func NewSession(sessionStore model.SessionStore, logger *logger.Logger) *Session {
	return &Session{
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// Issue creates a new session for the user, valid for the fixed 7-day
// window. Token collisions are retried with fresh randomness.
func (s *Session) Issue(ctx context.Context, userID int64) (model.Session, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := security.GenerateSessionToken()
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to generate token: %w", err)
		}

		session, err := s.sessionStore.Create(ctx, model.Session{
			UserID:    userID,
			Token:     token,
			ExpiresAt: time.Now().Add(model.SessionDuration),
		})
		if errors.Is(err, model.ErrDuplicate) {
			s.logger.Error("Session service: token collision, retrying",
				"user_id", userID,
				"attempt", attempt+1)
			continue
		}
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to create session: %w", err)
		}

		s.logger.Info("Session service: session issued",
			"user_id", userID,
			"session_id", session.ID)

		return session, nil
	}

	return model.Session{}, fmt.Errorf("failed to issue session after %d attempts", maxTokenAttempts)
}

// Validate resolves the owning user id for a token. A token that is unknown
// or deactivated is invalid; an active token past its expiry is expired.
// Every other outcome is a store failure, never a silent pass.
func (s *Session) Validate(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, apierrors.NewErrSessionInvalid()
	}

	session, err := s.sessionStore.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return 0, apierrors.NewErrSessionInvalid()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session by token: %w", err)
	}

	if !session.IsActive {
		return 0, apierrors.NewErrSessionInvalid()
	}
	if !time.Now().Before(session.ExpiresAt) {
		return 0, apierrors.NewErrSessionExpired()
	}

	return session.UserID, nil
}

// Invalidate deactivates the session. Unknown and already-inactive tokens
// are a no-op.
func (s *Session) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionStore.Deactivate(ctx, token); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}

	return nil
}

// SweepExpired deactivates every session past its expiry and returns the
// number affected. Safe to run concurrently with Issue and Validate.
func (s *Session) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.sessionStore.DeactivateExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}

	if count > 0 {
		s.logger.Info("Session service: swept expired sessions",
			"count", count)
	}

	return count, nil
}

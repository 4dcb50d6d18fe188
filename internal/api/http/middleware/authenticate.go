package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate-server/internal/apierrors"
	"github.com/prepmate/prepmate-server/internal/logger"
)

// Context keys set by Authenticate and read by handlers.
const (
	userIDKey       = "auth.user_id"
	sessionTokenKey = "auth.session_token"
)

// SessionValidator resolves user identity from bearer session tokens.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (int64, error)
}

// Authenticate validates bearer session tokens and injects the caller's
// identity into the request context. Every data route runs behind it, so no
// record is read or written without a currently valid session.
type Authenticate struct {
	sessions SessionValidator
	logger   *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionValidator, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, logger: logger}
}

// Handle parses the Authorization header, validates the token and stores the
// owning user id for downstream handlers. Validation failures abort the
// request before any handler runs.
func (m *Authenticate) Handle(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))

	userID, err := m.sessions.Validate(c.Request.Context(), token)
	if err != nil {
		var apiErr *apierrors.APIError
		if !errors.As(err, &apiErr) {
			m.logger.Error("Authenticate middleware: validation failed",
				"error", err.Error())
			apiErr = apierrors.NewErrInternal(err)
		}
		c.AbortWithStatusJSON(apiErr.HTTPCode, gin.H{
			"success": false,
			"error":   apiErr.Code,
			"message": apiErr.Message,
		})
		return
	}

	c.Set(userIDKey, userID)
	c.Set(sessionTokenKey, token)
	c.Next()
}

// UserID returns the authenticated user id set by Authenticate.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// SessionToken returns the validated bearer token set by Authenticate.
func SessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

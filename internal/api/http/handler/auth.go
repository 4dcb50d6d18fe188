package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate-server/internal/api/http/middleware"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/model"
	"github.com/prepmate/prepmate-server/internal/service"
)

// AuthService defines registration, authentication and profile operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Authenticate(ctx context.Context, usernameOrEmail, password string) (model.User, error)
	GetProfile(ctx context.Context, userID int64) (model.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, fullName *string, profileData *string) error
}

// SessionService defines session issue/invalidate/sweep operations.
type SessionService interface {
	Issue(ctx context.Context, userID int64) (model.Session, error)
	Invalidate(ctx context.Context, token string) error
	SweepExpired(ctx context.Context) (int64, error)
}

// Auth handles authentication and profile HTTP endpoints.
type Auth struct {
	authService    AuthService
	sessionService SessionService
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, sessionService SessionService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		sessionService: sessionService,
		logger:         logger,
	}
}

type registerRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// Register creates a new user account.
// POST /api/v1/auth/register
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusCreated, fmt.Sprintf("user %s registered successfully", user.Username), gin.H{
		"user_id": user.ID,
	})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login authenticates a user and issues a session token.
// POST /api/v1/auth/login
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		errorResponse(c, err)
		return
	}

	session, err := h.sessionService.Issue(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue session",
			"user_id", user.ID,
			"error", err.Error())
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, fmt.Sprintf("welcome back, %s!", user.Username), gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"user":       user.Profile(),
	})
}

// Logout invalidates the presented session token. Always succeeds: an
// unknown or already-invalid token is treated the same as a live one.
// POST /api/v1/auth/logout
func (h *Auth) Logout(c *gin.Context) {
	token := middleware.SessionToken(c)

	if err := h.sessionService.Invalidate(c.Request.Context(), token); err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "logged out successfully", nil)
}

// Me returns the profile of the session's owner.
// GET /api/v1/auth/me
func (h *Auth) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    profile,
	})
}

// GetProfile returns the caller's public profile.
// GET /api/v1/profile
func (h *Auth) GetProfile(c *gin.Context) {
	h.Me(c)
}

type updateProfileRequest struct {
	FullName    *string `json:"full_name"`
	ProfileData *string `json:"profile_data"`
}

// UpdateProfile replaces the caller's profile blob and optional full name.
// PUT /api/v1/profile
func (h *Auth) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.authService.UpdateProfile(c.Request.Context(), userID, req.FullName, req.ProfileData); err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "profile updated", nil)
}

// CleanupSessions sweeps expired sessions on demand.
// POST /api/v1/admin/sessions/cleanup
func (h *Auth) CleanupSessions(c *gin.Context) {
	count, err := h.sessionService.SweepExpired(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "expired sessions cleaned up", gin.H{
		"count": count,
	})
}

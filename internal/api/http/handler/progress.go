package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/prepmate-server/internal/api/http/middleware"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/model"
	"github.com/prepmate/prepmate-server/internal/service"
)

// ProgressService defines user-scoped record persistence operations.
type ProgressService interface {
	SaveLearningProgress(ctx context.Context, userID int64, goal string, payload *string) (model.LearningProgress, error)
	GetLearningProgress(ctx context.Context, userID int64) ([]model.LearningProgress, error)
	SaveInterviewSession(ctx context.Context, userID int64, params service.SaveInterviewParams) (model.InterviewSession, error)
	GetInterviewSessions(ctx context.Context, userID int64) ([]model.InterviewSession, error)
	SavePreferences(ctx context.Context, userID int64, data string) (model.Preferences, error)
	GetPreferences(ctx context.Context, userID int64) (model.Preferences, error)
}

// Progress handles learning-progress, interview and preferences endpoints.
// The owning user is always the authenticated caller; ids in payloads are
// ignored.
type Progress struct {
	progressService ProgressService
	logger          *logger.Logger
}

// NewProgress creates a new Progress handler.
func NewProgress(progressService ProgressService, logger *logger.Logger) *Progress {
	return &Progress{
		progressService: progressService,
		logger:          logger,
	}
}

type saveProgressRequest struct {
	LearningGoal string  `json:"learning_goal"`
	ProgressData *string `json:"progress_data"`
}

// SaveLearningProgress records a new learning-goal submission.
// POST /api/v1/progress
func (h *Progress) SaveLearningProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	progress, err := h.progressService.SaveLearningProgress(c.Request.Context(), userID, req.LearningGoal, req.ProgressData)
	if err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "learning progress saved", gin.H{
		"record_id": progress.ID,
	})
}

// GetLearningProgress lists the caller's learning progress, newest first.
// GET /api/v1/progress
func (h *Progress) GetLearningProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	progress, err := h.progressService.GetLearningProgress(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if progress == nil {
		progress = []model.LearningProgress{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"progress": progress,
	})
}

type saveInterviewRequest struct {
	InterviewType string  `json:"interview_type"`
	Role          string  `json:"role"`
	Language      string  `json:"language"`
	Difficulty    string  `json:"difficulty"`
	SessionData   *string `json:"session_data"`
	FinalReport   *string `json:"final_report"`
}

// SaveInterviewSession records a mock interview session.
// POST /api/v1/interviews
func (h *Progress) SaveInterviewSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	var req saveInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	session, err := h.progressService.SaveInterviewSession(c.Request.Context(), userID, service.SaveInterviewParams{
		InterviewType: req.InterviewType,
		Role:          req.Role,
		Language:      req.Language,
		Difficulty:    req.Difficulty,
		SessionData:   req.SessionData,
		FinalReport:   req.FinalReport,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusCreated, "interview session saved", gin.H{
		"record_id": session.ID,
		"status":    session.Status,
	})
}

// GetInterviewSessions lists the caller's interview history, newest first.
// GET /api/v1/interviews
func (h *Progress) GetInterviewSessions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	sessions, err := h.progressService.GetInterviewSessions(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if sessions == nil {
		sessions = []model.InterviewSession{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sessions": sessions,
	})
}

type savePreferencesRequest struct {
	PreferencesData string `json:"preferences_data"`
}

// SavePreferences upserts the caller's preferences blob.
// PUT /api/v1/preferences
func (h *Progress) SavePreferences(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	var req savePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if _, err := h.progressService.SavePreferences(c.Request.Context(), userID, req.PreferencesData); err != nil {
		errorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "preferences saved", nil)
}

// GetPreferences returns the caller's preferences blob.
// GET /api/v1/preferences
func (h *Progress) GetPreferences(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		errorResponse(c, errMissingIdentity)
		return
	}

	prefs, err := h.progressService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		errorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"preferences": prefs,
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prepmate/prepmate-server/internal/apierrors"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/model"
)

// Progress persists learning-progress entries, interview records and
// preference blobs, scoped to an owning user. Payloads are opaque
// serialized documents and are stored and returned verbatim.
type Progress struct {
	progressStore model.ProgressStore
	userStore     model.UserStore
	logger        *logger.Logger
}

func NewProgress(progressStore model.ProgressStore, userStore model.UserStore, logger *logger.Logger) *Progress {
	return &Progress{
		progressStore: progressStore,
		userStore:     userStore,
		logger:        logger,
	}
}

// SaveLearningProgress inserts a new row for the goal. Repeated submissions
// of the same goal produce repeated rows.
func (p *Progress) SaveLearningProgress(ctx context.Context, userID int64, goal string, payload *string) (model.LearningProgress, error) {
	if goal == "" {
		return model.LearningProgress{}, apierrors.NewErrValidation([]string{"learning goal is required"})
	}

	if err := p.ensureUser(ctx, userID); err != nil {
		return model.LearningProgress{}, err
	}

	progress, err := p.progressStore.CreateLearningProgress(ctx, model.LearningProgress{
		UserID:       userID,
		LearningGoal: goal,
		ProgressData: payload,
		Status:       model.StatusActive,
	})
	if err != nil {
		return model.LearningProgress{}, fmt.Errorf("failed to save learning progress: %w", err)
	}

	p.logger.Info("Progress service: learning progress saved",
		"user_id", userID,
		"record_id", progress.ID)

	return progress, nil
}

// GetLearningProgress returns the user's rows, most recent first. No rows is
// an empty list, not an error.
func (p *Progress) GetLearningProgress(ctx context.Context, userID int64) ([]model.LearningProgress, error) {
	progress, err := p.progressStore.ListLearningProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learning progress: %w", err)
	}

	return progress, nil
}

// SaveInterviewParams contains parameters to record an interview session.
type SaveInterviewParams struct {
	InterviewType string
	Role          string
	Language      string
	Difficulty    string
	SessionData   *string
	FinalReport   *string
}

// SaveInterviewSession inserts a new interview record. The record is marked
// completed only when a final report is attached; otherwise it stays active
// with no completion timestamp.
func (p *Progress) SaveInterviewSession(ctx context.Context, userID int64, params SaveInterviewParams) (model.InterviewSession, error) {
	var violations []string
	if params.InterviewType == "" {
		violations = append(violations, "interview type is required")
	}
	if params.Role == "" {
		violations = append(violations, "role is required")
	}
	if len(violations) > 0 {
		return model.InterviewSession{}, apierrors.NewErrValidation(violations)
	}

	if err := p.ensureUser(ctx, userID); err != nil {
		return model.InterviewSession{}, err
	}

	session := model.InterviewSession{
		UserID:        userID,
		InterviewType: params.InterviewType,
		Role:          params.Role,
		Language:      params.Language,
		Difficulty:    params.Difficulty,
		SessionData:   params.SessionData,
		FinalReport:   params.FinalReport,
		Status:        model.StatusActive,
	}
	if session.Language == "" {
		session.Language = model.DefaultInterviewLanguage
	}
	if session.Difficulty == "" {
		session.Difficulty = model.DefaultInterviewDifficulty
	}
	if params.FinalReport != nil && *params.FinalReport != "" {
		now := time.Now()
		session.CompletedAt = &now
		session.Status = model.StatusCompleted
	}

	saved, err := p.progressStore.CreateInterviewSession(ctx, session)
	if err != nil {
		return model.InterviewSession{}, fmt.Errorf("failed to save interview session: %w", err)
	}

	p.logger.Info("Progress service: interview session saved",
		"user_id", userID,
		"record_id", saved.ID,
		"status", saved.Status)

	return saved, nil
}

// GetInterviewSessions returns the user's rows, most recent first.
func (p *Progress) GetInterviewSessions(ctx context.Context, userID int64) ([]model.InterviewSession, error) {
	sessions, err := p.progressStore.ListInterviewSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview sessions: %w", err)
	}

	return sessions, nil
}

// SavePreferences upserts the user's single preferences row.
func (p *Progress) SavePreferences(ctx context.Context, userID int64, data string) (model.Preferences, error) {
	if err := p.ensureUser(ctx, userID); err != nil {
		return model.Preferences{}, err
	}

	prefs, err := p.progressStore.UpsertPreferences(ctx, userID, data)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("failed to save preferences: %w", err)
	}

	return prefs, nil
}

// GetPreferences returns the user's preferences. A user who never saved any
// gets an empty payload, not an error.
func (p *Progress) GetPreferences(ctx context.Context, userID int64) (model.Preferences, error) {
	prefs, err := p.progressStore.GetPreferences(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Preferences{UserID: userID}, nil
	}
	if err != nil {
		return model.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

func (p *Progress) ensureUser(ctx context.Context, userID int64) error {
	_, err := p.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	return nil
}

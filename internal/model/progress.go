package model

import (
	"context"
	"time"
)

// Record status tags. Interview sessions move to completed once a final
// report is attached; learning progress rows stay active until the caller
// says otherwise.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Defaults applied to interview sessions when the caller omits the field,
// matching the schema defaults.
const (
	DefaultInterviewLanguage   = "english"
	DefaultInterviewDifficulty = "intermediate"
)

// ProgressStore persists user-owned learning and interview records.
// Payload columns are opaque serialized documents; the store never
// inspects their structure.
type ProgressStore interface {
	CreateLearningProgress(ctx context.Context, progress LearningProgress) (LearningProgress, error)
	ListLearningProgress(ctx context.Context, userID int64) ([]LearningProgress, error)
	CreateInterviewSession(ctx context.Context, session InterviewSession) (InterviewSession, error)
	ListInterviewSessions(ctx context.Context, userID int64) ([]InterviewSession, error)
	UpsertPreferences(ctx context.Context, userID int64, data string) (Preferences, error)
	GetPreferences(ctx context.Context, userID int64) (Preferences, error)
}

// LearningProgress is one row per learning-goal submission. Repeated
// submissions of the same goal yield repeated rows.
type LearningProgress struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	LearningGoal string    `json:"learning_goal"`
	ProgressData *string   `json:"progress_data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Status       string    `json:"status"`
}

// InterviewSession is one row per mock interview, in-progress or completed.
type InterviewSession struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"-"`
	InterviewType string     `json:"interview_type"`
	Role          string     `json:"role"`
	Language      string     `json:"language"`
	Difficulty    string     `json:"difficulty"`
	SessionData   *string    `json:"session_data,omitempty"`
	FinalReport   *string    `json:"final_report,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Status        string     `json:"status"`
}

// Preferences holds the single free-form preferences blob per user.
type Preferences struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Data      string    `json:"preferences_data"`
	UpdatedAt time.Time `json:"updated_at"`
}

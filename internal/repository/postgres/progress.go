package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/prepmate/prepmate-server/internal/model"
)

var _ model.ProgressStore = (*ProgressRepository)(nil)

type ProgressRepository struct {
	db DB
}

func NewProgressRepository(db DB) *ProgressRepository {
	return &ProgressRepository{
		db: db,
	}
}

// CreateLearningProgress always inserts a new row; goals are not merged.
func (r *ProgressRepository) CreateLearningProgress(ctx context.Context, progress model.LearningProgress) (model.LearningProgress, error) {
	query := `INSERT INTO learning_progress (user_id, learning_goal, progress_data, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_id, learning_goal, progress_data, created_at, updated_at, status`

	var saved model.LearningProgress
	err := r.db.QueryRow(ctx, query,
		progress.UserID, progress.LearningGoal, progress.ProgressData, progress.Status,
	).Scan(
		&saved.ID, &saved.UserID, &saved.LearningGoal, &saved.ProgressData,
		&saved.CreatedAt, &saved.UpdatedAt, &saved.Status,
	)
	if err != nil {
		return model.LearningProgress{}, fmt.Errorf("failed to create learning progress: %w", err)
	}

	return saved, nil
}

// ListLearningProgress returns the user's rows, most recent first.
func (r *ProgressRepository) ListLearningProgress(ctx context.Context, userID int64) ([]model.LearningProgress, error) {
	query := `SELECT id, user_id, learning_goal, progress_data, created_at, updated_at, status
			  FROM learning_progress WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning progress: %w", err)
	}
	defer rows.Close()

	var progress []model.LearningProgress
	for rows.Next() {
		var p model.LearningProgress
		err := rows.Scan(
			&p.ID, &p.UserID, &p.LearningGoal, &p.ProgressData,
			&p.CreatedAt, &p.UpdatedAt, &p.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learning progress: %w", err)
		}
		progress = append(progress, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate learning progress: %w", err)
	}

	return progress, nil
}

// CreateInterviewSession inserts a new interview record. CompletedAt is only
// set by the service when a final report is present.
func (r *ProgressRepository) CreateInterviewSession(ctx context.Context, session model.InterviewSession) (model.InterviewSession, error) {
	query := `INSERT INTO interview_sessions (user_id, interview_type, role, language, difficulty, session_data, final_report, completed_at, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, user_id, interview_type, role, language, difficulty, session_data, final_report, created_at, completed_at, status`

	var saved model.InterviewSession
	err := r.db.QueryRow(ctx, query,
		session.UserID, session.InterviewType, session.Role, session.Language, session.Difficulty,
		session.SessionData, session.FinalReport, session.CompletedAt, session.Status,
	).Scan(
		&saved.ID, &saved.UserID, &saved.InterviewType, &saved.Role, &saved.Language, &saved.Difficulty,
		&saved.SessionData, &saved.FinalReport, &saved.CreatedAt, &saved.CompletedAt, &saved.Status,
	)
	if err != nil {
		return model.InterviewSession{}, fmt.Errorf("failed to create interview session: %w", err)
	}

	return saved, nil
}

// ListInterviewSessions returns the user's rows, most recent first.
func (r *ProgressRepository) ListInterviewSessions(ctx context.Context, userID int64) ([]model.InterviewSession, error) {
	query := `SELECT id, user_id, interview_type, role, language, difficulty, session_data, final_report, created_at, completed_at, status
			  FROM interview_sessions WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interview sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.InterviewSession
	for rows.Next() {
		var s model.InterviewSession
		err := rows.Scan(
			&s.ID, &s.UserID, &s.InterviewType, &s.Role, &s.Language, &s.Difficulty,
			&s.SessionData, &s.FinalReport, &s.CreatedAt, &s.CompletedAt, &s.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interview sessions: %w", err)
	}

	return sessions, nil
}

// UpsertPreferences keeps exactly one row per user: update on conflict on
// the user_id unique constraint, in a single atomic statement.
func (r *ProgressRepository) UpsertPreferences(ctx context.Context, userID int64, data string) (model.Preferences, error) {
	query := `INSERT INTO user_preferences (user_id, preferences_data, updated_at)
			  VALUES ($1, $2, now())
			  ON CONFLICT (user_id) DO UPDATE SET preferences_data = EXCLUDED.preferences_data, updated_at = now()
			  RETURNING id, user_id, preferences_data, updated_at`

	var saved model.Preferences
	err := r.db.QueryRow(ctx, query, userID, data).Scan(
		&saved.ID, &saved.UserID, &saved.Data, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return saved, nil
}

// GetPreferences fetches the user's single preferences row.
func (r *ProgressRepository) GetPreferences(ctx context.Context, userID int64) (model.Preferences, error) {
	var prefs model.Preferences
	query := `SELECT id, user_id, preferences_data, updated_at
			  FROM user_preferences WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID, &prefs.Data, &prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Preferences{}, model.ErrNotFound
		}
		return model.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmate/prepmate-server/internal/model"
)

var (
	progressColumns  = []string{"id", "user_id", "learning_goal", "progress_data", "created_at", "updated_at", "status"}
	interviewColumns = []string{
		"id", "user_id", "interview_type", "role", "language", "difficulty",
		"session_data", "final_report", "created_at", "completed_at", "status",
	}
	preferencesColumns = []string{"id", "user_id", "preferences_data", "updated_at"}
)

func newProgressMock(t *testing.T) (pgxmock.PgxPoolIface, *ProgressRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewProgressRepository(mock)
}

func TestProgressRepository_CreateLearningProgress(t *testing.T) {
	mock, repo := newProgressMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO learning_progress`).
		WithArgs(int64(7), "learn Go", (*string)(nil), model.StatusActive).
		WillReturnRows(pgxmock.NewRows(progressColumns).
			AddRow(int64(1), int64(7), "learn Go", (*string)(nil), now, now, model.StatusActive))

	saved, err := repo.CreateLearningProgress(context.Background(), model.LearningProgress{
		UserID:       7,
		LearningGoal: "learn Go",
		Status:       model.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_ListLearningProgress_NewestFirst(t *testing.T) {
	mock, repo := newProgressMock(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM learning_progress WHERE user_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(progressColumns).
			AddRow(int64(2), int64(7), "learn SQL", (*string)(nil), now, now, model.StatusActive).
			AddRow(int64(1), int64(7), "learn Go", (*string)(nil), now.Add(-time.Hour), now.Add(-time.Hour), model.StatusActive))

	list, err := repo.ListLearningProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)
}

func TestProgressRepository_ListLearningProgress_Empty(t *testing.T) {
	mock, repo := newProgressMock(t)

	mock.ExpectQuery(`SELECT .+ FROM learning_progress`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(progressColumns))

	list, err := repo.ListLearningProgress(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProgressRepository_CreateInterviewSession(t *testing.T) {
	mock, repo := newProgressMock(t)

	now := time.Now()
	report := "strong hire"
	mock.ExpectQuery(`INSERT INTO interview_sessions`).
		WithArgs(int64(7), "technical", "backend engineer", "english", "intermediate",
			(*string)(nil), &report, pgxmock.AnyArg(), model.StatusCompleted).
		WillReturnRows(pgxmock.NewRows(interviewColumns).
			AddRow(int64(3), int64(7), "technical", "backend engineer", "english", "intermediate",
				(*string)(nil), &report, now, &now, model.StatusCompleted))

	saved, err := repo.CreateInterviewSession(context.Background(), model.InterviewSession{
		UserID:        7,
		InterviewType: "technical",
		Role:          "backend engineer",
		Language:      "english",
		Difficulty:    "intermediate",
		FinalReport:   &report,
		CompletedAt:   &now,
		Status:        model.StatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), saved.ID)
	assert.Equal(t, model.StatusCompleted, saved.Status)
	require.NotNil(t, saved.CompletedAt)
}

func TestProgressRepository_UpsertPreferences(t *testing.T) {
	mock, repo := newProgressMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO user_preferences .+ ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(int64(7), `{"theme":"dark"}`).
		WillReturnRows(pgxmock.NewRows(preferencesColumns).
			AddRow(int64(1), int64(7), `{"theme":"dark"}`, now))

	saved, err := repo.UpsertPreferences(context.Background(), 7, `{"theme":"dark"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, saved.Data)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_GetPreferences_NotFound(t *testing.T) {
	mock, repo := newProgressMock(t)

	mock.ExpectQuery(`SELECT .+ FROM user_preferences WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(preferencesColumns))

	_, err := repo.GetPreferences(context.Background(), 7)
	require.ErrorIs(t, err, model.ErrNotFound)
}

// Package mocks contains testify mocks for the store interfaces in
// internal/model, shared by the service and handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prepmate/prepmate-server/internal/model"
)

// UserStore mocks model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByLogin(ctx context.Context, usernameOrEmail string) (model.User, error) {
	args := m.Called(ctx, usernameOrEmail)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdateLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserStore) UpdateProfile(ctx context.Context, id int64, fullName *string, profileData *string) error {
	args := m.Called(ctx, id, fullName, profileData)
	return args.Error(0)
}

// SessionStore mocks model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session model.Session) (model.Session, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) GetByToken(ctx context.Context, token string) (model.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) Deactivate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *SessionStore) DeactivateExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ProgressStore mocks model.ProgressStore.
type ProgressStore struct {
	mock.Mock
}

func (m *ProgressStore) CreateLearningProgress(ctx context.Context, progress model.LearningProgress) (model.LearningProgress, error) {
	args := m.Called(ctx, progress)
	return args.Get(0).(model.LearningProgress), args.Error(1)
}

func (m *ProgressStore) ListLearningProgress(ctx context.Context, userID int64) ([]model.LearningProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LearningProgress), args.Error(1)
}

func (m *ProgressStore) CreateInterviewSession(ctx context.Context, session model.InterviewSession) (model.InterviewSession, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(model.InterviewSession), args.Error(1)
}

func (m *ProgressStore) ListInterviewSessions(ctx context.Context, userID int64) ([]model.InterviewSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InterviewSession), args.Error(1)
}

func (m *ProgressStore) UpsertPreferences(ctx context.Context, userID int64, data string) (model.Preferences, error) {
	args := m.Called(ctx, userID, data)
	return args.Get(0).(model.Preferences), args.Error(1)
}

func (m *ProgressStore) GetPreferences(ctx context.Context, userID int64) (model.Preferences, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Preferences), args.Error(1)
}

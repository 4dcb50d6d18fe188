//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/prepmate/prepmate-server/internal/api/http/router"
	"github.com/prepmate/prepmate-server/internal/apierrors"
	"github.com/prepmate/prepmate-server/internal/model"
	repo "github.com/prepmate/prepmate-server/internal/repository/postgres"
	"github.com/prepmate/prepmate-server/internal/service"
	"github.com/prepmate/prepmate-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "prepmate_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/prepmate_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	t.Run("user_repository", func(t *testing.T) {
		saved, err := ur.Create(ctx, model.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "digest",
			Salt:         "0123456789abcdef0123456789abcdef",
		})
		require.NoError(t, err)
		require.NotZero(t, saved.ID)
		require.True(t, saved.IsActive)

		_, err = ur.Create(ctx, model.User{
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "digest",
			Salt:         "0123456789abcdef0123456789abcdef",
		})
		require.ErrorIs(t, err, model.ErrDuplicate)

		byUsername, err := ur.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, saved.ID, byUsername.ID)

		byEmail, err := ur.GetByLogin(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, saved.ID, byEmail.ID)

		require.NoError(t, ur.UpdateLastLogin(ctx, saved.ID))

		byID, err := ur.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, byID.LastLogin)
	})

	t.Run("session_repository", func(t *testing.T) {
		sr := repo.NewSessionRepository(conn)
		owner, err := ur.Create(ctx, model.User{
			Username:     "bob",
			Email:        "bob@example.com",
			PasswordHash: "digest",
			Salt:         "0123456789abcdef0123456789abcdef",
		})
		require.NoError(t, err)

		session, err := sr.Create(ctx, model.Session{
			UserID:    owner.ID,
			Token:     "integration-token",
			ExpiresAt: time.Now().Add(model.SessionDuration),
		})
		require.NoError(t, err)
		require.True(t, session.IsActive)

		_, err = sr.Create(ctx, model.Session{
			UserID:    owner.ID,
			Token:     "integration-token",
			ExpiresAt: time.Now().Add(model.SessionDuration),
		})
		require.ErrorIs(t, err, model.ErrDuplicate)

		got, err := sr.GetByToken(ctx, "integration-token")
		require.NoError(t, err)
		require.Equal(t, owner.ID, got.UserID)

		require.NoError(t, sr.Deactivate(ctx, "integration-token"))
		got, err = sr.GetByToken(ctx, "integration-token")
		require.NoError(t, err)
		require.False(t, got.IsActive)

		expired, err := sr.Create(ctx, model.Session{
			UserID:    owner.ID,
			Token:     "expired-token",
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		require.NoError(t, err)
		require.True(t, expired.IsActive)

		count, err := sr.DeactivateExpired(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run("progress_repository", func(t *testing.T) {
		pr := repo.NewProgressRepository(conn)
		owner, err := ur.Create(ctx, model.User{
			Username:     "carol",
			Email:        "carol@example.com",
			PasswordHash: "digest",
			Salt:         "0123456789abcdef0123456789abcdef",
		})
		require.NoError(t, err)

		first, err := pr.CreateLearningProgress(ctx, model.LearningProgress{
			UserID:       owner.ID,
			LearningGoal: "learn Go",
			Status:       model.StatusActive,
		})
		require.NoError(t, err)
		second, err := pr.CreateLearningProgress(ctx, model.LearningProgress{
			UserID:       owner.ID,
			LearningGoal: "learn SQL",
			Status:       model.StatusActive,
		})
		require.NoError(t, err)

		list, err := pr.ListLearningProgress(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)

		interview, err := pr.CreateInterviewSession(ctx, model.InterviewSession{
			UserID:        owner.ID,
			InterviewType: "technical",
			Role:          "backend engineer",
			Language:      model.DefaultInterviewLanguage,
			Difficulty:    model.DefaultInterviewDifficulty,
			Status:        model.StatusActive,
		})
		require.NoError(t, err)

		sessions, err := pr.ListInterviewSessions(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		require.Equal(t, interview.ID, sessions[0].ID)

		_, err = pr.GetPreferences(ctx, owner.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		saved, err := pr.UpsertPreferences(ctx, owner.ID, `{"theme":"dark"}`)
		require.NoError(t, err)
		require.Equal(t, `{"theme":"dark"}`, saved.Data)

		updated, err := pr.UpsertPreferences(ctx, owner.ID, `{"theme":"light"}`)
		require.NoError(t, err)
		require.Equal(t, saved.ID, updated.ID)
		require.Equal(t, `{"theme":"light"}`, updated.Data)
	})
}

func call(t *testing.T, engine *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	if body == "" {
		body = "{}"
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))

	return rec, parsed
}

func TestServer_EndToEnd(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	log := testutil.MakeNoopLogger()
	userRepo := repo.NewUserRepository(conn)
	sessionRepo := repo.NewSessionRepository(conn)
	progressRepo := repo.NewProgressRepository(conn)

	engine := router.New(
		service.NewAuth(userRepo, log),
		service.NewSession(sessionRepo, log),
		service.NewProgress(progressRepo, userRepo, log),
		conn,
		log,
	).Register()

	register := `{"username":"dave","email":"dave@example.com","password":"Sup3rSecret!"}`
	rec, _ := call(t, engine, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := call(t, engine, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, apierrors.CodeConflict, body["error"])

	rec, body = call(t, engine, http.MethodPost, "/api/v1/auth/login", "",
		`{"login":"dave","password":"WrongPass1!"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, apierrors.CodeInvalidCredentials, body["error"])

	rec, body = call(t, engine, http.MethodPost, "/api/v1/auth/login", "",
		`{"login":"dave","password":"Sup3rSecret!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := body["token"].(string)
	require.Len(t, token, 43)

	rec, body = call(t, engine, http.MethodGet, "/api/v1/progress", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["progress"])

	rec, _ = call(t, engine, http.MethodPost, "/api/v1/progress", token,
		`{"learning_goal":"pass the backend interview"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body = call(t, engine, http.MethodGet, "/api/v1/progress", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	progress, ok := body["progress"].([]any)
	require.True(t, ok)
	require.Len(t, progress, 1)

	rec, _ = call(t, engine, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = call(t, engine, http.MethodGet, "/api/v1/progress", token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, apierrors.CodeSessionInvalid, body["error"])

	// fresh session for the admin sweep, plus one session already past expiry
	rec, body = call(t, engine, http.MethodPost, "/api/v1/auth/login", "",
		`{"login":"dave","password":"Sup3rSecret!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	adminToken, _ := body["token"].(string)

	dave, err := userRepo.GetByLogin(ctx, "dave")
	require.NoError(t, err)
	_, err = sessionRepo.Create(ctx, model.Session{
		UserID:    dave.ID,
		Token:     "scenario-expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	rec, body = call(t, engine, http.MethodPost, "/api/v1/admin/sessions/cleanup", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), body["count"])

	// the sweep is idempotent: nothing is left to deactivate
	rec, body = call(t, engine, http.MethodPost, "/api/v1/admin/sessions/cleanup", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(0), body["count"])
}

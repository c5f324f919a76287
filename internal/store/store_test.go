package store

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	m, err := Open(dsn, 1, auth.NewPasswordHasher(4), logger)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func createUser(t *testing.T, m *Manager, name string) *models.User {
	t.Helper()
	user, err := m.CreateUser(context.Background(), &models.CreateUserInput{
		Name:     name,
		Email:    name + "@example.com",
		Password: "password-" + name,
	})
	require.NoError(t, err)
	return user
}

func createProject(t *testing.T, m *Manager, owner *models.User, title string) *models.Project {
	t.Helper()
	project, err := m.CreateProject(context.Background(), owner.ID, &models.ProjectInput{Title: title})
	require.NoError(t, err)
	return project
}

func createTask(t *testing.T, m *Manager, project *models.Project, title string) *models.Task {
	t.Helper()
	task, err := m.CreateTask(context.Background(), &models.CreateTaskInput{ProjectID: project.ID, Title: title})
	require.NoError(t, err)
	return task
}

func TestHealthAndStats(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.HealthCheck(ctx))

	alice := createUser(t, m, "alice")
	project := createProject(t, m, alice, "Website")
	task := createTask(t, m, project, "Landing page")
	_, err := m.CreateComment(ctx, task.ID, alice.ID, "looks good")
	require.NoError(t, err)

	stats, err := m.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users)
	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(1), stats.Tasks)
	assert.Equal(t, int64(1), stats.Comments)
	assert.Equal(t, int64(0), stats.LoggedTimes)
}

func TestNotFoundKinds(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.GetUser(ctx, "missing")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	_, err = m.GetProject(ctx, "missing")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	_, err = m.GetTask(ctx, "missing")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	_, err = m.GetComment(ctx, "missing")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	_, err = m.GetLoggedTime(ctx, "missing")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

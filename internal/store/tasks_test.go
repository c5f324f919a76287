package store

import (
	"context"
	"testing"
	"time"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskAttachesOnce(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")
	project := createProject(t, m, alice, "Website")

	first := createTask(t, m, project, "First")
	second := createTask(t, m, project, "Second")
	assert.Equal(t, models.TaskTodo, first.Status)

	tasks, err := m.ListProjectTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
}

func TestCreateTaskMissingProject(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CreateTask(context.Background(), &models.CreateTaskInput{ProjectID: "missing", Title: "x"})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestUpdateTaskKeepsProject(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")
	project := createProject(t, m, alice, "Website")
	task := createTask(t, m, project, "First")

	title := "Renamed"
	status := models.TaskInProgress
	updated, err := m.UpdateTask(ctx, &models.UpdateTaskInput{TaskID: task.ID, Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, models.TaskInProgress, updated.Status)
	assert.Equal(t, project.ID, updated.ProjectID)

	bad := models.TaskStatus("LATER")
	_, err = m.UpdateTask(ctx, &models.UpdateTaskInput{TaskID: task.ID, Status: &bad})
	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))

	_, err = m.UpdateTask(ctx, &models.UpdateTaskInput{TaskID: "missing", Title: &title})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteTaskCascades(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")
	project := createProject(t, m, alice, "Website")
	keep := createTask(t, m, project, "Keep")
	drop := createTask(t, m, project, "Drop")

	_, err := m.CreateComment(ctx, drop.ID, alice.ID, "bye")
	require.NoError(t, err)
	_, err = m.CreateLoggedTime(ctx, alice.ID, &models.LoggedTimeInput{TaskID: drop.ID, Description: "x", Hours: 1})
	require.NoError(t, err)
	_, err = m.CreateComment(ctx, keep.ID, alice.ID, "stay")
	require.NoError(t, err)

	_, err = m.DeleteTask(ctx, drop.ID)
	require.NoError(t, err)

	tasks, err := m.ListProjectTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	stats, err := m.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Comments)
	assert.Equal(t, int64(0), stats.LoggedTimes)
}

func TestCommentsAndLoggedTime(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")
	project := createProject(t, m, alice, "Website")
	task := createTask(t, m, project, "First")

	_, err := m.CreateComment(ctx, task.ID, alice.ID, "   ")
	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))

	c1, err := m.CreateComment(ctx, task.ID, alice.ID, "one")
	require.NoError(t, err)
	c2, err := m.CreateComment(ctx, task.ID, alice.ID, "two")
	require.NoError(t, err)

	comments, err := m.ListTaskComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c1.ID, comments[0].ID)
	assert.Equal(t, c2.ID, comments[1].ID)

	_, err = m.DeleteComment(ctx, c1.ID)
	require.NoError(t, err)
	comments, err = m.ListTaskComments(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, c2.ID, comments[0].ID)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entry, err := m.CreateLoggedTime(ctx, alice.ID, &models.LoggedTimeInput{TaskID: task.ID, Description: "a", Hours: 1.5, Date: &date})
	require.NoError(t, err)
	assert.True(t, date.Equal(entry.Date))
	_, err = m.CreateLoggedTime(ctx, alice.ID, &models.LoggedTimeInput{TaskID: task.ID, Description: "b", Hours: 2.25})
	require.NoError(t, err)

	total, err := m.TaskTotalHours(ctx, task.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.75, total, 1e-9)

	_, err = m.DeleteLoggedTime(ctx, entry.ID)
	require.NoError(t, err)
	entries, err := m.ListTaskLoggedTime(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = m.CreateLoggedTime(ctx, alice.ID, &models.LoggedTimeInput{TaskID: "missing", Description: "x"})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestTaskTotalHoursEmpty(t *testing.T) {
	m := newTestManager(t)
	alice := createUser(t, m, "alice")
	task := createTask(t, m, createProject(t, m, alice, "Website"), "First")

	total, err := m.TaskTotalHours(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

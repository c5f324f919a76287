package store

import (
	"context"
	"testing"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	m := newTestManager(t)

	user := createUser(t, m, "alice")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleOwner, user.Role)
	assert.NotEqual(t, "password-alice", user.PasswordHash)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	m := newTestManager(t)
	createUser(t, m, "alice")

	_, err := m.CreateUser(context.Background(), &models.CreateUserInput{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "whatever",
	})
	assert.True(t, apperr.IsKind(err, apperr.DuplicateKey), "got %v", err)
}

func TestCreateUserValidation(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CreateUser(context.Background(), &models.CreateUserInput{Name: "x", Email: "bad", Password: "longenough"})
	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))
}

func TestAuthenticateIsUndifferentiated(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	createUser(t, m, "alice")

	user, err := m.Authenticate(ctx, "alice@example.com", "password-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, wrongPassword := m.Authenticate(ctx, "alice@example.com", "nope")
	_, unknownEmail := m.Authenticate(ctx, "nobody@example.com", "nope")
	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword, unknownEmail)
	assert.True(t, apperr.IsKind(wrongPassword, apperr.InvalidCredentials))
}

func TestUpdateUser(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")
	createUser(t, m, "bob")

	name := "Alice Liddell"
	updated, err := m.UpdateUser(ctx, alice.ID, &models.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	taken := "bob@example.com"
	_, err = m.UpdateUser(ctx, alice.ID, &models.UpdateUserInput{Email: &taken})
	assert.True(t, apperr.IsKind(err, apperr.DuplicateKey))

	invalid := "not-an-email"
	_, err = m.UpdateUser(ctx, alice.ID, &models.UpdateUserInput{Email: &invalid})
	assert.True(t, apperr.IsKind(err, apperr.ValidationFailed))

	password := "brand-new-pass"
	_, err = m.UpdateUser(ctx, alice.ID, &models.UpdateUserInput{Password: &password})
	require.NoError(t, err)
	_, err = m.Authenticate(ctx, "alice@example.com", "brand-new-pass")
	assert.NoError(t, err)

	_, err = m.UpdateUser(ctx, "missing", &models.UpdateUserInput{Name: &name})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteUserRequiresPassword(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")

	_, err := m.DeleteUser(ctx, alice.ID, "wrong")
	assert.True(t, apperr.IsKind(err, apperr.InvalidCredentials))

	_, err = m.GetUser(ctx, alice.ID)
	require.NoError(t, err)

	deleted, err := m.DeleteUser(ctx, alice.ID, "password-alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, deleted.ID)

	_, err = m.GetUser(ctx, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteUserCascades(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	alice := createUser(t, m, "alice")
	bob := createUser(t, m, "bob")

	solo := createProject(t, m, alice, "Solo")
	soloTask := createTask(t, m, solo, "Only alice")

	shared := createProject(t, m, bob, "Shared")
	_, err := m.AddClientToProject(ctx, shared.ID, &models.ClientInput{Email: "alice@example.com"})
	require.NoError(t, err)
	sharedTask := createTask(t, m, shared, "Bob's task")
	_, err = m.CreateComment(ctx, sharedTask.ID, alice.ID, "from alice")
	require.NoError(t, err)
	_, err = m.CreateComment(ctx, sharedTask.ID, bob.ID, "from bob")
	require.NoError(t, err)

	_, err = m.DeleteUser(ctx, alice.ID, "password-alice")
	require.NoError(t, err)

	_, err = m.GetProject(ctx, solo.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound), "sole-owned project should be deleted")
	_, err = m.GetTask(ctx, soloTask.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	_, err = m.GetProject(ctx, shared.ID)
	assert.NoError(t, err)
	clients, err := m.ListProjectMembers(ctx, shared.ID, models.RoleClient)
	require.NoError(t, err)
	assert.Empty(t, clients)

	comments, err := m.ListTaskComments(ctx, sharedTask.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, bob.ID, comments[0].UserID)
}

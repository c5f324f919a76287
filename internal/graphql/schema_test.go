package graphql

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/config"
	"github.com/devplatform/tracker/internal/models"
	"github.com/devplatform/tracker/internal/prometheus"
	"github.com/devplatform/tracker/internal/store"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	schema *Schema
	store  *store.Manager
	tokens *auth.TokenIssuer
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	mgr, err := store.Open(dsn, 1, auth.NewPasswordHasher(4), logger)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	if cfg == nil {
		cfg = &config.Config{}
	}
	tokens := auth.NewTokenIssuer("test-secret", "tracker", time.Hour)

	return &testEnv{
		schema: NewSchema(mgr, tokens, cfg, logger),
		store:  mgr,
		tokens: tokens,
	}
}

func newTestEnvWithStore(t *testing.T, st prometheus.StoreInterface) *Schema {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSchema(st, auth.NewTokenIssuer("test-secret", "tracker", time.Hour), &config.Config{}, logger)
}

func (e *testEnv) exec(ctx context.Context, query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.schema.GetSchema(),
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), &models.CreateUserInput{
		Name:     name,
		Email:    name + "@example.com",
		Password: "password-" + name,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) project(t *testing.T, owner *models.User, title string) *models.Project {
	t.Helper()
	p, err := e.store.CreateProject(context.Background(), owner.ID, &models.ProjectInput{Title: title})
	require.NoError(t, err)
	return p
}

func (e *testEnv) task(t *testing.T, project *models.Project, title string) *models.Task {
	t.Helper()
	task, err := e.store.CreateTask(context.Background(), &models.CreateTaskInput{ProjectID: project.ID, Title: title})
	require.NoError(t, err)
	return task
}

func (e *testEnv) client(t *testing.T, project *models.Project, client *models.User) {
	t.Helper()
	_, err := e.store.AddClientToProject(context.Background(), project.ID, &models.ClientInput{Email: client.Email})
	require.NoError(t, err)
}

func as(u *models.User) context.Context {
	return auth.WithUser(context.Background(), u.ID, u.Email, "")
}

func anonymous() context.Context {
	return context.Background()
}

func errorCode(t *testing.T, res *graphql.Result) string {
	t.Helper()
	require.NotEmpty(t, res.Errors, "expected an error")
	code, _ := res.Errors[0].Extensions["code"].(string)
	return code
}

func data(t *testing.T, res *graphql.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, res.Errors)
	m, ok := res.Data.(map[string]interface{})
	require.True(t, ok)
	return m
}

func ids(items interface{}) []string {
	list, _ := items.([]interface{})
	out := make([]string, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, fmt.Sprint(m["_id"]))
		}
	}
	return out
}

func rowCounts(s *models.Stats) [5]int64 {
	return [5]int64{s.Users, s.Projects, s.Tasks, s.Comments, s.LoggedTimes}
}

func TestUnauthenticatedIsRejected(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.user(t, "alice")
	project := env.project(t, owner, "Website")
	task := env.task(t, project, "Landing")

	operations := map[string]string{
		"me":                 `{ me { _id } }`,
		"myProjects":         `{ myProjects { _id } }`,
		"project":            fmt.Sprintf(`{ project(_id: %q) { _id } }`, project.ID),
		"task":               fmt.Sprintf(`{ task(_id: %q) { _id } }`, task.ID),
		"stats":              `{ stats { users } }`,
		"updateUser":         `mutation { updateUser(userInputs: {name: "x"}) { _id } }`,
		"deleteUser":         `mutation { deleteUser(password: "password-alice") { _id } }`,
		"addProject":         `mutation { addProject(projectInputs: {title: "x"}) { _id } }`,
		"updateProjectTitle": fmt.Sprintf(`mutation { updateProjectTitle(projectId: %q, title: "x") { _id } }`, project.ID),
		"addClientToProject": fmt.Sprintf(`mutation { addClientToProject(projectId: %q, clientInputs: {email: "c@example.com", password: "secret"}) { _id } }`, project.ID),
		"deleteProject":      fmt.Sprintf(`mutation { deleteProject(projectId: %q) { _id } }`, project.ID),
		"addTask":            fmt.Sprintf(`mutation { addTask(taskInputs: {projectId: %q, title: "x"}) { _id } }`, project.ID),
		"updateTask":         fmt.Sprintf(`mutation { updateTask(taskInputs: {taskId: %q, title: "x"}) { _id } }`, task.ID),
		"deleteTask":         fmt.Sprintf(`mutation { deleteTask(taskId: %q) { _id } }`, task.ID),
		"addComment":         fmt.Sprintf(`mutation { addComment(taskId: %q, body: "x") { _id } }`, task.ID),
		"deleteComment":      `mutation { deleteComment(commentId: "x") { _id } }`,
		"addLoggedTime":      fmt.Sprintf(`mutation { addLoggedTime(loggedTimeInputs: {taskId: %q, description: "x", hours: 1}) { _id } }`, task.ID),
		"deleteLoggedTime":   `mutation { deleteLoggedTime(loggedTimeId: "x") { _id } }`,
	}

	before, err := env.store.GetStats(context.Background())
	require.NoError(t, err)

	for name, query := range operations {
		t.Run(name, func(t *testing.T) {
			res := env.exec(anonymous(), query, nil)
			assert.Equal(t, "UNAUTHENTICATED", errorCode(t, res))
		})
	}

	after, err := env.store.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rowCounts(before), rowCounts(after), "no mutation may happen without a session")
}

func TestAddUserAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	res := env.exec(anonymous(), `mutation($u: NewUserInput!) {
		addUser(newUser: $u) { token user { _id email role } }
	}`, map[string]interface{}{
		"u": map[string]interface{}{"name": "Alice", "email": "alice@example.com", "password": "hunter22"},
	})
	payload := data(t, res)["addUser"].(map[string]interface{})
	user := payload["user"].(map[string]interface{})
	assert.Equal(t, "OWNER", user["role"])

	claims, err := env.tokens.Verify(payload["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["_id"], claims.Subject)

	res = env.exec(anonymous(), `mutation { login(email: "alice@example.com", password: "hunter22") { token user { _id } } }`, nil)
	login := data(t, res)["login"].(map[string]interface{})
	assert.NotEmpty(t, login["token"])

	res = env.exec(anonymous(), `mutation { addUser(newUser: {name: "A", email: "alice@example.com", password: "another"}) { token } }`, nil)
	assert.Equal(t, "DUPLICATE_KEY", errorCode(t, res))
}

func TestLoginErrorsAreIdentical(t *testing.T) {
	env := newTestEnv(t, nil)
	env.user(t, "alice")

	wrongPassword := env.exec(anonymous(), `mutation { login(email: "alice@example.com", password: "nope") { token } }`, nil)
	unknownEmail := env.exec(anonymous(), `mutation { login(email: "nobody@example.com", password: "nope") { token } }`, nil)

	require.NotEmpty(t, wrongPassword.Errors)
	require.NotEmpty(t, unknownEmail.Errors)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, wrongPassword))
	assert.Equal(t, wrongPassword.Errors[0].Message, unknownEmail.Errors[0].Message)
	assert.Equal(t, wrongPassword.Errors[0].Extensions, unknownEmail.Errors[0].Extensions)
}

func TestAddProjectIsBidirectional(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")

	res := env.exec(as(alice), `mutation { addProject(projectInputs: {title: "Website"}) { _id title owners { _id } clients { _id } tasks { _id } } }`, nil)
	project := data(t, res)["addProject"].(map[string]interface{})
	assert.Equal(t, []string{alice.ID}, ids(project["owners"]))
	assert.Empty(t, ids(project["clients"]))

	res = env.exec(as(alice), `{ me { projects { _id } } myProjects { _id } }`, nil)
	d := data(t, res)
	assert.Equal(t, []string{project["_id"].(string)}, ids(d["me"].(map[string]interface{})["projects"]))
	assert.Equal(t, []string{project["_id"].(string)}, ids(d["myProjects"]))
}

func TestNonMemberIsForbidden(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	mallory := env.user(t, "mallory")
	project := env.project(t, alice, "Website")
	task := env.task(t, project, "Landing")

	operations := map[string]string{
		"project":            fmt.Sprintf(`{ project(_id: %q) { _id } }`, project.ID),
		"task":               fmt.Sprintf(`{ task(_id: %q) { _id } }`, task.ID),
		"updateProjectTitle": fmt.Sprintf(`mutation { updateProjectTitle(projectId: %q, title: "pwned") { _id } }`, project.ID),
		"addClientToProject": fmt.Sprintf(`mutation { addClientToProject(projectId: %q, clientInputs: {email: "mallory@example.com"}) { _id } }`, project.ID),
		"deleteProject":      fmt.Sprintf(`mutation { deleteProject(projectId: %q) { _id } }`, project.ID),
		"addTask":            fmt.Sprintf(`mutation { addTask(taskInputs: {projectId: %q, title: "x"}) { _id } }`, project.ID),
		"updateTask":         fmt.Sprintf(`mutation { updateTask(taskInputs: {taskId: %q, title: "x"}) { _id } }`, task.ID),
		"deleteTask":         fmt.Sprintf(`mutation { deleteTask(taskId: %q) { _id } }`, task.ID),
		"addComment":         fmt.Sprintf(`mutation { addComment(taskId: %q, body: "x") { _id } }`, task.ID),
		"addLoggedTime":      fmt.Sprintf(`mutation { addLoggedTime(loggedTimeInputs: {taskId: %q, description: "x", hours: 1}) { _id } }`, task.ID),
	}

	before, err := env.store.GetStats(context.Background())
	require.NoError(t, err)

	for name, query := range operations {
		t.Run(name, func(t *testing.T) {
			res := env.exec(as(mallory), query, nil)
			assert.Equal(t, "FORBIDDEN", errorCode(t, res))
		})
	}

	after, err := env.store.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rowCounts(before), rowCounts(after))

	stored, err := env.store.GetProject(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", stored.Title)
}

func TestMissingTargetIsNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")

	for _, query := range []string{
		`{ project(_id: "missing") { _id } }`,
		`{ task(_id: "missing") { _id } }`,
		`mutation { deleteProject(projectId: "missing") { _id } }`,
		`mutation { deleteComment(commentId: "missing") { _id } }`,
		`mutation { deleteLoggedTime(loggedTimeId: "missing") { _id } }`,
	} {
		res := env.exec(as(alice), query, nil)
		assert.Equal(t, "NOT_FOUND", errorCode(t, res), query)
	}
}

func TestAddTaskAppearsOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	project := env.project(t, alice, "Website")

	res := env.exec(as(alice), `mutation($in: AddTaskInput!) { addTask(taskInputs: $in) { _id status project { _id } } }`,
		map[string]interface{}{"in": map[string]interface{}{"projectId": project.ID, "title": "Landing", "status": "IN_PROGRESS"}})
	task := data(t, res)["addTask"].(map[string]interface{})
	assert.Equal(t, "IN_PROGRESS", task["status"])
	assert.Equal(t, project.ID, task["project"].(map[string]interface{})["_id"])

	res = env.exec(as(alice), fmt.Sprintf(`{ project(_id: %q) { tasks { _id } } }`, project.ID), nil)
	tasks := ids(data(t, res)["project"].(map[string]interface{})["tasks"])
	assert.Equal(t, []string{task["_id"].(string)}, tasks)
}

func TestClientTasksAreRequested(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")
	project := env.project(t, alice, "Website")
	env.client(t, project, carol)

	res := env.exec(as(carol), fmt.Sprintf(`mutation { addTask(taskInputs: {projectId: %q, title: "Dark mode", status: DONE}) { _id status } }`, project.ID), nil)
	task := data(t, res)["addTask"].(map[string]interface{})
	assert.Equal(t, "REQUESTED", task["status"])

	res = env.exec(as(carol), fmt.Sprintf(`mutation { updateTask(taskInputs: {taskId: %q, status: TODO}) { _id } }`, task["_id"]), nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	res = env.exec(as(alice), fmt.Sprintf(`mutation { updateTask(taskInputs: {taskId: %q, status: TODO, title: "Dark theme"}) { status title project { _id } } }`, task["_id"]), nil)
	updated := data(t, res)["updateTask"].(map[string]interface{})
	assert.Equal(t, "TODO", updated["status"])
	assert.Equal(t, "Dark theme", updated["title"])
	assert.Equal(t, project.ID, updated["project"].(map[string]interface{})["_id"])
}

func TestClientMayRenameProject(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")
	project := env.project(t, alice, "Website")
	env.client(t, project, carol)

	res := env.exec(as(carol), fmt.Sprintf(`mutation { updateProjectTitle(projectId: %q, title: "Site") { title } }`, project.ID), nil)
	assert.Equal(t, "Site", data(t, res)["updateProjectTitle"].(map[string]interface{})["title"])

	res = env.exec(as(carol), fmt.Sprintf(`mutation { addClientToProject(projectId: %q, clientInputs: {email: "dave@example.com", password: "secret"}) { _id } }`, project.ID), nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))
}

func TestAddClientToProject(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	project := env.project(t, alice, "Website")

	res := env.exec(as(alice), fmt.Sprintf(`mutation { addClientToProject(projectId: %q, clientInputs: {email: "dave@example.com"}) { _id } }`, project.ID), nil)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, res))

	res = env.exec(as(alice), fmt.Sprintf(`mutation { addClientToProject(projectId: %q, clientInputs: {name: "Dave", email: "dave@example.com", password: "secret"}) { clients { name email role } } }`, project.ID), nil)
	clients := data(t, res)["addClientToProject"].(map[string]interface{})["clients"].([]interface{})
	require.Len(t, clients, 1)
	dave := clients[0].(map[string]interface{})
	assert.Equal(t, "Dave", dave["name"])
	assert.Equal(t, "CLIENT", dave["role"])

	res = env.exec(anonymous(), `mutation { login(email: "dave@example.com", password: "secret") { user { _id } } }`, nil)
	assert.Empty(t, res.Errors)
}

func TestDeleteCommentOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")
	project := env.project(t, alice, "Website")
	env.client(t, project, carol)
	task := env.task(t, project, "Landing")

	res := env.exec(as(carol), fmt.Sprintf(`mutation { addComment(taskId: %q, body: "Can we use blue?") { _id body user { _id } } }`, task.ID), nil)
	comment := data(t, res)["addComment"].(map[string]interface{})
	assert.Equal(t, carol.ID, comment["user"].(map[string]interface{})["_id"])
	commentID := comment["_id"].(string)

	// the project owner is not the author
	res = env.exec(as(alice), fmt.Sprintf(`mutation { deleteComment(commentId: %q) { _id } }`, commentID), nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	_, err := env.store.GetComment(context.Background(), commentID)
	require.NoError(t, err, "comment must remain")

	res = env.exec(as(carol), fmt.Sprintf(`mutation { deleteComment(commentId: %q) { _id } }`, commentID), nil)
	data(t, res)

	res = env.exec(as(alice), fmt.Sprintf(`{ task(_id: %q) { comments { _id } } }`, task.ID), nil)
	assert.Empty(t, ids(data(t, res)["task"].(map[string]interface{})["comments"]))
}

func TestAddLoggedTimeParsesHours(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	project := env.project(t, alice, "Website")
	task := env.task(t, project, "Landing")

	cases := []struct {
		literal string
		want    float64
	}{
		{`"abc"`, 0},
		{`"2.5"`, 2.5},
		{`1.25`, 1.25},
		{`3`, 3},
		{`"-4"`, 0},
	}
	for _, tc := range cases {
		query := fmt.Sprintf(`mutation { addLoggedTime(loggedTimeInputs: {taskId: %q, description: "work", hours: %s}) { hours user { _id } task { _id } } }`, task.ID, tc.literal)
		res := env.exec(as(alice), query, nil)
		entry := data(t, res)["addLoggedTime"].(map[string]interface{})
		assert.Equal(t, tc.want, entry["hours"], tc.literal)
		assert.Equal(t, alice.ID, entry["user"].(map[string]interface{})["_id"])
		assert.Equal(t, task.ID, entry["task"].(map[string]interface{})["_id"])
	}

	res := env.exec(as(alice), `mutation($in: LoggedTimeInput!) { addLoggedTime(loggedTimeInputs: $in) { hours date } }`,
		map[string]interface{}{"in": map[string]interface{}{
			"taskId":      task.ID,
			"description": "variables",
			"hours":       "not a number",
			"date":        "2024-03-01T09:00:00Z",
		}})
	entry := data(t, res)["addLoggedTime"].(map[string]interface{})
	assert.Equal(t, 0.0, entry["hours"])
	assert.Equal(t, "2024-03-01T09:00:00Z", entry["date"])

	res = env.exec(as(alice), fmt.Sprintf(`{ task(_id: %q) { totalHours timeLog { _id } } }`, task.ID), nil)
	got := data(t, res)["task"].(map[string]interface{})
	assert.InDelta(t, 6.75, got["totalHours"], 1e-9)
	assert.Len(t, got["timeLog"], 6)
}

func TestClientCannotLogTime(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")
	project := env.project(t, alice, "Website")
	env.client(t, project, carol)
	task := env.task(t, project, "Landing")

	res := env.exec(as(carol), fmt.Sprintf(`mutation { addLoggedTime(loggedTimeInputs: {taskId: %q, description: "x", hours: 1}) { _id } }`, task.ID), nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))
}

func TestDeleteLoggedTimeOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	project := env.project(t, alice, "Website")
	task := env.task(t, project, "Landing")

	entry, err := env.store.CreateLoggedTime(context.Background(), alice.ID, &models.LoggedTimeInput{TaskID: task.ID, Description: "x", Hours: 1})
	require.NoError(t, err)

	res := env.exec(as(bob), fmt.Sprintf(`mutation { deleteLoggedTime(loggedTimeId: %q) { _id } }`, entry.ID), nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	res = env.exec(as(alice), fmt.Sprintf(`mutation { deleteLoggedTime(loggedTimeId: %q) { _id hours } }`, entry.ID), nil)
	assert.Equal(t, entry.ID, data(t, res)["deleteLoggedTime"].(map[string]interface{})["_id"])

	_, err = env.store.GetLoggedTime(context.Background(), entry.ID)
	assert.Error(t, err)
}

func TestDeleteProjectScenario(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")

	res := env.exec(as(alice), `mutation { addProject(projectInputs: {title: "P"}) { _id } }`, nil)
	projectID := data(t, res)["addProject"].(map[string]interface{})["_id"].(string)

	res = env.exec(as(alice), fmt.Sprintf(`mutation { addClientToProject(projectId: %q, clientInputs: {email: "carol@example.com"}) { clients { _id } } }`, projectID), nil)
	assert.Equal(t, []string{carol.ID}, ids(data(t, res)["addClientToProject"].(map[string]interface{})["clients"]))

	res = env.exec(as(carol), fmt.Sprintf(`mutation { deleteProject(projectId: %q) { _id } }`, projectID), nil)
	assert.Equal(t, "FORBIDDEN", errorCode(t, res))

	res = env.exec(as(alice), fmt.Sprintf(`mutation { deleteProject(projectId: %q) { _id title } }`, projectID), nil)
	assert.Equal(t, "P", data(t, res)["deleteProject"].(map[string]interface{})["title"])

	res = env.exec(as(alice), fmt.Sprintf(`{ project(_id: %q) { _id } }`, projectID), nil)
	assert.Equal(t, "NOT_FOUND", errorCode(t, res))

	res = env.exec(as(carol), `{ myProjects { _id } }`, nil)
	assert.Empty(t, ids(data(t, res)["myProjects"]))
}

func TestDeleteProjectPassword(t *testing.T) {
	env := newTestEnv(t, &config.Config{RequirePasswordForDelete: true})
	alice := env.user(t, "alice")
	project := env.project(t, alice, "Website")

	res := env.exec(as(alice), fmt.Sprintf(`mutation { deleteProject(projectId: %q) { _id } }`, project.ID), nil)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, res))

	res = env.exec(as(alice), fmt.Sprintf(`mutation { deleteProject(projectId: %q, password: "wrong") { _id } }`, project.ID), nil)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, res))

	res = env.exec(as(alice), fmt.Sprintf(`mutation { deleteProject(projectId: %q, password: "password-alice") { _id } }`, project.ID), nil)
	data(t, res)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	env.user(t, "bob")

	res := env.exec(as(alice), `mutation { updateUser(userInputs: {name: "Alice L."}) { name email } }`, nil)
	updated := data(t, res)["updateUser"].(map[string]interface{})
	assert.Equal(t, "Alice L.", updated["name"])
	assert.Equal(t, "alice@example.com", updated["email"])

	res = env.exec(as(alice), `mutation { updateUser(userInputs: {email: "bob@example.com"}) { _id } }`, nil)
	assert.Equal(t, "DUPLICATE_KEY", errorCode(t, res))

	res = env.exec(as(alice), `mutation { updateUser(userInputs: {email: "nope"}) { _id } }`, nil)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, res))

	res = env.exec(as(alice), `mutation { deleteUser(password: "wrong") { _id } }`, nil)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, res))

	res = env.exec(as(alice), `mutation { deleteUser(password: "password-alice") { _id } }`, nil)
	assert.Equal(t, alice.ID, data(t, res)["deleteUser"].(map[string]interface{})["_id"])
}

func TestOtherUsersProjectsAreHidden(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	carol := env.user(t, "carol")
	shared := env.project(t, alice, "Shared")
	env.project(t, alice, "Private")
	env.client(t, shared, carol)

	res := env.exec(as(carol), fmt.Sprintf(`{ project(_id: %q) { owners { _id projects { _id } } } }`, shared.ID), nil)
	owners := data(t, res)["project"].(map[string]interface{})["owners"].([]interface{})
	require.Len(t, owners, 1)
	assert.Empty(t, ids(owners[0].(map[string]interface{})["projects"]))
}

func TestHealthAndStats(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")
	env.project(t, alice, "Website")

	res := env.exec(anonymous(), `{ health { status database } }`, nil)
	health := data(t, res)["health"].(map[string]interface{})
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, true, health["database"])

	res = env.exec(as(alice), `{ stats { users projects tasks } }`, nil)
	stats := data(t, res)["stats"].(map[string]interface{})
	assert.Equal(t, 1, stats["users"])
	assert.Equal(t, 1, stats["projects"])
	assert.Equal(t, 0, stats["tasks"])
}

type brokenStore struct {
	*store.Manager
}

func (b *brokenStore) GetStats(ctx context.Context) (*models.Stats, error) {
	return nil, fmt.Errorf("sqlite: disk I/O error (table users)")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.user(t, "alice")

	schema := newTestEnvWithStore(t, &brokenStore{Manager: env.store})
	res := graphql.Do(graphql.Params{
		Schema:        schema.GetSchema(),
		RequestString: `{ stats { users } }`,
		Context:       as(alice),
	})

	assert.Equal(t, "INTERNAL", errorCode(t, res))
	assert.NotContains(t, res.Errors[0].Message, "sqlite")
}

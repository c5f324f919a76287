package client

import (
	"context"
	"fmt"
	"time"
)

// User is a tracker account as returned by the API
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Projects  []Project `json:"projects,omitempty"`
}

// Auth is the result of signing up or logging in
type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Project is a project with its members and tasks
type Project struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Owners    []User    `json:"owners,omitempty"`
	Clients   []User    `json:"clients,omitempty"`
	Tasks     []Task    `json:"tasks,omitempty"`
}

// Task is a unit of work with its comments and time log
type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	TotalHours  float64      `json:"totalHours"`
	Comments    []Comment    `json:"comments,omitempty"`
	TimeLog     []LoggedTime `json:"timeLog,omitempty"`
}

// Comment is a note on a task
type Comment struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	User      *User     `json:"user,omitempty"`
}

// LoggedTime is a time log entry on a task
type LoggedTime struct {
	ID          string    `json:"_id"`
	Description string    `json:"description"`
	Hours       float64   `json:"hours"`
	Date        time.Time `json:"date"`
	User        *User     `json:"user,omitempty"`
}

// ClientInput describes the client to add to a project.
// Name and Password only matter when the email is not registered yet.
type ClientInput struct {
	Name     string
	Email    string
	Password string
}

// TaskInput describes a new task. Status may be left empty.
type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      string
}

// LoggedTimeInput describes a time log entry. A nil Date means now.
type LoggedTimeInput struct {
	TaskID      string
	Description string
	Hours       float64
	Date        *time.Time
}

const userFields = `_id name email role createdAt`

const projectFields = `
	_id
	title
	createdAt
	owners { ` + userFields + ` }
	clients { ` + userFields + ` }
	tasks { _id title description status createdAt totalHours }
`

const taskFields = `
	_id
	title
	description
	status
	createdAt
	totalHours
	comments { _id body createdAt user { ` + userFields + ` } }
	timeLog { _id description hours date user { ` + userFields + ` } }
`

// ============================================================================
// ACCOUNT OPERATIONS
// ============================================================================

// Signup creates an account and returns its session
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Auth, error) {
	query := `
		mutation AddUser($newUser: NewUserInput!) {
			addUser(newUser: $newUser) { token user { ` + userFields + ` } }
		}
	`
	vars := map[string]interface{}{
		"newUser": map[string]interface{}{
			"name":     name,
			"email":    email,
			"password": password,
		},
	}

	var data struct {
		AddUser *Auth `json:"addUser"`
	}
	if err := c.doGraphQLRequest(ctx, query, vars, nil, &data); err != nil {
		return nil, err
	}
	if data.AddUser == nil {
		return nil, fmt.Errorf("empty addUser response")
	}
	return data.AddUser, nil
}

// Login exchanges email and password for a session
func (c *Client) Login(ctx context.Context, email, password string) (*Auth, error) {
	query := `
		mutation Login($email: String!, $password: String!) {
			login(email: $email, password: $password) { token user { ` + userFields + ` } }
		}
	`
	vars := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var data struct {
		Login *Auth `json:"login"`
	}
	if err := c.doGraphQLRequest(ctx, query, vars, nil, &data); err != nil {
		return nil, err
	}
	if data.Login == nil {
		return nil, fmt.Errorf("empty login response")
	}
	return data.Login, nil
}

// Me returns the authenticated user with their projects
func (c *Client) Me(ctx context.Context, creds Credentials) (*User, error) {
	query := `
		query Me {
			me { ` + userFields + ` projects { _id title createdAt } }
		}
	`

	var data struct {
		Me *User `json:"me"`
	}
	if err := c.doGraphQLRequest(ctx, query, nil, &creds, &data); err != nil {
		return nil, err
	}
	if data.Me == nil {
		return nil, fmt.Errorf("user not found")
	}
	return data.Me, nil
}

// ============================================================================
// PROJECT OPERATIONS
// ============================================================================

// MyProjects lists the projects the caller is a member of
func (c *Client) MyProjects(ctx context.Context, creds Credentials) ([]Project, error) {
	query := `
		query MyProjects {
			myProjects { ` + projectFields + ` }
		}
	`

	var data struct {
		MyProjects []Project `json:"myProjects"`
	}
	if err := c.doGraphQLRequest(ctx, query, nil, &creds, &data); err != nil {
		return nil, err
	}
	return data.MyProjects, nil
}

// Project fetches one project by ID
func (c *Client) Project(ctx context.Context, creds Credentials, id string) (*Project, error) {
	query := `
		query Project($id: ID!) {
			project(_id: $id) { ` + projectFields + ` }
		}
	`

	var data struct {
		Project *Project `json:"project"`
	}
	if err := c.doGraphQLRequest(ctx, query, map[string]interface{}{"id": id}, &creds, &data); err != nil {
		return nil, err
	}
	if data.Project == nil {
		return nil, fmt.Errorf("project not found")
	}
	return data.Project, nil
}

// AddProject creates a project owned by the caller
func (c *Client) AddProject(ctx context.Context, creds Credentials, title string) (*Project, error) {
	query := `
		mutation AddProject($input: ProjectInput!) {
			addProject(projectInputs: $input) { ` + projectFields + ` }
		}
	`
	vars := map[string]interface{}{
		"input": map[string]interface{}{"title": title},
	}

	var data struct {
		AddProject *Project `json:"addProject"`
	}
	if err := c.doGraphQLRequest(ctx, query, vars, &creds, &data); err != nil {
		return nil, err
	}
	if data.AddProject == nil {
		return nil, fmt.Errorf("empty addProject response")
	}
	return data.AddProject, nil
}

// AddClient adds a client to a project, registering them if needed
func (c *Client) AddClient(ctx context.Context, creds Credentials, projectID string, input ClientInput) (*Project, error) {
	query := `
		mutation AddClient($projectId: ID!, $input: ClientInput!) {
			addClientToProject(projectId: $projectId, clientInputs: $input) { ` + projectFields + ` }
		}
	`
	clientInput := map[string]interface{}{"email": input.Email}
	if input.Name != "" {
		clientInput["name"] = input.Name
	}
	if input.Password != "" {
		clientInput["password"] = input.Password
	}
	vars := map[string]interface{}{
		"projectId": projectID,
		"input":     clientInput,
	}

	var data struct {
		AddClientToProject *Project `json:"addClientToProject"`
	}
	if err := c.doGraphQLRequest(ctx, query, vars, &creds, &data); err != nil {
		return nil, err
	}
	if data.AddClientToProject == nil {
		return nil, fmt.Errorf("empty addClientToProject response")
	}
	return data.AddClientToProject, nil
}

// DeleteProject deletes a project and everything in it.
// An empty password is omitted from the request.
func (c *Client) DeleteProject(ctx context.Context, creds Credentials, projectID, password string) (*Project, error) {
	query := `
		mutation DeleteProject($projectId: ID!, $password: String) {
			deleteProject(projectId: $projectId, password: $password) { _id title }
		}
	`
	vars := map[string]interface{}{"projectId": projectID}
	if password != "" {
		vars["password"] = password
	}

	var data struct {
		DeleteProject *Project `json:"deleteProject"`
	}
	if err := c.doGraphQLRequest(ctx, query, vars, &creds, &data); err != nil {
		return nil, err
	}
	if data.DeleteProject == nil {
		return nil, fmt.Errorf("empty deleteProject response")
	}
	return data.DeleteProject, nil
}

// ============================================================================
// TASK OPERATIONS
// ============================================================================

// AddTask creates a task in a project
func (c *Client) AddTask(ctx context.Context, creds Credentials, input TaskInput) (*Task, error) {
	query := `
		mutation AddTask($input: AddTaskInput!) {
			addTask(taskInputs: $input) { ` + taskFields + ` }
		}
	`
	taskInput := map[string]interface{}{
		"projectId": input.ProjectID,
		"title":     input.Title,
	}
	if input.Description != "" {
		taskInput["description"] = input.Description
	}
	if input.Status != "" {
		taskInput["status"] = input.Status
	}

	var data struct {
		AddTask *Task `json:"addTask"`
	}
	if err := c.doGraphQLRequest(ctx, query, map[string]interface{}{"input": taskInput}, &creds, &data); err != nil {
		return nil, err
	}
	if data.AddTask == nil {
		return nil, fmt.Errorf("empty addTask response")
	}
	return data.AddTask, nil
}

// Task fetches one task with its comments and time log
func (c *Client) Task(ctx context.Context, creds Credentials, id string) (*Task, error) {
	query := `
		query Task($id: ID!) {
			task(_id: $id) { ` + taskFields + ` }
		}
	`

	var data struct {
		Task *Task `json:"task"`
	}
	if err := c.doGraphQLRequest(ctx, query, map[string]interface{}{"id": id}, &creds, &data); err != nil {
		return nil, err
	}
	if data.Task == nil {
		return nil, fmt.Errorf("task not found")
	}
	return data.Task, nil
}

// AddComment posts a comment on a task
func (c *Client) AddComment(ctx context.Context, creds Credentials, taskID, body string) (*Comment, error) {
	query := `
		mutation AddComment($taskId: ID!, $body: String!) {
			addComment(taskId: $taskId, body: $body) { _id body createdAt user { ` + userFields + ` } }
		}
	`
	vars := map[string]interface{}{
		"taskId": taskID,
		"body":   body,
	}

	var data struct {
		AddComment *Comment `json:"addComment"`
	}
	if err := c.doGraphQLRequest(ctx, query, vars, &creds, &data); err != nil {
		return nil, err
	}
	if data.AddComment == nil {
		return nil, fmt.Errorf("empty addComment response")
	}
	return data.AddComment, nil
}

// AddLoggedTime records hours against a task
func (c *Client) AddLoggedTime(ctx context.Context, creds Credentials, input LoggedTimeInput) (*LoggedTime, error) {
	query := `
		mutation AddLoggedTime($input: LoggedTimeInput!) {
			addLoggedTime(loggedTimeInputs: $input) { _id description hours date user { ` + userFields + ` } }
		}
	`
	entry := map[string]interface{}{
		"taskId":      input.TaskID,
		"description": input.Description,
		"hours":       input.Hours,
	}
	if input.Date != nil {
		entry["date"] = input.Date.UTC().Format(time.RFC3339)
	}

	var data struct {
		AddLoggedTime *LoggedTime `json:"addLoggedTime"`
	}
	if err := c.doGraphQLRequest(ctx, query, map[string]interface{}{"input": entry}, &creds, &data); err != nil {
		return nil, err
	}
	if data.AddLoggedTime == nil {
		return nil, fmt.Errorf("empty addLoggedTime response")
	}
	return data.AddLoggedTime, nil
}

package prometheus

import (
	"context"

	"github.com/devplatform/tracker/internal/models"
)

// StoreInterface defines all methods from store.Manager that are used by GraphQL.
// This allows us to wrap the Manager with metrics collection
type StoreInterface interface {
	// ═══════════════════════════════════════════════════════════════════════════
	// USER OPERATIONS
	// ═══════════════════════════════════════════════════════════════════════════

	// CreateUser signs up a new user
	CreateUser(ctx context.Context, input *models.CreateUserInput) (*models.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id string) (*models.User, error)

	// Authenticate checks an email/password pair
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// VerifyPassword checks the password of an existing user
	VerifyPassword(ctx context.Context, userID, password string) error

	// UpdateUser applies a partial update to a user
	UpdateUser(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error)

	// DeleteUser removes a user and everything only they could reach
	DeleteUser(ctx context.Context, id, password string) (*models.User, error)

	// ListUserProjects returns the projects a user is a member of
	ListUserProjects(ctx context.Context, userID string) ([]*models.Project, error)

	// ═══════════════════════════════════════════════════════════════════════════
	// PROJECT OPERATIONS
	// ═══════════════════════════════════════════════════════════════════════════

	// CreateProject creates a project owned by ownerID
	CreateProject(ctx context.Context, ownerID string, input *models.ProjectInput) (*models.Project, error)

	// GetProject retrieves a project by id
	GetProject(ctx context.Context, id string) (*models.Project, error)

	// UpdateProjectTitle renames a project
	UpdateProjectTitle(ctx context.Context, id, title string) (*models.Project, error)

	// DeleteProject removes a project and its contents
	DeleteProject(ctx context.Context, id string) (*models.Project, error)

	// GetMemberRole returns the role a user holds on a project
	GetMemberRole(ctx context.Context, projectID, userID string) (models.Role, error)

	// ListProjectMembers returns the owners or clients of a project
	ListProjectMembers(ctx context.Context, projectID string, role models.Role) ([]*models.User, error)

	// AddClientToProject adds a client, creating the user if needed
	AddClientToProject(ctx context.Context, projectID string, input *models.ClientInput) (*models.Project, error)

	// ═══════════════════════════════════════════════════════════════════════════
	// TASK OPERATIONS
	// ═══════════════════════════════════════════════════════════════════════════

	// CreateTask creates a task in a project
	CreateTask(ctx context.Context, input *models.CreateTaskInput) (*models.Task, error)

	// GetTask retrieves a task by id
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// UpdateTask applies a partial update to a task
	UpdateTask(ctx context.Context, input *models.UpdateTaskInput) (*models.Task, error)

	// DeleteTask removes a task with its comments and time log
	DeleteTask(ctx context.Context, id string) (*models.Task, error)

	// ListProjectTasks returns a project's tasks
	ListProjectTasks(ctx context.Context, projectID string) ([]*models.Task, error)

	// TaskTotalHours sums the hours logged on a task
	TaskTotalHours(ctx context.Context, taskID string) (float64, error)

	// ═══════════════════════════════════════════════════════════════════════════
	// COMMENT & TIME LOG OPERATIONS
	// ═══════════════════════════════════════════════════════════════════════════

	// CreateComment adds a comment to a task
	CreateComment(ctx context.Context, taskID, userID, body string) (*models.Comment, error)

	// GetComment retrieves a comment by id
	GetComment(ctx context.Context, id string) (*models.Comment, error)

	// DeleteComment removes a comment
	DeleteComment(ctx context.Context, id string) (*models.Comment, error)

	// ListTaskComments returns a task's comments
	ListTaskComments(ctx context.Context, taskID string) ([]*models.Comment, error)

	// CreateLoggedTime records time spent on a task
	CreateLoggedTime(ctx context.Context, userID string, input *models.LoggedTimeInput) (*models.LoggedTime, error)

	// GetLoggedTime retrieves a time log entry by id
	GetLoggedTime(ctx context.Context, id string) (*models.LoggedTime, error)

	// DeleteLoggedTime removes a time log entry
	DeleteLoggedTime(ctx context.Context, id string) (*models.LoggedTime, error)

	// ListTaskLoggedTime returns a task's time log
	ListTaskLoggedTime(ctx context.Context, taskID string) ([]*models.LoggedTime, error)

	// ═══════════════════════════════════════════════════════════════════════════
	// HEALTH & STATS
	// ═══════════════════════════════════════════════════════════════════════════

	// HealthCheck pings the database
	HealthCheck(ctx context.Context) error

	// GetStats returns row counts and connection pool statistics
	GetStats(ctx context.Context) (*models.Stats, error)
}

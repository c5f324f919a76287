package prometheus

import (
	"context"
	"time"

	"github.com/devplatform/tracker/internal/models"
)

// StoreCollector wraps a StoreInterface and records metrics for all operations
type StoreCollector struct {
	next StoreInterface
}

// NewStoreCollector creates a new instrumented wrapper around a StoreInterface
func NewStoreCollector(next StoreInterface) *StoreCollector {
	return &StoreCollector{next: next}
}

// recordOperation records duration and count for an operation
func recordOperation(operation string, start time.Time, err error) {
	success := "true"
	if err != nil {
		success = "false"
	}

	OperationDuration.WithLabelValues(operation, success).Observe(time.Since(start).Seconds())
	OperationsTotal.WithLabelValues(operation, success).Inc()
}

// updateStatsMetrics updates entity and pool gauges from stats
func updateStatsMetrics(stats *models.Stats) {
	if stats == nil {
		return
	}
	EntitiesTotal.WithLabelValues("user").Set(float64(stats.Users))
	EntitiesTotal.WithLabelValues("project").Set(float64(stats.Projects))
	EntitiesTotal.WithLabelValues("task").Set(float64(stats.Tasks))
	EntitiesTotal.WithLabelValues("comment").Set(float64(stats.Comments))
	EntitiesTotal.WithLabelValues("logged_time").Set(float64(stats.LoggedTimes))
	PoolOpenConnections.Set(float64(stats.OpenConnections))
	PoolInUseConnections.Set(float64(stats.InUse))
}

// updateEntityCounts refreshes the entity gauges.
// This is called after mutations to keep gauges up-to-date
func (c *StoreCollector) updateEntityCounts(ctx context.Context) {
	stats, err := c.next.GetStats(ctx)
	if err == nil {
		updateStatsMetrics(stats)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// USER OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════

func (c *StoreCollector) CreateUser(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	start := time.Now()
	user, err := c.next.CreateUser(ctx, input)
	recordOperation("create_user", start, err)

	if err == nil {
		UsersCreatedTotal.WithLabelValues(string(user.Role)).Inc()
		go c.updateEntityCounts(context.Background())
	}

	return user, err
}

func (c *StoreCollector) GetUser(ctx context.Context, id string) (*models.User, error) {
	start := time.Now()
	user, err := c.next.GetUser(ctx, id)
	recordOperation("get_user", start, err)
	return user, err
}

func (c *StoreCollector) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	start := time.Now()
	user, err := c.next.Authenticate(ctx, email, password)

	// Record auth-specific metrics
	AuthDuration.Observe(time.Since(start).Seconds())

	success := "true"
	if err != nil {
		success = "false"
	}
	AuthAttemptsTotal.WithLabelValues(success).Inc()

	recordOperation("authenticate", start, err)
	return user, err
}

func (c *StoreCollector) VerifyPassword(ctx context.Context, userID, password string) error {
	start := time.Now()
	err := c.next.VerifyPassword(ctx, userID, password)
	recordOperation("verify_password", start, err)
	return err
}

func (c *StoreCollector) UpdateUser(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error) {
	start := time.Now()
	user, err := c.next.UpdateUser(ctx, id, input)
	recordOperation("update_user", start, err)

	if err == nil {
		UsersUpdatedTotal.Inc()
	}

	return user, err
}

func (c *StoreCollector) DeleteUser(ctx context.Context, id, password string) (*models.User, error) {
	start := time.Now()
	user, err := c.next.DeleteUser(ctx, id, password)
	recordOperation("delete_user", start, err)

	if err == nil {
		UsersDeletedTotal.Inc()
		go c.updateEntityCounts(context.Background())
	}

	return user, err
}

func (c *StoreCollector) ListUserProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	start := time.Now()
	projects, err := c.next.ListUserProjects(ctx, userID)
	recordOperation("list_user_projects", start, err)
	return projects, err
}

// ═══════════════════════════════════════════════════════════════════════════
// PROJECT OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════

func (c *StoreCollector) CreateProject(ctx context.Context, ownerID string, input *models.ProjectInput) (*models.Project, error) {
	start := time.Now()
	project, err := c.next.CreateProject(ctx, ownerID, input)
	recordOperation("create_project", start, err)

	if err == nil {
		ProjectsCreatedTotal.Inc()
		go c.updateEntityCounts(context.Background())
	}

	return project, err
}

func (c *StoreCollector) GetProject(ctx context.Context, id string) (*models.Project, error) {
	start := time.Now()
	project, err := c.next.GetProject(ctx, id)
	recordOperation("get_project", start, err)
	return project, err
}

func (c *StoreCollector) UpdateProjectTitle(ctx context.Context, id, title string) (*models.Project, error) {
	start := time.Now()
	project, err := c.next.UpdateProjectTitle(ctx, id, title)
	recordOperation("update_project_title", start, err)
	return project, err
}

func (c *StoreCollector) DeleteProject(ctx context.Context, id string) (*models.Project, error) {
	start := time.Now()
	project, err := c.next.DeleteProject(ctx, id)
	recordOperation("delete_project", start, err)

	if err == nil {
		ProjectsDeletedTotal.Inc()
		go c.updateEntityCounts(context.Background())
	}

	return project, err
}

func (c *StoreCollector) GetMemberRole(ctx context.Context, projectID, userID string) (models.Role, error) {
	start := time.Now()
	role, err := c.next.GetMemberRole(ctx, projectID, userID)
	recordOperation("get_member_role", start, err)
	return role, err
}

func (c *StoreCollector) ListProjectMembers(ctx context.Context, projectID string, role models.Role) ([]*models.User, error) {
	start := time.Now()
	users, err := c.next.ListProjectMembers(ctx, projectID, role)
	recordOperation("list_project_members", start, err)
	return users, err
}

func (c *StoreCollector) AddClientToProject(ctx context.Context, projectID string, input *models.ClientInput) (*models.Project, error) {
	start := time.Now()
	project, err := c.next.AddClientToProject(ctx, projectID, input)
	recordOperation("add_client_to_project", start, err)

	if err == nil {
		ClientsAddedTotal.Inc()
		go c.updateEntityCounts(context.Background())
	}

	return project, err
}

// ═══════════════════════════════════════════════════════════════════════════
// TASK OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════

func (c *StoreCollector) CreateTask(ctx context.Context, input *models.CreateTaskInput) (*models.Task, error) {
	start := time.Now()
	task, err := c.next.CreateTask(ctx, input)
	recordOperation("create_task", start, err)

	if err == nil {
		TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
		go c.updateEntityCounts(context.Background())
	}

	return task, err
}

func (c *StoreCollector) GetTask(ctx context.Context, id string) (*models.Task, error) {
	start := time.Now()
	task, err := c.next.GetTask(ctx, id)
	recordOperation("get_task", start, err)
	return task, err
}

func (c *StoreCollector) UpdateTask(ctx context.Context, input *models.UpdateTaskInput) (*models.Task, error) {
	start := time.Now()
	task, err := c.next.UpdateTask(ctx, input)
	recordOperation("update_task", start, err)
	return task, err
}

func (c *StoreCollector) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	start := time.Now()
	task, err := c.next.DeleteTask(ctx, id)
	recordOperation("delete_task", start, err)

	if err == nil {
		TasksDeletedTotal.Inc()
		go c.updateEntityCounts(context.Background())
	}

	return task, err
}

func (c *StoreCollector) ListProjectTasks(ctx context.Context, projectID string) ([]*models.Task, error) {
	start := time.Now()
	tasks, err := c.next.ListProjectTasks(ctx, projectID)
	recordOperation("list_project_tasks", start, err)
	return tasks, err
}

func (c *StoreCollector) TaskTotalHours(ctx context.Context, taskID string) (float64, error) {
	start := time.Now()
	total, err := c.next.TaskTotalHours(ctx, taskID)
	recordOperation("task_total_hours", start, err)
	return total, err
}

// ═══════════════════════════════════════════════════════════════════════════
// COMMENT & TIME LOG OPERATIONS
// ═══════════════════════════════════════════════════════════════════════════

func (c *StoreCollector) CreateComment(ctx context.Context, taskID, userID, body string) (*models.Comment, error) {
	start := time.Now()
	comment, err := c.next.CreateComment(ctx, taskID, userID, body)
	recordOperation("create_comment", start, err)

	if err == nil {
		CommentsTotal.WithLabelValues("create").Inc()
	}

	return comment, err
}

func (c *StoreCollector) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	start := time.Now()
	comment, err := c.next.GetComment(ctx, id)
	recordOperation("get_comment", start, err)
	return comment, err
}

func (c *StoreCollector) DeleteComment(ctx context.Context, id string) (*models.Comment, error) {
	start := time.Now()
	comment, err := c.next.DeleteComment(ctx, id)
	recordOperation("delete_comment", start, err)

	if err == nil {
		CommentsTotal.WithLabelValues("delete").Inc()
	}

	return comment, err
}

func (c *StoreCollector) ListTaskComments(ctx context.Context, taskID string) ([]*models.Comment, error) {
	start := time.Now()
	comments, err := c.next.ListTaskComments(ctx, taskID)
	recordOperation("list_task_comments", start, err)
	return comments, err
}

func (c *StoreCollector) CreateLoggedTime(ctx context.Context, userID string, input *models.LoggedTimeInput) (*models.LoggedTime, error) {
	start := time.Now()
	entry, err := c.next.CreateLoggedTime(ctx, userID, input)
	recordOperation("create_logged_time", start, err)

	if err == nil {
		HoursLoggedTotal.Add(entry.Hours)
	}

	return entry, err
}

func (c *StoreCollector) GetLoggedTime(ctx context.Context, id string) (*models.LoggedTime, error) {
	start := time.Now()
	entry, err := c.next.GetLoggedTime(ctx, id)
	recordOperation("get_logged_time", start, err)
	return entry, err
}

func (c *StoreCollector) DeleteLoggedTime(ctx context.Context, id string) (*models.LoggedTime, error) {
	start := time.Now()
	entry, err := c.next.DeleteLoggedTime(ctx, id)
	recordOperation("delete_logged_time", start, err)
	return entry, err
}

func (c *StoreCollector) ListTaskLoggedTime(ctx context.Context, taskID string) ([]*models.LoggedTime, error) {
	start := time.Now()
	entries, err := c.next.ListTaskLoggedTime(ctx, taskID)
	recordOperation("list_task_logged_time", start, err)
	return entries, err
}

// ═══════════════════════════════════════════════════════════════════════════
// HEALTH & STATS
// ═══════════════════════════════════════════════════════════════════════════

func (c *StoreCollector) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.next.HealthCheck(ctx)
	recordOperation("health_check", start, err)
	return err
}

func (c *StoreCollector) GetStats(ctx context.Context) (*models.Stats, error) {
	stats, err := c.next.GetStats(ctx)
	if err == nil {
		updateStatsMetrics(stats)
	}
	return stats, err
}

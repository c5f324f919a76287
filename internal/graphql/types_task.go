package graphql

import (
	"github.com/devplatform/tracker/internal/models"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// defineTaskType defines the Task GraphQL type
func (s *Schema) defineTaskType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"_id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: TaskStatusEnum},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})
}

// addTaskRelations adds the parent project, comments and time log to Task
func (s *Schema) addTaskRelations(taskType, projectType, commentType, loggedTimeType *graphql.Object) {
	taskType.AddFieldConfig("project", &graphql.Field{
		Type:    projectType,
		Resolve: s.safe(s.resolveTaskProject),
	})
	taskType.AddFieldConfig("comments", &graphql.Field{
		Type:    graphql.NewList(commentType),
		Resolve: s.safe(s.resolveTaskComments),
	})
	taskType.AddFieldConfig("timeLog", &graphql.Field{
		Type:    graphql.NewList(loggedTimeType),
		Resolve: s.safe(s.resolveTaskTimeLog),
	})
	taskType.AddFieldConfig("totalHours", &graphql.Field{
		Type:        HoursScalar,
		Description: "Sum of all hours logged on the task",
		Resolve:     s.safe(s.resolveTaskTotalHours),
	})
}

// defineAddTaskInput defines the AddTaskInput GraphQL input type
func (s *Schema) defineAddTaskInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"projectId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: TaskStatusEnum},
		},
	})
}

// defineUpdateTaskInput defines the UpdateTaskInput GraphQL input type.
// The parent project cannot be changed.
func (s *Schema) defineUpdateTaskInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"taskId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: TaskStatusEnum},
		},
	})
}

// ============================================================================
// TASK QUERY RESOLVERS
// ============================================================================

func (s *Schema) resolveTask(p graphql.ResolveParams) (interface{}, error) {
	task, _, err := s.requireTaskMember(p.Context, p.Args["_id"].(string))
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Schema) resolveTaskProject(p graphql.ResolveParams) (interface{}, error) {
	task, ok := p.Source.(*models.Task)
	if !ok {
		return nil, nil
	}
	return s.store.GetProject(p.Context, task.ProjectID)
}

func (s *Schema) resolveTaskComments(p graphql.ResolveParams) (interface{}, error) {
	task, ok := p.Source.(*models.Task)
	if !ok {
		return nil, nil
	}
	return s.store.ListTaskComments(p.Context, task.ID)
}

func (s *Schema) resolveTaskTimeLog(p graphql.ResolveParams) (interface{}, error) {
	task, ok := p.Source.(*models.Task)
	if !ok {
		return nil, nil
	}
	return s.store.ListTaskLoggedTime(p.Context, task.ID)
}

func (s *Schema) resolveTaskTotalHours(p graphql.ResolveParams) (interface{}, error) {
	task, ok := p.Source.(*models.Task)
	if !ok {
		return nil, nil
	}
	return s.store.TaskTotalHours(p.Context, task.ID)
}

// ============================================================================
// TASK MUTATION RESOLVERS
// ============================================================================

func (s *Schema) resolveAddTask(p graphql.ResolveParams) (interface{}, error) {
	inputMap := p.Args["taskInputs"].(map[string]interface{})
	projectID := stringField(inputMap, "projectId")

	userID, role, err := s.requireMember(p.Context, projectID)
	if err != nil {
		return nil, err
	}

	input := &models.CreateTaskInput{
		ProjectID:   projectID,
		Title:       stringField(inputMap, "title"),
		Description: stringField(inputMap, "description"),
	}
	if status, ok := inputMap["status"].(models.TaskStatus); ok {
		input.Status = status
	}

	// Clients can only request work
	if role == models.RoleClient {
		input.Status = models.TaskRequested
	}

	s.logger.WithFields(logrus.Fields{
		"user":    userID,
		"project": projectID,
		"role":    role,
	}).Debug("Adding task")

	return s.store.CreateTask(p.Context, input)
}

func (s *Schema) resolveUpdateTask(p graphql.ResolveParams) (interface{}, error) {
	inputMap := p.Args["taskInputs"].(map[string]interface{})
	taskID := stringField(inputMap, "taskId")

	if _, _, err := s.requireTaskOwner(p.Context, taskID); err != nil {
		return nil, err
	}

	input := &models.UpdateTaskInput{TaskID: taskID}
	if title, ok := inputMap["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := inputMap["description"].(string); ok {
		input.Description = &description
	}
	if status, ok := inputMap["status"].(models.TaskStatus); ok {
		input.Status = &status
	}

	return s.store.UpdateTask(p.Context, input)
}

func (s *Schema) resolveDeleteTask(p graphql.ResolveParams) (interface{}, error) {
	taskID := p.Args["taskId"].(string)

	if _, _, err := s.requireTaskOwner(p.Context, taskID); err != nil {
		return nil, err
	}
	return s.store.DeleteTask(p.Context, taskID)
}

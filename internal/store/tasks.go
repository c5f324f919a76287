package store

import (
	"context"
	"fmt"

	"github.com/devplatform/tracker/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateTask creates a task in a project. The task row carries the project
// reference, so creating it is also what attaches it to the project.
func (m *Manager) CreateTask(ctx context.Context, input *models.CreateTaskInput) (*models.Task, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.TaskTodo
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, "id = ?", input.ProjectID).Error; err != nil {
			return translate(err, "Project")
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, translate(err, "Task")
	}

	m.logger.WithFields(logrus.Fields{
		"task":    task.ID,
		"project": task.ProjectID,
	}).Info("Task created")
	return task, nil
}

// GetTask retrieves a task by id
func (m *Manager) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := m.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Task")
	}
	return &task, nil
}

// UpdateTask applies a partial update. The project reference never changes.
func (m *Manager) UpdateTask(ctx context.Context, input *models.UpdateTaskInput) (*models.Task, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", input.TaskID).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&task).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err, "Task")
	}

	m.logger.WithField("task", input.TaskID).Info("Task updated")
	return m.GetTask(ctx, input.TaskID)
}

// DeleteTask removes a task with its comments and time log
func (m *Manager) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	var deleted models.Task

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return deleteTasksTx(tx, []string{id})
	})
	if err != nil {
		return nil, translate(err, "Task")
	}

	m.logger.WithFields(logrus.Fields{
		"task":    id,
		"project": deleted.ProjectID,
	}).Info("Task deleted")
	return &deleted, nil
}

// ListProjectTasks returns a project's tasks in creation order
func (m *Manager) ListProjectTasks(ctx context.Context, projectID string) ([]*models.Task, error) {
	var tasks []*models.Task
	err := m.db.WithContext(ctx).Where("project_id = ?", projectID).Order("rowid").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// TaskTotalHours sums the hours logged on a task
func (m *Manager) TaskTotalHours(ctx context.Context, taskID string) (float64, error) {
	var total float64
	err := m.db.WithContext(ctx).
		Model(&models.LoggedTime{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum logged time: %w", err)
	}
	return total, nil
}

// deleteTasksTx removes tasks along with their comments and time log
func deleteTasksTx(tx *gorm.DB, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.LoggedTime{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}

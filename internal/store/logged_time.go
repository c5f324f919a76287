package store

import (
	"context"
	"fmt"
	"time"

	"github.com/devplatform/tracker/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateLoggedTime records time spent by userID on a task
func (m *Manager) CreateLoggedTime(ctx context.Context, userID string, input *models.LoggedTimeInput) (*models.LoggedTime, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	entry := &models.LoggedTime{
		TaskID:      input.TaskID,
		UserID:      userID,
		Description: input.Description,
		Hours:       input.Hours,
		Date:        date,
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Task{}, "id = ?", input.TaskID).Error; err != nil {
			return translate(err, "Task")
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, translate(err, "Logged time")
	}

	m.logger.WithFields(logrus.Fields{
		"loggedTime": entry.ID,
		"task":       entry.TaskID,
		"hours":      entry.Hours,
	}).Info("Time logged")
	return entry, nil
}

// GetLoggedTime retrieves a time log entry by id
func (m *Manager) GetLoggedTime(ctx context.Context, id string) (*models.LoggedTime, error) {
	var entry models.LoggedTime
	if err := m.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Logged time")
	}
	return &entry, nil
}

// DeleteLoggedTime removes a time log entry
func (m *Manager) DeleteLoggedTime(ctx context.Context, id string) (*models.LoggedTime, error) {
	var deleted models.LoggedTime

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.LoggedTime{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "Logged time")
	}

	m.logger.WithField("loggedTime", id).Info("Logged time deleted")
	return &deleted, nil
}

// ListTaskLoggedTime returns a task's time log in the order it was recorded
func (m *Manager) ListTaskLoggedTime(ctx context.Context, taskID string) ([]*models.LoggedTime, error) {
	var entries []*models.LoggedTime
	err := m.db.WithContext(ctx).Where("task_id = ?", taskID).Order("rowid").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list logged time: %w", err)
	}
	return entries, nil
}

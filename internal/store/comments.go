package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateComment adds a comment by userID to a task
func (m *Manager) CreateComment(ctx context.Context, taskID, userID, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperr.ErrValidation(map[string]string{"body": "is required"})
	}

	comment := &models.Comment{
		TaskID: taskID,
		UserID: userID,
		Body:   body,
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Task{}, "id = ?", taskID).Error; err != nil {
			return translate(err, "Task")
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, translate(err, "Comment")
	}

	m.logger.WithFields(logrus.Fields{
		"comment": comment.ID,
		"task":    taskID,
		"user":    userID,
	}).Info("Comment created")
	return comment, nil
}

// GetComment retrieves a comment by id
func (m *Manager) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := m.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Comment")
	}
	return &comment, nil
}

// DeleteComment removes a comment, detaching it from its task
func (m *Manager) DeleteComment(ctx context.Context, id string) (*models.Comment, error) {
	var deleted models.Comment

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "Comment")
	}

	m.logger.WithField("comment", id).Info("Comment deleted")
	return &deleted, nil
}

// ListTaskComments returns a task's comments in the order they were written
func (m *Manager) ListTaskComments(ctx context.Context, taskID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := m.db.WithContext(ctx).Where("task_id = ?", taskID).Order("rowid").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

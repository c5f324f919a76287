package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateProject creates a project with ownerID as its first owner
func (m *Manager) CreateProject(ctx context.Context, ownerID string, input *models.ProjectInput) (*models.Project, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	project := &models.Project{Title: input.Title}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.User{}, "id = ?", ownerID).Error; err != nil {
			return translate(err, "User")
		}
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		return addMemberTx(tx, project.ID, ownerID, models.RoleOwner)
	})
	if err != nil {
		return nil, translate(err, "Project")
	}

	m.logger.WithFields(logrus.Fields{
		"project": project.ID,
		"owner":   ownerID,
	}).Info("Project created")
	return project, nil
}

// GetProject retrieves a project by id
func (m *Manager) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := m.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Project")
	}
	return &project, nil
}

// UpdateProjectTitle renames a project
func (m *Manager) UpdateProjectTitle(ctx context.Context, id, title string) (*models.Project, error) {
	if err := models.Validate(&models.ProjectInput{Title: title}); err != nil {
		return nil, err
	}

	res := m.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Update("title", title)
	if res.Error != nil {
		return nil, translate(res.Error, "Project")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound("Project")
	}

	m.logger.WithField("project", id).Info("Project title updated")
	return m.GetProject(ctx, id)
}

// DeleteProject removes a project together with its tasks, their comments and
// time log, and all memberships
func (m *Manager) DeleteProject(ctx context.Context, id string) (*models.Project, error) {
	var deleted models.Project

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return deleteProjectTx(tx, id)
	})
	if err != nil {
		return nil, translate(err, "Project")
	}

	m.logger.WithField("project", id).Info("Project deleted")
	return &deleted, nil
}

// GetMemberRole returns the role userID holds on projectID, or "" if none
func (m *Manager) GetMemberRole(ctx context.Context, projectID, userID string) (models.Role, error) {
	var member models.ProjectMember
	err := m.db.WithContext(ctx).First(&member, "project_id = ? AND user_id = ?", projectID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up membership: %w", err)
	}
	return member.Role, nil
}

// ListProjectMembers returns the users holding role on a project, in the order they were added
func (m *Manager) ListProjectMembers(ctx context.Context, projectID string, role models.Role) ([]*models.User, error) {
	var users []*models.User
	err := m.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN project_members ON project_members.user_id = users.id").
		Where("project_members.project_id = ? AND project_members.role = ?", projectID, role).
		Order("project_members.rowid").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return users, nil
}

// AddClientToProject makes the user with the given email a client of the
// project, creating that user first if needed. Existing members keep their role.
func (m *Manager) AddClientToProject(ctx context.Context, projectID string, input *models.ClientInput) (*models.Project, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	var clientID string
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, "id = ?", projectID).Error; err != nil {
			return err
		}

		var client models.User
		err := tx.First(&client, "email = ?", input.Email).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created, err := m.newClientUser(tx, input)
			if err != nil {
				return err
			}
			client = *created
		case err != nil:
			return err
		}

		clientID = client.ID
		return addMemberTx(tx, projectID, client.ID, models.RoleClient)
	})
	if err != nil {
		return nil, translate(err, "Project")
	}

	m.logger.WithFields(logrus.Fields{
		"project": projectID,
		"client":  clientID,
	}).Info("Client added to project")
	return m.GetProject(ctx, projectID)
}

func (m *Manager) newClientUser(tx *gorm.DB, input *models.ClientInput) (*models.User, error) {
	if input.Password == "" {
		return nil, apperr.ErrValidation(map[string]string{"password": "is required for a new user"})
	}

	hash, err := m.passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	name := input.Name
	if name == "" {
		name = strings.SplitN(input.Email, "@", 2)[0]
	}

	user := &models.User{
		Name:         name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleClient,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// addMemberTx inserts a membership row; an existing membership is left untouched
func addMemberTx(tx *gorm.DB, projectID, userID string, role models.Role) error {
	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error
}

// deleteProjectTx removes a project and everything that hangs off it
func deleteProjectTx(tx *gorm.DB, projectID string) error {
	var taskIDs []string
	if err := tx.Model(&models.Task{}).Where("project_id = ?", projectID).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := deleteTasksTx(tx, taskIDs); err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Project{}, "id = ?", projectID).Error
}

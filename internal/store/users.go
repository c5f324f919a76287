package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateUser signs up a new user with a hashed password
func (m *Manager) CreateUser(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	hash, err := m.passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleOwner,
	}

	if err := m.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err, "User")
	}

	m.logger.WithField("user", user.ID).Info("User created")
	return user, nil
}

// GetUser retrieves a user by id
func (m *Manager) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := m.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "User")
	}
	return &user, nil
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords produce the same InvalidCredentials error.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := m.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrInvalidCredentials()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := m.passwords.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrInvalidCredentials()
	}
	return &user, nil
}

// VerifyPassword checks the password of an existing user
func (m *Manager) VerifyPassword(ctx context.Context, userID, password string) error {
	user, err := m.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	ok, err := m.passwords.Compare(user.PasswordHash, password)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrInvalidCredentials()
	}
	return nil
}

// UpdateUser applies a partial update to a user
func (m *Manager) UpdateUser(ctx context.Context, id string, input *models.UpdateUserInput) (*models.User, error) {
	if err := models.Validate(input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Password != nil {
		hash, err := m.passwords.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		if email, ok := updates["email"].(string); ok && email != user.Email {
			var taken int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				return apperr.ErrDuplicateKey("Email")
			}
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, translate(err, "User")
	}

	m.logger.WithField("user", id).Info("User updated")
	return m.GetUser(ctx, id)
}

// DeleteUser removes a user after checking their password. Their memberships,
// comments and time entries go with them, and projects they owned alone are
// deleted along with everything under them.
func (m *Manager) DeleteUser(ctx context.Context, id, password string) (*models.User, error) {
	var deleted models.User

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}

		ok, err := m.passwords.Compare(deleted.PasswordHash, password)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ErrInvalidCredentials()
		}

		orphaned, err := soleOwnedProjects(tx, id)
		if err != nil {
			return err
		}
		for _, projectID := range orphaned {
			if err := deleteProjectTx(tx, projectID); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.LoggedTime{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "User")
	}

	m.logger.WithField("user", id).Info("User deleted")
	return &deleted, nil
}

// ListUserProjects returns the projects a user owns or is a client on, in the order they joined
func (m *Manager) ListUserProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	var projects []*models.Project
	err := m.db.WithContext(ctx).
		Select("projects.*").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("project_members.rowid").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for user: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"user":  userID,
		"count": len(projects),
	}).Debug("Listed user projects")
	return projects, nil
}

// soleOwnedProjects returns ids of projects where userID is the only owner
func soleOwnedProjects(tx *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := tx.Model(&models.ProjectMember{}).
		Where("user_id = ? AND role = ?", userID, models.RoleOwner).
		Where("NOT EXISTS (SELECT 1 FROM project_members other WHERE other.project_id = project_members.project_id AND other.role = ? AND other.user_id <> ?)", models.RoleOwner, userID).
		Pluck("project_id", &ids).Error
	return ids, err
}

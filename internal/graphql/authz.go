package graphql

import (
	"context"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/models"
)

// Access to a project is scoped by membership: owners and clients may read and
// comment, only owners may change tasks, clients, time logs or the project
// itself. Task, comment and time log checks go through the task's project.
// Missing targets are reported before scope.

// requireUser returns the id of the authenticated user
func (s *Schema) requireUser(ctx context.Context) (string, error) {
	userID := auth.GetUserFromContext(ctx)
	if userID == "" {
		return "", apperr.ErrUnauthenticated()
	}
	return userID, nil
}

// requireMember checks that the requester is an owner or client of the project
func (s *Schema) requireMember(ctx context.Context, projectID string) (string, models.Role, error) {
	userID, err := s.requireUser(ctx)
	if err != nil {
		return "", "", err
	}

	if _, err := s.store.GetProject(ctx, projectID); err != nil {
		return "", "", err
	}

	role, err := s.store.GetMemberRole(ctx, projectID, userID)
	if err != nil {
		return "", "", err
	}
	if role == "" {
		return "", "", apperr.ErrForbidden()
	}
	return userID, role, nil
}

// requireOwner checks that the requester is an owner of the project
func (s *Schema) requireOwner(ctx context.Context, projectID string) (string, error) {
	userID, role, err := s.requireMember(ctx, projectID)
	if err != nil {
		return "", err
	}
	if role != models.RoleOwner {
		return "", apperr.ErrForbidden()
	}
	return userID, nil
}

// requireTaskMember loads a task and checks membership on its project
func (s *Schema) requireTaskMember(ctx context.Context, taskID string) (*models.Task, string, error) {
	if _, err := s.requireUser(ctx); err != nil {
		return nil, "", err
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, "", err
	}

	userID, _, err := s.requireMember(ctx, task.ProjectID)
	if err != nil {
		return nil, "", err
	}
	return task, userID, nil
}

// requireTaskOwner loads a task and checks ownership of its project
func (s *Schema) requireTaskOwner(ctx context.Context, taskID string) (*models.Task, string, error) {
	if _, err := s.requireUser(ctx); err != nil {
		return nil, "", err
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, "", err
	}

	userID, err := s.requireOwner(ctx, task.ProjectID)
	if err != nil {
		return nil, "", err
	}
	return task, userID, nil
}

// requireAuthor checks that the requester wrote the entry. There is no owner override.
func requireAuthor(requesterID, authorID string) error {
	if requesterID != authorID {
		return apperr.ErrForbidden()
	}
	return nil
}

// Package seed applies bootstrap users and projects to an empty or
// partially populated store. Applying the same data twice is a no-op.
package seed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devplatform/tracker/internal/apperr"
	"github.com/devplatform/tracker/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Store is the subset of the tracker store the seeder writes through
type Store interface {
	CreateUser(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ListUserProjects(ctx context.Context, userID string) ([]*models.Project, error)
	CreateProject(ctx context.Context, ownerID string, input *models.ProjectInput) (*models.Project, error)
	AddClientToProject(ctx context.Context, projectID string, input *models.ClientInput) (*models.Project, error)
	CreateTask(ctx context.Context, input *models.CreateTaskInput) (*models.Task, error)
}

// Seeder handles bootstrap data
type Seeder struct {
	store  Store
	logger *logrus.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(store Store, logger *logrus.Logger) *Seeder {
	return &Seeder{
		store:  store,
		logger: logger,
	}
}

// Apply creates the users and projects in data that do not exist yet.
// Individual failures are logged and counted; they do not stop the run.
func (s *Seeder) Apply(ctx context.Context, data *Data) (*Result, error) {
	result := &Result{}
	if data == nil {
		return result, nil
	}

	s.logger.WithFields(logrus.Fields{
		"users":    len(data.Users),
		"projects": len(data.Projects),
		"hash":     ComputeHash(data),
	}).Info("Applying seed data")

	// Create users
	users := make(map[string]*models.User, len(data.Users))
	for _, u := range data.Users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		user, created, err := s.ensureUser(ctx, u)
		if err != nil {
			result.Failed++
			s.logger.WithError(err).WithField("email", u.Email).Warn("Failed to seed user")
			continue
		}
		if created {
			result.UsersCreated++
		}
		users[strings.ToLower(user.Email)] = user
	}

	// Create projects
	for _, p := range data.Projects {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := s.ensureProject(ctx, p, users, result); err != nil {
			result.Failed++
			s.logger.WithError(err).WithField("project", p.Title).Warn("Failed to seed project")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"users_created":    result.UsersCreated,
		"projects_created": result.ProjectsCreated,
		"clients_added":    result.ClientsAdded,
		"tasks_created":    result.TasksCreated,
		"failed":           result.Failed,
	}).Info("Seed data applied")
	return result, nil
}

// ensureUser registers u, or logs in as u when the email is taken
func (s *Seeder) ensureUser(ctx context.Context, u User) (*models.User, bool, error) {
	user, err := s.store.CreateUser(ctx, &models.CreateUserInput{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	})
	if err == nil {
		s.logger.WithField("email", user.Email).Info("Seeded user")
		return user, true, nil
	}
	if !apperr.IsKind(err, apperr.DuplicateKey) {
		return nil, false, err
	}

	existing, err := s.store.Authenticate(ctx, u.Email, u.Password)
	if err != nil {
		return nil, false, fmt.Errorf("user exists with a different password: %w", err)
	}
	s.logger.WithField("email", existing.Email).Debug("User already exists, skipping")
	return existing, false, nil
}

// ensureProject creates p unless its owner already has a project with the same title
func (s *Seeder) ensureProject(ctx context.Context, p Project, users map[string]*models.User, result *Result) error {
	owner, ok := users[strings.ToLower(p.Owner)]
	if !ok {
		return fmt.Errorf("owner %q is not a seeded user", p.Owner)
	}

	existing, err := s.store.ListUserProjects(ctx, owner.ID)
	if err != nil {
		return err
	}
	for _, project := range existing {
		if project.Title == p.Title {
			s.logger.WithField("project", p.Title).Debug("Project already exists, skipping")
			return nil
		}
	}

	project, err := s.store.CreateProject(ctx, owner.ID, &models.ProjectInput{Title: p.Title})
	if err != nil {
		return err
	}
	result.ProjectsCreated++

	for _, email := range p.Clients {
		if _, ok := users[strings.ToLower(email)]; !ok {
			result.Failed++
			s.logger.WithField("client", email).Warn("Client is not a seeded user, skipping")
			continue
		}
		if _, err := s.store.AddClientToProject(ctx, project.ID, &models.ClientInput{Email: email}); err != nil {
			result.Failed++
			s.logger.WithError(err).WithField("client", email).Warn("Failed to add client")
			continue
		}
		result.ClientsAdded++
	}

	for _, t := range p.Tasks {
		_, err := s.store.CreateTask(ctx, &models.CreateTaskInput{
			ProjectID:   project.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      models.TaskStatus(strings.ToUpper(t.Status)),
		})
		if err != nil {
			result.Failed++
			s.logger.WithError(err).WithField("task", t.Title).Warn("Failed to create task")
			continue
		}
		result.TasksCreated++
	}

	s.logger.WithFields(logrus.Fields{
		"project": project.ID,
		"title":   project.Title,
		"owner":   owner.Email,
	}).Info("Seeded project")
	return nil
}

// Parse decodes seed data. Files ending in .yaml or .yml are read as YAML,
// everything else as JSON.
func Parse(name string, raw []byte) (*Data, error) {
	var data Data
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
		}
	}
	return &data, nil
}

// LoadFile reads and parses a seed file
func LoadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(path, raw)
}

// ComputeHash computes a short hash of the seed data for change detection
func ComputeHash(data *Data) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:8]) // First 8 bytes as hex
}

// DemoData returns a small data set for local development
func DemoData() *Data {
	return &Data{
		Users: []User{
			{Name: "Olivia Owner", Email: "owner@tracker.local", Password: "password123"},
			{Name: "Chris Client", Email: "client@tracker.local", Password: "password123"},
		},
		Projects: []Project{
			{
				Title:   "Company website",
				Owner:   "owner@tracker.local",
				Clients: []string{"client@tracker.local"},
				Tasks: []Task{
					{Title: "Landing page", Description: "Hero, pricing and footer", Status: "IN_PROGRESS"},
					{Title: "Contact form", Status: "TODO"},
					{Title: "Blog section", Description: "Requested by the client", Status: "REQUESTED"},
				},
			},
			{
				Title: "Internal tooling",
				Owner: "owner@tracker.local",
				Tasks: []Task{
					{Title: "Time report export", Status: "DONE"},
				},
			},
		},
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role classifies a user or a project membership
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleClient Role = "CLIENT"
)

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	TaskRequested  TaskStatus = "REQUESTED"
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// User is a person who owns projects or is a client on them
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"_id"`
	Name         string    `gorm:"not null;size:120" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:320" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Project groups tasks and the users allowed to see them
type Project struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	Title     string    `gorm:"not null;size:200" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProjectMember links a user to a project as owner or client.
// One row backs both project.owners/clients and user.projects.
type ProjectMember struct {
	ProjectID string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"primaryKey;size:36;index"`
	Role      Role      `gorm:"size:16;not null"`
	CreatedAt time.Time
}

// Task is a unit of work inside a project
type Task struct {
	ID          string     `gorm:"primaryKey;size:36" json:"_id"`
	ProjectID   string     `gorm:"<-:create;size:36;not null;index" json:"projectId"`
	Title       string     `gorm:"not null;size:200" json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Comment is a note left on a task
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	TaskID    string    `gorm:"<-:create;size:36;not null;index" json:"taskId"`
	UserID    string    `gorm:"<-:create;size:36;not null;index" json:"userId"`
	Body      string    `gorm:"not null" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// LoggedTime is an entry in a task's time log
type LoggedTime struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	TaskID      string    `gorm:"<-:create;size:36;not null;index" json:"taskId"`
	UserID      string    `gorm:"<-:create;size:36;not null;index" json:"userId"`
	Description string    `gorm:"not null" json:"description"`
	Hours       float64   `gorm:"not null;default:0" json:"hours"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (l *LoggedTime) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// CreateUserInput contains fields for signing up
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=5,max=72"`
}

// UpdateUserInput contains fields for updating the current user
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=5,max=72"`
}

// ProjectInput contains fields for creating a project
type ProjectInput struct {
	Title string `json:"title" validate:"required,max=200"`
}

// ClientInput identifies a client to add to a project.
// Name and Password are only used when no user with Email exists yet.
type ClientInput struct {
	Name     string `json:"name" validate:"max=120"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"omitempty,min=5,max=72"`
}

// CreateTaskInput contains fields for creating a task
type CreateTaskInput struct {
	ProjectID   string     `json:"projectId" validate:"required"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" validate:"omitempty,oneof=REQUESTED TODO IN_PROGRESS DONE"`
}

// UpdateTaskInput contains fields for updating a task. The project is not updatable.
type UpdateTaskInput struct {
	TaskID      string      `json:"taskId" validate:"required"`
	Title       *string     `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty" validate:"omitempty,oneof=REQUESTED TODO IN_PROGRESS DONE"`
}

// LoggedTimeInput contains fields for logging time on a task
type LoggedTimeInput struct {
	TaskID      string     `json:"taskId" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Hours       float64    `json:"hours" validate:"gte=0"`
	Date        *time.Time `json:"date,omitempty"`
}

// AuthPayload is returned after signup or login
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Stats contains store row counts and pool statistics
type Stats struct {
	Users           int64 `json:"users"`
	Projects        int64 `json:"projects"`
	Tasks           int64 `json:"tasks"`
	Comments        int64 `json:"comments"`
	LoggedTimes     int64 `json:"loggedTimes"`
	OpenConnections int   `json:"openConnections"`
	InUse           int   `json:"inUse"`
}

// HealthStatus represents the health status of the service
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Database  bool   `json:"database"`
}

// Package storage defines the persistence ports used by the services.
// Adapters live in the subpackages: postgres for the primary store,
// memory for an in-process store, rediscache for a read-through cache
// layered over another TaskStore.
package storage

import (
	"context"
	"errors"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type TaskStore interface {
	// CreateTask persists a new task and returns it with the
	// store-assigned ID.
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetTask returns the task with the given ID or ErrTaskNotFound.
	GetTask(ctx context.Context, id int64) (*models.Task, error)

	// ListTasks returns tasks matching the query, ordered and paginated.
	// An empty result is a valid result, not an error.
	ListTasks(ctx context.Context, q taskquery.Query) ([]models.Task, error)

	// UpdateTask writes the full task row and returns the stored
	// representation, or ErrTaskNotFound if the ID is unknown.
	UpdateTask(ctx context.Context, task *models.Task) (*models.Task, error)

	// DeleteTask removes the task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id int64) error
}

type UserStore interface {
	// CreateUser persists a new user. Returns ErrUsernameTaken when the
	// username is already in use.
	CreateUser(ctx context.Context, user *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

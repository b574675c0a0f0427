package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nlitvinov/go-task-api/internal/models"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = errors.New("username already taken")
)

// ValidationError marks a rejected payload. The message is safe to
// return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type TaskService interface {
	// CreateTask validates the payload, assigns server-side fields and
	// persists the task. Missing title or due date, or an out-of-range
	// priority or status, yield a *ValidationError.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTask returns the task or ErrTaskNotFound. A non-numeric id is
	// treated as an unknown id.
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// ListTasks validates the query parameters and returns the
	// filtered, ordered, paginated collection. An unrecognized sortBy
	// fails open to natural order; an unrecognized status or order is
	// a *ValidationError.
	ListTasks(ctx context.Context, params ListTasksParams) ([]models.Task, error)

	// UpdateTask applies the supplied fields to the stored task,
	// re-validates the merged result and persists it all-or-nothing.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task or returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id string) error
}

type AuthService interface {
	// Login verifies the credentials and mints an access/refresh token
	// pair. Unknown username and wrong password both return
	// ErrInvalidCredentials.
	Login(ctx context.Context, params LoginParams) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Register creates a user with a hashed password. Returns
	// ErrUsernameTaken when the username is in use.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Authenticate resolves an access token to the user it was issued
	// for, or returns ErrInvalidToken.
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

type CreateTaskParams struct {
	Title       string
	Description *string
	DueDate     time.Time
	Priority    *int
	Status      *string
}

type UpdateTaskParams struct {
	ID          string
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *int
	Status      *string
}

type ListTasksParams struct {
	Status  *string
	SortBy  string
	Order   string
	Page    int
	PerPage int
}

type LoginParams struct {
	Username string
	Password string
}

type RegisterParams struct {
	Username string
	Password string
}

type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

package v1

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/services"
)

type Handler interface {
	HandleListTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleHealth(c *gin.Context)
}

// Pinger reports backing-store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
	auth   services.AuthService
	env    string
	db     Pinger
	// cache is nil when the redis cache is disabled.
	cache Pinger
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	authService services.AuthService,
	env string,
	db Pinger,
	cache Pinger,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
		auth:   authService,
		env:    env,
		db:     db,
		cache:  cache,
	}
}

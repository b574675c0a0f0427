package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/services"
)

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    int       `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	resp := taskResponse{
		ID:        strconv.FormatInt(task.ID, 10),
		Title:     task.Title,
		DueDate:   task.DueDate,
		Priority:  task.Priority,
		Status:    task.Status,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.Description != "" {
		resp.Description = &task.Description
	}
	return resp
}

type listTasksQuery struct {
	Status  *string `form:"status"`
	SortBy  string  `form:"sortBy"`
	Order   string  `form:"order"`
	Page    int     `form:"page"`
	PerPage int     `form:"perPage"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	var query listTasksQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError("Invalid query parameters"))
		return
	}

	tasks, err := h.tasks.ListTasks(c, services.ListTasksParams{
		Status:  query.Status,
		SortBy:  query.SortBy,
		Order:   query.Order,
		Page:    query.Page,
		PerPage: query.PerPage,
	})
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}

	response := make([]taskResponse, len(tasks))
	for i := range tasks {
		response[i] = newTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c, c.Param("id"))
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date" binding:"required"`
	Priority    *int       `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Invalid request body"))
		return
	}

	params := services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		params.DueDate = *req.DueDate
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

type updateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("Invalid request body"))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, c.Param("id"))
	if err != nil {
		abortServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskStore
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStore,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	now := time.Now()
	task := models.Task{
		Title:     params.Title,
		DueDate:   params.DueDate,
		Priority:  models.PriorityLow,
		Status:    models.StatusIncomplete,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.Status != nil {
		task.Status = *params.Status
	}

	err := validateTask(&task)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Msg("rejected task payload")
		return nil, err
	}

	created, err := s.tasks.CreateTask(ctx, &task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", created.ID).
		Msg("created task")
	return created, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*models.Task, error) {
	taskID, err := parseTaskID(id)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, s.mapStoreError(err, taskID)
	}
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) ([]models.Task, error) {
	q := taskquery.Query{
		SortBy:  params.SortBy,
		Order:   params.Order,
		Page:    params.Page,
		PerPage: params.PerPage,
	}

	if params.Status != nil {
		if !models.ValidStatus(*params.Status) {
			return nil, newValidationError("Status is not included in the list")
		}
		q.Status = *params.Status
	}
	if q.Order != "" && q.Order != taskquery.OrderAsc && q.Order != taskquery.OrderDesc {
		return nil, newValidationError("Order must be asc or desc")
	}

	tasks, err := s.tasks.ListTasks(ctx, q)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")

	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	taskID, err := parseTaskID(params.ID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, s.mapStoreError(err, taskID)
	}

	merged := *task
	if params.Title != nil {
		merged.Title = *params.Title
	}
	if params.Description != nil {
		merged.Description = *params.Description
	}
	if params.DueDate != nil {
		merged.DueDate = *params.DueDate
	}
	if params.Priority != nil {
		merged.Priority = *params.Priority
	}
	if params.Status != nil {
		merged.Status = *params.Status
	}

	// All-or-nothing: nothing is written unless the merged row passes
	// the same checks as create.
	err = validateTask(&merged)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Int64("task_id", taskID).
			Msg("rejected task update")
		return nil, err
	}

	updated, err := s.tasks.UpdateTask(ctx, &merged)
	if err != nil {
		return nil, s.mapStoreError(err, taskID)
	}

	s.logger.Info().
		Int64("task_id", updated.ID).
		Msg("updated task")
	return updated, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	taskID, err := parseTaskID(id)
	if err != nil {
		return err
	}

	err = s.tasks.DeleteTask(ctx, taskID)
	if err != nil {
		return s.mapStoreError(err, taskID)
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) mapStoreError(err error, taskID int64) error {
	if errors.Is(err, storage.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	s.logger.Error().
		Err(err).
		Int64("task_id", taskID).
		Msg("task store failure")
	return err
}

// parseTaskID treats a malformed id the same as an unknown one.
func parseTaskID(id string) (int64, error) {
	taskID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, ErrTaskNotFound
	}
	return taskID, nil
}

func validateTask(task *models.Task) error {
	if task.Title == "" {
		return newValidationError("Title can't be blank")
	}
	if task.DueDate.IsZero() {
		return newValidationError("Due date can't be blank")
	}
	if !models.ValidPriority(task.Priority) {
		return newValidationError("Priority is not included in the list")
	}
	if !models.ValidStatus(task.Status) {
		return newValidationError("Status is not included in the list")
	}
	return nil
}

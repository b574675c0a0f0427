package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

type TaskStore struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskStore(logger zerolog.Logger, pgPool *pgxpool.Pool) *TaskStore {
	return &TaskStore{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *TaskStore) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	stored := *task

	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   due_date,
                   priority,
                   status,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		stored.Title,
		stored.Description,
		stored.DueDate,
		stored.Priority,
		stored.Status,
		stored.CreatedAt,
		stored.UpdatedAt,
	).Scan(&stored.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", stored.ID).
		Msg("inserted task")

	return &stored, nil
}

func (s *TaskStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{ID: id}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       due_date,
       priority,
       status,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to select task by id")
		return nil, err
	}

	return task, nil
}

func (s *TaskStore) ListTasks(ctx context.Context, q taskquery.Query) ([]models.Task, error) {
	q = q.Normalize()

	selectQuery := `
SELECT id,
       title,
       description,
       due_date,
       priority,
       status,
       created_at,
       updated_at
FROM tasks
`
	args := make([]any, 0, 3)
	if q.Status != "" {
		args = append(args, q.Status)
		selectQuery += fmt.Sprintf("WHERE status = $%d\n", len(args))
	}
	selectQuery += "ORDER BY " + orderByClause(q) + "\n"

	args = append(args, q.PerPage)
	selectQuery += fmt.Sprintf("LIMIT $%d", len(args))
	args = append(args, (q.Page-1)*q.PerPage)
	selectQuery += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.pgPool.Query(ctx, selectQuery, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, q.PerPage)
	for rows.Next() {
		var task models.Task
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.Priority,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")

	return tasks, nil
}

// orderByClause maps the sort allow-list to columns. Unknown sort keys
// fall back to insertion order; the trailing id keeps equal keys stable.
func orderByClause(q taskquery.Query) string {
	var column string
	switch q.SortBy {
	case taskquery.SortByDueDate:
		column = "due_date"
	case taskquery.SortByPriority:
		column = "priority"
	default:
		return "id ASC"
	}

	direction := "ASC"
	if q.Order == taskquery.OrderDesc {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC"
}

func (s *TaskStore) UpdateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	stored := *task
	stored.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    due_date = $3,
    priority = $4,
    status = $5,
    updated_at = $6
WHERE id = $7
RETURNING created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		stored.Title,
		stored.Description,
		stored.DueDate,
		stored.Priority,
		stored.Status,
		stored.UpdatedAt,
		stored.ID,
	).Scan(&stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", stored.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", stored.ID).
		Msg("updated task")

	return &stored, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrTaskNotFound
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")

	return nil
}

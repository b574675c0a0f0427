package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage/memory"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

func newTaskService() TaskService {
	return NewTaskService(zerolog.Nop(), memory.NewTaskStore())
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreateTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:    "Learn Rails",
		DueDate:  time.Now().Add(7 * 24 * time.Hour),
		Priority: ptr(1),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusIncomplete, created.Status)
	assert.Equal(t, 1, created.Priority)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestCreateTaskValidation(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name    string
		params  CreateTaskParams
		message string
	}{
		{
			name:    "missing title",
			params:  CreateTaskParams{DueDate: due},
			message: "Title can't be blank",
		},
		{
			name:    "missing due date",
			params:  CreateTaskParams{Title: "budget review"},
			message: "Due date can't be blank",
		},
		{
			name:    "priority out of range",
			params:  CreateTaskParams{Title: "budget review", DueDate: due, Priority: ptr(5)},
			message: "Priority is not included in the list",
		},
		{
			name:    "unknown status",
			params:  CreateTaskParams{Title: "budget review", DueDate: due, Status: ptr("archived")},
			message: "Status is not included in the list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTaskService().CreateTask(context.Background(), tt.params)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, validationErr.Message)
		})
	}
}

func TestGetTaskAfterCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:   "file taxes",
		DueDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	got, err := svc.GetTask(ctx, strconv.FormatInt(created.ID, 10))
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetTaskNotFound(t *testing.T) {
	svc := newTaskService()

	_, err := svc.GetTask(context.Background(), "999")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = svc.GetTask(context.Background(), "not-a-number")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateTaskPartial(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:       "read book",
		Description: ptr("chapter three"),
		DueDate:     time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, UpdateTaskParams{
		ID:     strconv.FormatInt(created.ID, 10),
		Status: ptr(models.StatusComplete),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusComplete, updated.Status)
	assert.Equal(t, "read book", updated.Title)
	assert.Equal(t, "chapter three", updated.Description)
}

func TestUpdateTaskNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:    "plan trip",
		DueDate:  time.Now().Add(time.Hour),
		Priority: ptr(2),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTask(ctx, UpdateTaskParams{
		ID: strconv.FormatInt(created.ID, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.DueDate, updated.DueDate)
	assert.Equal(t, created.Priority, updated.Priority)
	assert.Equal(t, created.Status, updated.Status)
}

func TestUpdateTaskInvalidLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:    "fix bike",
		DueDate:  time.Now().Add(time.Hour),
		Priority: ptr(1),
	})
	require.NoError(t, err)
	id := strconv.FormatInt(created.ID, 10)

	_, err = svc.UpdateTask(ctx, UpdateTaskParams{
		ID:       id,
		Title:    ptr("fix car"),
		Priority: ptr(5),
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// No field was applied, including the valid title change.
	got, err := svc.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fix bike", got.Title)
	assert.Equal(t, 1, got.Priority)
}

func TestDeleteTaskThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	created, err := svc.CreateTask(ctx, CreateTaskParams{
		Title:   "cancel subscription",
		DueDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	id := strconv.FormatInt(created.ID, 10)

	require.NoError(t, svc.DeleteTask(ctx, id))

	_, err = svc.GetTask(ctx, id)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, id), ErrTaskNotFound)
}

func TestListTasksStatusPartition(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	statuses := []string{
		models.StatusIncomplete,
		models.StatusComplete,
		models.StatusIncomplete,
		models.StatusIncomplete,
		models.StatusComplete,
	}
	for i, status := range statuses {
		_, err := svc.CreateTask(ctx, CreateTaskParams{
			Title:   "task " + strconv.Itoa(i),
			DueDate: time.Now().Add(time.Duration(i) * time.Hour),
			Status:  ptr(status),
		})
		require.NoError(t, err)
	}

	all, err := svc.ListTasks(ctx, ListTasksParams{})
	require.NoError(t, err)

	incomplete, err := svc.ListTasks(ctx, ListTasksParams{Status: ptr(models.StatusIncomplete)})
	require.NoError(t, err)
	complete, err := svc.ListTasks(ctx, ListTasksParams{Status: ptr(models.StatusComplete)})
	require.NoError(t, err)

	assert.Len(t, all, len(statuses))
	assert.Equal(t, len(all), len(incomplete)+len(complete))
	for _, task := range incomplete {
		assert.Equal(t, models.StatusIncomplete, task.Status)
	}
}

func TestListTasksInvalidFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	_, err := svc.ListTasks(ctx, ListTasksParams{Status: ptr("done")})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.ListTasks(ctx, ListTasksParams{Order: "sideways"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestListTasksUnknownSortByFailsOpen(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateTask(ctx, CreateTaskParams{
			Title:   "task " + strconv.Itoa(i),
			DueDate: time.Now().Add(time.Duration(3-i) * time.Hour),
		})
		require.NoError(t, err)
	}

	tasks, err := svc.ListTasks(ctx, ListTasksParams{SortBy: "title"})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, "task "+strconv.Itoa(i), task.Title)
	}
}

func TestListTasksSorted(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	for _, hours := range []int{5, 1, 9} {
		_, err := svc.CreateTask(ctx, CreateTaskParams{
			Title:   "due in " + strconv.Itoa(hours),
			DueDate: time.Now().Add(time.Duration(hours) * time.Hour),
		})
		require.NoError(t, err)
	}

	tasks, err := svc.ListTasks(ctx, ListTasksParams{
		SortBy: taskquery.SortByDueDate,
		Order:  taskquery.OrderAsc,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i := 1; i < len(tasks); i++ {
		assert.False(t, tasks[i].DueDate.Before(tasks[i-1].DueDate))
	}
}

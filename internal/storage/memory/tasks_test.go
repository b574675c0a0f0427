package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

func TestTaskStoreCreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore()

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		task, err := store.CreateTask(ctx, &models.Task{
			Title:    "walk the dog",
			DueDate:  time.Now().Add(24 * time.Hour),
			Priority: models.PriorityLow,
			Status:   models.StatusIncomplete,
		})
		require.NoError(t, err)
		assert.NotZero(t, task.ID)
		assert.False(t, seen[task.ID], "id reused")
		seen[task.ID] = true
	}
}

func TestTaskStoreGetAfterCreate(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore()

	created, err := store.CreateTask(ctx, &models.Task{
		Title:    "water the plants",
		DueDate:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Priority: models.PriorityMedium,
		Status:   models.StatusIncomplete,
	})
	require.NoError(t, err)

	got, err := store.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTaskStoreGetUnknownID(t *testing.T) {
	store := NewTaskStore()

	_, err := store.GetTask(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestTaskStoreDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore()

	created, err := store.CreateTask(ctx, &models.Task{
		Title:   "take out trash",
		DueDate: time.Now(),
		Status:  models.StatusIncomplete,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteTask(ctx, created.ID))

	_, err = store.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	// Delete is not idempotent.
	assert.ErrorIs(t, store.DeleteTask(ctx, created.ID), storage.ErrTaskNotFound)
}

func TestTaskStoreUpdateUnknownID(t *testing.T) {
	store := NewTaskStore()

	_, err := store.UpdateTask(context.Background(), &models.Task{ID: 42, Title: "ghost"})
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestTaskStoreListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := store.CreateTask(ctx, &models.Task{
			Title:   title,
			DueDate: time.Now(),
			Status:  models.StatusIncomplete,
		})
		require.NoError(t, err)
	}

	tasks, err := store.ListTasks(ctx, taskquery.Query{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, title := range titles {
		assert.Equal(t, title, tasks[i].Title)
	}
}

// Package memory provides in-process implementations of the storage
// ports. The task store keeps insertion order, which is the natural
// order the query engine's fail-open sorting falls back to.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]models.Task
	order  []int64
	nextID int64
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[int64]models.Task),
		nextID: 1,
	}
}

func (s *TaskStore) CreateTask(_ context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *task
	stored.ID = s.nextID
	s.nextID++

	s.tasks[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return &stored, nil
}

func (s *TaskStore) GetTask(_ context.Context, id int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrTaskNotFound
	}
	return &task, nil
}

func (s *TaskStore) ListTasks(_ context.Context, q taskquery.Query) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.tasks[id])
	}
	return taskquery.Apply(all, q), nil
}

func (s *TaskStore) UpdateTask(_ context.Context, task *models.Task) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok {
		return nil, storage.ErrTaskNotFound
	}

	stored := *task
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	s.tasks[stored.ID] = stored
	return &stored, nil
}

func (s *TaskStore) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return storage.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

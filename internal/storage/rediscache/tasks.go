// Package rediscache layers a read-through Redis cache over a
// storage.TaskStore. Reads try the cache first and fall back to the
// wrapped store; mutations pass through and invalidate. Cache failures
// are logged and treated as misses so Redis being down never breaks a
// request.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
	"github.com/nlitvinov/go-task-api/internal/taskquery"
)

const (
	taskKeyPrefix  = "tasks:id:"
	listKeyPrefix  = "tasks:list:"
	listVersionKey = "tasks:ver"
)

type TaskStore struct {
	logger zerolog.Logger
	client *redis.Client
	next   storage.TaskStore
	ttl    time.Duration
}

func NewTaskStore(
	logger zerolog.Logger,
	client *redis.Client,
	next storage.TaskStore,
	ttl time.Duration,
) *TaskStore {
	return &TaskStore{
		logger: logger,
		client: client,
		next:   next,
		ttl:    ttl,
	}
}

func (s *TaskStore) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	created, err := s.next.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.invalidateLists(ctx)
	return created, nil
}

func (s *TaskStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	key := fmt.Sprintf("%s%d", taskKeyPrefix, id)

	var cached models.Task
	if s.get(ctx, key, &cached) {
		return &cached, nil
	}

	task, err := s.next.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, task)
	return task, nil
}

func (s *TaskStore) ListTasks(ctx context.Context, q taskquery.Query) ([]models.Task, error) {
	key := s.listKey(ctx, q)

	var cached []models.Task
	if s.get(ctx, key, &cached) {
		return cached, nil
	}

	tasks, err := s.next.ListTasks(ctx, q)
	if err != nil {
		return nil, err
	}
	s.set(ctx, key, tasks)
	return tasks, nil
}

func (s *TaskStore) UpdateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	updated, err := s.next.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.invalidateTask(ctx, updated.ID)
	s.invalidateLists(ctx)
	return updated, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, id int64) error {
	err := s.next.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	s.invalidateTask(ctx, id)
	s.invalidateLists(ctx)
	return nil
}

// listKey derives a cache key from the normalized query plus the
// current list version. Bumping the version on any mutation orphans
// every previously written list entry; the TTL reclaims them.
func (s *TaskStore) listKey(ctx context.Context, q taskquery.Query) string {
	q = q.Normalize()

	version, err := s.client.Get(ctx, listVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn().
			Err(err).
			Msg("failed to read list version")
	}
	return fmt.Sprintf("%s%d:%s:%s:%s:%d:%d",
		listKeyPrefix, version, q.Status, q.SortBy, q.Order, q.Page, q.PerPage)
}

func (s *TaskStore) get(ctx context.Context, key string, dest any) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().
				Err(err).
				Str("key", key).
				Msg("cache get failed")
		}
		return false
	}

	err = json.Unmarshal(data, dest)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("cache unmarshal failed")
		return false
	}
	return true
}

func (s *TaskStore) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("cache marshal failed")
		return
	}

	err = s.client.Set(ctx, key, data, s.ttl).Err()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("cache set failed")
	}
}

func (s *TaskStore) invalidateTask(ctx context.Context, id int64) {
	key := fmt.Sprintf("%s%d", taskKeyPrefix, id)
	err := s.client.Del(ctx, key).Err()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("cache delete failed")
	}
}

func (s *TaskStore) invalidateLists(ctx context.Context) {
	err := s.client.Incr(ctx, listVersionKey).Err()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to bump list version")
	}
}

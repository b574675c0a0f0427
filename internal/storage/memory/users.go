package memory

import (
	"context"
	"sync"

	"github.com/nlitvinov/go-task-api/internal/models"
	"github.com/nlitvinov/go-task-api/internal/storage"
)

type UserStore struct {
	mu     sync.RWMutex
	byID   map[string]models.User
	byName map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:   make(map[string]models.User),
		byName: make(map[string]string),
	}
}

func (s *UserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[user.Username]; ok {
		return storage.ErrUsernameTaken
	}
	s.byID[user.ID] = *user
	s.byName[user.Username] = user.ID
	return nil
}

func (s *UserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	user := s.byID[id]
	return &user, nil
}

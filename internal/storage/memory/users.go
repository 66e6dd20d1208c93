// Package memory keeps users and articles in process memory. Every write
// happens under the store mutex, so updates to one record are serialised.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/SergeyParamoshkin/articlefeed/internal/model"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]*model.User{}}
}

// Create assigns an id when u has none.
func (s *UserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return model.ErrUserExists
		}
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u.Clone()

	return nil
}

func (s *UserStore) Get(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	return u.Clone(), nil
}

func (s *UserStore) FindByLogin(_ context.Context, emailOrPhone string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == emailOrPhone || u.Phone == emailOrPhone {
			return u.Clone(), nil
		}
	}

	return nil, model.ErrUserNotFound
}

func (s *UserStore) Update(_ context.Context, id string, fn func(u *model.User) error) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id

	for otherID, other := range s.users {
		if otherID != id && (other.Email == next.Email || other.Phone == next.Phone) {
			return nil, model.ErrUserExists
		}
	}
	s.users[id] = next

	return next.Clone(), nil
}

// author returns the public author record, or a bare one for unknown ids.
func (s *UserStore) author(id string) model.Author {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return u.AsAuthor()
	}

	return model.Author{ID: id}
}

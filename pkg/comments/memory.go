package comments

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	comments map[string]Comment
	users    map[string]User
	assets   map[string]Asset
}

// NewMemoryStore creates an empty store. Use the Put methods to seed it.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		comments: make(map[string]Comment),
		users:    make(map[string]User),
		assets:   make(map[string]Asset),
	}
}

// PutComment adds or replaces a comment.
func (s *MemoryStore) PutComment(c Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = c
}

// PutUser adds or replaces a user.
func (s *MemoryStore) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.NotificationSettings = maps.Clone(u.NotificationSettings)
	s.users[u.ID] = u
}

// PutAsset adds or replaces an asset.
func (s *MemoryStore) PutAsset(a Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = a
}

func (s *MemoryStore) GetComment(_ context.Context, id string) (Comment, error) {
	return get(s, s.comments, id)
}

func (s *MemoryStore) GetUser(_ context.Context, id string) (User, error) {
	u, err := get(s, s.users, id)
	if err != nil {
		return User{}, err
	}
	u.NotificationSettings = maps.Clone(u.NotificationSettings)
	return u, nil
}

func (s *MemoryStore) GetAsset(_ context.Context, id string) (Asset, error) {
	return get(s, s.assets, id)
}

func (s *MemoryStore) DisableNotifications(_ context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.NotificationSettings = map[string]bool{}
	s.users[userID] = u
	return nil
}

func get[T any](s *MemoryStore, m map[string]T, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, ErrEmptyID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := m[id]
	if !ok {
		return zero, ErrNotFound
	}
	return v, nil
}

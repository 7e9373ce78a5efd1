package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asclegal/crm-api/internal/models"
)

// MemoryUserStore is an in-memory UserStore for tests and local runs
// without a database. Safe for concurrent use.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	s.users[user.ID.Hex()] = &clone
	s.byEmail[user.Email] = user.ID.Hex()
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *s.users[id]
	return &clone, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *MemoryUserStore) AppendHistory(_ context.Context, id string, event models.HistoryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.History = append(user.History, event)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/etudify/etudify-backend/models"
)

var _ UserStore = (*MemoryUserStore)(nil)

// MemoryUserStore is an in-memory UserStore used in tests and local
// development. Every call copies records in and out so callers never
// share memory with the store.
type MemoryUserStore struct {
	mu   sync.RWMutex
	byID map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byID: make(map[string]models.User)}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.byID {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		if u.Email == user.Email {
			return ErrConflict
		}
	}

	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.byID[user.ID.Hex()] = *copyUser(*user)
	return nil
}

func (s *MemoryUserStore) UpdateRefreshToken(_ context.Context, id string, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	if token != nil {
		value := *token
		u.RefreshToken = &value
	} else {
		u.RefreshToken = nil
	}
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}

func (s *MemoryUserStore) ClearRefreshTokenByValue(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.byID {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			u.RefreshToken = nil
			u.UpdatedAt = time.Now().UTC()
			s.byID[id] = u
		}
	}
	return nil
}

func copyUser(u models.User) *models.User {
	out := u
	if u.RefreshToken != nil {
		value := *u.RefreshToken
		out.RefreshToken = &value
	}
	return &out
}

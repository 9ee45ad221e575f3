package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"admingeo/internal/user/models"
	"admingeo/pkg/platform/sentinel"
)

// Memory is an in-memory twin of the Postgres store for unit tests.
type Memory struct {
	mu   sync.RWMutex
	seq  int64
	rows map[int64]*models.User
}

func NewMemory() *Memory {
	return &Memory{rows: make(map[int64]*models.User)}
}

func (s *Memory) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []models.User
	for _, u := range s.rows {
		if u.Deleted() {
			continue
		}
		cp := *u
		cp.Password = ""
		users = append(users, cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Memory) FindByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.rows[id]
	if !ok || u.Deleted() {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (s *Memory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *Memory) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.rows {
		if !u.Deleted() && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *Memory) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	for _, u := range s.rows {
		if !u.Deleted() && u.Email == user.Email {
			s.mu.Unlock()
			return nil, sentinel.ErrConflict
		}
	}
	s.seq++
	now := time.Now().UTC()
	cp := *user
	cp.ID = s.seq
	cp.IsActive = true
	cp.CreatedAt = now
	cp.UpdatedAt = now
	cp.DeletedAt = nil
	s.rows[cp.ID] = &cp
	s.mu.Unlock()
	return s.FindByID(ctx, cp.ID)
}

func (s *Memory) Update(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	cur, ok := s.rows[user.ID]
	if !ok || cur.Deleted() {
		s.mu.Unlock()
		return nil, sentinel.ErrNotFound
	}
	cp := *user
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	cp.DeletedAt = nil
	s.rows[cp.ID] = &cp
	s.mu.Unlock()
	return s.FindByID(ctx, user.ID)
}

func (s *Memory) SoftDelete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.rows[id]
	if !ok || u.Deleted() {
		return sentinel.ErrNotFound
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	u.UpdatedAt = now
	return nil
}

package users

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps users in process memory. Everything is lost on
// restart, which is what a local development backend wants.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*User
	byEmail map[string]int64
	nextID  int64
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[int64]*User),
		byEmail: make(map[string]int64),
		nextID:  1,
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, ErrAlreadyExists
	}

	u := user.clone()
	u.ID = r.nextID
	u.CreatedAt = r.now()
	r.nextID++

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID

	return u.clone(), nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return r.byID[id].clone(), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u.clone(), nil
}

// Update replaces the stored user with the same ID. The email is fixed at
// registration.
func (r *MemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}

	u := user.clone()
	u.Email = cur.Email
	u.CreatedAt = cur.CreatedAt
	r.byID[u.ID] = u
	return nil
}

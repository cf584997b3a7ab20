package users

import (
	"context"
	"sync"
	"time"

	"github.com/dev-th/authkeeper/internal/common"
	"github.com/google/uuid"
)

// InMemoryRepository is a mutex-guarded Repository used by tests and by the
// seed tool's dry-run mode. The mutex gives it the same one-winner guarantee
// on concurrent creates that the unique index gives the postgres repository.
type InMemoryRepository struct {
	mu    sync.Mutex
	byID  map[string]*User
	order []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: map[string]*User{}}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, common.ErrorAlreadyExists
		}
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	result := stored
	return &result, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	result := *u
	return &result, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*User{}
	for _, id := range r.order {
		if u, ok := r.byID[id]; ok {
			result = append(result, u.Redacted())
		}
	}
	return result, nil
}

func (r *InMemoryRepository) UpdatePassword(ctx context.Context, id string, username string, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok || u.Username != username {
		return 0, nil
	}
	u.PasswordHash = passwordHash
	return 1, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

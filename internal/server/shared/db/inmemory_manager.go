package db

import (
	"context"
	"database/sql"

	"github.com/dev-th/authkeeper/internal/server/users"
)

// InMemoryRepositoryManager backs the repositories with process memory.
// Used by tests and tooling; Conn returns nil and migrations are a no-op.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

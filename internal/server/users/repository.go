package users

import (
	"context"
)

// Repository owns identity records. Create must enforce username uniqueness
// atomically with respect to concurrent creates and return
// common.ErrorAlreadyExists on collision. UpdatePassword and Delete report
// the number of affected records (0 or 1).
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdatePassword(ctx context.Context, id string, username string, passwordHash string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

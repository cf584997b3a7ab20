// Package users holds the identity model, its repositories, and the
// authentication service orchestrating sign-up, sign-in, and user
// management on top of them.
package users

import (
	"context"
	"errors"

	"github.com/dev-th/authkeeper/internal/common"
	"github.com/dev-th/authkeeper/internal/server/auth"
	"github.com/google/uuid"
)

// Service implements the authentication flows. It holds no state of its own
// between calls; every outcome callers must handle is one of the common
// sentinel errors, and collaborator faults collapse to common.ErrorInternal.
type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	codec  auth.TokenCodec
}

func NewService(repo Repository, hasher auth.PasswordHasher, codec auth.TokenCodec) *Service {
	return &Service{repo: repo, hasher: hasher, codec: codec}
}

// SignUp creates a new identity and mints a token for it. The returned user
// is redacted. Duplicate usernames yield common.ErrorAlreadyExists.
func (s *Service) SignUp(ctx context.Context, username string, password string) (*User, string, error) {

	if username == "" || password == "" {
		return nil, "", common.ErrorValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := s.repo.Create(ctx, &User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", common.ErrorInternal
	}

	token, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user.Redacted(), token, nil
}

// SignIn verifies a credential and mints a token. Unknown usernames and
// wrong passwords both yield common.ErrorUnauthorized so callers cannot
// enumerate accounts.
func (s *Service) SignIn(ctx context.Context, username string, password string) (string, error) {

	if username == "" || password == "" {
		return "", common.ErrorValidation
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// List returns all users, redacted.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return user.Redacted(), nil
}

// UpdatePassword stores a new hash for the user matching both id and
// username. A stale username affects no rows and reports not found.
func (s *Service) UpdatePassword(ctx context.Context, id string, username string, password string) error {

	if username == "" || password == "" {
		return common.ErrorValidation
	}
	if !validID(id) {
		return common.ErrorNotFound
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return common.ErrorInternal
	}

	affected, err := s.repo.UpdatePassword(ctx, id, username, hash)
	if err != nil {
		return common.ErrorInternal
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// Delete removes the user with the given id. Deleting an absent id reports
// not found, which makes repeated deletes idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return common.ErrorInternal
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// validID rejects ids that cannot be UUIDs before they reach the database,
// so malformed path parameters read as not found rather than as db faults.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

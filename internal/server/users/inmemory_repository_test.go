package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dev-th/authkeeper/internal/common"
)

func TestInMemory_CreateAndLookups(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &User{Username: "alice@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	byName, err := repo.GetByUsername(ctx, "alice@example.com")
	if err != nil || byName.ID != created.ID {
		t.Fatalf("GetByUsername: user=%+v err=%v", byName, err)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil || byID.Username != "alice@example.com" {
		t.Fatalf("GetByID: user=%+v err=%v", byID, err)
	}

	if _, err := repo.GetByUsername(ctx, "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestInMemory_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &User{Username: "a@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	_, err := repo.Create(ctx, &User{Username: "a@example.com", PasswordHash: "h2"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestInMemory_ConcurrentCreatesOneWinner(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &User{Username: "raced@example.com", PasswordHash: "h"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, common.ErrorAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != attempts-1 {
		t.Fatalf("expected exactly one winner, got wins=%d conflicts=%d", wins, conflicts)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one stored record, got %d", len(all))
	}
}

func TestInMemory_ListRedacts(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &User{Username: "a@example.com", PasswordHash: "secret-hash"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for _, u := range all {
		if u.PasswordHash != "" {
			t.Fatalf("password hash leaked in listing: %+v", u)
		}
	}
}

func TestInMemory_UpdatePasswordJointMatch(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &User{Username: "a@example.com", PasswordHash: "old"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	affected, err := repo.UpdatePassword(ctx, created.ID, "wrong@example.com", "new")
	if err != nil || affected != 0 {
		t.Fatalf("stale username: affected=%d err=%v", affected, err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil || stored.PasswordHash != "old" {
		t.Fatalf("hash must be unchanged after failed update: %+v err=%v", stored, err)
	}

	affected, err = repo.UpdatePassword(ctx, created.ID, "a@example.com", "new")
	if err != nil || affected != 1 {
		t.Fatalf("matching update: affected=%d err=%v", affected, err)
	}
}

func TestInMemory_DeleteIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &User{Username: "a@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	affected, err := repo.Delete(ctx, created.ID)
	if err != nil || affected != 1 {
		t.Fatalf("first delete: affected=%d err=%v", affected, err)
	}
	affected, err = repo.Delete(ctx, created.ID)
	if err != nil || affected != 0 {
		t.Fatalf("second delete: affected=%d err=%v", affected, err)
	}
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestCredentialStore_AppendAndFind(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()

	record, err := store.Append(ctx, "Ada", "ada@example.com", "hash-1")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if record.ID != 1 {
		t.Errorf("Expected first id 1, got %d", record.ID)
	}
	if record.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	found, err := store.FindByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if found.ID != record.ID || found.PasswordHash != "hash-1" {
		t.Errorf("FindByEmail returned wrong record: %+v", found)
	}

	// Lookup is case-insensitive on the caller side too
	if _, err := store.FindByEmail(ctx, "ADA@Example.COM"); err != nil {
		t.Errorf("Expected case-insensitive lookup to succeed, got %v", err)
	}
}

func TestCredentialStore_FindMissing(t *testing.T) {
	store := NewCredentialStore()

	_, err := store.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialStore_DuplicateEmail(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()

	if _, err := store.Append(ctx, "Ada", "ada@example.com", "hash-1"); err != nil {
		t.Fatalf("First append failed: %v", err)
	}

	_, err := store.Append(ctx, "Impostor", "ada@example.com", "hash-2")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got %v", err)
	}

	if store.Count() != 1 {
		t.Errorf("Expected 1 record after duplicate append, got %d", store.Count())
	}
}

func TestCredentialStore_MonotonicIDs(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		record, err := store.Append(ctx, "User", fmt.Sprintf("user%d@example.com", i), "hash")
		if err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		if record.ID != i {
			t.Errorf("Expected id %d, got %d", i, record.ID)
		}
	}
}

// Two concurrent registrations for the same email must not both succeed:
// check-then-append is atomic with respect to other registrations.
func TestCredentialStore_ConcurrentSameEmail(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	results := make(chan error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(ctx, "Racer", "race@example.com", "hash")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("Expected exactly 1 successful registration, got %d", successes)
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 record, got %d", store.Count())
	}
}

func TestCredentialStore_ConcurrentDistinctEmails(t *testing.T) {
	store := NewCredentialStore()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	ids := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record, err := store.Append(ctx, "User", fmt.Sprintf("user%d@example.com", i), "hash")
			if err != nil {
				t.Errorf("Append failed: %v", err)
				return
			}
			ids <- record.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("Duplicate id assigned: %d", id)
		}
		seen[id] = true
	}

	if len(seen) != n {
		t.Errorf("Expected %d unique ids, got %d", n, len(seen))
	}
}
